package gallery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetchLocal(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "gallery"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "gallery", "a.PNG"), []byte("png-bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	f := NewFetcher(root)
	data, ext, err := f.Fetch(context.Background(), "/gallery/a.PNG")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "png-bytes" || ext != ".png" {
		t.Errorf("got %q %q", data, ext)
	}

	if _, _, err := f.Fetch(context.Background(), "/gallery/missing.jpg"); err == nil {
		t.Error("expected error for missing file")
	}
	if _, _, err := f.Fetch(context.Background(), "/../secret.jpg"); !errors.Is(err, ErrOutsideRoot) {
		t.Errorf("expected ErrOutsideRoot, got %v", err)
	}
}

func TestFetchRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("remote"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir())
	data, ext, err := f.Fetch(context.Background(), srv.URL+"/ok")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "remote" || ext != ".png" {
		t.Errorf("got %q %q", data, ext)
	}

	if _, _, err := f.Fetch(context.Background(), srv.URL+"/gone"); err == nil {
		t.Error("expected error for 404")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := f.Fetch(ctx, srv.URL+"/ok"); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestImageExt(t *testing.T) {
	tests := []struct {
		path, contentType, want string
	}{
		{"/seed/103/600/800", "image/jpeg", ".jpg"},
		{"/seed/103/600/800", "", ".jpg"},
		{"/a.png", "", ".png"},
		{"/a.JPEG", "", ".jpg"},
		{"/a.jpg", "image/png; charset=binary", ".png"},
		{"/a.webp", "application/octet-stream", ".jpg"},
	}
	for _, tt := range tests {
		if got := imageExt(tt.path, tt.contentType); got != tt.want {
			t.Errorf("imageExt(%q, %q) = %q, want %q", tt.path, tt.contentType, got, tt.want)
		}
	}
}
