package gallery

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/galaxy/components"
)

const sampleJSON = `[
  {
    "id": "b7",
    "src": "/gallery/b7_sunset.jpg",
    "description": "Sunset",
    "leftText": "west",
    "rightText": "2023",
    "timestamp": "2024-05-01T10:00:00.000Z"
  },
  {
    "id": "a1",
    "src": "/gallery/a1.jpg",
    "description": ""
  }
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeManifest stores items in the format chosen by extension.
func writeManifest(t *testing.T, path string, items []components.GalleryItem) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	var data []byte
	var err error
	if filepath.Ext(path) == ".csv" {
		data, err = gocsv.MarshalBytes(items)
	} else {
		data, err = json.MarshalIndent(items, "", "  ")
	}
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadJSON(t *testing.T) {
	items, err := Load(writeFile(t, "gallery.json", sampleJSON))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	want := components.GalleryItem{
		ID: "b7", Src: "/gallery/b7_sunset.jpg", Description: "Sunset",
		LeftText: "west", RightText: "2023", Timestamp: "2024-05-01T10:00:00.000Z",
	}
	if items[0] != want {
		t.Errorf("first item = %+v, want %+v", items[0], want)
	}
	if items[1].ID != "a1" || items[1].LeftText != "" {
		t.Errorf("second item = %+v", items[1])
	}
}

func TestLoadCSV(t *testing.T) {
	csv := "id,src,description,left_text,right_text,timestamp\n" +
		"c3,/gallery/c3.png,Harbour,north,,\n"
	items, err := Load(writeFile(t, "gallery.csv", csv))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 1 || items[0].ID != "c3" || items[0].LeftText != "north" || items[0].Description != "Harbour" {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestLoadMissingIsEmpty(t *testing.T) {
	items, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing manifest should not error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestLoadEmptyFile(t *testing.T) {
	items, err := Load(writeFile(t, "gallery.json", "  \n"))
	if err != nil || len(items) != 0 {
		t.Errorf("empty file should give no items, got %v %v", items, err)
	}
}

func TestLoadMalformed(t *testing.T) {
	if _, err := Load(writeFile(t, "gallery.json", `{"id": `)); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadRoundtrip(t *testing.T) {
	items := []components.GalleryItem{
		{ID: "1", Src: "/gallery/1.jpg", Description: "one", LeftText: "l", RightText: "r"},
		{ID: "2", Src: "/gallery/2.jpg"},
	}
	for _, name := range []string{"out.json", "out.csv"} {
		path := filepath.Join(t.TempDir(), "data", name)
		writeManifest(t, path, items)
		got, err := Load(path)
		if err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		if len(got) != len(items) || got[0] != items[0] || got[1] != items[1] {
			t.Errorf("%s: roundtrip mismatch: %+v", name, got)
		}
	}
}

func TestSourceReloadOnlyOnRequest(t *testing.T) {
	path := writeFile(t, "gallery.json", sampleJSON)
	src := NewSource(path, nil)
	if src.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", src.Len())
	}

	if err := os.WriteFile(path, []byte(`[{"id":"z","src":"/gallery/z.jpg"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if src.Len() != 2 {
		t.Error("source must not refresh without Reload")
	}

	if err := src.Reload(); err != nil {
		t.Fatal(err)
	}
	if items := src.Items(); len(items) != 1 || items[0].ID != "z" {
		t.Errorf("unexpected items after reload: %+v", items)
	}
}

func TestSourceReloadKeepsItemsOnError(t *testing.T) {
	path := writeFile(t, "gallery.json", sampleJSON)
	src := NewSource(path, nil)
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := src.Reload(); err == nil {
		t.Error("expected reload error")
	}
	if src.Len() != 2 {
		t.Errorf("previous items should be kept, got %d", src.Len())
	}
}

func TestNewSourceMalformedStartsEmpty(t *testing.T) {
	for _, content := range []string{
		`[{"id":"a","src":"/gallery/a.jpg"`,
		"not json",
		`{"id": "a"}`,
	} {
		path := writeFile(t, "gallery.json", content)
		src := NewSource(path, nil)
		if src == nil {
			t.Fatalf("%q: expected a source", content)
		}
		if src.Len() != 0 || len(src.Items()) != 0 {
			t.Errorf("%q: expected empty source, got %d items", content, src.Len())
		}

		// A later fix to the file is picked up by Reload.
		if err := os.WriteFile(path, []byte(sampleJSON), 0644); err != nil {
			t.Fatal(err)
		}
		if err := src.Reload(); err != nil || src.Len() != 2 {
			t.Errorf("%q: reload after fix gave %d items, err %v", content, src.Len(), err)
		}
	}
}

func TestSourceItemsIsCopy(t *testing.T) {
	src := NewSource(writeFile(t, "gallery.json", sampleJSON), nil)
	items := src.Items()
	items[0].ID = "mutated"
	if src.Items()[0].ID != "b7" {
		t.Error("Items must return a copy")
	}
}

func TestResolveImage(t *testing.T) {
	root := filepath.Join("srv", "public")

	tests := []struct {
		src     string
		want    string
		wantErr error
	}{
		{"/gallery/a.jpg", filepath.Join(root, "gallery", "a.jpg"), nil},
		{"gallery/b.png", filepath.Join(root, "gallery", "b.png"), nil},
		{"https://picsum.photos/seed/100/600/800", "https://picsum.photos/seed/100/600/800", nil},
		{"/../secret.txt", "", ErrOutsideRoot},
		{"/gallery/../../etc/passwd", "", ErrOutsideRoot},
	}
	for _, tc := range tests {
		got, err := ResolveImage(root, tc.src)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ResolveImage(%q) error = %v, want %v", tc.src, err, tc.wantErr)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ResolveImage(%q) = %q, %v; want %q", tc.src, got, err, tc.want)
		}
	}

	if _, err := ResolveImage(root, ""); err == nil {
		t.Error("empty src should error")
	}
}
