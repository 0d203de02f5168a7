package gallery

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxImageBytes caps a single image download.
const maxImageBytes = 32 << 20

// Fetcher reads image bytes for an item reference, from the public root or
// over HTTP.
type Fetcher struct {
	Root   string
	Client *http.Client
}

// NewFetcher returns a fetcher reading local references under root.
func NewFetcher(root string) *Fetcher {
	return &Fetcher{
		Root:   root,
		Client: &http.Client{Timeout: 20 * time.Second},
	}
}

// Fetch returns the image bytes for src and a file extension such as
// ".png" identifying the encoding.
func (f *Fetcher) Fetch(ctx context.Context, src string) ([]byte, string, error) {
	path, err := ResolveImage(f.Root, src)
	if err != nil {
		return nil, "", err
	}
	if !IsRemote(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("reading image: %w", err)
		}
		return data, imageExt(path, ""), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building request: %w", err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetching image %s: status %d", path, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading image body: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("image %s exceeds %d bytes", path, maxImageBytes)
	}
	return data, imageExt(req.URL.Path, resp.Header.Get("Content-Type")), nil
}

// imageExt picks the decoder extension from the content type, falling back
// to the path and then to JPEG.
func imageExt(path, contentType string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mt {
		case "image/png":
			return ".png"
		case "image/jpeg":
			return ".jpg"
		case "image/gif":
			return ".gif"
		case "image/bmp":
			return ".bmp"
		}
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png", ".jpg", ".gif", ".bmp", ".tga", ".qoi":
		return ext
	case ".jpeg":
		return ".jpg"
	}
	return ".jpg"
}
