// Package gallery loads the flat-file item manifest the field displays.
package gallery

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/galaxy/components"
)

// ErrOutsideRoot is returned by ResolveImage for a reference that escapes
// the public root.
var ErrOutsideRoot = errors.New("image path escapes public root")

// Load reads a manifest. JSON (an array of items, newest first) and CSV
// with a header row are supported, chosen by extension. A missing file is
// an empty gallery, not an error.
func Load(path string) ([]components.GalleryItem, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var items []components.GalleryItem
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		if err := gocsv.UnmarshalBytes(data, &items); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
	default:
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
	}
	return items, nil
}

// Source caches a manifest and re-reads it only when asked.
type Source struct {
	path   string
	items  []components.GalleryItem
	logger *slog.Logger
}

// NewSource loads path once. An unreadable or malformed manifest is logged
// and the source starts empty, so the field shows placeholders.
func NewSource(path string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Source{path: path, logger: logger}
	_ = s.Reload()
	return s
}

// Reload re-reads the manifest. On error the previous items are kept.
func (s *Source) Reload() error {
	items, err := Load(s.path)
	if err != nil {
		s.logger.Warn("gallery reload failed", "path", s.path, "error", err)
		return err
	}
	s.items = items
	s.logger.Info("gallery loaded", "path", s.path, "items", len(items))
	return nil
}

// Items returns a copy of the cached list.
func (s *Source) Items() []components.GalleryItem {
	out := make([]components.GalleryItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the cached item count.
func (s *Source) Len() int { return len(s.items) }

// IsRemote reports whether src is an absolute http(s) URL.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// ResolveImage maps a manifest src such as /gallery/x.jpg to a file under
// root. Remote URLs are returned unchanged.
func ResolveImage(root, src string) (string, error) {
	if src == "" {
		return "", errors.New("empty image reference")
	}
	if IsRemote(src) {
		return src, nil
	}
	rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(src, "/")))
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%q: %w", src, ErrOutsideRoot)
	}
	return filepath.Join(root, rel), nil
}
