package game

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/gallery"
)

// textureState tracks one image reference through loading.
type textureState uint8

const (
	texPending textureState = iota
	texReady
	texFailed
)

type textureEntry struct {
	state textureState
	tex   rl.Texture2D
}

// fetchResult carries downloaded bytes back to the render thread.
type fetchResult struct {
	ref  string
	data []byte
	ext  string
	err  error
}

// TextureCache loads card images in the background. Workers only fetch
// bytes; GPU uploads happen on the render thread in Poll.
type TextureCache struct {
	fetcher *gallery.Fetcher
	logger  *slog.Logger

	entries map[string]*textureEntry

	ctx     context.Context
	cancel  context.CancelFunc
	jobs    chan string
	results chan fetchResult
	wg      sync.WaitGroup

	pending int
	failed  int
}

// NewTextureCache starts the fetch workers.
func NewTextureCache(fetcher *gallery.Fetcher, logger *slog.Logger) *TextureCache {
	ctx, cancel := context.WithCancel(context.Background())
	workers := runtime.GOMAXPROCS(0)
	if workers > 8 {
		workers = 8
	}
	c := &TextureCache{
		fetcher: fetcher,
		logger:  logger,
		entries: make(map[string]*textureEntry),
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(chan string, 1024),
		results: make(chan fetchResult, 1024),
	}
	for i := 0; i < workers; i++ {
		c.wg.Add(1)
		go c.worker()
	}
	return c
}

func (c *TextureCache) worker() {
	defer c.wg.Done()
	for {
		select {
		case <-c.ctx.Done():
			return
		case ref := <-c.jobs:
			data, ext, err := c.fetcher.Fetch(c.ctx, ref)
			select {
			case c.results <- fetchResult{ref: ref, data: data, ext: ext, err: err}:
			case <-c.ctx.Done():
				return
			}
		}
	}
}

// Get returns the texture for ref. ok is false while it loads or after it
// failed; the caller draws a fallback card in both cases.
func (c *TextureCache) Get(ref string) (rl.Texture2D, bool) {
	if ref == "" {
		return rl.Texture2D{}, false
	}
	e, seen := c.entries[ref]
	if !seen {
		c.entries[ref] = &textureEntry{state: texPending}
		select {
		case c.jobs <- ref:
			c.pending++
		default:
			// Queue full; retry on a later frame.
			delete(c.entries, ref)
		}
		return rl.Texture2D{}, false
	}
	return e.tex, e.state == texReady
}

// Poll uploads finished downloads. Call once per frame from the render
// thread.
func (c *TextureCache) Poll() {
	for {
		select {
		case r := <-c.results:
			c.pending--
			c.upload(r)
		default:
			return
		}
	}
}

func (c *TextureCache) upload(r fetchResult) {
	e := c.entries[r.ref]
	if e == nil {
		e = &textureEntry{}
		c.entries[r.ref] = e
	}
	if r.err != nil {
		e.state = texFailed
		c.failed++
		c.logger.Warn("texture load failed", "ref", r.ref, "error", r.err)
		return
	}

	img := rl.LoadImageFromMemory(r.ext, r.data, int32(len(r.data)))
	if img == nil || img.Width == 0 || img.Height == 0 {
		e.state = texFailed
		c.failed++
		c.logger.Warn("texture decode failed", "ref", r.ref, "ext", r.ext, "bytes", len(r.data))
		return
	}
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if tex.ID == 0 {
		e.state = texFailed
		c.failed++
		c.logger.Warn("texture upload failed", "ref", r.ref)
		return
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	e.tex = tex
	e.state = texReady
}

// Loading returns the number of fetches in flight.
func (c *TextureCache) Loading() int { return c.pending }

// Failed returns the number of references that fell back.
func (c *TextureCache) Failed() int { return c.failed }

// Unload stops the workers and releases every texture.
func (c *TextureCache) Unload() {
	c.cancel()
	c.wg.Wait()
	for ref, e := range c.entries {
		if e.state == texReady {
			rl.UnloadTexture(e.tex)
		}
		delete(c.entries, ref)
	}
}
