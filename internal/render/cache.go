package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// Glamour standard style names accepted without a style file.
const (
	StyleDark    = "dark"
	StyleLight   = "light"
	StyleNoTTY   = "notty"
	StyleASCII   = "ascii"
	StyleDracula = "dracula"
)

// rendererPool hands out glamour renderers per option set.
// glamour.TermRenderer is not safe for concurrent Render calls, so a renderer
// is never shared; idle ones are parked in a sync.Pool.
type rendererPool struct {
	mu    sync.RWMutex
	pools map[Options]*sync.Pool
}

var globalPool = &rendererPool{
	pools: make(map[Options]*sync.Pool),
}

func (p *rendererPool) poolFor(opts Options) *sync.Pool {
	p.mu.RLock()
	pool, ok := p.pools[opts]
	p.mu.RUnlock()
	if ok {
		return pool
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if pool, ok := p.pools[opts]; ok {
		return pool
	}
	pool = &sync.Pool{}
	p.pools[opts] = pool
	return pool
}

func (p *rendererPool) get(opts Options) (*glamour.TermRenderer, error) {
	if r, ok := p.poolFor(opts).Get().(*glamour.TermRenderer); ok && r != nil {
		return r, nil
	}
	return createRenderer(opts)
}

func (p *rendererPool) put(opts Options, r *glamour.TermRenderer) {
	if r == nil {
		return
	}
	p.poolFor(opts).Put(r)
}

// IsStandardStyle reports whether style names a glamour built-in style
// rather than a path to a style file.
func IsStandardStyle(style string) bool {
	switch style {
	case StyleDark, StyleLight, StyleNoTTY, StyleASCII, StyleDracula, "pink", "tokyo-night":
		return true
	}
	return false
}

func createRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}

	if IsStandardStyle(opts.Style) {
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(opts.Style))
	} else {
		rendererOpts = append(rendererOpts, glamour.WithStylePath(opts.Style))
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(rendererOpts...)
}

// ClearCache drops every pooled renderer (useful for testing).
func ClearCache() {
	globalPool.mu.Lock()
	globalPool.pools = make(map[Options]*sync.Pool)
	globalPool.mu.Unlock()
}

// CacheSize returns the number of distinct option sets seen so far.
func CacheSize() int {
	globalPool.mu.RLock()
	defer globalPool.mu.RUnlock()
	return len(globalPool.pools)
}
