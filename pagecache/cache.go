// Package pagecache supplies the page cache interface the execution core
// consumes: fetch/release/allocate of fixed-size pages, decoupled from any
// particular replacement policy or on-disk layout.
package pagecache

import (
	"errors"
	"fmt"
	"sync"

	"github.com/luigitni/relcore/storage"
	"github.com/rs/zerolog"
)

// ErrIO is returned when a page cannot be fetched or written.
var ErrIO = errors.New("page cache io error")

// Cache is the boundary the execution core pulls pages through. FetchPage
// pins a page; callers must release every fetched page exactly once.
// AllocatePage returns a new page without pinning it.
type Cache interface {
	FetchPage(pageNumber int) (*storage.Page, error)
	ReleasePage(pageNumber int, dirty bool)
	AllocatePage() (int, *storage.Page, error)
	PageCount() int
}

// MemCache is an in-memory reference Cache. It never evicts: every
// allocated page lives for the lifetime of the cache. Useful for tests and
// for the teaching engine, which does not specify a replacement policy.
type MemCache struct {
	mu     sync.Mutex
	log    zerolog.Logger
	pages  []*storage.Page
	pinned map[int]int
}

// NewMemCache returns an empty MemCache. A zerolog.Nop() logger silences
// diagnostics.
func NewMemCache(logger zerolog.Logger) *MemCache {
	return &MemCache{
		log:    logger,
		pinned: make(map[int]int),
	}
}

func (c *MemCache) FetchPage(pageNumber int) (*storage.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pageNumber < 0 || pageNumber >= len(c.pages) {
		return nil, fmt.Errorf("%w: page %d out of range", ErrIO, pageNumber)
	}

	c.pinned[pageNumber]++
	c.log.Debug().Int("page", pageNumber).Int("pins", c.pinned[pageNumber]).Msg("fetch page")

	return c.pages[pageNumber], nil
}

func (c *MemCache) ReleasePage(pageNumber int, dirty bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pinned[pageNumber] > 0 {
		c.pinned[pageNumber]--
	}

	c.log.Debug().Int("page", pageNumber).Bool("dirty", dirty).Msg("release page")
}

func (c *MemCache) AllocatePage() (int, *storage.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := storage.NewPage()
	c.pages = append(c.pages, p)
	n := len(c.pages) - 1

	c.log.Debug().Int("page", n).Msg("allocate page")

	return n, p, nil
}

func (c *MemCache) PageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pages)
}

var _ Cache = (*MemCache)(nil)
