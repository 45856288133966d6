// Package cursor implements the tuple cursor contract that feeds the
// execution core's leaf operators: a lazy, finite, forward-only sequence of
// (page, slot) positions over a heap file's pages.
package cursor

import (
	"io"

	"github.com/luigitni/relcore/pagecache"
	"github.com/luigitni/relcore/pages"
	"github.com/luigitni/relcore/storage"
)

// Position identifies a slot within a page.
type Position struct {
	PageNumber int
	SlotIndex  int
}

// Cursor advances slot-by-slot within a page, then page-by-page, over the
// pages a pagecache.Cache holds. It keeps no position of its own: callers
// pass the last position to NextAfter, and First starts a new scan from the
// beginning.
type Cursor struct {
	cache pagecache.Cache
}

// New returns a Cursor over the pages held by cache.
func New(cache pagecache.Cache) *Cursor {
	return &Cursor{cache: cache}
}

// First returns the position of the first live tuple, or io.EOF if the
// cache holds no tuples at all.
func (c *Cursor) First() (Position, error) {
	return c.NextAfter(Position{PageNumber: 0, SlotIndex: -1})
}

// NextAfter returns the position of the first live tuple strictly after
// pos, or io.EOF if none remains.
func (c *Cursor) NextAfter(pos Position) (Position, error) {
	pageNumber := pos.PageNumber
	slotIndex := pos.SlotIndex + 1

	for pageNumber < c.cache.PageCount() {
		page, err := c.cache.FetchPage(pageNumber)
		if err != nil {
			return Position{}, err
		}

		sp := pages.NewSlottedPage(page, storage.PageSize)
		n := int(sp.NumSlots())

		for slotIndex < n {
			empty, err := sp.IsSlotEmpty(slotIndex)
			if err != nil {
				c.cache.ReleasePage(pageNumber, false)
				return Position{}, err
			}

			if !empty {
				c.cache.ReleasePage(pageNumber, false)
				return Position{PageNumber: pageNumber, SlotIndex: slotIndex}, nil
			}

			slotIndex++
		}

		c.cache.ReleasePage(pageNumber, false)
		pageNumber++
		slotIndex = 0
	}

	return Position{}, io.EOF
}

// TupleAt returns the raw tuple bytes at pos.
func (c *Cursor) TupleAt(pos Position) ([]byte, error) {
	page, err := c.cache.FetchPage(pos.PageNumber)
	if err != nil {
		return nil, err
	}
	defer c.cache.ReleasePage(pos.PageNumber, false)

	sp := pages.NewSlottedPage(page, storage.PageSize)
	return sp.TupleBytes(pos.SlotIndex)
}
