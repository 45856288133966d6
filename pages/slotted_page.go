package pages

import (
	"errors"
	"fmt"

	"github.com/luigitni/relcore/storage"
)

// Errors surfaced by slotted page operations. BadSlot, EmptySlot and BadRange
// are programming errors: callers are expected to respect preconditions.
// NoPageSpace is expected and signals the caller to allocate a new page.
var (
	ErrBadSlot     = errors.New("bad slot")
	ErrEmptySlot   = errors.New("empty slot")
	ErrBadRange    = errors.New("bad range")
	ErrNoPageSpace = errors.New("no page space")
)

// slotEntrySize is the width in bytes of the numSlots header field and of
// each slot directory entry.
const slotEntrySize = storage.Offset(storage.SizeOfSmallInt)

// SlottedPage lays a growing slot directory over the low end of a page and a
// shrinking tuple heap over the high end. It does not own the underlying
// page: callers fetch it from a page cache, mutate it through a SlottedPage,
// and release it afterwards.
//
//	byte 0..1    numSlots
//	byte 2..     slot entries, each an offset into the tuple heap or 0 (empty)
//	...          free space
//	high end     tuple bodies, packed downward
type SlottedPage struct {
	page *storage.Page
	size storage.Offset
}

// NewSlottedPage wraps page as a slotted page of logical size size. size
// must not exceed storage.PageSize; it exists so callers can exercise the
// layout at page sizes smaller than the storage package's fixed buffer.
func NewSlottedPage(page *storage.Page, size storage.Offset) *SlottedPage {
	return &SlottedPage{page: page, size: size}
}

// Page returns the underlying page.
func (s *SlottedPage) Page() *storage.Page {
	return s.page
}

// Size returns the logical page size this slotted page was constructed with.
func (s *SlottedPage) Size() storage.Offset {
	return s.size
}

// Initialize resets the page to zero slots. The page is assumed to already
// be zeroed; Initialize only needs to set numSlots.
func (s *SlottedPage) Initialize() {
	s.setNumSlots(0)
}

func (s *SlottedPage) getUint16(at storage.Offset) storage.Offset {
	return storage.Offset(s.page.UnsafeGetFixedlen(at, storage.SizeOfSmallInt).UnsafeAsSmallInt())
}

func (s *SlottedPage) setUint16(at storage.Offset, v storage.Offset) {
	fixed := storage.UnsafeIntegerToFixedlen[storage.SmallInt](storage.SizeOfSmallInt, storage.SmallInt(v))
	s.page.UnsafeSetFixedlen(at, storage.SizeOfSmallInt, fixed)
}

// NumSlots returns the number of entries in the slot directory, empty or not.
func (s *SlottedPage) NumSlots() storage.Offset {
	return s.getUint16(0)
}

func (s *SlottedPage) setNumSlots(n storage.Offset) {
	s.setUint16(0, n)
}

func (s *SlottedPage) slotEntryOffset(i int) storage.Offset {
	return slotEntrySize * storage.Offset(i+1)
}

// SlotOffset returns the tuple offset stored at slot i, or the sentinel 0 if
// the slot is empty. Fails with ErrBadSlot if i is out of range.
func (s *SlottedPage) SlotOffset(i int) (storage.Offset, error) {
	n := s.NumSlots()
	if i < 0 || storage.Offset(i) >= n {
		return 0, fmt.Errorf("%w: slot %d out of range [0,%d)", ErrBadSlot, i, n)
	}

	return s.getUint16(s.slotEntryOffset(i)), nil
}

func (s *SlottedPage) setSlotOffset(i int, offset storage.Offset) {
	s.setUint16(s.slotEntryOffset(i), offset)
}

// IsSlotEmpty reports whether slot i holds the sentinel value.
func (s *SlottedPage) IsSlotEmpty(i int) (bool, error) {
	off, err := s.SlotOffset(i)
	if err != nil {
		return false, err
	}

	return off == 0, nil
}

func (s *SlottedPage) slotsEndIndex() storage.Offset {
	return slotEntrySize * (s.NumSlots() + 1)
}

// TupleDataStart returns the smallest offset among non-empty slots, scanning
// from the last slot downward, or the page size if every slot is empty.
func (s *SlottedPage) TupleDataStart() storage.Offset {
	n := int(s.NumSlots())
	for i := n - 1; i >= 0; i-- {
		off, _ := s.SlotOffset(i)
		if off != 0 {
			return off
		}
	}

	return s.size
}

// precedingOffset returns the offset of the nearest non-empty slot with
// index strictly below i, or the page size if none exists.
func (s *SlottedPage) precedingOffset(i int) storage.Offset {
	for j := i - 1; j >= 0; j-- {
		off, _ := s.SlotOffset(j)
		if off != 0 {
			return off
		}
	}

	return s.size
}

// TupleLength returns the length of the tuple held by slot i, computed as
// the distance to the nearest non-empty predecessor. Fails with ErrEmptySlot
// if the slot is the sentinel.
func (s *SlottedPage) TupleLength(i int) (storage.Offset, error) {
	off, err := s.SlotOffset(i)
	if err != nil {
		return 0, err
	}

	if off == 0 {
		return 0, fmt.Errorf("%w: slot %d", ErrEmptySlot, i)
	}

	return s.precedingOffset(i) - off, nil
}

// FreeSpace returns the number of bytes available between the slot
// directory and the tuple heap.
func (s *SlottedPage) FreeSpace() storage.Offset {
	return s.TupleDataStart() - s.slotsEndIndex()
}

// TupleBytes returns the raw byte range backing the tuple held by slot i,
// suitable for bulk reads or writes of the tuple body.
func (s *SlottedPage) TupleBytes(i int) ([]byte, error) {
	off, err := s.SlotOffset(i)
	if err != nil {
		return nil, err
	}

	if off == 0 {
		return nil, fmt.Errorf("%w: slot %d", ErrEmptySlot, i)
	}

	length, err := s.TupleLength(i)
	if err != nil {
		return nil, err
	}

	return s.page.Slice(off, off+length), nil
}

func (s *SlottedPage) zero(from, to storage.Offset) {
	clear(s.page.Slice(from, to))
}

// AllocateTuple reserves length bytes of tuple space and returns the slot
// index the tuple was placed under. Fails with ErrNoPageSpace if the page
// does not have enough free space.
func (s *SlottedPage) AllocateTuple(length int) (int, error) {
	if length < 0 {
		return 0, fmt.Errorf("%w: negative length %d", ErrBadRange, length)
	}

	tupleLen := storage.Offset(length)

	n := int(s.NumSlots())
	reuseIndex := -1
	for i := 0; i < n; i++ {
		off, _ := s.SlotOffset(i)
		if off == 0 {
			reuseIndex = i
			break
		}
	}

	required := tupleLen
	if reuseIndex < 0 {
		required += slotEntrySize
	}

	if s.FreeSpace() < required {
		return 0, fmt.Errorf("%w: need %d, have %d", ErrNoPageSpace, required, s.FreeSpace())
	}

	slotIndex := reuseIndex
	if slotIndex < 0 {
		slotIndex = n
		s.setNumSlots(storage.Offset(n) + 1)
		s.setSlotOffset(slotIndex, 0)
	}

	newEnd := s.precedingOffset(slotIndex)
	newStart := newEnd - tupleLen

	if err := s.insertTupleRange(newEnd, tupleLen); err != nil {
		return 0, err
	}

	// Set the slot's offset only after the move: the move shifts every
	// slot with an offset strictly below newEnd, and the new slot must
	// not be among them.
	s.setSlotOffset(slotIndex, newStart)

	// The last slot is live after every allocation: a new slot is appended
	// last, and a reused empty slot always lies below a live last slot.
	if last, _ := s.SlotOffset(int(s.NumSlots()) - 1); last == 0 {
		panic(fmt.Sprintf("slotted page: last slot %d is empty after allocation", s.NumSlots()-1))
	}

	return slotIndex, nil
}

// insertTupleRange slides tuple bodies occupying [tupleDataStart, at) down
// by length bytes, opens a length-byte gap at [at-length, at) and zeroes it,
// and decrements the offset of every slot that pointed into the shifted
// region.
func (s *SlottedPage) insertTupleRange(at storage.Offset, length storage.Offset) error {
	start := s.TupleDataStart()

	if at < start || at > s.size || length > at {
		return fmt.Errorf("%w: insert at %d length %d (start %d, size %d)", ErrBadRange, at, length, start, s.size)
	}

	if start < at {
		s.page.Copy(start, start-length, at-start)
	}

	s.zero(at-length, at)

	n := int(s.NumSlots())
	for i := 0; i < n; i++ {
		off, _ := s.SlotOffset(i)
		if off != 0 && off < at {
			s.setSlotOffset(i, off-length)
		}
	}

	return nil
}

// DeleteTuple removes the tuple held by slot i, compacts the heap, sets the
// sentinel, and trims trailing empty slots.
func (s *SlottedPage) DeleteTuple(i int) error {
	off, err := s.SlotOffset(i)
	if err != nil {
		return err
	}

	if off == 0 {
		return fmt.Errorf("%w: slot %d", ErrEmptySlot, i)
	}

	length, err := s.TupleLength(i)
	if err != nil {
		return err
	}

	if err := s.deleteTupleRange(off, length); err != nil {
		return err
	}

	s.setSlotOffset(i, 0)

	n := s.NumSlots()
	for n > 0 {
		last, _ := s.SlotOffset(int(n) - 1)
		if last != 0 {
			break
		}
		n--
	}
	s.setNumSlots(n)

	return nil
}

// deleteTupleRange slides tuple bodies occupying [tupleDataStart, start) up
// by length bytes, zeroes the vacated length-byte gap at the bottom of the
// heap, and increments the offset of every slot at or below start -
// including the slot being deleted, which is cleared separately afterward.
func (s *SlottedPage) deleteTupleRange(start storage.Offset, length storage.Offset) error {
	tupleDataStart := s.TupleDataStart()

	if start < tupleDataStart || start > s.size || length > s.size-tupleDataStart {
		return fmt.Errorf("%w: delete at %d length %d (start %d, size %d)", ErrBadRange, start, length, tupleDataStart, s.size)
	}

	if tupleDataStart < start {
		s.page.Copy(tupleDataStart, tupleDataStart+length, start-tupleDataStart)
	}

	s.zero(tupleDataStart, tupleDataStart+length)

	n := int(s.NumSlots())
	for i := 0; i < n; i++ {
		off, _ := s.SlotOffset(i)
		if off != 0 && off <= start {
			s.setSlotOffset(i, off+length)
		}
	}

	return nil
}
