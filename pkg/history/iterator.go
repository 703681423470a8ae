package history

import "iter"

// Iterator walks the records of a history buffer front to back.
//
//	it := history.NewIterator(buf)
//	for it.Next() {
//		ev := it.Event()
//		...
//	}
type Iterator struct {
	buf    []byte
	offset int
	cur    EventView
}

// NewIterator returns an Iterator positioned before the first record.
func NewIterator(buf []byte) *Iterator {
	return &Iterator{buf: buf}
}

// Next advances to the next whole record. It returns false at the end of the
// buffer or when the remaining bytes do not form a whole record.
func (it *Iterator) Next() bool {
	ev, ok := ReadEvent(it.buf[it.offset:])
	if !ok {
		it.cur = EventView{}
		return false
	}
	it.cur = ev
	it.offset += ev.TotalSize()
	return true
}

// Event returns the record Next last advanced to.
func (it *Iterator) Event() EventView {
	return it.cur
}

// Offset is the number of bytes consumed so far.
func (it *Iterator) Offset() int {
	return it.offset
}

// Remaining is the number of bytes not consumed yet.
func (it *Iterator) Remaining() int {
	return len(it.buf) - it.offset
}

// All yields every whole record in buf.
func All(buf []byte) iter.Seq[EventView] {
	return func(yield func(EventView) bool) {
		it := NewIterator(buf)
		for it.Next() {
			if !yield(it.Event()) {
				return
			}
		}
	}
}
