package arena

import "io"

// Writer streams serializer output into an Arena. Each Write lands directly
// after the previous one, so a sequence of writes forms one contiguous
// payload starting at the arena position observed before the first write.
type Writer struct {
	arena *Arena
}

var _ io.Writer = (*Writer)(nil)

// NewWriter returns a Writer appending to a.
func NewWriter(a *Arena) *Writer {
	return &Writer{arena: a}
}

func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	dst := w.arena.Reserve(len(p))
	n := copy(dst, p)
	if err := w.arena.Advance(n); err != nil {
		return 0, err
	}
	return n, nil
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(c byte) error {
	dst := w.arena.Reserve(1)
	dst[0] = c
	return w.arena.Advance(1)
}

// Arena returns the underlying arena.
func (w *Writer) Arena() *Arena { return w.arena }
