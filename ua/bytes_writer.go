package ua

import "io"

// A Writer implements the io.Writer and io.WriterAt interfaces by
// writing to a fixed byte slice. Unlike a bytes.Buffer, a Writer is
// write-only and never grows.
type Writer struct {
	s []byte
	i int // current writing index
}

// NewWriter returns a new Writer writing to b.
func NewWriter(b []byte) *Writer { return &Writer{b, 0} }

// Len returns the number of bytes of the written portion of the slice.
func (w *Writer) Len() int {
	return w.i
}

// Size returns the original length of the underlying byte slice.
func (w *Writer) Size() int64 { return int64(len(w.s)) }

// Write copies slice p to the buffer, returning the number of bytes written.
func (w *Writer) Write(p []byte) (n int, err error) {
	if w.i >= len(w.s) {
		return 0, io.ErrShortWrite
	}
	n = copy(w.s[w.i:], p)
	w.i += n
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// WriteAt copies slice p to the buffer at a given offset from the
// start. Only useful to overwrite bytes already written by Write; it
// does not advance the writing index.
func (w *Writer) WriteAt(p []byte, offset int64) (n int, err error) {
	if int(offset) >= w.i {
		return 0, io.ErrShortWrite
	}
	n = copy(w.s[offset:], p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Bytes returns a slice of length w.Len() holding the written portion
// of the buffer. The slice is valid only until the next Write.
func (w *Writer) Bytes() []byte { return w.s[:w.i] }
