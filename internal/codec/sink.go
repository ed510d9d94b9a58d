package codec

import "io"

// InitialSinkCapacity is the allocation a fresh Sink starts with. Most
// encoded thumbnails fit in a few growth steps from here.
const InitialSinkCapacity = 1024

var _ io.Writer = (*Sink)(nil)

// Sink accumulates the chunked output of an encoder into one contiguous
// buffer. The encoder drives it through io.Writer; when encoding succeeds
// the caller takes the buffer with Finalize. A Sink serves exactly one
// encode operation and is not safe for concurrent use.
type Sink struct {
	buf []byte // len(buf) = bytes written, cap(buf) = allocated
}

// NewSink returns a Sink with a small pre-allocated buffer.
func NewSink() *Sink {
	return &Sink{buf: make([]byte, 0, InitialSinkCapacity)}
}

// Write appends p to the accumulated output. When the chunk would overflow
// the current allocation, capacity grows to (capacity+len(p))*2 — at least
// doubling, with enough headroom that streams of many small chunks cause
// O(log total) reallocations. Previously written bytes are preserved across
// growth. Write never fails; the returned error is always nil.
func (s *Sink) Write(p []byte) (int, error) {
	if len(s.buf)+len(p) > cap(s.buf) {
		grown := make([]byte, len(s.buf), (cap(s.buf)+len(p))*2)
		copy(grown, s.buf)
		s.buf = grown
	}
	s.buf = append(s.buf, p...)
	return len(p), nil
}

// Len reports the number of bytes written so far.
func (s *Sink) Len() int { return len(s.buf) }

// Cap reports the current allocation size. Always >= Len.
func (s *Sink) Cap() int { return cap(s.buf) }

// Finalize hands the accumulated bytes and their count to the caller and
// detaches them from the Sink. Call it once, after the encoder has
// completed successfully; the Sink must not be written to afterwards.
func (s *Sink) Finalize() ([]byte, int) {
	b := s.buf
	s.buf = nil
	return b, len(b)
}

// Discard drops everything written so far. Used on the encode failure
// path: a truncated encode must never reach the caller, no matter how
// many chunks had already arrived.
func (s *Sink) Discard() { s.buf = nil }
