package protocol

// InputBuffer is a byte stream the frame decoder consumes from the front
type InputBuffer interface {
	Data() []byte
	Available() int
	Pop(n int)
}

// OutputBuffer receives encoded bytes
type OutputBuffer interface {
	Output(data []byte)
}

// SliceInputBuffer is an InputBuffer over a fixed byte slice
type SliceInputBuffer struct {
	data []byte
}

func NewSliceInputBuffer(data []byte) *SliceInputBuffer {
	return &SliceInputBuffer{data: data}
}

func (s *SliceInputBuffer) Data() []byte   { return s.data }
func (s *SliceInputBuffer) Available() int { return len(s.data) }

func (s *SliceInputBuffer) Pop(n int) {
	s.data = s.data[min(n, len(s.data)):]
}

// ScratchOutput collects output in a fixed array so firmware can build
// reports without allocating. Writes past ScratchSize are dropped.
type ScratchOutput struct {
	buf [ScratchSize]byte
	n   int
}

func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

func (s *ScratchOutput) Output(data []byte) {
	s.n += copy(s.buf[s.n:], data)
}

// Len is the number of bytes collected
func (s *ScratchOutput) Len() int { return s.n }

// Result returns the collected bytes. The slice aliases the buffer and is
// only valid until the next Output or Reset.
func (s *ScratchOutput) Result() []byte { return s.buf[:s.n] }

func (s *ScratchOutput) Reset() { s.n = 0 }

// StreamBuffer accumulates serial input for the host monitor. Unread bytes
// stay contiguous so Data never copies; Pop compacts.
type StreamBuffer struct {
	buf   []byte
	limit int
}

// NewStreamBuffer creates a buffer holding at most capacity unread bytes
func NewStreamBuffer(capacity int) *StreamBuffer {
	return &StreamBuffer{buf: make([]byte, 0, capacity), limit: capacity}
}

// Write appends as much of data as fits and returns the count written
func (b *StreamBuffer) Write(data []byte) int {
	n := min(len(data), b.Free())
	b.buf = append(b.buf, data[:n]...)
	return n
}

func (b *StreamBuffer) Data() []byte   { return b.buf }
func (b *StreamBuffer) Available() int { return len(b.buf) }
func (b *StreamBuffer) Free() int      { return b.limit - len(b.buf) }

// Pop drops n bytes from the front, moving the rest down
func (b *StreamBuffer) Pop(n int) {
	n = min(n, len(b.buf))
	b.buf = b.buf[:copy(b.buf, b.buf[n:])]
}

func (b *StreamBuffer) Reset() { b.buf = b.buf[:0] }
