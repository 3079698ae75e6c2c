package protocol

// Fifo is a fixed-capacity circular byte buffer. The BLE target uses it
// to hand received bytes from the stack's write callback to the main
// loop; one slot is reserved so a full buffer never overruns the read
// cursor.
type Fifo struct {
	buf   []byte
	read  int
	write int
	size  int
}

// NewFifo creates a Fifo with the given capacity.
func NewFifo(capacity int) *Fifo {
	return &Fifo{
		buf:  make([]byte, capacity),
		size: capacity,
	}
}

// Write appends data and returns how many bytes fit. Bytes that do not
// fit are dropped.
func (f *Fifo) Write(data []byte) int {
	written := 0
	for _, b := range data {
		next := (f.write + 1) % f.size
		if next == f.read {
			break
		}
		f.buf[f.write] = b
		f.write = next
		written++
	}
	return written
}

// ReadByte removes and returns the oldest byte. ok is false when the
// buffer is empty.
func (f *Fifo) ReadByte() (b byte, ok bool) {
	if f.read == f.write {
		return 0, false
	}
	b = f.buf[f.read]
	f.read = (f.read + 1) % f.size
	return b, true
}

// Available returns the number of buffered bytes.
func (f *Fifo) Available() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return f.size - f.read + f.write
}

// IsEmpty reports whether no bytes are buffered.
func (f *Fifo) IsEmpty() bool {
	return f.read == f.write
}

// Reset discards all buffered bytes.
func (f *Fifo) Reset() {
	f.read = 0
	f.write = 0
}
