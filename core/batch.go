package core

import (
	"errors"

	"hallnode/protocol"
)

var (
	// ErrBufferFull reports an append that would overflow the batch
	// buffer. The sample is dropped; nothing partial is written.
	ErrBufferFull = errors.New("core: batch buffer full")

	// ErrEncodingFault reports an encoder that produced no bytes for a
	// record that should have fit. The buffer can no longer be trusted
	// and the device halts.
	ErrEncodingFault = errors.New("core: sample encoding fault")
)

// Batch accumulates encoded sample records between flushes. The buffer
// is fixed capacity; bytes [0:w) hold whole ';'-terminated records and
// every byte from w onward is zero. The flush path relies on that zero
// suffix, so reset zero-fills rather than just rewinding the cursor.
type Batch struct {
	buf []byte
	w   int
}

// NewBatch creates a batch buffer with the given byte capacity.
func NewBatch(capacity int) *Batch {
	return &Batch{buf: make([]byte, capacity)}
}

// encodeRecord is the sample encoder. A package variable so tests can
// force the fault paths.
var encodeRecord = protocol.AppendRecord

// Append encodes one sample record at the write cursor.
func (b *Batch) Append(rec protocol.Record) error {
	if b.w+protocol.RecordLen(rec) > len(b.buf) {
		return ErrBufferFull
	}

	n := encodeRecord(b.buf[b.w:], rec)
	if n <= 0 {
		// The record was measured to fit; a zero-length write here
		// means the encoder and the buffer disagree.
		return ErrEncodingFault
	}
	b.w += n
	return nil
}

// Len returns the number of buffered frame bytes.
func (b *Batch) Len() int {
	return b.w
}

// TakeFrame strips the trailing record delimiter and returns the
// accumulated records as a clean flush frame: records separated by ';'
// with no trailing ';'. Returns nil when nothing is buffered. The
// returned slice aliases the buffer and is valid until the next Append
// or Reset.
func (b *Batch) TakeFrame() []byte {
	if b.w == 0 {
		return nil
	}
	b.buf[b.w-1] = 0
	return b.buf[:b.w-1]
}

// Reset rewinds the cursor and zero-fills the whole buffer so stale
// record bytes can never leak into a later flush.
func (b *Batch) Reset() {
	b.w = 0
	for i := range b.buf {
		b.buf[i] = 0
	}
}
