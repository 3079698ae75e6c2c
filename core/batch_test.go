package core

import (
	"testing"

	"hallnode/protocol"
)

func TestBatchAppend(t *testing.T) {
	b := NewBatch(64)

	if err := b.Append(protocol.Record{Type: 1, ElapsedMillis: 0, Value: 512}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := b.Append(protocol.Record{Type: 1, ElapsedMillis: 200, Value: 514}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if b.Len() != len("1:0:512;1:200:514;") {
		t.Errorf("Unexpected cursor position %d", b.Len())
	}

	// The byte at the write cursor is always zero.
	if b.buf[b.w] != 0 {
		t.Errorf("Byte at write cursor is %d, want 0", b.buf[b.w])
	}
}

func TestBatchAppendFull(t *testing.T) {
	b := NewBatch(10)

	// "1:0:512;" is 8 bytes, a second record cannot fit.
	if err := b.Append(protocol.Record{Type: 1, ElapsedMillis: 0, Value: 512}); err != nil {
		t.Fatalf("First append failed: %v", err)
	}
	err := b.Append(protocol.Record{Type: 1, ElapsedMillis: 200, Value: 512})
	if err != ErrBufferFull {
		t.Fatalf("Expected ErrBufferFull, got %v", err)
	}

	// The refused append must not write partial bytes.
	if b.Len() != 8 {
		t.Errorf("Cursor moved on refused append: %d", b.Len())
	}
	for i := b.w; i < len(b.buf); i++ {
		if b.buf[i] != 0 {
			t.Errorf("Partial bytes written at offset %d", i)
		}
	}
}

func TestBatchTakeFrame(t *testing.T) {
	b := NewBatch(64)
	b.Append(protocol.Record{Type: 1, ElapsedMillis: 0, Value: 512})
	b.Append(protocol.Record{Type: 1, ElapsedMillis: 200, Value: 514})

	frame := b.TakeFrame()
	if string(frame) != "1:0:512;1:200:514" {
		t.Errorf("Unexpected frame %q", string(frame))
	}
	if frame[len(frame)-1] == protocol.RecordDelimiter {
		t.Error("Frame must not end with the record delimiter")
	}
}

func TestBatchTakeFrameEmpty(t *testing.T) {
	b := NewBatch(64)
	if frame := b.TakeFrame(); frame != nil {
		t.Errorf("Empty batch produced frame %q", string(frame))
	}
}

func TestBatchResetZeroFills(t *testing.T) {
	b := NewBatch(64)
	b.Append(protocol.Record{Type: 1, ElapsedMillis: 0, Value: 512})
	b.Append(protocol.Record{Type: 1, ElapsedMillis: 200, Value: 514})

	b.Reset()

	if b.Len() != 0 {
		t.Errorf("Cursor not rewound: %d", b.Len())
	}
	for i, v := range b.buf {
		if v != 0 {
			t.Fatalf("Stale byte %d at offset %d after reset", v, i)
		}
	}

	// A flush right after reset has nothing to transmit.
	if frame := b.TakeFrame(); frame != nil {
		t.Errorf("Frame after reset: %q", string(frame))
	}
}

func TestBatchRoundTrip(t *testing.T) {
	// Any sequence of records that fits must round-trip through the
	// frame in order.
	b := NewBatch(DefaultConfig().BatchCapacity)
	var want []protocol.Record
	for i := uint32(0); i < 50; i++ {
		rec := protocol.Record{Type: 1, ElapsedMillis: i * 200, Value: 500 + i}
		if err := b.Append(rec); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
		want = append(want, rec)
	}

	got, err := protocol.ParseFrame(b.TakeFrame())
	if err != nil {
		t.Fatalf("ParseFrame failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Record %d mismatch: %+v != %+v", i, got[i], want[i])
		}
	}
}
