package protocol

import "testing"

func TestAppendRecord(t *testing.T) {
	testCases := []struct {
		name     string
		record   Record
		expected string
	}{
		{"zero elapsed", Record{Type: 1, ElapsedMillis: 0, Value: 512}, "1:0:512;"},
		{"mid session", Record{Type: 1, ElapsedMillis: 200, Value: 514}, "1:200:514;"},
		{"all zero", Record{Type: 0, ElapsedMillis: 0, Value: 0}, "0:0:0;"},
		{"max fields", Record{Type: 65535, ElapsedMillis: 4294967295, Value: 4294967295}, "65535:4294967295:4294967295;"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, 64)
			n := AppendRecord(buf, tc.record)

			if n != len(tc.expected) {
				t.Errorf("Expected %d bytes written, got %d", len(tc.expected), n)
			}
			if got := string(buf[:n]); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
			if n != RecordLen(tc.record) {
				t.Errorf("RecordLen mismatch: wrote %d, RecordLen says %d", n, RecordLen(tc.record))
			}
		})
	}
}

func TestAppendRecordTooShort(t *testing.T) {
	rec := Record{Type: 1, ElapsedMillis: 200, Value: 512}
	need := RecordLen(rec)

	// One byte short: nothing may be written.
	buf := make([]byte, need-1)
	n := AppendRecord(buf, rec)
	if n != 0 {
		t.Errorf("Expected 0 bytes written into short buffer, got %d", n)
	}
	for i, b := range buf {
		if b != 0 {
			t.Errorf("Short buffer modified at offset %d: %d", i, b)
		}
	}

	// Exact fit succeeds.
	buf = make([]byte, need)
	if n := AppendRecord(buf, rec); n != need {
		t.Errorf("Expected exact fit to write %d bytes, wrote %d", need, n)
	}
}

func TestAppendRecordNoPartialWrite(t *testing.T) {
	// A record that fits must leave bytes past its end untouched.
	buf := make([]byte, 32)
	for i := range buf {
		buf[i] = 0xAA
	}

	rec := Record{Type: 1, ElapsedMillis: 5, Value: 7}
	n := AppendRecord(buf, rec)

	if n == 0 {
		t.Fatal("AppendRecord failed unexpectedly")
	}
	for i := n; i < len(buf); i++ {
		if buf[i] != 0xAA {
			t.Errorf("Byte past record end modified at offset %d", i)
		}
	}
}
