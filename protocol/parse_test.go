package protocol

import "testing"

func TestParseFrameRoundTrip(t *testing.T) {
	records := []Record{
		{Type: 1, ElapsedMillis: 0, Value: 512},
		{Type: 1, ElapsedMillis: 200, Value: 514},
		{Type: 1, ElapsedMillis: 400, Value: 511},
	}

	// Build a frame the way the firmware does: concatenated records
	// with the trailing delimiter stripped.
	buf := make([]byte, 128)
	pos := 0
	for _, rec := range records {
		pos += AppendRecord(buf[pos:], rec)
	}
	frame := buf[:pos-1] // strip final ';'

	if string(frame) != "1:0:512;1:200:514;1:400:511" {
		t.Fatalf("Unexpected frame: %q", string(frame))
	}

	parsed, err := ParseFrame(frame)
	if err != nil {
		t.Fatalf("ParseFrame failed: %v", err)
	}
	if len(parsed) != len(records) {
		t.Fatalf("Expected %d records, got %d", len(records), len(parsed))
	}
	for i, rec := range records {
		if parsed[i] != rec {
			t.Errorf("Record %d mismatch: expected %+v, got %+v", i, rec, parsed[i])
		}
	}
}

func TestParseFrameEmpty(t *testing.T) {
	records, err := ParseFrame(nil)
	if err != nil {
		t.Errorf("Empty frame should parse cleanly, got %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records from empty frame, got %d", len(records))
	}
}

func TestParseFrameMalformed(t *testing.T) {
	testCases := []struct {
		name  string
		frame string
	}{
		{"missing field", "1:200"},
		{"extra field", "1:200:512:9"},
		{"non-numeric", "1:abc:512"},
		{"negative field", "1:-200:512"},
		{"trailing delimiter", "1:0:512;"},
		{"lone digit", "1"},
		{"type overflow", "70000:0:512"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseFrame([]byte(tc.frame)); err == nil {
				t.Errorf("Expected error for frame %q", tc.frame)
			}
		})
	}
}

func TestParseRecord(t *testing.T) {
	rec, err := ParseRecord("1:800:512")
	if err != nil {
		t.Fatalf("ParseRecord failed: %v", err)
	}
	expected := Record{Type: 1, ElapsedMillis: 800, Value: 512}
	if rec != expected {
		t.Errorf("Expected %+v, got %+v", expected, rec)
	}
}
