// Package protocol defines the ASCII wire format for batched sensor
// samples and the byte buffers shared between the firmware core and the
// host tool.
//
// A sample is encoded as "<type>:<elapsed_ms>:<value>;" with unsigned
// base-10 fields and no padding. A flush frame is a concatenation of
// encoded samples with the final ';' stripped.
package protocol

// Delimiters of the encoded sample record.
const (
	FieldDelimiter  = ':'
	RecordDelimiter = ';'
)

// Record is one time-stamped sensor sample.
type Record struct {
	Type          uint16 // metric type code tagging the stream
	ElapsedMillis uint32 // milliseconds since the recording origin
	Value         uint32 // raw ADC reading
}

// RecordLen returns the encoded length of r in bytes, delimiter included.
func RecordLen(r Record) int {
	return uintLen(uint32(r.Type)) + 1 + uintLen(r.ElapsedMillis) + 1 + uintLen(r.Value) + 1
}

// AppendRecord encodes r at the start of dst and returns the number of
// bytes written. It writes nothing and returns 0 when dst is too short
// to hold the full record; partial records never reach the buffer.
func AppendRecord(dst []byte, r Record) int {
	n := RecordLen(r)
	if n > len(dst) {
		return 0
	}

	pos := appendUint(dst, 0, uint32(r.Type))
	dst[pos] = FieldDelimiter
	pos++
	pos = appendUint(dst, pos, r.ElapsedMillis)
	dst[pos] = FieldDelimiter
	pos++
	pos = appendUint(dst, pos, r.Value)
	dst[pos] = RecordDelimiter
	pos++

	return pos
}

// uintLen returns the number of base-10 digits in v.
func uintLen(v uint32) int {
	digits := 1
	for v >= 10 {
		digits++
		v /= 10
	}
	return digits
}

// appendUint writes the base-10 encoding of v into dst at pos and
// returns the position past the last digit. The caller guarantees the
// digits fit. No fmt here: this runs on the device path.
func appendUint(dst []byte, pos int, v uint32) int {
	digits := uintLen(v)
	for i := digits - 1; i >= 0; i-- {
		dst[pos+i] = byte('0' + v%10)
		v /= 10
	}
	return pos + digits
}
