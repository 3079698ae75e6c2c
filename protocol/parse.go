package protocol

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrBadRecord reports a record that does not have exactly three
	// unsigned decimal fields.
	ErrBadRecord = errors.New("protocol: malformed sample record")
)

// ParseRecord decodes a single encoded sample without its trailing
// record delimiter, e.g. "1:200:512".
func ParseRecord(s string) (Record, error) {
	fields := strings.Split(s, string(rune(FieldDelimiter)))
	if len(fields) != 3 {
		return Record{}, ErrBadRecord
	}

	typ, err := strconv.ParseUint(fields[0], 10, 16)
	if err != nil {
		return Record{}, ErrBadRecord
	}
	elapsed, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return Record{}, ErrBadRecord
	}
	value, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return Record{}, ErrBadRecord
	}

	return Record{
		Type:          uint16(typ),
		ElapsedMillis: uint32(elapsed),
		Value:         uint32(value),
	}, nil
}

// ParseFrame decodes a flush frame: zero or more records separated by
// the record delimiter, with no trailing delimiter. An empty frame
// yields no records and no error.
func ParseFrame(frame []byte) ([]Record, error) {
	if len(frame) == 0 {
		return nil, nil
	}

	parts := strings.Split(string(frame), string(rune(RecordDelimiter)))
	records := make([]Record, 0, len(parts))
	for _, part := range parts {
		rec, err := ParseRecord(part)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
