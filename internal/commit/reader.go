package commit

import (
	"fmt"
	"io"
	"strings"
)

const (
	// RecordSeparator terminates each record in a serialized stream
	// (git log's %x1e).
	RecordSeparator = "\x1e"

	// FieldSeparator splits hash, subject and body within a record.
	FieldSeparator = "|"

	// GitLogFormat is the --format argument that produces a stream
	// ReadRecords understands.
	GitLogFormat = "%H" + FieldSeparator + "%s" + FieldSeparator + "%b%x1e"
)

// ReadRecords decodes a stream of serialized records.
// Each record is split on the first two field separators only, so a body
// that contains `|` is kept as one opaque block. Blank records are skipped,
// and a record with fewer than two separators is treated as hash and subject
// with an empty body.
func ReadRecords(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading commit records: %w", err)
	}

	var records []Record
	for _, chunk := range strings.Split(string(data), RecordSeparator) {
		chunk = strings.TrimLeft(chunk, "\r\n")
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		records = append(records, DecodeRecord(chunk))
	}

	return records, nil
}

// DecodeRecord splits one serialized record into its fields.
func DecodeRecord(s string) Record {
	parts := strings.SplitN(s, FieldSeparator, 3)

	var rec Record
	rec.Hash = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		rec.Subject = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		rec.Body = strings.TrimSpace(parts[2])
	}
	return rec
}

// FormatRecord serializes a record, including the trailing separator.
func FormatRecord(r Record) string {
	return r.Hash + FieldSeparator + r.Subject + FieldSeparator + r.Body + RecordSeparator
}

// WriteRecords serializes records to w in order.
func WriteRecords(w io.Writer, records []Record) error {
	for _, r := range records {
		if _, err := io.WriteString(w, FormatRecord(r)+"\n"); err != nil {
			return fmt.Errorf("writing record %s: %w", r.Hash, err)
		}
	}
	return nil
}
