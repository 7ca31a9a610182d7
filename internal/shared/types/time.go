package types

import (
	"bytes"
	"time"

	"github.com/bytedance/sonic"
)

// timestampLayouts are tried in order. Values without an offset are read
// as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Timestamp is a server time in ISO-8601 form, with or without a zone
// offset. Text in no known layout keeps its Raw form and a zero Time rather
// than failing the enclosing payload.
type Timestamp struct {
	time.Time
	Raw string
}

// ParseTimestamp reads s with the accepted layouts
func ParseTimestamp(s string) (Timestamp, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, Raw: s}, true
		}
	}
	return Timestamp{Raw: s}, false
}

// UnmarshalJSON accepts a string or null; nothing else is an error
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := sonic.Unmarshal(data, &s); err != nil {
		return err
	}
	*ts, _ = ParseTimestamp(s)
	return nil
}

// MarshalJSON writes the server's text when known, RFC3339 otherwise
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.Raw != "" {
		return sonic.Marshal(ts.Raw)
	}
	if ts.Time.IsZero() {
		return []byte("null"), nil
	}
	return sonic.Marshal(ts.Time.Format(time.RFC3339Nano))
}
