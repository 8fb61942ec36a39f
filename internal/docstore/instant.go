package docstore

import (
	"encoding/json"
	"fmt"
	"time"
)

// DecodeError reports a stored document that cannot be decoded, typically an
// instant field whose string encoding is not a valid timestamp. It is a
// data-integrity fault and is never silently defaulted.
type DecodeError struct {
	Field string
	Value string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode document field %q: invalid value %q", e.Field, e.Value)
	}
	return fmt.Sprintf("decode document: invalid value %q", e.Value)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Instant is a point in time persisted as a canonical string: RFC 3339 in
// UTC with sub-second precision preserved. Reading back tolerates the
// encodings found in existing documents (explicit "+00:00" offsets and
// offset-naive ISO-8601, which is taken as UTC).
type Instant struct {
	time.Time
}

// NewInstant normalizes t to UTC.
func NewInstant(t time.Time) Instant {
	return Instant{t.UTC()}
}

// Now returns the current wall-clock instant in UTC.
func Now() Instant {
	return Instant{time.Now().UTC()}
}

// Canonical returns the canonical string encoding.
func (i Instant) Canonical() string {
	return i.UTC().Format(time.RFC3339Nano)
}

func (i Instant) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Canonical())
}

func (i *Instant) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &DecodeError{Value: string(data), Err: err}
	}
	parsed, err := ParseInstant(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseInstant parses a stored timestamp string. Offset-naive encodings are
// interpreted as UTC.
func ParseInstant(s string) (Instant, error) {
	var lastErr error
	for _, layout := range instantLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return Instant{t.UTC()}, nil
		}
		lastErr = err
	}
	return Instant{}, &DecodeError{Value: s, Err: lastErr}
}
