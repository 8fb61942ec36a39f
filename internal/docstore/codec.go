package docstore

import (
	"encoding/json"
	"errors"
	"time"
)

// Encode serializes a record to its storage document. Instant fields are
// written in their canonical string encoding.
func Encode(record any) ([]byte, error) {
	return json.Marshal(record)
}

// Decode deserializes a storage document into record. An instant field that
// cannot be parsed surfaces as *DecodeError.
func Decode(doc []byte, record any) error {
	if err := json.Unmarshal(doc, record); err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return de
		}
		return &DecodeError{Value: string(doc), Err: err}
	}
	return nil
}

// MergePatch applies a partial update to a stored document. Only keys present
// in patch overwrite the stored values; everything else is left untouched.
// Keys with nil values are treated as not supplied. When the designated
// instant field ends up in the merged document it is re-canonicalized, so a
// patched timestamp goes through the same encoding as on create.
func MergePatch(doc []byte, patch map[string]any, instantField string) ([]byte, error) {
	var merged map[string]any
	if err := json.Unmarshal(doc, &merged); err != nil {
		return nil, &DecodeError{Value: string(doc), Err: err}
	}
	for key, value := range patch {
		if value == nil {
			continue
		}
		merged[key] = value
	}
	if instantField != "" {
		if raw, ok := merged[instantField]; ok {
			canonical, err := CanonicalizeValue(instantField, raw)
			if err != nil {
				return nil, err
			}
			merged[instantField] = canonical
		}
	}
	return json.Marshal(merged)
}

// CanonicalizeValue normalizes an instant that may arrive either as a string
// encoding or as an already-structured time value.
func CanonicalizeValue(field string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		parsed, err := ParseInstant(v)
		if err != nil {
			return "", &DecodeError{Field: field, Value: v, Err: err}
		}
		return parsed.Canonical(), nil
	case time.Time:
		return NewInstant(v).Canonical(), nil
	case Instant:
		return v.Canonical(), nil
	default:
		return "", &DecodeError{Field: field, Value: stringify(value)}
	}
}

func stringify(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return "<unencodable>"
	}
	return string(raw)
}
