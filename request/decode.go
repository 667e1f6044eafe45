package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Parse parses body as JSON without applying any schema.
func Parse(body []byte) (any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, newDecodeError("", err)
	}
	return v, nil
}

// DecodeObject decodes the sub-tree named key into a T. An empty key decodes
// the whole body. A missing or null sub-tree is an error.
func DecodeObject[T any](body []byte, key string) (T, error) {
	var out T

	raw, err := extract(body, key)
	if err != nil {
		return out, err
	}
	if isNull(raw) {
		return out, &DecodeError{Path: key, Err: errors.New("missing object")}
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, newDecodeError(key, err)
	}
	return out, nil
}

// DecodeList decodes the array named key into a []T. An empty key decodes
// the whole body. A missing or null sub-tree yields an empty list.
func DecodeList[T any](body []byte, key string) ([]T, error) {
	raw, err := extract(body, key)
	if err != nil {
		return nil, err
	}
	if isNull(raw) {
		return []T{}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, newDecodeError(key, err)
	}

	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			return nil, newDecodeError(fmt.Sprintf("%s[%d]", key, i), err)
		}
		out = append(out, v)
	}
	return out, nil
}

// RequireFields reports a *MissingFieldError for the first field of fields
// that data, a JSON object, lacks or sets to null. Record types call it from
// UnmarshalJSON since encoding/json leaves absent fields at their zero value.
func RequireFields(data []byte, fields ...string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	for _, field := range fields {
		v, ok := obj[field]
		if !ok || isNull(v) {
			return &MissingFieldError{Field: field}
		}
	}
	return nil
}

// extract parses body and returns the raw value stored under key. A missing
// key returns a nil RawMessage.
func extract(body []byte, key string) (json.RawMessage, error) {
	var root json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, newDecodeError("", err)
	}
	if key == "" {
		return root, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(root, &obj); err != nil {
		return nil, newDecodeError("", fmt.Errorf("expected a JSON object: %w", err))
	}
	return obj[key], nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func newDecodeError(path string, err error) *DecodeError {
	de := &DecodeError{Path: path, Err: err}

	var typeErr *json.UnmarshalTypeError
	var missing *MissingFieldError
	switch {
	case errors.As(err, &typeErr):
		de.Field = typeErr.Field
	case errors.As(err, &missing):
		de.Field = missing.Field
	}
	return de
}
