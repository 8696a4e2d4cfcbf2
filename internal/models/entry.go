package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one player's leaderboard record. The API schema is open-ended, so
// values are kept as raw JSON and the object's key order is preserved exactly
// as received; encoding an Entry reproduces it.
//
// Entries handed out by accessors never share mutable state with the
// receiver. Without and Clone return independent values.
type Entry struct {
	keys   []string
	values map[string]json.RawMessage
}

// UnmarshalJSON decodes a JSON object while recording key order. A repeated
// key keeps its first position and its last value.
func (e *Entry) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("entry: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("entry: expected JSON object, got %s", bytes.TrimSpace(data))
	}

	var keys []string
	values := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("entry: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("entry: unexpected token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("entry: field %q: %w", key, err)
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = raw
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("entry: %w", err)
	}

	e.keys = keys
	e.values = values
	return nil
}

// MarshalJSON encodes the entry with its keys in insertion order.
func (e Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range e.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		buf.Write(e.values[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, k string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(k); err != nil {
		return err
	}
	// Encode terminates every value with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Set assigns key, appending it if new. value is marshaled with encoding/json.
func (e *Entry) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("entry: field %q: %w", key, err)
	}
	if e.values == nil {
		e.values = make(map[string]json.RawMessage)
	}
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = raw
	return nil
}

// Keys returns the field names in order.
func (e Entry) Keys() []string {
	return append([]string(nil), e.keys...)
}

// Len reports the number of fields.
func (e Entry) Len() int {
	return len(e.keys)
}

// Has reports whether the field is present, whatever its value.
func (e Entry) Has(key string) bool {
	_, ok := e.values[key]
	return ok
}

// Get returns a copy of the raw JSON value stored under key.
func (e Entry) Get(key string) (json.RawMessage, bool) {
	raw, ok := e.values[key]
	if !ok {
		return nil, false
	}
	return append(json.RawMessage(nil), raw...), true
}

// String returns the field as a Go string. ok is false when the field is
// missing or holds a non-string JSON value.
func (e Entry) String(key string) (string, bool) {
	raw, ok := e.values[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Without returns a copy of the entry with key removed.
func (e Entry) Without(key string) Entry {
	out := Entry{
		keys:   make([]string, 0, len(e.keys)),
		values: make(map[string]json.RawMessage, len(e.values)),
	}
	for _, k := range e.keys {
		if k == key {
			continue
		}
		out.keys = append(out.keys, k)
		out.values[k] = e.values[k]
	}
	return out
}

// Clone returns an independent copy of the entry.
func (e Entry) Clone() Entry {
	out := Entry{
		keys:   append([]string(nil), e.keys...),
		values: make(map[string]json.RawMessage, len(e.values)),
	}
	for k, v := range e.values {
		out.values[k] = v
	}
	return out
}
