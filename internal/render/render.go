// Package render serializes query results as JSON text.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/openmohaa/diabotical-leaderboard/internal/models"
)

// Indent is the indentation used for entry and message output.
const Indent = "    "

// Encode renders a result. Entry lists, single entries and messages are
// indented with four spaces; counts are a bare JSON number. Entry keys keep
// the order the API sent them in. The output has no trailing newline.
func Encode(result models.Result) ([]byte, error) {
	switch r := result.(type) {
	case models.Count:
		return []byte(strconv.Itoa(int(r))), nil
	case models.EntryList:
		if r == nil {
			r = models.EntryList{}
		}
		return encodeIndented(r)
	case models.SingleEntry:
		return encodeIndented(r.Entry)
	case models.Message:
		return encodeIndented(string(r))
	default:
		return nil, fmt.Errorf("render: unsupported result %T", result)
	}
}

func encodeIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
