package formatting

import (
	"bytes"
	"encoding/json"
	"strings"

	"golang.org/x/xerrors"
)

const indent = "  "

// Pretty renders v as two-space indented JSON. Strings are returned as they
// are, raw JSON bytes are re-indented and anything else is marshalled with
// HTML escaping turned off.
func Pretty(v interface{}) (string, error) {
	switch value := v.(type) {
	case string:
		return value, nil
	case json.RawMessage:
		return indentRaw(value)
	case []byte:
		return indentRaw(value)
	}

	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	if err := encoder.Encode(v); err != nil {
		return "", xerrors.Errorf("failed to marshal json: %w", err)
	}

	return strings.TrimSuffix(buffer.String(), "\n"), nil
}

func indentRaw(raw []byte) (string, error) {
	var buffer bytes.Buffer
	if err := json.Indent(&buffer, bytes.TrimSpace(raw), "", indent); err != nil {
		return "", xerrors.Errorf("invalid json: %w", err)
	}
	return buffer.String(), nil
}
