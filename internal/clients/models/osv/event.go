package osvmodels

import (
	"bytes"
	"encoding/json"

	"golang.org/x/xerrors"
)

// Event is a single version boundary inside a range. On the wire it is an
// object with exactly one key, e.g. {"introduced": "1.0.0"}.
type Event struct {
	Kind  string
	Value string
}

func (e Event) MarshalJSON() ([]byte, error) {
	key, err := json.Marshal(e.Kind)
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal event kind: %w", err)
	}
	value, err := json.Marshal(e.Value)
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal event value: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(value)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var entry map[string]string
	if err := json.Unmarshal(data, &entry); err != nil {
		return xerrors.Errorf("failed to unmarshal range event: %w", err)
	}

	if len(entry) != 1 {
		return xerrors.Errorf("range event must have exactly one key, got %d", len(entry))
	}

	for kind, value := range entry {
		e.Kind = kind
		e.Value = value
	}
	return nil
}
