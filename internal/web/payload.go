package web

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is image data on the wire. It encodes as a base64 string and
// decodes from either a base64 string or a JSON array of byte values.
type Payload []byte

// MarshalJSON implements json.Marshaler.
func (p Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal([]byte(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Payload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		var b []byte
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("bytes: %w", err)
		}
		*p = b
		return nil
	}

	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("bytes: %w", err)
	}
	out := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return fmt.Errorf("bytes[%d]: value %d out of range", i, v)
		}
		out[i] = byte(v)
	}
	*p = out
	return nil
}
