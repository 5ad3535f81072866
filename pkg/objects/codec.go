package objects

import (
	"encoding/json"
	"fmt"
)

// Codec converts application values to and from the stored byte
// representation. All serialization runs through this interface so a format
// change stays contained in one place.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, dest any) error
}

// JSONCodec encodes values as UTF-8 JSON. It is the default codec.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, dest any) error {
	return json.Unmarshal(data, dest)
}

func encode(c Codec, v any) ([]byte, error) {
	data, err := c.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}
	return data, nil
}

// decode parses raw store data. Parse failures wrap ErrCorruptValue so
// callers can tell data corruption apart from connection errors.
func decode[T any](c Codec, data []byte) (T, error) {
	var v T
	if err := c.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrCorruptValue, err)
	}
	return v, nil
}
