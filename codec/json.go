package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Model payloads are plain structs of numbers and slices, which JSON encodes
// portably. Implement Codec and pass it to snapshot.Save if you need a custom
// encoding; the codec name recorded in the header keeps files self-describing.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }
