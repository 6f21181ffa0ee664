package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// It is kept for callers that need encoding/json semantics exactly (for
// example json.RawMessage handling); GoJSON produces the same output faster.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used to render documents as text.
var Default Codec = GoJSON{}
