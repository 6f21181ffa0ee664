package codec

import (
	"bytes"
	"fmt"

	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/document"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgPack is the binary codec of the archive format, backed by
// github.com/vmihailenco/msgpack/v5.
//
// Values that document.FromAny understands, plain maps and slices included,
// are converted to a document.Value first, so they share its encoding:
// compact integers, float32 when lossless and sorted map keys. Anything else,
// such as structs, goes to msgpack unchanged.
type MsgPack struct{}

// Marshal encodes the value to msgpack.
func (MsgPack) Marshal(v any) ([]byte, error) {
	if doc, err := document.FromAny(v); err == nil {
		v = doc
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseCompactInts(true)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes exactly one msgpack value from data into v.
// Bytes left over after the value are reported as benchy.ErrBadFormat.
func (MsgPack) Unmarshal(data []byte, v any) error {
	r := bytes.NewReader(data)
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", benchy.ErrBadFormat, err)
	}
	if r.Len() > 0 {
		return fmt.Errorf("%w: %d trailing bytes after msgpack value", benchy.ErrBadFormat, r.Len())
	}
	return nil
}

// Name returns the unique name of the codec ("msgpack").
func (MsgPack) Name() string { return "msgpack" }
