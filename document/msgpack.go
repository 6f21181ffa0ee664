package document

import (
	"fmt"
	"math"

	"github.com/hupe1980/benchy"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

var (
	_ msgpack.CustomEncoder = Value{}
	_ msgpack.CustomDecoder = (*Value)(nil)
)

// maxPrealloc bounds slice and map preallocation from untrusted length headers.
const maxPrealloc = 1 << 16

// EncodeMsgpack writes v in the compact form: integers and floats use the
// smallest lossless representation and map entries are sorted by key, so equal
// trees always produce identical bytes.
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	switch v.kind {
	case KindNull:
		return enc.EncodeNil()
	case KindBool:
		return enc.EncodeBool(v.b)
	case KindInt:
		return enc.EncodeInt(v.i)
	case KindUint:
		return enc.EncodeUint(v.u)
	case KindFloat:
		if fitsFloat32(v.f) {
			return enc.EncodeFloat32(float32(v.f))
		}
		return enc.EncodeFloat64(v.f)
	case KindString:
		return enc.EncodeString(v.s)
	case KindArray:
		if err := enc.EncodeArrayLen(len(v.arr)); err != nil {
			return err
		}
		for _, item := range v.arr {
			if err := item.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	case KindMap:
		if err := enc.EncodeMapLen(len(v.m)); err != nil {
			return err
		}
		for _, k := range v.Keys() {
			if err := enc.EncodeString(k); err != nil {
				return err
			}
			if err := v.m[k].EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("document: cannot encode %s", v.kind)
	}
}

// fitsFloat32 reports whether f survives a round trip through float32.
// NaN and infinities are kept at double precision.
func fitsFloat32(f float64) bool {
	if f < -math.MaxFloat32 || f > math.MaxFloat32 {
		return false
	}
	return float64(float32(f)) == f
}

// DecodeMsgpack reads a single msgpack value into v.
func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	c, err := dec.PeekCode()
	if err != nil {
		return err
	}

	switch {
	case c == msgpcode.Nil:
		if err := dec.DecodeNil(); err != nil {
			return err
		}
		*v = Null()
	case c == msgpcode.False || c == msgpcode.True:
		b, err := dec.DecodeBool()
		if err != nil {
			return err
		}
		*v = Bool(b)
	case c == msgpcode.Float:
		f, err := dec.DecodeFloat32()
		if err != nil {
			return err
		}
		*v = Float(float64(f))
	case c == msgpcode.Double:
		f, err := dec.DecodeFloat64()
		if err != nil {
			return err
		}
		*v = Float(f)
	case c == msgpcode.Uint8 || c == msgpcode.Uint16 || c == msgpcode.Uint32 || c == msgpcode.Uint64:
		u, err := dec.DecodeUint64()
		if err != nil {
			return err
		}
		*v = Uint(u)
	case msgpcode.IsFixedNum(c) ||
		c == msgpcode.Int8 || c == msgpcode.Int16 || c == msgpcode.Int32 || c == msgpcode.Int64:
		i, err := dec.DecodeInt64()
		if err != nil {
			return err
		}
		*v = Int(i)
	case msgpcode.IsString(c):
		s, err := dec.DecodeString()
		if err != nil {
			return err
		}
		*v = String(s)
	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		return v.decodeArray(dec)
	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		return v.decodeMap(dec)
	default:
		return fmt.Errorf("%w: unsupported msgpack code 0x%02x", benchy.ErrBadFormat, c)
	}
	return nil
}

func (v *Value) decodeArray(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	items := make([]Value, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		var item Value
		if err := item.DecodeMsgpack(dec); err != nil {
			return err
		}
		items = append(items, item)
	}
	*v = Array(items...)
	return nil
}

func (v *Value) decodeMap(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	m := make(map[string]Value, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		c, err := dec.PeekCode()
		if err != nil {
			return err
		}
		if !msgpcode.IsString(c) {
			return fmt.Errorf("%w: map key with msgpack code 0x%02x", benchy.ErrBadFormat, c)
		}
		key, err := dec.DecodeString()
		if err != nil {
			return err
		}
		var item Value
		if err := item.DecodeMsgpack(dec); err != nil {
			return err
		}
		m[key] = item
	}
	*v = Map(m)
	return nil
}
