package document

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
	gojson "github.com/goccy/go-json"
	"github.com/hupe1980/benchy"
)

// ParseJSON parses a JSON text into a Value.
//
// Integers without fraction or exponent become KindInt (or KindUint above
// MaxInt64); every other number becomes KindFloat. Duplicate object keys keep
// the last occurrence.
func ParseJSON(data []byte) (Value, error) {
	raw, dataType, end, err := jsonparser.Get(data)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", benchy.ErrBadFormat, err)
	}
	if len(bytes.TrimSpace(data[end:])) != 0 {
		return Value{}, fmt.Errorf("%w: trailing data after JSON value at offset %d", benchy.ErrBadFormat, end)
	}
	return parseValue(raw, dataType)
}

func parseValue(raw []byte, dataType jsonparser.ValueType) (Value, error) {
	switch dataType {
	case jsonparser.Null:
		return Null(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", benchy.ErrBadFormat, err)
		}
		return Bool(b), nil
	case jsonparser.Number:
		return parseNumber(raw)
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", benchy.ErrBadFormat, err)
		}
		return String(s), nil
	case jsonparser.Array:
		return parseArray(raw)
	case jsonparser.Object:
		return parseObject(raw)
	default:
		return Value{}, fmt.Errorf("%w: unknown JSON value %q", benchy.ErrBadFormat, raw)
	}
}

func parseNumber(raw []byte) (Value, error) {
	s := string(raw)
	if !bytes.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i), nil
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return Uint(u), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: invalid number %q", benchy.ErrBadFormat, s)
	}
	return Float(f), nil
}

func parseArray(raw []byte) (Value, error) {
	items := []Value{}
	var perr error
	_, err := jsonparser.ArrayEach(raw, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if perr != nil {
			return
		}
		if err != nil {
			perr = err
			return
		}
		item, err := parseValue(value, dataType)
		if err != nil {
			perr = err
			return
		}
		items = append(items, item)
	})
	if perr != nil {
		return Value{}, wrapBadFormat(perr)
	}
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", benchy.ErrBadFormat, err)
	}
	return Array(items...), nil
}

func parseObject(raw []byte) (Value, error) {
	m := make(map[string]Value)
	err := jsonparser.ObjectEach(raw, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		item, err := parseValue(value, dataType)
		if err != nil {
			return err
		}
		// keys arrive unescaped
		m[string(key)] = item
		return nil
	})
	if err != nil {
		return Value{}, wrapBadFormat(err)
	}
	return Map(m), nil
}

func wrapBadFormat(err error) error {
	if errors.Is(err, benchy.ErrBadFormat) {
		return err
	}
	return fmt.Errorf("%w: %v", benchy.ErrBadFormat, err)
}

// MarshalJSON renders v as JSON text with object keys in ascending order.
func (v Value) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(v.ToAny())
}

// String renders v as JSON text, or a placeholder when v holds a value JSON
// cannot represent (NaN, infinities).
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%s>", v.kind)
	}
	return string(b)
}
