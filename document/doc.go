// Package document implements the self-describing tree that both on-disk
// formats are built from.
//
// A Value is null, a bool, an integer, a float, a string, an ordered array or a
// map with unique string keys. Values implement msgpack.CustomEncoder and
// msgpack.CustomDecoder, so they can be packed with github.com/vmihailenco/msgpack/v5
// directly:
//
//	b, err := msgpack.Marshal(doc)
//
// The binary form is deterministic. Map entries are written in ascending key
// order, integers use the shortest encoding and floats are stored as 32-bit
// floats whenever that conversion is exact.
//
// ParseJSON reads JSON text and MarshalJSON renders it back.
package document
