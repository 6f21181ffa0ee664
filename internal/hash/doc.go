// Package hash provides CRC32-Castagnoli checksums.
//
// Object store uploads carry a CRC32C so the server can reject a corrupted
// archive. Benchmark index entries use the same checksum to fingerprint the
// archive bytes a run was measured on.
//
//	sum := hash.CRC32C(data)
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	sum := h.Sum32()
package hash
