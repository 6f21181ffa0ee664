package archive

import (
	"fmt"
	"sync"

	"github.com/hupe1980/benchy"
	"github.com/klauspost/compress/zstd"
)

// maxPrealloc bounds the output buffer allocated up front from the declared
// content size. Larger frames grow the buffer while decoding.
const maxPrealloc = 256 << 20

var (
	encoderPools [zstd.SpeedBestCompression + 1]sync.Pool
	decoderPool  sync.Pool
)

func getEncoder(level zstd.EncoderLevel) *zstd.Encoder {
	if v := encoderPools[level].Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	// Without a single segment the encoder omits the content size for inputs
	// below 256 bytes. Zero frames keep it for empty input.
	enc, _ := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(level),
		zstd.WithSingleSegment(true),
		zstd.WithZeroFrames(true),
	)
	return enc
}

func putEncoder(level zstd.EncoderLevel, enc *zstd.Encoder) {
	encoderPools[level].Put(enc)
}

func getDecoder() *zstd.Decoder {
	if v := decoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	return dec
}

func putDecoder(dec *zstd.Decoder) {
	decoderPool.Put(dec)
}

// Compress returns src as a single zstd frame at zstd.SpeedDefault. The frame
// header declares the content size.
func Compress(src []byte) []byte {
	return compressLevel(src, zstd.SpeedDefault)
}

func compressLevel(src []byte, level zstd.EncoderLevel) []byte {
	enc := getEncoder(level)
	defer putEncoder(level, enc)

	return enc.EncodeAll(src, make([]byte, 0, len(src)/2+64))
}

// Decompress decodes a frame written by Compress.
//
// Frames without a declared content size, skippable frames, undecodable
// headers, decoder failures and frames whose decoded length differs from the
// declared size fail with benchy.ErrCompression.
func Decompress(src []byte) ([]byte, error) {
	var h zstd.Header
	if err := h.Decode(src); err != nil {
		return nil, fmt.Errorf("%w: cannot read frame header: %v", benchy.ErrCompression, err)
	}
	if h.Skippable {
		return nil, fmt.Errorf("%w: skippable frame carries no content", benchy.ErrCompression)
	}
	if !h.HasFCS {
		return nil, fmt.Errorf("%w: frame content size unknown", benchy.ErrCompression)
	}

	dec := getDecoder()
	defer putDecoder(dec)

	out, err := dec.DecodeAll(src, make([]byte, 0, min(h.FrameContentSize, maxPrealloc)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", benchy.ErrCompression, err)
	}
	if uint64(len(out)) != h.FrameContentSize {
		return nil, fmt.Errorf("%w: decoded %d bytes, frame declares %d",
			benchy.ErrCompression, len(out), h.FrameContentSize)
	}
	return out, nil
}

// FrameInfo describes the frame header of an archive.
type FrameInfo struct {
	CompressedSize int
	ContentSize    uint64
	HasChecksum    bool
	WindowSize     uint64
}

// Inspect reads the frame header of data without decompressing it.
func Inspect(data []byte) (FrameInfo, error) {
	var h zstd.Header
	if err := h.Decode(data); err != nil {
		return FrameInfo{}, fmt.Errorf("%w: cannot read frame header: %v", benchy.ErrCompression, err)
	}
	if !h.HasFCS {
		return FrameInfo{}, fmt.Errorf("%w: frame content size unknown", benchy.ErrCompression)
	}
	return FrameInfo{
		CompressedSize: len(data),
		ContentSize:    h.FrameContentSize,
		HasChecksum:    h.HasCheckSum,
		WindowSize:     h.WindowSize,
	}, nil
}
