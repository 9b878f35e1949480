package compression

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor implements Zstandard compression.
type ZstdCompressor struct{}

func (c *ZstdCompressor) Name() string { return "zstd" }

func (c *ZstdCompressor) ID() ID { return IDZstd }

// Compress compresses data as a single zstd frame. Level follows the zstd
// command line scale (1-22); 0 selects the default.
func (c *ZstdCompressor) Compress(data []byte, level int) ([]byte, error) {
	opts := []zstd.EOption{zstd.WithEncoderConcurrency(1)}
	if level > 0 {
		opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	}
	enc, err := zstd.NewWriter(nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	defer enc.Close()

	out := enc.EncodeAll(data, nil)
	if len(out) >= len(data) {
		return nil, ErrIncompressible
	}
	return out, nil
}

// Decompress decompresses a zstd frame of known uncompressed length.
func (c *ZstdCompressor) Decompress(data []byte, rawLen int) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderMaxMemory(uint64(rawLen)+1))
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, make([]byte, 0, rawLen))
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(out) != rawLen {
		return nil, fmt.Errorf("zstd frame decompressed to %d bytes, want %d", len(out), rawLen)
	}
	return out, nil
}

// MaxCompressedSize returns the worst-case size of a single zstd frame.
func (c *ZstdCompressor) MaxCompressedSize(uncompressedSize int) int {
	return uncompressedSize + uncompressedSize>>8 + 64
}
