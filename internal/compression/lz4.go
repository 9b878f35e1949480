package compression

import (
	"fmt"

	"github.com/pierrec/lz4"
)

// lz4MaxExpansion bounds how many output bytes one LZ4 block byte can yield.
const lz4MaxExpansion = 255

// NoCompressor implements a pass-through compressor that doesn't compress data.
type NoCompressor struct{}

func (c *NoCompressor) Name() string { return "none" }

func (c *NoCompressor) ID() ID { return IDNone }

// Compress returns a copy of data.
func (c *NoCompressor) Compress(data []byte, level int) ([]byte, error) {
	return append([]byte{}, data...), nil
}

// Decompress returns a copy of data, which must be rawLen bytes long.
func (c *NoCompressor) Decompress(data []byte, rawLen int) ([]byte, error) {
	if len(data) != rawLen {
		return nil, fmt.Errorf("stored block is %d bytes, want %d", len(data), rawLen)
	}
	return append([]byte{}, data...), nil
}

func (c *NoCompressor) MaxCompressedSize(uncompressedSize int) int {
	return uncompressedSize
}

// LZ4Compressor implements LZ4 block compression.
type LZ4Compressor struct{}

func (c *LZ4Compressor) Name() string { return "lz4" }

func (c *LZ4Compressor) ID() ID { return IDLZ4 }

// Compress compresses data as a single LZ4 block. The level is ignored.
func (c *LZ4Compressor) Compress(data []byte, level int) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if n == 0 || n >= len(data) {
		return nil, ErrIncompressible
	}
	return compressed[:n], nil
}

// Decompress decompresses an LZ4 block of known uncompressed length.
func (c *LZ4Compressor) Decompress(data []byte, rawLen int) ([]byte, error) {
	if rawLen == 0 {
		return []byte{}, nil
	}
	if rawLen < 0 || rawLen > len(data)*lz4MaxExpansion {
		return nil, fmt.Errorf("lz4 block of %d bytes cannot expand to %d bytes", len(data), rawLen)
	}

	out := make([]byte, rawLen)
	n, err := lz4.UncompressBlock(data, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != rawLen {
		return nil, fmt.Errorf("lz4 block decompressed to %d bytes, want %d", n, rawLen)
	}
	return out, nil
}

func (c *LZ4Compressor) MaxCompressedSize(uncompressedSize int) int {
	return lz4.CompressBlockBound(uncompressedSize)
}
