// Package compression provides the block compressors used by compressed
// length-prefixed frames. Each compressor has a name, used in configuration,
// and a one-byte ID, written on the wire.
package compression

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrIncompressible is returned by Compress when the output would not be
// smaller than the input.
var ErrIncompressible = errors.New("data is incompressible")

// ID identifies a compression algorithm on the wire.
type ID uint8

const (
	IDNone ID = 0
	IDLZ4  ID = 1
	IDZstd ID = 2
)

// Compressor defines the interface for compression algorithms.
type Compressor interface {
	// Name returns the name of the compression algorithm.
	Name() string

	// ID returns the wire identifier of the algorithm.
	ID() ID

	// Compress compresses the input data at the given level. Level 0 selects
	// the algorithm's default.
	Compress(data []byte, level int) ([]byte, error)

	// Decompress decompresses data whose uncompressed length is rawLen.
	Decompress(data []byte, rawLen int) ([]byte, error)

	// MaxCompressedSize returns the maximum size of compressed data
	// for the given uncompressed size.
	MaxCompressedSize(uncompressedSize int) int
}

// Factory is a function that creates a new compressor instance.
type Factory func() Compressor

var (
	mu          sync.RWMutex
	compressors = make(map[string]Factory)
	byID        = make(map[ID]string)
)

// Register registers a compressor factory with the given name and ID.
func Register(name string, id ID, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	compressors[name] = factory
	byID[id] = name
}

// Get returns a new compressor instance for the given name.
func Get(name string) (Compressor, error) {
	mu.RLock()
	factory, ok := compressors[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown compressor: %s", name)
	}

	return factory(), nil
}

// ByID returns a new compressor instance for a wire identifier.
func ByID(id ID) (Compressor, error) {
	mu.RLock()
	name, ok := byID[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown compressor id: %d", id)
	}
	return Get(name)
}

// Available returns the sorted names of the registered compressors.
func Available() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(compressors))
	for name := range compressors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsAvailable checks if a compressor with the given name is available.
func IsAvailable(name string) bool {
	mu.RLock()
	_, ok := compressors[name]
	mu.RUnlock()
	return ok
}

func init() {
	Register("none", IDNone, func() Compressor { return &NoCompressor{} })
	Register("lz4", IDLZ4, func() Compressor { return &LZ4Compressor{} })
	Register("zstd", IDZstd, func() Compressor { return &ZstdCompressor{} })
}
