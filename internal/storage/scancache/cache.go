// Package scancache remembers signature search results per file so repeated
// scans of unchanged files skip the read.
//
// Entries live in a database.DB and the most recent ones are also kept in an
// in-memory LRU. A file is identified by path, size and modification time,
// so rewriting a file makes its old entries unreachable; Forget removes them.
package scancache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/LeJamon/goBinkit/internal/codec/endian"
	"github.com/LeJamon/goBinkit/internal/codec/lp"
	"github.com/LeJamon/goBinkit/internal/codec/varint"
	"github.com/LeJamon/goBinkit/internal/storage/database"
)

const keyPrefix = "scan/"

// DefaultSize is the number of entries kept in memory when New gets size <= 0.
const DefaultSize = 1024

// Key identifies one search over one version of a file.
type Key struct {
	Path    string
	Size    int64
	ModTime time.Time

	Sig   uint64
	Width int
	Order endian.Order
	Skip  uint64
	Limit uint64
	All   bool
}

// pathPrefix is shared by every key of the same path.
func pathPrefix(path string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(keyPrefix)
	if _, err := lp.WriteString(&buf, lp.W16, endian.Big, path); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (k Key) encode() ([]byte, error) {
	key, err := pathPrefix(k.Path)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(key)
	fields := []uint64{uint64(k.Size), uint64(k.ModTime.UnixNano()), k.Sig, k.Skip, k.Limit}
	for _, f := range fields {
		if err := endian.WriteUint64(buf, f, endian.Big); err != nil {
			return nil, err
		}
	}
	flags := byte(k.Order)
	if k.All {
		flags |= 0x80
	}
	buf.WriteByte(byte(k.Width))
	buf.WriteByte(flags)
	return buf.Bytes(), nil
}

// encodeOffsets writes a varint count followed by varint deltas.
func encodeOffsets(offsets []uint64) []byte {
	out := varint.Append(nil, uint64(len(offsets)))
	var prev uint64
	for _, off := range offsets {
		out = varint.Append(out, off-prev)
		prev = off
	}
	return out
}

func decodeOffsets(data []byte) ([]uint64, error) {
	count, n, err := varint.Decode[uint64](data)
	if err != nil {
		return nil, err
	}
	data = data[n:]
	if count > uint64(len(data)) {
		return nil, fmt.Errorf("entry claims %d offsets in %d bytes", count, len(data))
	}

	offsets := make([]uint64, 0, count)
	var prev uint64
	for i := uint64(0); i < count; i++ {
		delta, n, err := varint.Decode[uint64](data)
		if err != nil {
			return nil, err
		}
		data = data[n:]
		prev += delta
		offsets = append(offsets, prev)
	}
	return offsets, nil
}

// Cache is safe for concurrent use.
type Cache struct {
	db     database.DB
	recent *lru.Cache[string, []uint64]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a cache over db keeping up to size entries in memory.
func New(db database.DB, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	recent, err := lru.New[string, []uint64](size)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db, recent: recent}, nil
}

// Get returns the offsets stored for k.
func (c *Cache) Get(ctx context.Context, k Key) ([]uint64, bool, error) {
	key, err := k.encode()
	if err != nil {
		return nil, false, err
	}

	if offsets, ok := c.recent.Get(string(key)); ok {
		c.hits.Add(1)
		return slices.Clone(offsets), true, nil
	}

	data, err := c.db.Read(ctx, key)
	if errors.Is(err, database.ErrKeyNotFound) {
		c.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	offsets, err := decodeOffsets(data)
	if err != nil {
		slog.Debug("Dropping corrupt scan cache entry", "path", k.Path, "error", err)
		c.misses.Add(1)
		return nil, false, c.db.Delete(ctx, key)
	}

	c.hits.Add(1)
	c.recent.Add(string(key), offsets)
	return slices.Clone(offsets), true, nil
}

// Put stores offsets for k. offsets must be ascending.
func (c *Cache) Put(ctx context.Context, k Key, offsets []uint64) error {
	if !slices.IsSorted(offsets) {
		return fmt.Errorf("offsets for %s are not ascending", k.Path)
	}
	key, err := k.encode()
	if err != nil {
		return err
	}
	if err := c.db.Write(ctx, key, encodeOffsets(offsets)); err != nil {
		return err
	}
	c.recent.Add(string(key), slices.Clone(offsets))
	return nil
}

// Forget removes every entry for path and returns how many were removed.
func (c *Cache) Forget(ctx context.Context, path string) (int, error) {
	prefix, err := pathPrefix(path)
	if err != nil {
		return 0, err
	}
	it, err := c.db.Iterator(ctx, prefix, database.PrefixEnd(prefix))
	if err != nil {
		return 0, err
	}

	var ops []database.BatchOperation
	for it.Next() {
		ops = append(ops, database.BatchOperation{Type: database.BatchDelete, Key: it.Key()})
		c.recent.Remove(string(it.Key()))
	}
	if err := it.Error(); err != nil {
		it.Close()
		return 0, err
	}
	if err := it.Close(); err != nil {
		return 0, err
	}
	if len(ops) == 0 {
		return 0, nil
	}
	return len(ops), c.db.Batch(ctx, ops)
}

// Stats returns the number of lookups answered and missed.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	c.recent.Purge()
	return c.db.Close()
}
