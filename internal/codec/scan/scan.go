// Package scan searches seekable streams for multi-byte signatures such as
// file-format magic numbers.
package scan

import (
	"bytes"
	"errors"
	"io"
	"log/slog"

	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
	"github.com/LeJamon/goBinkit/internal/codec/endian"
)

// Options controls a single signature search.
type Options struct {
	// Skip is the absolute offset the search starts at.
	Skip uint64
	// Limit is the absolute offset the search stops at. Zero means no limit.
	Limit uint64
	// Order is the byte order of the signature in the stream.
	Order endian.Order
	// Rewind restores the stream position found on entry before returning.
	Rewind bool
}

// Find32 returns the offset of the first occurrence of sig at or after
// opts.Skip. Unless opts.Rewind is set the stream is left at that offset.
//
// After a window whose first byte matches but whose remaining bytes do not,
// the search resumes 4 bytes further on, so a match overlapping that window
// is not reported.
func Find32(rs io.ReadSeeker, sig uint32, opts Options) (uint64, error) {
	var b [4]byte
	opts.Order.ByteOrder().PutUint32(b[:], sig)
	return find(rs, b[:], opts)
}

// Find64 is Find32 for 8-byte signatures.
func Find64(rs io.ReadSeeker, sig uint64, opts Options) (uint64, error) {
	var b [8]byte
	opts.Order.ByteOrder().PutUint64(b[:], sig)
	return find(rs, b[:], opts)
}

// FindAll32 returns the offsets of every occurrence of sig from the start of
// the stream. The stream is left past the last window examined.
func FindAll32(rs io.ReadSeeker, sig uint32, o endian.Order) ([]uint64, error) {
	var b [4]byte
	o.ByteOrder().PutUint32(b[:], sig)
	return findAll(rs, b[:], o)
}

// FindAll64 is FindAll32 for 8-byte signatures.
func FindAll64(rs io.ReadSeeker, sig uint64, o endian.Order) ([]uint64, error) {
	var b [8]byte
	o.ByteOrder().PutUint64(b[:], sig)
	return findAll(rs, b[:], o)
}

func find(rs io.ReadSeeker, sig []byte, opts Options) (uint64, error) {
	const op = "find_signature"

	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, codecerr.IO(op, err)
	}
	if _, err := rs.Seek(int64(opts.Skip), io.SeekStart); err != nil {
		return 0, codecerr.IO(op, err)
	}

	limit := opts.Limit
	if limit == 0 {
		limit = ^uint64(0)
	}

	n := uint64(len(sig))
	window := make([]byte, len(sig))
	var one [1]byte
	for pos := opts.Skip; pos < limit; {
		if _, err := io.ReadFull(rs, one[:]); err != nil {
			return 0, endOfStream(op, err)
		}
		if one[0] != sig[0] {
			pos++
			continue
		}

		if _, err := rs.Seek(-1, io.SeekCurrent); err != nil {
			return 0, codecerr.IO(op, err)
		}
		if _, err := io.ReadFull(rs, window); err != nil {
			return 0, endOfStream(op, err)
		}
		if !bytes.Equal(window, sig) {
			pos += n
			continue
		}

		slog.Debug("signature found", "sig", sig, "offset", pos)
		target := int64(pos)
		if opts.Rewind {
			target = start
		}
		if _, err := rs.Seek(target, io.SeekStart); err != nil {
			return 0, codecerr.IO(op, err)
		}
		return pos, nil
	}
	return 0, codecerr.EndOfStream(op)
}

func findAll(rs io.ReadSeeker, sig []byte, o endian.Order) ([]uint64, error) {
	positions := []uint64{}
	opts := Options{Order: o}
	for {
		pos, err := find(rs, sig, opts)
		if err != nil {
			if codecerr.IsEndOfStream(err) {
				return positions, nil
			}
			return positions, err
		}
		positions = append(positions, pos)
		opts.Skip = pos + uint64(len(sig))
	}
}

// endOfStream maps running out of input to the end-of-stream error and
// passes every other failure through as an I/O error.
func endOfStream(op string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return codecerr.EndOfStream(op)
	}
	return codecerr.IO(op, err)
}
