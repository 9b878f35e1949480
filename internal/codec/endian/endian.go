// Package endian provides byte-order aware fixed-width integer reads and
// writes over streams and byte slices.
package endian

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
)

// Order is the byte order of a value on the wire.
type Order uint8

const (
	// Little is little-endian byte order.
	Little Order = iota
	// Big is big-endian byte order.
	Big
)

// ByteOrder returns the encoding/binary byte order for o.
func (o Order) ByteOrder() binary.ByteOrder {
	if o == Big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (o Order) String() string {
	switch o {
	case Little:
		return "le"
	case Big:
		return "be"
	}
	return fmt.Sprintf("Order(%d)", uint8(o))
}

// ParseOrder parses "le", "little", "be" or "big" (case-insensitive).
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "le", "little", "little-endian", "littleendian":
		return Little, nil
	case "be", "big", "big-endian", "bigendian":
		return Big, nil
	}
	return Little, fmt.Errorf("unknown byte order %q", s)
}

// ReadUint8 reads one byte.
func ReadUint8(r io.Reader) (uint8, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, codecerr.IO("read_u8", err)
	}
	return b[0], nil
}

// ReadUint16 reads a 2-byte unsigned integer.
func ReadUint16(r io.Reader, o Order) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, codecerr.IO("read_u16", err)
	}
	return o.ByteOrder().Uint16(b[:]), nil
}

// ReadUint32 reads a 4-byte unsigned integer.
func ReadUint32(r io.Reader, o Order) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, codecerr.IO("read_u32", err)
	}
	return o.ByteOrder().Uint32(b[:]), nil
}

// ReadUint48 reads a 6-byte unsigned integer into the low bits of a uint64.
func ReadUint48(r io.Reader, o Order) (uint64, error) {
	var b [6]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, codecerr.IO("read_u48", err)
	}
	return Uint48(b[:], o), nil
}

// ReadUint64 reads an 8-byte unsigned integer.
func ReadUint64(r io.Reader, o Order) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, codecerr.IO("read_u64", err)
	}
	return o.ByteOrder().Uint64(b[:]), nil
}

// ReadUint reads an unsigned integer of width bytes (1, 2, 4 or 8).
func ReadUint(r io.Reader, width int, o Order) (uint64, error) {
	switch width {
	case 1:
		v, err := ReadUint8(r)
		return uint64(v), err
	case 2:
		v, err := ReadUint16(r, o)
		return uint64(v), err
	case 4:
		v, err := ReadUint32(r, o)
		return uint64(v), err
	case 8:
		return ReadUint64(r, o)
	}
	return 0, codecerr.Newf("read_uint", codecerr.ErrInvalidPattern, "unsupported width %d", width)
}

// WriteUint8 writes one byte.
func WriteUint8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return codecerr.IO("write_u8", err)
}

// WriteUint16 writes a 2-byte unsigned integer.
func WriteUint16(w io.Writer, v uint16, o Order) error {
	var b [2]byte
	o.ByteOrder().PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return codecerr.IO("write_u16", err)
}

// WriteUint32 writes a 4-byte unsigned integer.
func WriteUint32(w io.Writer, v uint32, o Order) error {
	var b [4]byte
	o.ByteOrder().PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return codecerr.IO("write_u32", err)
}

// WriteUint48 writes the low 48 bits of v as 6 bytes.
func WriteUint48(w io.Writer, v uint64, o Order) error {
	var b [6]byte
	PutUint48(b[:], v, o)
	_, err := w.Write(b[:])
	return codecerr.IO("write_u48", err)
}

// WriteUint64 writes an 8-byte unsigned integer.
func WriteUint64(w io.Writer, v uint64, o Order) error {
	var b [8]byte
	o.ByteOrder().PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return codecerr.IO("write_u64", err)
}

// WriteUint writes v as an unsigned integer of width bytes (1, 2, 4 or 8).
// v is truncated to the width.
func WriteUint(w io.Writer, v uint64, width int, o Order) error {
	switch width {
	case 1:
		return WriteUint8(w, uint8(v))
	case 2:
		return WriteUint16(w, uint16(v), o)
	case 4:
		return WriteUint32(w, uint32(v), o)
	case 8:
		return WriteUint64(w, v, o)
	}
	return codecerr.Newf("write_uint", codecerr.ErrInvalidPattern, "unsupported width %d", width)
}

// PutUint48 stores the 48-bit wire form of v in b[:6].
//
// Little-endian keeps the first 6 bytes of the 8-byte little-endian encoding,
// big-endian keeps the last 6 bytes of the 8-byte big-endian encoding. Either
// way the two most significant bytes are dropped.
func PutUint48(b []byte, v uint64, o Order) {
	var full [8]byte
	o.ByteOrder().PutUint64(full[:], v)
	if o == Big {
		copy(b[:6], full[2:])
		return
	}
	copy(b[:6], full[:6])
}

// Uint48 decodes a 6-byte unsigned integer from b[:6].
func Uint48(b []byte, o Order) uint64 {
	var full [8]byte
	if o == Big {
		copy(full[2:], b[:6])
	} else {
		copy(full[:6], b[:6])
	}
	return o.ByteOrder().Uint64(full[:])
}

// Int48 decodes a 6-byte two's complement integer from b[:6], sign-extended.
func Int48(b []byte, o Order) int64 {
	return int64(Uint48(b, o)<<16) >> 16
}
