package anyint

import (
	"io"
	"strings"

	"lukechampine.com/uint128"

	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
	"github.com/LeJamon/goBinkit/internal/codec/endian"
)

// Bytes returns the wire form of v in the given byte order. The result is
// exactly WireSize bytes long; the zero Value yields nil.
func (v Value) Bytes(o endian.Order) []byte {
	bo := o.ByteOrder()
	switch v.kind {
	case U8, I8, Bool:
		return []byte{uint8(v.lo)}
	case U16, I16:
		b := make([]byte, 2)
		bo.PutUint16(b, uint16(v.lo))
		return b
	case U32, I32:
		b := make([]byte, 4)
		bo.PutUint32(b, uint32(v.lo))
		return b
	case U48, I48:
		b := make([]byte, 6)
		endian.PutUint48(b, v.lo, o)
		return b
	case U64, I64:
		b := make([]byte, 8)
		bo.PutUint64(b, v.lo)
		return b
	case U128, I128:
		b := make([]byte, 16)
		u := uint128.New(v.lo, v.hi)
		if o == endian.Big {
			u.PutBytesBE(b)
		} else {
			u.PutBytes(b)
		}
		return b
	}
	return nil
}

// FromBytes decodes a value of kind k from the first k.WireSize() bytes of b.
func FromBytes(b []byte, k Kind, o endian.Order) (Value, error) {
	n := k.WireSize()
	if n == 0 {
		return Value{}, codecerr.Newf("from_bytes", codecerr.ErrInvalidPattern, "invalid kind %s", k)
	}
	if len(b) < n {
		return Value{}, codecerr.IO("from_bytes", io.ErrUnexpectedEOF)
	}
	bo := o.ByteOrder()
	switch k {
	case U8:
		return FromU8(b[0]), nil
	case I8:
		return FromI8(int8(b[0])), nil
	case Bool:
		return FromBool(b[0] != 0), nil
	case U16:
		return FromU16(bo.Uint16(b)), nil
	case I16:
		return FromI16(int16(bo.Uint16(b))), nil
	case U32:
		return FromU32(bo.Uint32(b)), nil
	case I32:
		return FromI32(int32(bo.Uint32(b))), nil
	case U48:
		return FromU48(endian.Uint48(b, o)), nil
	case I48:
		return FromI48(endian.Int48(b, o)), nil
	case U64:
		return FromU64(bo.Uint64(b)), nil
	case I64:
		return FromI64(int64(bo.Uint64(b))), nil
	case U128:
		return FromU128(u128(b, o)), nil
	default: // I128
		u := u128(b, o)
		return FromI128(Int128{Hi: int64(u.Hi), Lo: u.Lo}), nil
	}
}

func u128(b []byte, o endian.Order) uint128.Uint128 {
	if o == endian.Big {
		return uint128.FromBytesBE(b[:16])
	}
	return uint128.FromBytes(b[:16])
}

// Read decodes one value of kind k from r.
func Read(r io.Reader, k Kind, o endian.Order) (Value, error) {
	n := k.WireSize()
	if n == 0 {
		return Value{}, codecerr.Newf("read_value", codecerr.ErrInvalidPattern, "invalid kind %s", k)
	}
	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:n]); err != nil {
		return Value{}, codecerr.IO("read_"+lower(k), err)
	}
	return FromBytes(buf[:n], k, o)
}

// Write writes the wire form of v to w.
func (v Value) Write(w io.Writer, o endian.Order) error {
	if !v.IsValid() {
		return codecerr.New("write_value", codecerr.ErrTypeMismatch, nil)
	}
	_, err := w.Write(v.Bytes(o))
	return codecerr.IO("write_"+lower(v.kind), err)
}

// WriteValues writes each value in order and returns the number of bytes
// written. It stops at the first failure.
func WriteValues(w io.Writer, values []Value, o endian.Order) (int64, error) {
	var n int64
	for _, v := range values {
		if err := v.Write(w, o); err != nil {
			return n, err
		}
		n += int64(v.WireSize())
	}
	return n, nil
}

func lower(k Kind) string {
	return strings.ToLower(k.String())
}
