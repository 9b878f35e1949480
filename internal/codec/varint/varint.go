// Package varint implements an LEB128-style variable-length encoding for
// unsigned integers: 7 data bits per byte, least significant group first,
// with the continuation bit (0x80) set on every byte but the last.
package varint

import (
	"io"
	"math/bits"

	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
)

// Unsigned is the set of integer types the codec handles directly.
// 128-bit values go through EncodeUint128 and DecodeUint128.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

func bitWidth[T Unsigned]() int {
	return bits.Len64(uint64(^T(0)))
}

// MaxLen returns the maximum encoded length of a T in bytes.
func MaxLen[T Unsigned]() int {
	return (bitWidth[T]() + 6) / 7
}

// MaxOfLastByte returns the largest payload the final byte of a
// MaxLen-byte encoding may carry without overflowing T.
func MaxOfLastByte[T Unsigned]() byte {
	return byte(1<<(bitWidth[T]()%7) - 1)
}

// Encode writes v into out and returns the used prefix of out.
// It panics if out is shorter than the encoding.
func Encode[T Unsigned](v T, out []byte) []byte {
	for i := 0; ; i++ {
		out[i] = byte(v)
		if v < 0x80 {
			return out[:i+1]
		}
		out[i] |= 0x80
		v >>= 7
	}
}

// Append appends the encoding of v to dst.
func Append[T Unsigned](dst []byte, v T) []byte {
	var buf [10]byte
	return append(dst, Encode(v, buf[:])...)
}

// Size returns the encoded length of v.
func Size[T Unsigned](v T) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// Decode reads a T from the head of data and returns it together with the
// number of bytes consumed. At most MaxLen bytes are examined.
//
// It fails with ErrBadVarint if the window ends while the continuation bit is
// still set, or if a terminating byte in the last possible position carries
// more bits than T can hold.
func Decode[T Unsigned](data []byte) (T, int, error) {
	maxLen := MaxLen[T]()
	var out T
	for i := 0; i < maxLen && i < len(data); i++ {
		b := data[i]
		out |= T(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			if i == maxLen-1 && b > MaxOfLastByte[T]() {
				return 0, 0, codecerr.Newf("decode_varint", codecerr.ErrBadVarint, "last byte %#x overflows %d bits", b, bitWidth[T]())
			}
			return out, i + 1, nil
		}
	}
	return 0, 0, codecerr.New("decode_varint", codecerr.ErrBadVarint, nil)
}

// Read decodes a T from r one byte at a time.
func Read[T Unsigned](r io.ByteReader) (T, error) {
	maxLen := MaxLen[T]()
	var out T
	for i := 0; i < maxLen; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if i > 0 && err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, codecerr.IO("read_varint", err)
		}
		out |= T(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			if i == maxLen-1 && b > MaxOfLastByte[T]() {
				return 0, codecerr.Newf("read_varint", codecerr.ErrBadVarint, "last byte %#x overflows %d bits", b, bitWidth[T]())
			}
			return out, nil
		}
	}
	return 0, codecerr.New("read_varint", codecerr.ErrBadVarint, nil)
}

// Write writes the encoding of v to w and returns the number of bytes written.
func Write[T Unsigned](w io.Writer, v T) (int, error) {
	var buf [10]byte
	n, err := w.Write(Encode(v, buf[:]))
	return n, codecerr.IO("write_varint", err)
}
