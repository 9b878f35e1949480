package varint

import (
	"lukechampine.com/uint128"

	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
)

const (
	// MaxLen128 is the maximum encoded length of a 128-bit value.
	MaxLen128 = (128 + 6) / 7
	// MaxOfLastByte128 is the largest payload of the final byte of a
	// MaxLen128-byte encoding.
	MaxOfLastByte128 = 1<<(128%7) - 1
)

// EncodeUint128 writes v into out and returns the used prefix of out.
// It panics if out is shorter than the encoding.
func EncodeUint128(v uint128.Uint128, out []byte) []byte {
	for i := 0; ; i++ {
		out[i] = byte(v.Lo)
		if v.Hi == 0 && v.Lo < 0x80 {
			return out[:i+1]
		}
		out[i] |= 0x80
		v = v.Rsh(7)
	}
}

// DecodeUint128 is Decode for 128-bit values.
func DecodeUint128(data []byte) (uint128.Uint128, int, error) {
	var out uint128.Uint128
	for i := 0; i < MaxLen128 && i < len(data); i++ {
		b := data[i]
		out = out.Or(uint128.From64(uint64(b & 0x7F)).Lsh(uint(7 * i)))
		if b&0x80 == 0 {
			if i == MaxLen128-1 && b > MaxOfLastByte128 {
				return uint128.Zero, 0, codecerr.Newf("decode_varint", codecerr.ErrBadVarint, "last byte %#x overflows 128 bits", b)
			}
			return out, i + 1, nil
		}
	}
	return uint128.Zero, 0, codecerr.New("decode_varint", codecerr.ErrBadVarint, nil)
}
