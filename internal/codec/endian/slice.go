package endian

import (
	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
)

func window(b []byte, index, size int, op string) ([]byte, error) {
	if index < 0 || index+size > len(b) {
		return nil, codecerr.Newf(op, codecerr.ErrIO, "index %d+%d out of range for %d bytes", index, size, len(b))
	}
	return b[index : index+size], nil
}

// Uint8At reads the byte at index.
func Uint8At(b []byte, index int) (uint8, error) {
	w, err := window(b, index, 1, "u8_at")
	if err != nil {
		return 0, err
	}
	return w[0], nil
}

// Uint16At reads a 2-byte unsigned integer starting at index.
func Uint16At(b []byte, index int, o Order) (uint16, error) {
	w, err := window(b, index, 2, "u16_at")
	if err != nil {
		return 0, err
	}
	return o.ByteOrder().Uint16(w), nil
}

// Uint32At reads a 4-byte unsigned integer starting at index.
func Uint32At(b []byte, index int, o Order) (uint32, error) {
	w, err := window(b, index, 4, "u32_at")
	if err != nil {
		return 0, err
	}
	return o.ByteOrder().Uint32(w), nil
}

// Uint64At reads an 8-byte unsigned integer starting at index.
func Uint64At(b []byte, index int, o Order) (uint64, error) {
	w, err := window(b, index, 8, "u64_at")
	if err != nil {
		return 0, err
	}
	return o.ByteOrder().Uint64(w), nil
}

// Magic16 interprets a 2-byte ASCII tag as an integer in the given order.
func Magic16(s [2]byte, o Order) uint16 {
	return o.ByteOrder().Uint16(s[:])
}

// Magic32 interprets a 4-byte ASCII tag as an integer, e.g.
// Magic32([4]byte{0x7f, 'E', 'L', 'F'}, Little) for the ELF magic.
func Magic32(s [4]byte, o Order) uint32 {
	return o.ByteOrder().Uint32(s[:])
}

// Magic64 interprets an 8-byte ASCII tag as an integer in the given order.
func Magic64(s [8]byte, o Order) uint64 {
	return o.ByteOrder().Uint64(s[:])
}
