package lp

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
	"github.com/LeJamon/goBinkit/internal/codec/endian"
)

// Width is the bit width of a length prefix.
type Width uint8

const (
	W8  Width = 8
	W16 Width = 16
	W32 Width = 32
	W64 Width = 64
)

// Size returns the size of the prefix in bytes.
func (w Width) Size() int { return int(w) / 8 }

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	switch w {
	case W8, W16, W32, W64:
		return true
	}
	return false
}

// Max returns the largest length representable by the prefix.
func (w Width) Max() uint64 {
	if w == W64 {
		return math.MaxUint64
	}
	return 1<<w - 1
}

// Fits reports whether a payload of n bytes can be framed with this prefix.
func (w Width) Fits(n int) bool {
	return n >= 0 && uint64(n) <= w.Max()
}

func (w Width) String() string {
	return "lp" + strconv.Itoa(int(w))
}

// ParseWidth parses a bit width such as "16".
func ParseWidth(s string) (Width, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid length prefix width %q", s)
	}
	w := Width(n)
	if n < 0 || n > math.MaxUint8 || !w.Valid() {
		return 0, fmt.Errorf("invalid length prefix width %q", s)
	}
	return w, nil
}

func readLength(r io.Reader, w Width, o endian.Order) (uint64, error) {
	if !w.Valid() {
		return 0, codecerr.Newf("read_length", codecerr.ErrInvalidPattern, "unsupported width %d", w)
	}
	return endian.ReadUint(r, w.Size(), o)
}

func writeLength(wr io.Writer, n int, w Width, o endian.Order) error {
	if !w.Valid() {
		return codecerr.Newf("write_length", codecerr.ErrInvalidPattern, "unsupported width %d", w)
	}
	if !w.Fits(n) {
		return codecerr.Newf("write_length", codecerr.ErrLengthOverflow, "%d bytes do not fit a %d-bit prefix", n, w)
	}
	return endian.WriteUint(wr, uint64(n), w.Size(), o)
}
