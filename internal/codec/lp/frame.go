package lp

import (
	"errors"
	"io"
	"log/slog"

	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
	"github.com/LeJamon/goBinkit/internal/codec/endian"
	"github.com/LeJamon/goBinkit/internal/compression"
)

// Frame bundles a prefix width with the byte order of the prefix.
type Frame struct {
	Width Width
	Order endian.Order
}

// MaxRawLen bounds the decompressed size ReadCompressed will allocate.
const MaxRawLen = 1<<31 - 1

// DefaultFrame is a 32-bit little-endian prefix.
var DefaultFrame = Frame{Width: W32, Order: endian.Little}

func (f Frame) ReadBuf(r io.Reader) ([]byte, error) { return ReadBuf(r, f.Width, f.Order) }

func (f Frame) WriteBuf(w io.Writer, b []byte) (int64, error) {
	return WriteBuf(w, f.Width, f.Order, b)
}

func (f Frame) ReadString(r io.Reader) (string, error) { return ReadString(r, f.Width, f.Order) }

func (f Frame) WriteString(w io.Writer, s string) (int64, error) {
	return WriteString(w, f.Width, f.Order, s)
}

// WriteCompressed writes payload compressed with the named algorithm:
//
//	[algorithm:u8][raw length:width][LP frame of the compressed bytes]
//
// Payloads the algorithm cannot shrink are stored with algorithm "none".
func WriteCompressed(w io.Writer, f Frame, algorithm string, level int, payload []byte) (int64, error) {
	c, err := compression.Get(algorithm)
	if err != nil {
		return 0, codecerr.New("write_compressed", codecerr.ErrInvalidEncoding, err)
	}
	if !f.Width.Valid() {
		return 0, codecerr.Newf("write_compressed", codecerr.ErrInvalidPattern, "unsupported width %d", f.Width)
	}
	if !f.Width.Fits(len(payload)) {
		return 0, codecerr.Newf("write_compressed", codecerr.ErrLengthOverflow, "%d bytes do not fit a %d-bit prefix", len(payload), f.Width)
	}

	body, err := c.Compress(payload, level)
	if errors.Is(err, compression.ErrIncompressible) {
		slog.Debug("payload stored uncompressed", "algorithm", algorithm, "size", len(payload))
		c = &compression.NoCompressor{}
		body, err = c.Compress(payload, 0)
	}
	if err != nil {
		return 0, codecerr.New("write_compressed", codecerr.ErrInvalidEncoding, err)
	}

	if err := endian.WriteUint8(w, uint8(c.ID())); err != nil {
		return 0, err
	}
	if err := writeLength(w, len(payload), f.Width, f.Order); err != nil {
		return 1, err
	}
	n, err := f.WriteBuf(w, body)
	return 1 + int64(f.Width.Size()) + n, err
}

// ReadCompressed reads a frame written by WriteCompressed and returns the
// decompressed payload.
func ReadCompressed(r io.Reader, f Frame) ([]byte, error) {
	id, err := endian.ReadUint8(r)
	if err != nil {
		return nil, err
	}
	c, err := compression.ByID(compression.ID(id))
	if err != nil {
		return nil, codecerr.Newf("read_compressed", codecerr.ErrInvalidEncoding, "%w %d", errUnknownAlgo, id)
	}
	rawLen, err := readLength(r, f.Width, f.Order)
	if err != nil {
		return nil, err
	}
	body, err := f.ReadBuf(r)
	if err != nil {
		return nil, err
	}
	if rawLen > MaxRawLen {
		return nil, codecerr.Newf("read_compressed", codecerr.ErrLengthOverflow, "raw length %d exceeds %d", rawLen, MaxRawLen)
	}
	out, err := c.Decompress(body, int(rawLen))
	if err != nil {
		return nil, codecerr.New("read_compressed", codecerr.ErrInvalidEncoding, err)
	}
	return out, nil
}
