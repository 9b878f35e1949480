// Package lp reads and writes length-prefixed and NUL-delimited payloads:
// buffers, strings, C strings and string-keyed integer maps.
//
// A length-prefixed frame is [length:width][payload:length bytes], with the
// length encoded in the given byte order.
package lp

import (
	"bytes"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
	"github.com/LeJamon/goBinkit/internal/codec/endian"
)

// ReadBuf reads a length-prefixed buffer.
func ReadBuf(r io.Reader, w Width, o endian.Order) ([]byte, error) {
	n, err := readLength(r, w, o)
	if err != nil {
		return nil, err
	}
	if n > math.MaxInt {
		return nil, codecerr.Newf("read_lpbuf", codecerr.ErrLengthOverflow, "length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, codecerr.IO("read_lpbuf", err)
	}
	return buf, nil
}

// WriteBuf writes b as a length-prefixed buffer and returns the number of
// bytes written. It fails with ErrLengthOverflow, writing nothing, when
// len(b) does not fit the prefix.
func WriteBuf(wr io.Writer, w Width, o endian.Order, b []byte) (int64, error) {
	if err := writeLength(wr, len(b), w, o); err != nil {
		return 0, err
	}
	n, err := wr.Write(b)
	if err != nil {
		return int64(w.Size() + n), codecerr.IO("write_lpbuf", err)
	}
	return int64(w.Size() + n), nil
}

// ReadString reads a length-prefixed UTF-8 string.
func ReadString(r io.Reader, w Width, o endian.Order) (string, error) {
	buf, err := ReadBuf(r, w, o)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", codecerr.New("read_lpstr", codecerr.ErrInvalidEncoding, nil)
	}
	return string(buf), nil
}

// WriteString writes s as a length-prefixed string.
func WriteString(wr io.Writer, w Width, o endian.Order, s string) (int64, error) {
	return WriteBuf(wr, w, o, []byte(s))
}

// ReadCString reads a NUL-terminated UTF-8 string of at most maxLen bytes.
// The terminator may follow the last of those bytes; it is consumed and not
// returned.
func ReadCString(r io.Reader, maxLen int) (string, error) {
	var buf bytes.Buffer
	var b [1]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return "", codecerr.IO("read_cstr", err)
		}
		if b[0] == 0 {
			break
		}
		if buf.Len() >= maxLen {
			return "", codecerr.Newf("read_cstr", codecerr.ErrLengthExceeded, "string longer than %d bytes", maxLen)
		}
		buf.WriteByte(b[0])
	}
	if !utf8.Valid(buf.Bytes()) {
		return "", codecerr.New("read_cstr", codecerr.ErrInvalidEncoding, nil)
	}
	return buf.String(), nil
}

// WriteCString writes s followed by a single NUL byte and returns the number
// of bytes written. Strings containing NUL are rejected.
func WriteCString(wr io.Writer, s string) (int64, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return 0, codecerr.New("write_cstr", codecerr.ErrInvalidEncoding, errEmbeddedNUL)
	}
	n, err := io.WriteString(wr, s+"\x00")
	return int64(n), codecerr.IO("write_cstr", err)
}
