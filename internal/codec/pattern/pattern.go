// Package pattern decodes binary layouts described declaratively as an
// ordered list of tokens.
//
// A Pattern is a token list with a byte order; decoding it yields one
// anyint.Value per non-padding token, in order. A Struct pairs those values
// with field names:
//
//	hdr := pattern.NewStruct(endian.Little).
//		AddU32Field("magic").
//		AddPredicateField("is_64bit", 1, pattern.Equals(2)).
//		AddPadding(10).
//		AddU16Field("type")
//	rec, err := hdr.Decode(f)
package pattern

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/LeJamon/goBinkit/internal/codec/anyint"
	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
	"github.com/LeJamon/goBinkit/internal/codec/endian"
)

// Pattern is an ordered list of decoding steps. The Add methods append a
// token and return the pattern for chaining.
type Pattern struct {
	order  endian.Order
	tokens []Token
}

// New returns a pattern in the given byte order holding tokens.
func New(o endian.Order, tokens ...Token) *Pattern {
	return &Pattern{order: o, tokens: slices.Clone(tokens)}
}

func (p *Pattern) add(t Token) *Pattern {
	p.tokens = append(p.tokens, t)
	return p
}

func (p *Pattern) AddBool() *Pattern { return p.add(Primitive(KindBool)) }
func (p *Pattern) AddU8() *Pattern   { return p.add(Primitive(KindU8)) }
func (p *Pattern) AddU16() *Pattern  { return p.add(Primitive(KindU16)) }
func (p *Pattern) AddU32() *Pattern  { return p.add(Primitive(KindU32)) }
func (p *Pattern) AddU48() *Pattern  { return p.add(Primitive(KindU48)) }
func (p *Pattern) AddU64() *Pattern  { return p.add(Primitive(KindU64)) }
func (p *Pattern) AddU128() *Pattern { return p.add(Primitive(KindU128)) }
func (p *Pattern) AddI8() *Pattern   { return p.add(Primitive(KindI8)) }
func (p *Pattern) AddI16() *Pattern  { return p.add(Primitive(KindI16)) }
func (p *Pattern) AddI32() *Pattern  { return p.add(Primitive(KindI32)) }
func (p *Pattern) AddI48() *Pattern  { return p.add(Primitive(KindI48)) }
func (p *Pattern) AddI64() *Pattern  { return p.add(Primitive(KindI64)) }
func (p *Pattern) AddI128() *Pattern { return p.add(Primitive(KindI128)) }

// AddUint appends an unsigned integer as wide as a host pointer.
func (p *Pattern) AddUint() *Pattern { return p.add(Primitive(KindUint)) }

// AddPadding appends a run of n skipped bytes.
func (p *Pattern) AddPadding(n int) *Pattern { return p.add(Padding(n)) }

// AddPredicate appends a predicate over a width-byte unsigned integer.
func (p *Pattern) AddPredicate(width int, pred Predicate) *Pattern {
	return p.add(Predicated(width, pred))
}

// Append appends tokens in order.
func (p *Pattern) Append(tokens ...Token) *Pattern {
	p.tokens = append(p.tokens, tokens...)
	return p
}

// Order returns the byte order multi-byte tokens are decoded in.
func (p *Pattern) Order() endian.Order { return p.order }

// Tokens returns a copy of the token list.
func (p *Pattern) Tokens() []Token { return slices.Clone(p.tokens) }

// Len returns the number of tokens.
func (p *Pattern) Len() int { return len(p.tokens) }

// Outputs returns the number of values Decode produces.
func (p *Pattern) Outputs() int {
	n := 0
	for _, t := range p.tokens {
		if t.ProducesValue() {
			n++
		}
	}
	return n
}

// RequiredBytes returns the number of stream bytes a successful Decode
// consumes.
func (p *Pattern) RequiredBytes() int {
	n := 0
	for _, t := range p.tokens {
		n += t.RequiredBytes()
	}
	return n
}

// Clone returns an independent copy of p.
func (p *Pattern) Clone() *Pattern {
	return New(p.order, p.tokens...)
}

func (p *Pattern) String() string {
	parts := make([]string, len(p.tokens))
	for i, t := range p.tokens {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s[%s]", p.order, strings.Join(parts, ", "))
}

// Decode reads r token by token and returns the values produced. On failure
// no values are returned and r is left wherever the last read stopped.
func (p *Pattern) Decode(r io.Reader) ([]anyint.Value, error) {
	values := make([]anyint.Value, 0, len(p.tokens))
	for i, t := range p.tokens {
		switch {
		case t.kind == KindPadding:
			if t.n < 0 {
				return nil, codecerr.Newf("decode_pattern", codecerr.ErrInvalidPattern, "token %d has negative padding %d", i, t.n)
			}
			if err := skip(r, t.n); err != nil {
				return nil, err
			}

		case t.kind == KindPredicate:
			v, err := p.decodePredicate(r, t)
			if err != nil {
				return nil, err
			}
			values = append(values, v)

		case t.kind.Primitive():
			v, err := anyint.Read(r, t.kind.valueKind(), p.order)
			if err != nil {
				return nil, err
			}
			values = append(values, v)

		default:
			return nil, codecerr.Newf("decode_pattern", codecerr.ErrInvalidPattern, "token %d has invalid kind %s", i, t.kind)
		}
	}
	slog.Debug("pattern decoded", "tokens", len(p.tokens), "values", len(values), "bytes", p.RequiredBytes())
	return values, nil
}

func (p *Pattern) decodePredicate(r io.Reader, t Token) (anyint.Value, error) {
	var k anyint.Kind
	switch t.n {
	case 1:
		k = anyint.U8
	case 2:
		k = anyint.U16
	case 4:
		k = anyint.U32
	case 8:
		k = anyint.U64
	default:
		return anyint.Value{}, codecerr.Newf("decode_pattern", codecerr.ErrInvalidPattern, "invalid predicate width %d", t.n)
	}
	if !t.pred.valid() {
		return anyint.Value{}, codecerr.Newf("decode_pattern", codecerr.ErrInvalidPattern, "invalid predicate %s", t.pred)
	}

	raw, err := endian.ReadUint(r, t.n, p.order)
	if err != nil {
		return anyint.Value{}, err
	}
	return anyint.FromBool(t.pred.Eval(raw, narrow(raw, k))), nil
}

func narrow(raw uint64, k anyint.Kind) anyint.Value {
	switch k {
	case anyint.U8:
		return anyint.FromU8(uint8(raw))
	case anyint.U16:
		return anyint.FromU16(uint16(raw))
	case anyint.U32:
		return anyint.FromU32(uint32(raw))
	}
	return anyint.FromU64(raw)
}

func skip(r io.Reader, n int) error {
	if n == 0 {
		return nil
	}
	if written, err := io.CopyN(io.Discard, r, int64(n)); err != nil {
		if written > 0 && errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return codecerr.IO("skip_padding", err)
	}
	return nil
}
