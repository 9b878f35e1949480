package pattern

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LeJamon/goBinkit/internal/codec/anyint"
)

// Kind identifies the decoding step a Token performs.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPadding
	KindBool
	KindU8
	KindU16
	KindU32
	KindU48
	KindU64
	KindU128
	KindI8
	KindI16
	KindI32
	KindI48
	KindI64
	KindI128
	// KindUint is an unsigned integer as wide as a host pointer.
	KindUint
	KindPredicate
)

var kindNames = [...]string{
	KindInvalid:   "invalid",
	KindPadding:   "padding",
	KindBool:      "bool",
	KindU8:        "u8",
	KindU16:       "u16",
	KindU32:       "u32",
	KindU48:       "u48",
	KindU64:       "u64",
	KindU128:      "u128",
	KindI8:        "i8",
	KindI16:       "i16",
	KindI32:       "i32",
	KindI48:       "i48",
	KindI64:       "i64",
	KindI128:      "i128",
	KindUint:      "uint",
	KindPredicate: "predicate",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind parses a token kind name such as "u16" or "padding".
func ParseKind(s string) (Kind, error) {
	for k := KindPadding; k <= KindPredicate; k++ {
		if strings.EqualFold(kindNames[k], s) {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown token kind %q", s)
}

// hostUint returns the value kind KindUint decodes to.
func hostUint() anyint.Kind {
	if strconv.IntSize == 32 {
		return anyint.U32
	}
	return anyint.U64
}

// valueKind maps a primitive token kind to the value kind it produces.
func (k Kind) valueKind() anyint.Kind {
	switch k {
	case KindBool:
		return anyint.Bool
	case KindU8:
		return anyint.U8
	case KindU16:
		return anyint.U16
	case KindU32:
		return anyint.U32
	case KindU48:
		return anyint.U48
	case KindU64:
		return anyint.U64
	case KindU128:
		return anyint.U128
	case KindI8:
		return anyint.I8
	case KindI16:
		return anyint.I16
	case KindI32:
		return anyint.I32
	case KindI48:
		return anyint.I48
	case KindI64:
		return anyint.I64
	case KindI128:
		return anyint.I128
	case KindUint:
		return hostUint()
	}
	return anyint.Invalid
}

// Primitive reports whether k decodes a single fixed-width value.
func (k Kind) Primitive() bool {
	return k >= KindBool && k <= KindUint
}

// Token is one decoding step. Tokens are values; a Pattern never hands out
// references to its own.
type Token struct {
	kind Kind
	n    int // padding length or predicate width
	pred Predicate
}

// Primitive returns a token that decodes one value of kind k.
func Primitive(k Kind) Token { return Token{kind: k} }

// Padding returns a token that skips n bytes and produces no value.
func Padding(n int) Token { return Token{kind: KindPadding, n: n} }

// Predicated returns a token that reads a width-byte unsigned integer,
// evaluates pred over it and produces a Bool. Width must be 1, 2, 4 or 8;
// other widths are rejected when the pattern is decoded.
func Predicated(width int, pred Predicate) Token {
	return Token{kind: KindPredicate, n: width, pred: pred}
}

func (t Token) Kind() Kind { return t.kind }

// Len returns the length of a padding token.
func (t Token) Len() int {
	if t.kind == KindPadding {
		return t.n
	}
	return 0
}

// Width returns the parameter width of a predicate token.
func (t Token) Width() int {
	if t.kind == KindPredicate {
		return t.n
	}
	return 0
}

// Predicate returns the predicate of a predicate token.
func (t Token) Predicate() Predicate { return t.pred }

// ProducesValue reports whether decoding t yields a value.
func (t Token) ProducesValue() bool { return t.kind != KindPadding }

// RequiredBytes returns the number of stream bytes t consumes.
func (t Token) RequiredBytes() int {
	switch t.kind {
	case KindPadding, KindPredicate:
		return t.n
	}
	return t.kind.valueKind().WireSize()
}

func (t Token) String() string {
	switch t.kind {
	case KindPadding:
		return fmt.Sprintf("padding(%d)", t.n)
	case KindPredicate:
		return fmt.Sprintf("predicate(width: %d, %s)", t.n, t.pred)
	}
	return t.kind.String()
}
