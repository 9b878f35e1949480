// Package anyint implements a tagged integer value that can hold any of the
// supported integer widths, signed or unsigned, or a boolean.
//
// 48-bit values live in a 64-bit slot in memory but occupy 6 bytes on the
// wire, so a Value exposes both InMemorySize and WireSize.
package anyint

import (
	"fmt"
	"math/big"
	"strings"

	"lukechampine.com/uint128"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	Invalid Kind = iota
	U8
	U16
	U32
	U48
	U64
	U128
	I8
	I16
	I32
	I48
	I64
	I128
	Bool
)

var kindNames = [...]string{
	Invalid: "Invalid",
	U8:      "U8",
	U16:     "U16",
	U32:     "U32",
	U48:     "U48",
	U64:     "U64",
	U128:    "U128",
	I8:      "I8",
	I16:     "I16",
	I32:     "I32",
	I48:     "I48",
	I64:     "I64",
	I128:    "I128",
	Bool:    "Bool",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind parses a kind name such as "u32" or "I48" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	for k := U8; k <= Bool; k++ {
		if strings.EqualFold(kindNames[k], s) {
			return k, nil
		}
	}
	return Invalid, fmt.Errorf("unknown integer kind %q", s)
}

// InMemorySize returns the size of the native representation in bytes.
func (k Kind) InMemorySize() int {
	switch k {
	case U8, I8, Bool:
		return 1
	case U16, I16:
		return 2
	case U32, I32:
		return 4
	case U48, I48, U64, I64:
		return 8
	case U128, I128:
		return 16
	}
	return 0
}

// WireSize returns the size of the serialized representation in bytes.
func (k Kind) WireSize() int {
	if k == U48 || k == I48 {
		return 6
	}
	return k.InMemorySize()
}

// Signed reports whether the kind is a signed integer.
func (k Kind) Signed() bool {
	return k >= I8 && k <= I128
}

// Int128 is a signed 128-bit integer in two's complement.
type Int128 struct {
	Hi int64
	Lo uint64
}

// Big returns v as a *big.Int.
func (v Int128) Big() *big.Int {
	u := uint128.New(v.Lo, uint64(v.Hi)).Big()
	if v.Hi < 0 {
		u.Sub(u, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	return u
}

func (v Int128) String() string {
	return v.Big().String()
}

// Value is a tagged integer. The zero Value has kind Invalid.
// Values are comparable with ==.
type Value struct {
	kind Kind
	lo   uint64
	hi   uint64
}

// FromU8 returns a U8 value.
func FromU8(v uint8) Value { return Value{kind: U8, lo: uint64(v)} }

// FromU16 returns a U16 value.
func FromU16(v uint16) Value { return Value{kind: U16, lo: uint64(v)} }

// FromU32 returns a U32 value.
func FromU32(v uint32) Value { return Value{kind: U32, lo: uint64(v)} }

// FromU48 returns a U48 value. Only the low 48 bits reach the wire.
func FromU48(v uint64) Value { return Value{kind: U48, lo: v} }

// FromU64 returns a U64 value.
func FromU64(v uint64) Value { return Value{kind: U64, lo: v} }

// FromU128 returns a U128 value.
func FromU128(v uint128.Uint128) Value { return Value{kind: U128, lo: v.Lo, hi: v.Hi} }

// FromI8 returns an I8 value.
func FromI8(v int8) Value { return Value{kind: I8, lo: uint64(int64(v))} }

// FromI16 returns an I16 value.
func FromI16(v int16) Value { return Value{kind: I16, lo: uint64(int64(v))} }

// FromI32 returns an I32 value.
func FromI32(v int32) Value { return Value{kind: I32, lo: uint64(int64(v))} }

// FromI48 returns an I48 value. Only the low 48 bits reach the wire.
func FromI48(v int64) Value { return Value{kind: I48, lo: uint64(v)} }

// FromI64 returns an I64 value.
func FromI64(v int64) Value { return Value{kind: I64, lo: uint64(v)} }

// FromI128 returns an I128 value.
func FromI128(v Int128) Value { return Value{kind: I128, lo: v.Lo, hi: uint64(v.Hi)} }

// FromBool returns a Bool value.
func FromBool(v bool) Value {
	if v {
		return Value{kind: Bool, lo: 1}
	}
	return Value{kind: Bool}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds a variant.
func (v Value) IsValid() bool { return v.kind != Invalid }

// InMemorySize returns the size of the native representation in bytes.
func (v Value) InMemorySize() int { return v.kind.InMemorySize() }

// WireSize returns the number of bytes Bytes emits.
func (v Value) WireSize() int { return v.kind.WireSize() }

// Interface returns the native Go value: uint8..uint64, int8..int64, bool,
// uint128.Uint128 or Int128. It returns nil for the zero Value.
func (v Value) Interface() any {
	switch v.kind {
	case U8:
		return uint8(v.lo)
	case U16:
		return uint16(v.lo)
	case U32:
		return uint32(v.lo)
	case U48, U64:
		return v.lo
	case U128:
		return uint128.New(v.lo, v.hi)
	case I8:
		return int8(v.lo)
	case I16:
		return int16(v.lo)
	case I32:
		return int32(v.lo)
	case I48, I64:
		return int64(v.lo)
	case I128:
		return Int128{Hi: int64(v.hi), Lo: v.lo}
	case Bool:
		return v.lo != 0
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case Invalid:
		return "Invalid"
	case U128:
		return fmt.Sprintf("U128(%s)", uint128.New(v.lo, v.hi))
	}
	return fmt.Sprintf("%s(%v)", v.kind, v.Interface())
}
