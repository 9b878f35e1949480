package anyint

import (
	"lukechampine.com/uint128"

	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
)

func (v Value) mismatch(op, target string) error {
	return codecerr.Newf(op, codecerr.ErrTypeMismatch, "cannot convert %s to %s", v, target)
}

// Uint8 returns the value of a U8.
func (v Value) Uint8() (uint8, error) {
	if v.kind != U8 {
		return 0, v.mismatch("to_u8", "u8")
	}
	return uint8(v.lo), nil
}

// Uint16 returns the value of a U16.
func (v Value) Uint16() (uint16, error) {
	if v.kind != U16 {
		return 0, v.mismatch("to_u16", "u16")
	}
	return uint16(v.lo), nil
}

// Uint32 returns the value of a U32.
func (v Value) Uint32() (uint32, error) {
	if v.kind != U32 {
		return 0, v.mismatch("to_u32", "u32")
	}
	return uint32(v.lo), nil
}

// Uint64 returns the value of a U48 or U64.
func (v Value) Uint64() (uint64, error) {
	if v.kind != U48 && v.kind != U64 {
		return 0, v.mismatch("to_u64", "u64")
	}
	return v.lo, nil
}

// Uint128 returns the value of a U128.
func (v Value) Uint128() (uint128.Uint128, error) {
	if v.kind != U128 {
		return uint128.Zero, v.mismatch("to_u128", "u128")
	}
	return uint128.New(v.lo, v.hi), nil
}

// Int8 returns the value of an I8.
func (v Value) Int8() (int8, error) {
	if v.kind != I8 {
		return 0, v.mismatch("to_i8", "i8")
	}
	return int8(v.lo), nil
}

// Int16 returns the value of an I16.
func (v Value) Int16() (int16, error) {
	if v.kind != I16 {
		return 0, v.mismatch("to_i16", "i16")
	}
	return int16(v.lo), nil
}

// Int32 returns the value of an I32.
func (v Value) Int32() (int32, error) {
	if v.kind != I32 {
		return 0, v.mismatch("to_i32", "i32")
	}
	return int32(v.lo), nil
}

// Int64 returns the value of an I48 or I64.
func (v Value) Int64() (int64, error) {
	if v.kind != I48 && v.kind != I64 {
		return 0, v.mismatch("to_i64", "i64")
	}
	return int64(v.lo), nil
}

// Int128 returns the value of an I128.
func (v Value) Int128() (Int128, error) {
	if v.kind != I128 {
		return Int128{}, v.mismatch("to_i128", "i128")
	}
	return Int128{Hi: int64(v.hi), Lo: v.lo}, nil
}

// Bool returns the value of a Bool.
func (v Value) Bool() (bool, error) {
	if v.kind != Bool {
		return false, v.mismatch("to_bool", "bool")
	}
	return v.lo != 0, nil
}
