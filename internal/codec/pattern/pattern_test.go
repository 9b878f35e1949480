package pattern

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/LeJamon/goBinkit/internal/codec/anyint"
	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
	"github.com/LeJamon/goBinkit/internal/codec/endian"
)

// The first 24 bytes of a ZIP archive tail.
var zipHead = []byte{
	0x00, 0x2F, 0x6D, 0x61, 0x78, 0x5F, 0x73, 0x69,
	0x7A, 0x65, 0x2E, 0x72, 0x73, 0x55, 0x54, 0x05,
	0x00, 0x01, 0xA9, 0xBA, 0xEE, 0x63, 0x50, 0x4B,
}

// A little-endian x86-64 ELF executable header, up to e_version.
var elfHead = []byte{
	0x7F, 'E', 'L', 'F', 0x02, 0x01, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x3E, 0x00, 0x01, 0x00, 0x00, 0x00,
}

func TestStructThreeU64(t *testing.T) {
	s := NewStruct(endian.Little).
		AddU64Field("a").
		AddU64Field("b").
		AddU64Field("c")
	assert.Equal(t, 24, s.RequiredBytes())

	rec, err := s.Decode(bytes.NewReader(zipHead))
	require.NoError(t, err)

	assert.Equal(t, anyint.FromU64(0x69735f78616d2f00), rec.MustGet("a"))
	assert.Equal(t, anyint.FromU64(0x05545573722e657a), rec.MustGet("b"))
	assert.Equal(t, anyint.FromU64(0x4b5063eebaa90100), rec.MustGet("c"))
	assert.Equal(t, []string{"a", "b", "c"}, rec.Names())
}

func TestPrimitiveRoundTrip(t *testing.T) {
	values := []struct {
		kind  Kind
		value anyint.Value
	}{
		{KindBool, anyint.FromBool(true)},
		{KindU8, anyint.FromU8(0xFE)},
		{KindU16, anyint.FromU16(0xBEEF)},
		{KindU32, anyint.FromU32(0xDEADBEEF)},
		{KindU48, anyint.FromU48(0xA1B2C3D4E5F6)},
		{KindU64, anyint.FromU64(0x0102030405060708)},
		{KindU128, anyint.FromU128(uint128.New(1, 2))},
		{KindI8, anyint.FromI8(-1)},
		{KindI16, anyint.FromI16(-300)},
		{KindI32, anyint.FromI32(-70000)},
		{KindI48, anyint.FromI48(-5)},
		{KindI64, anyint.FromI64(-9)},
		{KindI128, anyint.FromI128(anyint.Int128{Hi: -1, Lo: 3})},
	}
	for _, o := range []endian.Order{endian.Little, endian.Big} {
		for _, tt := range values {
			t.Run(o.String()+"/"+tt.kind.String(), func(t *testing.T) {
				got, err := New(o, Primitive(tt.kind)).Decode(bytes.NewReader(tt.value.Bytes(o)))
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, tt.value, got[0])
			})
		}
	}
}

func TestRequiredBytesMatchesConsumed(t *testing.T) {
	p := New(endian.Big).
		AddBool().AddU8().AddU16().AddU32().AddU48().AddU64().AddU128().
		AddI8().AddI16().AddI32().AddI48().AddI64().AddI128().
		AddUint().
		AddPadding(5).
		AddPredicate(1, Equals(0)).
		AddPredicate(2, In(0, 1)).
		AddPredicate(4, MaskMatch(0xFF, 0)).
		AddPredicate(8, Func("any", func(anyint.Value) bool { return true }))

	data := make([]byte, p.RequiredBytes()+10)
	r := bytes.NewReader(data)
	values, err := p.Decode(r)
	require.NoError(t, err)

	consumed := len(data) - r.Len()
	assert.Equal(t, p.RequiredBytes(), consumed)
	assert.Equal(t, p.Outputs(), len(values))
	assert.Equal(t, p.Len()-1, len(values))
}

func TestUintIsHostWidth(t *testing.T) {
	p := New(endian.Little).AddUint()
	assert.Equal(t, strconv.IntSize/8, p.RequiredBytes())

	values, err := p.Decode(bytes.NewReader(bytes.Repeat([]byte{0x01}, 8)))
	require.NoError(t, err)
	if strconv.IntSize == 64 {
		assert.Equal(t, anyint.FromU64(0x0101010101010101), values[0])
	} else {
		assert.Equal(t, anyint.FromU32(0x01010101), values[0])
	}
}

func TestPredicateWidthRejectedBeforeRead(t *testing.T) {
	for _, width := range []int{0, 3, 5, 16} {
		r := bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06})
		p := New(endian.Little).AddU8().AddPredicate(width, Equals(1))

		_, err := p.Decode(r)
		require.Error(t, err)
		assert.True(t, errors.Is(err, codecerr.ErrInvalidPattern), "width %d", width)
		assert.Equal(t, 5, r.Len(), "only the u8 was consumed")
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		width int
		data  []byte
		pred  Predicate
		want  bool
	}{
		{"equals", 1, []byte{0x02}, Equals(2), true},
		{"equals miss", 1, []byte{0x01}, Equals(2), false},
		{"in", 2, []byte{0x34, 0x12}, In(1, 0x1234), true},
		{"in miss", 2, []byte{0x12, 0x34}, In(1, 0x1234), false},
		{"mask", 4, []byte{0x7F, 'E', 'L', 'F'}, MaskMatch(0xFF, 0x7F), true},
		{"mask miss", 4, []byte{0x7E, 'E', 'L', 'F'}, MaskMatch(0xFF, 0x7F), false},
		{"func", 8, []byte{1, 0, 0, 0, 0, 0, 0, 0}, Func("is_one", func(v anyint.Value) bool {
			return v == anyint.FromU64(1)
		}), true},
		{"func sees width", 1, []byte{0x02}, Func("is_u8_two", func(v anyint.Value) bool {
			return v == anyint.FromU8(2)
		}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := New(endian.Little).AddPredicate(tt.width, tt.pred).Decode(bytes.NewReader(tt.data))
			require.NoError(t, err)
			assert.Equal(t, []anyint.Value{anyint.FromBool(tt.want)}, values)
		})
	}

	_, err := New(endian.Little).AddPredicate(1, Predicate{}).Decode(bytes.NewReader([]byte{0}))
	assert.True(t, errors.Is(err, codecerr.ErrInvalidPattern))
}

func TestDecodeShortRead(t *testing.T) {
	tests := []struct {
		name string
		p    *Pattern
		data []byte
	}{
		{"primitive", New(endian.Little).AddU8().AddU32(), []byte{1, 2, 3}},
		{"padding", New(endian.Little).AddPadding(4), []byte{1, 2}},
		{"predicate", New(endian.Little).AddPredicate(8, Equals(0)), []byte{1}},
		{"empty", New(endian.Little).AddU16(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := tt.p.Decode(bytes.NewReader(tt.data))
			require.Error(t, err)
			assert.Nil(t, values)
			assert.True(t, codecerr.IsIO(err))
			assert.True(t, errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF))
		})
	}
}

func TestInvalidTokens(t *testing.T) {
	_, err := New(endian.Little, Token{}).Decode(bytes.NewReader([]byte{0}))
	assert.True(t, errors.Is(err, codecerr.ErrInvalidPattern))

	_, err = New(endian.Little).AddPadding(-1).Decode(bytes.NewReader([]byte{0}))
	assert.True(t, errors.Is(err, codecerr.ErrInvalidPattern))
}

func TestTokensAreCopied(t *testing.T) {
	p := New(endian.Little).AddU8()
	tokens := p.Tokens()
	tokens[0] = Padding(3)
	assert.Equal(t, KindU8, p.Tokens()[0].Kind())

	q := New(endian.Big, tokens...).Append(Primitive(KindU16))
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, "be[padding(3), u16]", q.String())
	assert.Equal(t, 1, p.Len())
}
