package pattern

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goBinkit/internal/codec/anyint"
	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
	"github.com/LeJamon/goBinkit/internal/codec/endian"
)

var elfMagic = endian.Magic32([4]byte{0x7F, 'E', 'L', 'F'}, endian.Little)

func elfHeader() *Struct {
	return NewStruct(endian.Little).
		AddU32Field("e_mag").
		AddPredicateField("is_64bit", 1, Equals(2)).
		AddU8Field("e_data").
		AddU8Field("e_version").
		AddU8Field("e_osabi").
		AddU8Field("e_abiversion").
		AddPadding(7).
		AddU16Field("e_type").
		AddU16Field("e_machine").
		AddU32Field("e_version")
}

func TestELFHeader(t *testing.T) {
	s := elfHeader()
	assert.Equal(t, len(elfHead), s.RequiredBytes())

	rec, err := s.Decode(bytes.NewReader(elfHead))
	require.NoError(t, err)

	mag, err := rec.MustGet("e_mag").Uint32()
	require.NoError(t, err)
	assert.Equal(t, elfMagic, mag)
	assert.Equal(t, anyint.FromBool(true), rec.MustGet("is_64bit"))
	assert.Equal(t, anyint.FromU16(2), rec.MustGet("e_type"))
	assert.Equal(t, anyint.FromU16(0x3E), rec.MustGet("e_machine"))
}

func TestDuplicateNamesLastWriteWins(t *testing.T) {
	rec, err := elfHeader().Decode(bytes.NewReader(elfHead))
	require.NoError(t, err)

	// e_version appears twice: the u32 replaces the u8 but keeps its slot.
	assert.Equal(t, anyint.FromU32(1), rec.MustGet("e_version"))
	assert.Equal(t, 8, rec.Len())
	assert.Equal(t, []string{
		"e_mag", "is_64bit", "e_data", "e_version", "e_osabi",
		"e_abiversion", "e_type", "e_machine",
	}, rec.Names())
	assert.Len(t, elfHeader().Names(), 9)
}

func TestRecordAccess(t *testing.T) {
	rec, err := NewStruct(endian.Big).AddU16Field("x").Decode(bytes.NewReader([]byte{0x01, 0x02}))
	require.NoError(t, err)

	v, ok := rec.Get("x")
	assert.True(t, ok)
	assert.Equal(t, anyint.FromU16(0x0102), v)

	_, ok = rec.Get("y")
	assert.False(t, ok)

	assert.PanicsWithValue(t, `pattern: record has no field "y"`, func() { rec.MustGet("y") })
	assert.Equal(t, []anyint.Value{anyint.FromU16(0x0102)}, rec.Values())
	assert.Equal(t, 1, rec.Pattern().Len())
}

func TestRecordDict(t *testing.T) {
	rec, err := elfHeader().Decode(bytes.NewReader(elfHead))
	require.NoError(t, err)

	d := rec.Dict()
	assert.Equal(t, rec.Names(), d.Keys())
	v, ok := d.Get("e_machine")
	assert.True(t, ok)
	assert.Equal(t, uint16(0x3E), v)

	out, err := d.MarshalJSON()
	require.NoError(t, err)
	mag := bytes.Index(out, []byte(`"e_mag"`))
	machine := bytes.Index(out, []byte(`"e_machine"`))
	assert.True(t, mag >= 0 && machine > mag, string(out))
	assert.Contains(t, string(out), "1179403647")
}

func TestStructFromPattern(t *testing.T) {
	p := New(endian.Little).AddU8().AddPadding(2).AddU16()

	s, err := StructFromPattern(p, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 5, s.RequiredBytes())
	assert.Equal(t, []string{"a", "b"}, s.Names())

	_, err = StructFromPattern(p, []string{"a"})
	assert.True(t, errors.Is(err, codecerr.ErrInvalidPattern))
	_, err = StructFromPattern(p, []string{"a", "b", "c"})
	assert.True(t, errors.Is(err, codecerr.ErrInvalidPattern))
}

func TestStructDecodeFailureReturnsNoRecord(t *testing.T) {
	rec, err := elfHeader().Decode(bytes.NewReader(elfHead[:10]))
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.True(t, codecerr.IsIO(err))
}

func TestStructPatternIsCopy(t *testing.T) {
	s := NewStruct(endian.Little).AddU8Field("a")
	s.Pattern().AddU64()
	assert.Equal(t, 1, s.RequiredBytes())
	assert.Equal(t, endian.Little, s.Order())
}
