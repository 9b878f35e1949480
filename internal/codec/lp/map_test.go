package lp

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goBinkit/internal/codec/anyint"
	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
	"github.com/LeJamon/goBinkit/internal/codec/endian"
)

func TestMapImplementations(t *testing.T) {
	impls := map[string]func() Map[string, int]{
		"ordered": func() Map[string, int] { return NewOrderedMap[string, int]() },
		"hash":    func() Map[string, int] { return NewHashMap[string, int]() },
	}
	for name, newMap := range impls {
		t.Run(name, func(t *testing.T) {
			m := newMap()
			assert.True(t, m.IsEmpty())

			_, replaced := m.Insert("b", 2)
			assert.False(t, replaced)
			m.Insert("a", 1)
			prev, replaced := m.Insert("b", 20)
			assert.True(t, replaced)
			assert.Equal(t, 2, prev)
			assert.Equal(t, 2, m.Len())

			p := m.GetMut("a")
			require.NotNil(t, p)
			*p = 10
			v, ok := m.Get("a")
			assert.True(t, ok)
			assert.Equal(t, 10, v)
			assert.Nil(t, m.GetMut("zzz"))

			assert.ElementsMatch(t, []string{"a", "b"}, m.Keys())
			assert.ElementsMatch(t, []int{10, 20}, m.Values())

			seen := map[string]int{}
			for k, v := range m.All() {
				seen[k] = v
			}
			assert.Equal(t, map[string]int{"a": 10, "b": 20}, seen)

			removed, ok := m.Remove("a")
			assert.True(t, ok)
			assert.Equal(t, 10, removed)
			_, ok = m.Remove("a")
			assert.False(t, ok)
			assert.Equal(t, 1, m.Len())
		})
	}
}

func TestOrderedMapKeepsInsertionOrder(t *testing.T) {
	m := NewOrderedMap[string, int]()
	for i, k := range []string{"z", "a", "m"} {
		m.Insert(k, i)
	}
	m.Insert("a", 9)
	assert.Equal(t, []string{"z", "a", "m"}, m.Keys())
	assert.Equal(t, []int{0, 9, 2}, m.Values())
}

func TestMapRoundTrip(t *testing.T) {
	for _, o := range []endian.Order{endian.Little, endian.Big} {
		t.Run(o.String(), func(t *testing.T) {
			m := NewOrderedMap[string, anyint.Value]()
			m.Insert("offset", anyint.FromU64(0x1122334455667788))
			m.Insert("count", anyint.FromU64(3))
			m.Insert("delta", anyint.FromI64(-1))

			var buf bytes.Buffer
			n, err := WriteMap(&buf, o, m)
			require.NoError(t, err)
			assert.Equal(t, int64(6+(7+8)+(6+8)+(6+8)), n)
			assert.Equal(t, int64(buf.Len()), n)

			got, err := ReadMap(&buf, o, NewOrderedMap[string, anyint.Value])
			require.NoError(t, err)
			assert.Equal(t, []string{"offset", "count", "delta"}, got.Keys())

			v, _ := got.Get("delta")
			assert.Equal(t, anyint.FromU64(^uint64(0)), v, "values come back unsigned")
			v, _ = got.Get("offset")
			assert.Equal(t, anyint.FromU64(0x1122334455667788), v)
		})
	}
}

func TestMapLayout(t *testing.T) {
	m := NewOrderedMap[string, anyint.Value]()
	m.Insert("k", anyint.FromU64(1))

	var buf bytes.Buffer
	_, err := WriteMap(&buf, endian.Little, m)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x01, 0, 0, 0, 0, 0,
		'k', 0x00,
		0x01, 0, 0, 0, 0, 0, 0, 0,
	}, buf.Bytes())

	h, err := ReadMap(bytes.NewReader(buf.Bytes()), endian.Little, NewHashMap[string, anyint.Value])
	require.NoError(t, err)
	assert.Equal(t, 1, h.Len())
}

func TestWriteMapRejects(t *testing.T) {
	m := NewHashMap[string, anyint.Value]()
	m.Insert("small", anyint.FromU32(1))
	_, err := WriteMap(&bytes.Buffer{}, endian.Little, m)
	assert.True(t, codecerr.IsTypeMismatch(err))

	m = NewHashMap[string, anyint.Value]()
	m.Insert(strings.Repeat("k", MapKeyMaxLen+1), anyint.FromU64(1))
	var buf bytes.Buffer
	_, err = WriteMap(&buf, endian.Little, m)
	assert.True(t, errors.Is(err, codecerr.ErrLengthExceeded))
	assert.Zero(t, buf.Len())
}

func TestMapKeyAtCap(t *testing.T) {
	key := strings.Repeat("k", MapKeyMaxLen)
	m := NewOrderedMap[string, anyint.Value]()
	m.Insert(key, anyint.FromU64(7))

	var buf bytes.Buffer
	n, err := WriteMap(&buf, endian.Little, m)
	require.NoError(t, err)
	assert.Equal(t, int64(6+MapKeyMaxLen+1+8), n)

	got, err := ReadMap(bytes.NewReader(buf.Bytes()), endian.Little, NewOrderedMap[string, anyint.Value])
	require.NoError(t, err)
	v, ok := got.Get(key)
	require.True(t, ok)
	assert.Equal(t, anyint.FromU64(7), v)
}

func TestReadMapTruncated(t *testing.T) {
	data := []byte{0x02, 0, 0, 0, 0, 0, 'k', 0x00, 0x01, 0, 0, 0, 0, 0, 0, 0}
	_, err := ReadMap(bytes.NewReader(data), endian.Little, NewOrderedMap[string, anyint.Value])
	assert.True(t, codecerr.IsIO(err))
}
