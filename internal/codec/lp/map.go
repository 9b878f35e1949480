package lp

import (
	"io"
	"iter"
	"maps"
	"slices"

	"github.com/elliotchance/orderedmap/v3"

	"github.com/LeJamon/goBinkit/internal/codec/anyint"
	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
	"github.com/LeJamon/goBinkit/internal/codec/endian"
)

// MapKeyMaxLen caps the length of a map key, terminator excluded.
const MapKeyMaxLen = 256

// Map is the associative container ReadMap fills and WriteMap drains.
type Map[K comparable, V any] interface {
	Get(key K) (V, bool)
	// GetMut returns a pointer through which the stored value can be
	// updated in place, or nil if key is absent.
	GetMut(key K) *V
	// Insert stores value under key and returns the previous value, if any.
	Insert(key K, value V) (V, bool)
	Remove(key K) (V, bool)
	Keys() []K
	Values() []V
	Len() int
	IsEmpty() bool
	// All iterates over the entries. OrderedMap yields them in insertion
	// order, HashMap in no particular order.
	All() iter.Seq2[K, V]
}

// OrderedMap is a Map that remembers insertion order.
type OrderedMap[K comparable, V any] struct {
	m *orderedmap.OrderedMap[K, V]
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{m: orderedmap.NewOrderedMap[K, V]()}
}

func (o *OrderedMap[K, V]) Get(key K) (V, bool) { return o.m.Get(key) }

func (o *OrderedMap[K, V]) GetMut(key K) *V {
	if el := o.m.GetElement(key); el != nil {
		return &el.Value
	}
	return nil
}

func (o *OrderedMap[K, V]) Insert(key K, value V) (V, bool) {
	prev, ok := o.m.Get(key)
	o.m.Set(key, value)
	return prev, ok
}

func (o *OrderedMap[K, V]) Remove(key K) (V, bool) {
	prev, ok := o.m.Get(key)
	if ok {
		o.m.Delete(key)
	}
	return prev, ok
}

func (o *OrderedMap[K, V]) Keys() []K            { return slices.Collect(o.m.Keys()) }
func (o *OrderedMap[K, V]) Values() []V          { return slices.Collect(o.m.Values()) }
func (o *OrderedMap[K, V]) Len() int             { return o.m.Len() }
func (o *OrderedMap[K, V]) IsEmpty() bool        { return o.m.Len() == 0 }
func (o *OrderedMap[K, V]) All() iter.Seq2[K, V] { return o.m.AllFromFront() }

// HashMap is a Map backed by a built-in map. Values are boxed so that GetMut
// can hand out a stable pointer.
type HashMap[K comparable, V any] struct {
	m map[K]*V
}

// NewHashMap returns an empty HashMap.
func NewHashMap[K comparable, V any]() *HashMap[K, V] {
	return &HashMap[K, V]{m: make(map[K]*V)}
}

func (h *HashMap[K, V]) Get(key K) (V, bool) {
	if p, ok := h.m[key]; ok {
		return *p, true
	}
	var zero V
	return zero, false
}

func (h *HashMap[K, V]) GetMut(key K) *V { return h.m[key] }

func (h *HashMap[K, V]) Insert(key K, value V) (V, bool) {
	prev, ok := h.Get(key)
	h.m[key] = &value
	return prev, ok
}

func (h *HashMap[K, V]) Remove(key K) (V, bool) {
	prev, ok := h.Get(key)
	delete(h.m, key)
	return prev, ok
}

func (h *HashMap[K, V]) Keys() []K { return slices.Collect(maps.Keys(h.m)) }

func (h *HashMap[K, V]) Values() []V {
	out := make([]V, 0, len(h.m))
	for _, p := range h.m {
		out = append(out, *p)
	}
	return out
}

func (h *HashMap[K, V]) Len() int      { return len(h.m) }
func (h *HashMap[K, V]) IsEmpty() bool { return len(h.m) == 0 }

func (h *HashMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, p := range h.m {
			if !yield(k, *p) {
				return
			}
		}
	}
}

// ReadMap reads a map written by WriteMap into a container obtained from
// newMap: a 48-bit entry count, then count pairs of a NUL-terminated key and
// an 8-byte unsigned value. Values are returned as U64. A repeated key keeps
// the last value.
func ReadMap[M Map[string, anyint.Value]](r io.Reader, o endian.Order, newMap func() M) (M, error) {
	m := newMap()
	count, err := endian.ReadUint48(r, o)
	if err != nil {
		return m, err
	}
	for i := uint64(0); i < count; i++ {
		key, err := ReadCString(r, MapKeyMaxLen)
		if err != nil {
			return m, err
		}
		v, err := endian.ReadUint64(r, o)
		if err != nil {
			return m, err
		}
		m.Insert(key, anyint.FromU64(v))
	}
	return m, nil
}

// WriteMap writes m in the layout ReadMap expects and returns the number of
// bytes written. Every value must be a U64 or I64.
func WriteMap(w io.Writer, o endian.Order, m Map[string, anyint.Value]) (int64, error) {
	for k, v := range m.All() {
		if len(k) > MapKeyMaxLen {
			return 0, codecerr.Newf("write_map", codecerr.ErrLengthExceeded, "key %q is longer than %d bytes", k, MapKeyMaxLen)
		}
		if v.Kind() != anyint.U64 && v.Kind() != anyint.I64 {
			return 0, codecerr.Newf("write_map", codecerr.ErrTypeMismatch, "value for %q is %s, want a 64-bit integer", k, v)
		}
	}

	written, err := anyint.WriteValues(w, []anyint.Value{anyint.FromU48(uint64(m.Len()))}, o)
	if err != nil {
		return written, err
	}
	for k, v := range m.All() {
		n, err := WriteCString(w, k)
		written += n
		if err != nil {
			return written, err
		}
		if err := v.Write(w, o); err != nil {
			return written, err
		}
		written += 8
	}
	return written, nil
}
