package pattern

import (
	"fmt"
	"iter"
	"slices"

	"github.com/Velocidex/ordereddict"
	"github.com/elliotchance/orderedmap/v3"

	"github.com/LeJamon/goBinkit/internal/codec/anyint"
)

// Record holds the fields of a decoded Struct keyed by name, in declaration
// order. When a name repeats, the later value replaces the earlier one and
// the field keeps its first position.
type Record struct {
	pattern *Pattern
	fields  *orderedmap.OrderedMap[string, anyint.Value]
}

func newRecord(p *Pattern) *Record {
	return &Record{pattern: p, fields: orderedmap.NewOrderedMap[string, anyint.Value]()}
}

func (r *Record) set(name string, v anyint.Value) {
	r.fields.Set(name, v)
}

// Get returns the named field.
func (r *Record) Get(name string) (anyint.Value, bool) {
	return r.fields.Get(name)
}

// MustGet returns the named field and panics if there is none. Use it only
// for names the layout is known to declare.
func (r *Record) MustGet(name string) anyint.Value {
	v, ok := r.fields.Get(name)
	if !ok {
		panic(fmt.Sprintf("pattern: record has no field %q", name))
	}
	return v
}

// Len returns the number of distinct fields.
func (r *Record) Len() int { return r.fields.Len() }

// Names returns the distinct field names in order.
func (r *Record) Names() []string { return slices.Collect(r.fields.Keys()) }

// Values returns the field values in order.
func (r *Record) Values() []anyint.Value { return slices.Collect(r.fields.Values()) }

// All iterates over the fields in order.
func (r *Record) All() iter.Seq2[string, anyint.Value] { return r.fields.AllFromFront() }

// Pattern returns the pattern the record was decoded with.
func (r *Record) Pattern() *Pattern { return r.pattern.Clone() }

// Dict returns the fields as an ordered dictionary of native values, ready
// for JSON rendering. 128-bit values are rendered as decimal strings.
func (r *Record) Dict() *ordereddict.Dict {
	d := ordereddict.NewDict()
	for name, v := range r.fields.AllFromFront() {
		d.Set(name, Native(v))
	}
	return d
}

// Native returns v as a Go value that encodes cleanly in JSON, CBOR and
// MessagePack.
func Native(v anyint.Value) any {
	switch v.Kind() {
	case anyint.U128:
		u, _ := v.Uint128()
		return u.String()
	case anyint.I128:
		i, _ := v.Int128()
		return i.String()
	}
	return v.Interface()
}
