package pattern

import (
	"fmt"
	"slices"

	"github.com/LeJamon/goBinkit/internal/codec/anyint"
)

// PredicateFunc evaluates a predicate over the integer read for it. The value
// is a U8, U16, U32 or U64 depending on the token width.
type PredicateFunc func(v anyint.Value) bool

// PredicateKind identifies the variant of a Predicate.
type PredicateKind uint8

const (
	PredEquals PredicateKind = iota + 1
	PredIn
	PredMask
	PredFunc
)

var predicateKindNames = map[PredicateKind]string{
	PredEquals: "equals",
	PredIn:     "in",
	PredMask:   "mask",
	PredFunc:   "func",
}

func (k PredicateKind) String() string {
	if s, ok := predicateKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("PredicateKind(%d)", uint8(k))
}

// Predicate is a boolean test applied to an unsigned integer read from the
// stream. The zero Predicate is invalid.
type Predicate struct {
	kind   PredicateKind
	values []uint64
	mask   uint64
	name   string
	fn     PredicateFunc
}

// Equals matches a single value.
func Equals(v uint64) Predicate {
	return Predicate{kind: PredEquals, values: []uint64{v}}
}

// In matches any of the given values.
func In(values ...uint64) Predicate {
	return Predicate{kind: PredIn, values: slices.Clone(values)}
}

// MaskMatch matches when v&mask == want.
func MaskMatch(mask, want uint64) Predicate {
	return Predicate{kind: PredMask, mask: mask, values: []uint64{want}}
}

// Func wraps an arbitrary test. The name identifies it in schemas.
func Func(name string, fn PredicateFunc) Predicate {
	return Predicate{kind: PredFunc, name: name, fn: fn}
}

// Kind returns the predicate variant.
func (p Predicate) Kind() PredicateKind { return p.kind }

// Name returns the name of a Func predicate.
func (p Predicate) Name() string { return p.name }

// Values returns the operands of an Equals or In predicate, or the expected
// masked value of a MaskMatch.
func (p Predicate) Values() []uint64 { return slices.Clone(p.values) }

// Mask returns the mask of a MaskMatch predicate.
func (p Predicate) Mask() uint64 { return p.mask }

// Eval applies the predicate. raw is the unsigned integer read from the
// stream and v the same integer as a tagged value.
func (p Predicate) Eval(raw uint64, v anyint.Value) bool {
	switch p.kind {
	case PredEquals, PredIn:
		return slices.Contains(p.values, raw)
	case PredMask:
		return raw&p.mask == p.values[0]
	case PredFunc:
		return p.fn != nil && p.fn(v)
	}
	return false
}

func (p Predicate) valid() bool {
	switch p.kind {
	case PredEquals, PredMask:
		return len(p.values) == 1
	case PredIn:
		return true
	case PredFunc:
		return p.fn != nil
	}
	return false
}

func (p Predicate) String() string {
	switch p.kind {
	case PredEquals:
		return fmt.Sprintf("== %#x", p.values[0])
	case PredIn:
		return fmt.Sprintf("in %#x", p.values)
	case PredMask:
		return fmt.Sprintf("& %#x == %#x", p.mask, p.values[0])
	case PredFunc:
		return p.name + "()"
	}
	return "invalid"
}
