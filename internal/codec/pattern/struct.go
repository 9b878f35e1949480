package pattern

import (
	"io"
	"slices"

	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
	"github.com/LeJamon/goBinkit/internal/codec/endian"
)

// Struct is a Pattern whose value-producing tokens are bound, in order, to
// field names. Names need not be unique; see Record.
type Struct struct {
	pattern *Pattern
	names   []string
}

// NewStruct returns an empty struct layout in the given byte order.
func NewStruct(o endian.Order) *Struct {
	return &Struct{pattern: New(o)}
}

// StructFromPattern binds names to the value-producing tokens of p. It fails
// with ErrInvalidPattern if the counts differ.
func StructFromPattern(p *Pattern, names []string) (*Struct, error) {
	if n := p.Outputs(); n != len(names) {
		return nil, codecerr.Newf("struct_from_pattern", codecerr.ErrInvalidPattern, "%d value tokens but %d names", n, len(names))
	}
	return &Struct{pattern: p.Clone(), names: slices.Clone(names)}, nil
}

func (s *Struct) field(name string, t Token) *Struct {
	s.pattern.add(t)
	s.names = append(s.names, name)
	return s
}

func (s *Struct) AddBoolField(name string) *Struct { return s.field(name, Primitive(KindBool)) }
func (s *Struct) AddU8Field(name string) *Struct   { return s.field(name, Primitive(KindU8)) }
func (s *Struct) AddU16Field(name string) *Struct  { return s.field(name, Primitive(KindU16)) }
func (s *Struct) AddU32Field(name string) *Struct  { return s.field(name, Primitive(KindU32)) }
func (s *Struct) AddU48Field(name string) *Struct  { return s.field(name, Primitive(KindU48)) }
func (s *Struct) AddU64Field(name string) *Struct  { return s.field(name, Primitive(KindU64)) }
func (s *Struct) AddU128Field(name string) *Struct { return s.field(name, Primitive(KindU128)) }
func (s *Struct) AddI8Field(name string) *Struct   { return s.field(name, Primitive(KindI8)) }
func (s *Struct) AddI16Field(name string) *Struct  { return s.field(name, Primitive(KindI16)) }
func (s *Struct) AddI32Field(name string) *Struct  { return s.field(name, Primitive(KindI32)) }
func (s *Struct) AddI48Field(name string) *Struct  { return s.field(name, Primitive(KindI48)) }
func (s *Struct) AddI64Field(name string) *Struct  { return s.field(name, Primitive(KindI64)) }
func (s *Struct) AddI128Field(name string) *Struct { return s.field(name, Primitive(KindI128)) }
func (s *Struct) AddUintField(name string) *Struct { return s.field(name, Primitive(KindUint)) }

// AddPredicateField appends a Bool field computed by pred over a width-byte
// unsigned integer.
func (s *Struct) AddPredicateField(name string, width int, pred Predicate) *Struct {
	return s.field(name, Predicated(width, pred))
}

// AddField appends a primitive field of kind k.
func (s *Struct) AddField(name string, k Kind) *Struct {
	return s.field(name, Primitive(k))
}

// AddPadding appends n skipped bytes. Padding has no name.
func (s *Struct) AddPadding(n int) *Struct {
	s.pattern.add(Padding(n))
	return s
}

// Order returns the byte order of the layout.
func (s *Struct) Order() endian.Order { return s.pattern.order }

// Pattern returns a copy of the underlying pattern.
func (s *Struct) Pattern() *Pattern { return s.pattern.Clone() }

// Names returns the field names in declaration order, duplicates included.
func (s *Struct) Names() []string { return slices.Clone(s.names) }

// RequiredBytes returns the number of stream bytes Decode consumes.
func (s *Struct) RequiredBytes() int { return s.pattern.RequiredBytes() }

// Decode decodes one instance of the layout from r.
func (s *Struct) Decode(r io.Reader) (*Record, error) {
	values, err := s.pattern.Decode(r)
	if err != nil {
		return nil, err
	}
	rec := newRecord(s.pattern.Clone())
	for i, name := range s.names {
		rec.set(name, values[i])
	}
	return rec, nil
}
