package pattern

import (
	"fmt"
	"strings"

	"github.com/ugorji/go/codec"

	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
	"github.com/LeJamon/goBinkit/internal/codec/endian"
)

// Schema is the serializable description of a Struct.
type Schema struct {
	Endian string        `codec:"endian" json:"endian"`
	Fields []FieldSchema `codec:"fields" json:"fields"`
}

// FieldSchema describes one token. Name is empty for padding.
type FieldSchema struct {
	Name      string           `codec:"name,omitempty" json:"name,omitempty"`
	Type      string           `codec:"type" json:"type"`
	Len       int              `codec:"len,omitempty" json:"len,omitempty"`
	Width     int              `codec:"width,omitempty" json:"width,omitempty"`
	Predicate *PredicateSchema `codec:"predicate,omitempty" json:"predicate,omitempty"`
}

// PredicateSchema describes a predicate. Func predicates are described by
// name only and must be supplied again to Build.
type PredicateSchema struct {
	Kind   string   `codec:"kind" json:"kind"`
	Value  uint64   `codec:"value,omitempty" json:"value,omitempty"`
	Values []uint64 `codec:"values,omitempty" json:"values,omitempty"`
	Mask   uint64   `codec:"mask,omitempty" json:"mask,omitempty"`
	Name   string   `codec:"name,omitempty" json:"name,omitempty"`
}

// Describe returns the schema of s.
func (s *Struct) Describe() Schema {
	sc := Schema{Endian: s.pattern.order.String()}
	names := s.names
	for _, t := range s.pattern.tokens {
		f := FieldSchema{Type: t.kind.String()}
		switch t.kind {
		case KindPadding:
			f.Len = t.n
		case KindPredicate:
			f.Width = t.n
			f.Predicate = describePredicate(t.pred)
		}
		if t.ProducesValue() && len(names) > 0 {
			f.Name, names = names[0], names[1:]
		}
		sc.Fields = append(sc.Fields, f)
	}
	return sc
}

func describePredicate(p Predicate) *PredicateSchema {
	ps := &PredicateSchema{Kind: p.kind.String()}
	switch p.kind {
	case PredEquals:
		ps.Value = p.values[0]
	case PredIn:
		ps.Values = p.Values()
	case PredMask:
		ps.Mask = p.mask
		ps.Value = p.values[0]
	case PredFunc:
		ps.Name = p.name
	}
	return ps
}

// Build turns the schema back into a Struct. funcs supplies the functions of
// Func predicates by name.
func (sc Schema) Build(funcs map[string]PredicateFunc) (*Struct, error) {
	const op = "build_schema"

	o, err := endian.ParseOrder(sc.Endian)
	if err != nil {
		return nil, codecerr.New(op, codecerr.ErrInvalidPattern, err)
	}
	s := NewStruct(o)
	for i, f := range sc.Fields {
		k, err := ParseKind(f.Type)
		if err != nil {
			return nil, codecerr.Newf(op, codecerr.ErrInvalidPattern, "field %d: %w", i, err)
		}
		switch {
		case k == KindPadding:
			if f.Len < 0 {
				return nil, codecerr.Newf(op, codecerr.ErrInvalidPattern, "field %d: negative padding %d", i, f.Len)
			}
			s.AddPadding(f.Len)
		case k == KindPredicate:
			if f.Predicate == nil {
				return nil, codecerr.Newf(op, codecerr.ErrInvalidPattern, "field %d (%s): missing predicate", i, f.Name)
			}
			pred, err := f.Predicate.build(funcs)
			if err != nil {
				return nil, codecerr.Newf(op, codecerr.ErrInvalidPattern, "field %d (%s): %w", i, f.Name, err)
			}
			s.AddPredicateField(f.Name, f.Width, pred)
		default:
			s.AddField(f.Name, k)
		}
	}
	return s, nil
}

func (ps *PredicateSchema) build(funcs map[string]PredicateFunc) (Predicate, error) {
	switch strings.ToLower(ps.Kind) {
	case "equals":
		return Equals(ps.Value), nil
	case "in":
		return In(ps.Values...), nil
	case "mask":
		return MaskMatch(ps.Mask, ps.Value), nil
	case "func":
		fn, ok := funcs[ps.Name]
		if !ok {
			return Predicate{}, fmt.Errorf("no function registered as %q", ps.Name)
		}
		return Func(ps.Name, fn), nil
	}
	return Predicate{}, fmt.Errorf("unknown predicate kind %q", ps.Kind)
}

// Format is a schema serialization format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatCBOR    Format = "cbor"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat parses "json", "cbor" or "msgpack".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatCBOR, FormatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Handle returns the ugorji codec handle for f.
func (f Format) Handle() (codec.Handle, error) {
	switch f {
	case FormatJSON:
		h := &codec.JsonHandle{}
		h.Indent = 2
		h.HTMLCharsAsIs = true
		return h, nil
	case FormatCBOR:
		return &codec.CborHandle{}, nil
	case FormatMsgpack:
		h := &codec.MsgpackHandle{}
		h.WriteExt = true
		return h, nil
	}
	return nil, fmt.Errorf("unknown format %q", string(f))
}

// Encode serializes v in format f.
func Encode(v any, f Format) ([]byte, error) {
	h, err := f.Handle()
	if err != nil {
		return nil, err
	}
	var out []byte
	if err := codec.NewEncoderBytes(&out, h).Encode(v); err != nil {
		return nil, fmt.Errorf("encode %s: %w", f, err)
	}
	return out, nil
}

// MarshalSchema serializes sc in format f.
func MarshalSchema(sc Schema, f Format) ([]byte, error) {
	return Encode(sc, f)
}

// UnmarshalSchema parses a schema serialized in format f.
func UnmarshalSchema(data []byte, f Format) (Schema, error) {
	h, err := f.Handle()
	if err != nil {
		return Schema{}, err
	}
	var sc Schema
	if err := codec.NewDecoderBytes(data, h).Decode(&sc); err != nil {
		return Schema{}, fmt.Errorf("decode %s schema: %w", f, err)
	}
	return sc, nil
}
