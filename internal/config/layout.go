package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/LeJamon/goBinkit/internal/codec/pattern"
)

// Layout describes a record layout file consumed by the decode command.
//
//	endian = "le"
//
//	[[fields]]
//	name = "magic"
//	type = "predicate"
//	width = 4
//	predicate = { kind = "equals", value = 0x464C457F }
type Layout struct {
	Endian string        `mapstructure:"endian"`
	Fields []LayoutField `mapstructure:"fields"`
}

// LayoutField is one token of a layout
type LayoutField struct {
	Name      string           `mapstructure:"name"`
	Type      string           `mapstructure:"type"`
	Len       int              `mapstructure:"len"`
	Width     int              `mapstructure:"width"`
	Predicate *LayoutPredicate `mapstructure:"predicate"`
}

// LayoutPredicate configures a predicate field
type LayoutPredicate struct {
	Kind   string   `mapstructure:"kind"`
	Value  uint64   `mapstructure:"value"`
	Values []uint64 `mapstructure:"values"`
	Mask   uint64   `mapstructure:"mask"`
	Name   string   `mapstructure:"name"`
}

// LoadLayout reads a layout from a toml, yaml or json file
func LoadLayout(path string) (*Layout, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("layout file does not exist: %s", path)
	}

	v := viper.New()
	v.SetDefault("endian", "le")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read layout file %s: %w", path, err)
	}

	var layout Layout
	if err := v.Unmarshal(&layout); err != nil {
		return nil, fmt.Errorf("failed to unmarshal layout: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return &layout, nil
}

// Validate checks the parts of a layout that do not depend on pattern
// construction; Build reports the rest
func (l *Layout) Validate() error {
	if len(l.Fields) == 0 {
		return fmt.Errorf("layout has no fields")
	}
	for i, f := range l.Fields {
		if f.Type == "" {
			return fmt.Errorf("field %d: type is required", i)
		}
		if f.Type != "padding" && f.Name == "" {
			return fmt.Errorf("field %d: name is required for %s", i, f.Type)
		}
		if f.Type == "predicate" && f.Predicate == nil {
			return fmt.Errorf("field %q: predicate type needs a predicate table", f.Name)
		}
	}
	return nil
}

// Schema converts the layout to a pattern schema
func (l *Layout) Schema() pattern.Schema {
	sc := pattern.Schema{Endian: l.Endian}
	for _, f := range l.Fields {
		fs := pattern.FieldSchema{Name: f.Name, Type: f.Type, Len: f.Len, Width: f.Width}
		if p := f.Predicate; p != nil {
			fs.Predicate = &pattern.PredicateSchema{
				Kind: p.Kind, Value: p.Value, Values: p.Values, Mask: p.Mask, Name: p.Name,
			}
		}
		sc.Fields = append(sc.Fields, fs)
	}
	return sc
}

// Build converts the layout to a decodable struct
func (l *Layout) Build(funcs map[string]pattern.PredicateFunc) (*pattern.Struct, error) {
	return l.Schema().Build(funcs)
}
