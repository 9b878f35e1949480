package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goBinkit/internal/codec/anyint"
	"github.com/LeJamon/goBinkit/internal/codec/pattern"
	"github.com/LeJamon/goBinkit/internal/config"
)

var (
	decodeLayout string
	decodeOffset int64
	decodeCount  int
	decodeFormat string
)

// predicateFuncs are the named predicates a layout file can refer to
var predicateFuncs = map[string]pattern.PredicateFunc{
	"nonzero": func(v anyint.Value) bool { return widen(v) != 0 },
	"odd":     func(v anyint.Value) bool { return widen(v)%2 == 1 },
	"even":    func(v anyint.Value) bool { return widen(v)%2 == 0 },
}

// widen returns the unsigned integer a predicate was evaluated on.
func widen(v anyint.Value) uint64 {
	switch n := v.Interface().(type) {
	case uint8:
		return uint64(n)
	case uint16:
		return uint64(n)
	case uint32:
		return uint64(n)
	case uint64:
		return n
	}
	return 0
}

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode --layout <file> <data-file>",
	Short: "Decode records from a binary file",
	Long: `Decode one or more consecutive records described by a layout file.

JSON output keeps the field order of the layout. CBOR and MessagePack
output is written as raw bytes.

Examples:
    binkit decode --layout elf.toml /bin/ls
    binkit decode --layout entry.yaml --offset 0x40 --count 4 table.bin
    binkit decode --layout entry.json --format cbor data.bin > out.cbor`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVarP(&decodeLayout, "layout", "l", "", "layout file (toml, yaml or json)")
	decodeCmd.Flags().Int64Var(&decodeOffset, "offset", 0, "offset of the first record")
	decodeCmd.Flags().IntVarP(&decodeCount, "count", "n", 1, "number of records to decode, 0 for all until end of file")
	decodeCmd.Flags().StringVarP(&decodeFormat, "format", "f", "", "output format: json, cbor or msgpack (default from config)")
	_ = decodeCmd.MarkFlagRequired("layout")
}

func loadStruct(path string) (*pattern.Struct, error) {
	layout, err := config.LoadLayout(path)
	if err != nil {
		return nil, err
	}
	return layout.Build(predicateFuncs)
}

func outputFormat(flag string) (pattern.Format, error) {
	if flag == "" {
		return cfg.OutputFormat(), nil
	}
	return pattern.ParseFormat(flag)
}

func runDecode(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(decodeFormat)
	if err != nil {
		return err
	}
	s, err := loadStruct(decodeLayout)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Seek(decodeOffset, io.SeekStart); err != nil {
		return err
	}

	records, err := decodeRecords(bufio.NewReader(f), s, decodeCount)
	if err != nil {
		return err
	}
	return writeRecords(cmd.OutOrStdout(), records, format)
}

// decodeRecords decodes count records, or every complete record when count is 0.
func decodeRecords(r *bufio.Reader, s *pattern.Struct, count int) ([]*pattern.Record, error) {
	var records []*pattern.Record
	for i := 0; count == 0 || i < count; i++ {
		if count == 0 {
			if _, err := r.Peek(1); err == io.EOF {
				break
			}
		}
		rec, err := s.Decode(r)
		if err != nil {
			return records, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func writeRecords(w io.Writer, records []*pattern.Record, format pattern.Format) error {
	if format == pattern.FormatJSON {
		for _, rec := range records {
			data, err := rec.Dict().MarshalJSON()
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
				return err
			}
		}
		return nil
	}

	native := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		m := make(map[string]any, rec.Len())
		for name, v := range rec.All() {
			m[name] = pattern.Native(v)
		}
		native = append(native, m)
	}
	data, err := pattern.Encode(native, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
