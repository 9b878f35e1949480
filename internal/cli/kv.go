package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Velocidex/ordereddict"
	"github.com/spf13/cobra"

	"github.com/LeJamon/goBinkit/internal/codec/anyint"
	"github.com/LeJamon/goBinkit/internal/codec/endian"
	"github.com/LeJamon/goBinkit/internal/codec/lp"
)

var (
	mapOffset int64
	mapEndian string
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Read and write string to integer maps",
	Long: `A map is a 48-bit entry count followed by that many pairs of a
NUL-terminated key and an unsigned 64-bit value.`,
}

var mapReadCmd = &cobra.Command{
	Use:     "read <file>",
	Short:   "Print a map as JSON",
	Example: `    binkit map read --offset 0x100 index.bin`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := mapOrder()
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := f.Seek(mapOffset, io.SeekStart); err != nil {
			return err
		}

		m, err := lp.ReadMap(bufio.NewReader(f), o, lp.NewOrderedMap[string, anyint.Value])
		if err != nil {
			return err
		}
		d := ordereddict.NewDict()
		for k, v := range m.All() {
			d.Set(k, v.Interface())
		}
		data, err := d.MarshalJSON()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	},
}

var mapWriteCmd = &cobra.Command{
	Use:     "write <file> <key=value>...",
	Short:   "Write a map, keeping the order of the arguments",
	Example: `    binkit map write index.bin header=0 body=64 trailer=4096`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := mapOrder()
		if err != nil {
			return err
		}
		m, err := parsePairs(args[1:])
		if err != nil {
			return err
		}

		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		n, err := lp.WriteMap(f, o, m)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d entries, %d bytes to %s\n", m.Len(), n, args[0])
		return f.Close()
	},
}

func init() {
	rootCmd.AddCommand(mapCmd)
	mapCmd.AddCommand(mapReadCmd, mapWriteCmd)

	mapCmd.PersistentFlags().StringVarP(&mapEndian, "endian", "e", "", "byte order (default from config)")
	mapReadCmd.Flags().Int64Var(&mapOffset, "offset", 0, "offset of the map in the file")
}

func mapOrder() (endian.Order, error) {
	if mapEndian == "" {
		return cfg.Order(), nil
	}
	return endian.ParseOrder(mapEndian)
}

// parsePairs parses key=value arguments. Negative values are stored as I64.
func parsePairs(args []string) (*lp.OrderedMap[string, anyint.Value], error) {
	m := lp.NewOrderedMap[string, anyint.Value]()
	for _, arg := range args {
		key, text, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		if strings.HasPrefix(text, "-") {
			v, err := strconv.ParseInt(text, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			m.Insert(key, anyint.FromI64(v))
			continue
		}
		v, err := strconv.ParseUint(text, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		m.Insert(key, anyint.FromU64(v))
	}
	return m, nil
}
