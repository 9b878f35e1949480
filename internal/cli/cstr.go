package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goBinkit/internal/codec/lp"
)

var (
	cstrOffset int64
	cstrCount  int
	cstrMaxLen int
)

var cstrCmd = &cobra.Command{
	Use:   "cstr <file>",
	Short: "Print consecutive NUL-terminated strings",
	Long: `Read NUL-terminated UTF-8 strings starting at an offset. A string longer
than max-len bytes is an error.`,
	Example: `    binkit cstr --offset 0x2a0 --count 3 /bin/ls`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxLen := cfg.CString.MaxLen
		if cstrMaxLen > 0 {
			maxLen = cstrMaxLen
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := f.Seek(cstrOffset, io.SeekStart); err != nil {
			return err
		}
		r := bufio.NewReader(f)

		out := cmd.OutOrStdout()
		for i := 0; i < cstrCount; i++ {
			s, err := lp.ReadCString(r, maxLen)
			if err != nil {
				return fmt.Errorf("string %d: %w", i, err)
			}
			fmt.Fprintln(out, strconv.Quote(s))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cstrCmd)

	cstrCmd.Flags().Int64Var(&cstrOffset, "offset", 0, "offset of the first string")
	cstrCmd.Flags().IntVarP(&cstrCount, "count", "n", 1, "number of strings to read")
	cstrCmd.Flags().IntVar(&cstrMaxLen, "max-len", 0, "maximum bytes per string, terminator excluded (default from config)")
}
