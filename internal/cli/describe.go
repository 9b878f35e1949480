package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goBinkit/internal/codec/pattern"
)

var describeFormat string

var describeCmd = &cobra.Command{
	Use:   "describe <layout>",
	Short: "Print the normalized schema of a layout file",
	Long: `Load a layout file, build it, and print its schema together with the
number of bytes one record needs.

Examples:
    binkit describe elf.toml
    binkit describe --format msgpack elf.toml > elf.msgpack`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(describeFormat)
		if err != nil {
			return err
		}
		s, err := loadStruct(args[0])
		if err != nil {
			return err
		}

		data, err := pattern.MarshalSchema(s.Describe(), format)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if format != pattern.FormatJSON {
			_, err = out.Write(data)
			return err
		}
		fmt.Fprintf(out, "%s\n", data)
		fmt.Fprintf(out, "pattern: %s\nrequired bytes: %d\n", s.Pattern(), s.RequiredBytes())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().StringVarP(&describeFormat, "format", "f", "", "output format: json, cbor or msgpack (default from config)")
}
