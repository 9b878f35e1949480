package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"lukechampine.com/uint128"

	"github.com/LeJamon/goBinkit/internal/codec/varint"
)

var varintWidth int

var varintCmd = &cobra.Command{
	Use:   "varint",
	Short: "Encode and decode LEB128 varints",
}

var varintEncodeCmd = &cobra.Command{
	Use:   "encode <value>",
	Short: "Print the varint encoding of an unsigned integer as hex",
	Example: `    binkit varint encode 300
    binkit varint encode --width 16 0xffff`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enc, err := encodeVarint(args[0], varintWidth)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(enc))
		return nil
	},
}

var varintDecodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Decode a hex encoded varint",
	Example: `    binkit varint decode ac02
    binkit varint decode --width 128 ffffffffffffffffffffffffffffffffffff03`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
		if err != nil {
			return fmt.Errorf("invalid hex: %w", err)
		}
		value, n, err := decodeVarint(data, varintWidth)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", value, n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(varintCmd)
	varintCmd.AddCommand(varintEncodeCmd, varintDecodeCmd)

	varintCmd.PersistentFlags().IntVarP(&varintWidth, "width", "w", 64, "integer width in bits: 8, 16, 32, 64 or 128")
}

func encodeVarint(text string, width int) ([]byte, error) {
	if width == 128 {
		v, err := uint128.FromString(text)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", text, err)
		}
		return varint.EncodeUint128(v, make([]byte, varint.MaxLen128)), nil
	}

	if width != 8 && width != 16 && width != 32 && width != 64 {
		return nil, fmt.Errorf("unsupported width %d", width)
	}
	v, err := strconv.ParseUint(text, 0, width)
	if err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", text, err)
	}
	switch width {
	case 8:
		return varint.Append(nil, uint8(v)), nil
	case 16:
		return varint.Append(nil, uint16(v)), nil
	case 32:
		return varint.Append(nil, uint32(v)), nil
	}
	return varint.Append(nil, v), nil
}

func decodeVarint(data []byte, width int) (string, int, error) {
	switch width {
	case 8:
		v, n, err := varint.Decode[uint8](data)
		return strconv.FormatUint(uint64(v), 10), n, err
	case 16:
		v, n, err := varint.Decode[uint16](data)
		return strconv.FormatUint(uint64(v), 10), n, err
	case 32:
		v, n, err := varint.Decode[uint32](data)
		return strconv.FormatUint(uint64(v), 10), n, err
	case 64:
		v, n, err := varint.Decode[uint64](data)
		return strconv.FormatUint(v, 10), n, err
	case 128:
		v, n, err := varint.DecodeUint128(data)
		return v.String(), n, err
	}
	return "", 0, fmt.Errorf("unsupported width %d", width)
}
