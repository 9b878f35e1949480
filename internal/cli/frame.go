package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goBinkit/internal/codec/endian"
	"github.com/LeJamon/goBinkit/internal/codec/lp"
)

var (
	frameWidth    int
	frameEndian   string
	frameCompress string
	frameLevel    int
	frameOut      string
)

var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "Pack and unpack length-prefixed, compressed frames",
	Long: `Each frame is laid out as

    [algorithm u8][raw length][length prefix][compressed body]

where both lengths use the configured prefix width and byte order.
Payloads that do not shrink are stored uncompressed.`,
}

var framePackCmd = &cobra.Command{
	Use:   "pack -o <out> <file>...",
	Short: "Write each input file as one frame",
	Example: `    binkit frame pack -o bundle.bin --compress zstd a.json b.json
    binkit frame pack -o small.bin --width 16 --compress lz4 notes.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFramePack,
}

var frameUnpackCmd = &cobra.Command{
	Use:   "unpack <file>",
	Short: "List the frames of a file, or extract them with -o",
	Example: `    binkit frame unpack bundle.bin
    binkit frame unpack -o extracted/ bundle.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runFrameUnpack,
}

func init() {
	rootCmd.AddCommand(frameCmd)
	frameCmd.AddCommand(framePackCmd, frameUnpackCmd)

	frameCmd.PersistentFlags().IntVarP(&frameWidth, "width", "w", 0, "length prefix width in bits: 8, 16, 32 or 64 (default from config)")
	frameCmd.PersistentFlags().StringVarP(&frameEndian, "endian", "e", "", "byte order of the prefixes (default from config)")
	frameCmd.PersistentFlags().StringVarP(&frameOut, "out", "o", "", "output file for pack, output directory for unpack")
	framePackCmd.Flags().StringVarP(&frameCompress, "compress", "c", "", "compression algorithm (default from config)")
	framePackCmd.Flags().IntVar(&frameLevel, "level", -1, "compression level, 0 for the algorithm default (default from config)")
	_ = framePackCmd.MarkFlagRequired("out")
}

func resolveFrame() (lp.Frame, error) {
	f := cfg.Frame()
	if frameWidth != 0 {
		f.Width = lp.Width(frameWidth)
		if frameWidth > 64 || !f.Width.Valid() {
			return f, fmt.Errorf("width must be 8, 16, 32 or 64, got %d", frameWidth)
		}
	}
	if frameEndian != "" {
		o, err := endian.ParseOrder(frameEndian)
		if err != nil {
			return f, err
		}
		f.Order = o
	}
	return f, nil
}

func runFramePack(cmd *cobra.Command, args []string) error {
	f, err := resolveFrame()
	if err != nil {
		return err
	}
	algorithm, level := cfg.LP.Compression, cfg.LP.Level
	if frameCompress != "" {
		algorithm = frameCompress
	}
	if frameLevel >= 0 {
		level = frameLevel
	}

	out, err := os.Create(frameOut)
	if err != nil {
		return err
	}
	defer out.Close()
	w := bufio.NewWriter(out)

	var total int64
	for _, path := range args {
		payload, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		n, err := lp.WriteCompressed(w, f, algorithm, level, payload)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		slog.Debug("Packed frame", "path", path, "raw", len(payload), "framed", n)
		total += n
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames, %d bytes to %s\n", len(args), total, frameOut)
	return out.Close()
}

func runFrameUnpack(cmd *cobra.Command, args []string) error {
	f, err := resolveFrame()
	if err != nil {
		return err
	}
	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()
	r := bufio.NewReader(in)

	if frameOut != "" {
		if err := os.MkdirAll(frameOut, 0o755); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for i := 0; ; i++ {
		if _, err := r.Peek(1); err == io.EOF {
			return nil
		}
		payload, err := lp.ReadCompressed(r, f)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if frameOut == "" {
			fmt.Fprintf(out, "%d\t%d\n", i, len(payload))
			continue
		}
		name := filepath.Join(frameOut, fmt.Sprintf("frame-%03d.bin", i))
		if err := os.WriteFile(name, payload, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d\t%d\t%s\n", i, len(payload), name)
	}
}
