package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/LeJamon/goBinkit/internal/codec/codecerr"
	"github.com/LeJamon/goBinkit/internal/codec/endian"
	"github.com/LeJamon/goBinkit/internal/codec/scan"
	"github.com/LeJamon/goBinkit/internal/storage/scancache"
)

var (
	scanWidth   int
	scanSkip    uint64
	scanLimit   uint64
	scanEndian  string
	scanAll     bool
	scanCache   string
	scanNoCache bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <signature> <file>...",
	Short: "Find a 4 or 8 byte signature in files",
	Long: `Search files for an integer signature and print the offset of each match.

The signature is an integer literal (0x prefix for hex) written to the
stream in the selected byte order. Files are scanned in parallel.

Examples:
    binkit scan 0x06054b50 archive.zip
    binkit scan --all 0x04034b50 a.zip b.zip
    binkit scan --width 64 --endian be 0x89504e470d0a1a0a image.png`,
	Args: cobra.MinimumNArgs(2),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().IntVarP(&scanWidth, "width", "w", 0, "signature width in bits, 32 or 64 (default from config)")
	scanCmd.Flags().Uint64Var(&scanSkip, "skip", 0, "offset to start searching at")
	scanCmd.Flags().Uint64Var(&scanLimit, "limit", 0, "offset to stop searching at, 0 for end of file")
	scanCmd.Flags().StringVarP(&scanEndian, "endian", "e", "", "byte order of the signature: le or be (default from config)")
	scanCmd.Flags().BoolVarP(&scanAll, "all", "a", false, "report every match instead of the first")
	scanCmd.Flags().StringVar(&scanCache, "cache", "", "directory of the scan result cache (default from config)")
	scanCmd.Flags().BoolVar(&scanNoCache, "no-cache", false, "neither read nor update the scan result cache")
}

// scanRequest is a resolved scan invocation
type scanRequest struct {
	sig   uint64
	width int
	opts  scan.Options
	all   bool
	cache *scancache.Cache
}

func newScanRequest(sigText string) (scanRequest, error) {
	req := scanRequest{
		width: cfg.Scan.Width,
		all:   scanAll,
		opts:  scan.Options{Skip: cfg.Scan.Skip, Limit: cfg.Scan.Limit, Order: cfg.Order()},
	}
	if scanWidth != 0 {
		req.width = scanWidth
	}
	if req.width != 32 && req.width != 64 {
		return req, fmt.Errorf("width must be 32 or 64, got %d", req.width)
	}
	if scanEndian != "" {
		o, err := endian.ParseOrder(scanEndian)
		if err != nil {
			return req, err
		}
		req.opts.Order = o
	}
	if scanSkip != 0 {
		req.opts.Skip = scanSkip
	}
	if scanLimit != 0 {
		req.opts.Limit = scanLimit
	}

	sig, err := strconv.ParseUint(sigText, 0, 64)
	if err != nil {
		return req, fmt.Errorf("invalid signature %q: %w", sigText, err)
	}
	if req.width == 32 && sig > math.MaxUint32 {
		return req, fmt.Errorf("signature %#x does not fit in 32 bits", sig)
	}
	req.sig = sig
	return req, nil
}

// run scans a single file. A signature that is not found yields no offsets.
func (req scanRequest) run(ctx context.Context, path string) ([]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if req.cache == nil {
		return req.search(f)
	}

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	key := scancache.Key{
		Path:    abs,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Sig:     req.sig,
		Width:   req.width,
		Order:   req.opts.Order,
		Skip:    req.opts.Skip,
		Limit:   req.opts.Limit,
		All:     req.all,
	}
	if offsets, ok, err := req.cache.Get(ctx, key); err != nil {
		return nil, err
	} else if ok {
		slog.Debug("Scan cache hit", "path", path)
		return offsets, nil
	}

	offsets, err := req.search(f)
	if err != nil {
		return nil, err
	}
	return offsets, req.cache.Put(ctx, key, offsets)
}

func (req scanRequest) search(f *os.File) ([]uint64, error) {
	if req.all {
		if req.width == 32 {
			return scan.FindAll32(f, uint32(req.sig), req.opts.Order)
		}
		return scan.FindAll64(f, req.sig, req.opts.Order)
	}

	var (
		off uint64
		err error
	)
	if req.width == 32 {
		off, err = scan.Find32(f, uint32(req.sig), req.opts)
	} else {
		off, err = scan.Find64(f, req.sig, req.opts)
	}
	if errors.Is(err, codecerr.ErrEndOfStream) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []uint64{off}, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	req, err := newScanRequest(args[0])
	if err != nil {
		return err
	}
	if !scanNoCache {
		dir := cfg.Cache.Dir
		if scanCache != "" {
			dir = scanCache
		}
		if dir != "" {
			c, err := openCache(dir)
			if err != nil {
				return err
			}
			defer c.Close()
			req.cache = c
		}
	}

	files := args[1:]
	results := make([][]uint64, len(files))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.WorkerCount())
	for i, path := range files {
		g.Go(func() error {
			offsets, err := req.run(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			slog.Debug("Scanned file", "path", path, "matches", len(offsets))
			results[i] = offsets
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, path := range files {
		if len(results[i]) == 0 {
			fmt.Fprintf(out, "%s\tnot found\n", path)
			continue
		}
		for _, off := range results[i] {
			fmt.Fprintf(out, "%s\t%#x\n", path, off)
		}
	}
	return nil
}
