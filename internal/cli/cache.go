package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goBinkit/internal/storage/database/pebble"
	"github.com/LeJamon/goBinkit/internal/storage/scancache"
)

var cacheDir string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the scan result cache",
}

var cacheForgetCmd = &cobra.Command{
	Use:     "forget <file>...",
	Short:   "Remove cached scan results for files",
	Example: `    binkit cache forget --cache .binkit-cache archive.zip`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.Cache.Dir
		if cacheDir != "" {
			dir = cacheDir
		}
		if dir == "" {
			return fmt.Errorf("no cache directory configured")
		}
		c, err := openCache(dir)
		if err != nil {
			return err
		}
		defer c.Close()

		for _, path := range args {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			n, err := c.Forget(cmd.Context(), abs)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d entries removed\n", path, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheForgetCmd)

	cacheCmd.PersistentFlags().StringVar(&cacheDir, "cache", "", "directory of the scan result cache (default from config)")
}

func openCache(dir string) (*scancache.Cache, error) {
	db, err := pebble.Open(dir)
	if err != nil {
		return nil, err
	}
	c, err := scancache.New(db, cfg.Cache.Size)
	if err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}
