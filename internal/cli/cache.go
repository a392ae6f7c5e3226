package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beaconhilldata/earmarker/internal/cache"
)

var (
	clearAll     bool
	clearYear    int
	clearChamber string
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the parsed-artifact cache",
	Long: `Parsed artifacts (segmented amendments, sponsor indexes) never
expire; a cached book is reparsed only after its entries are cleared.`,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached parsed artifacts",
	Long: `Clear cached artifacts for one fiscal year and chamber, or the
whole cache with --all.

Example:
  earmarker cache clear --fiscal-year 2026 --chamber house
  earmarker cache clear --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := cache.Open(cfg.Cache)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}

		if clearAll {
			if err := store.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintln(os.Stderr, "Cache cleared")
			return nil
		}

		if clearYear == 0 || clearChamber == "" {
			return fmt.Errorf("need --fiscal-year and --chamber, or --all")
		}
		ch, err := parseChamber(clearChamber)
		if err != nil {
			return err
		}

		for _, kind := range []string{"amendments", "sponsor_index"} {
			if err := store.Delete(cache.Key(kind, clearYear, string(ch))); err != nil {
				return fmt.Errorf("delete %s entry: %w", kind, err)
			}
		}
		fmt.Fprintf(os.Stderr, "Cleared FY%d %s artifacts\n", clearYear, ch)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cacheClearCmd.Flags().BoolVar(&clearAll, "all", false, "clear every cached artifact")
	cacheClearCmd.Flags().IntVar(&clearYear, "fiscal-year", 0, "fiscal year to clear")
	cacheClearCmd.Flags().StringVar(&clearChamber, "chamber", "", "chamber to clear")
}
