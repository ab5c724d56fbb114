package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/project-prism/internal/cache"
	"github.com/mvp-joe/project-prism/internal/config"
)

// cacheCmd represents the cache command group
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the analysis result cache",
	Long: `Manage the SQLite cache of analysis results.

Available commands:
  stats  - Show cached entry counts per language
  clear  - Remove every cached entry`,
}

// cacheStatsCmd shows per-language entry counts
var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cached entry counts per language",
	RunE:  runCacheStats,
}

// cacheClearCmd removes every cached entry
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached entry",
	RunE:  runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

// openCacheDB opens the configured SQLite cache directly, bypassing the
// memory tier; maintenance operates on the persistent store.
func openCacheDB() (*cache.SQLiteStore, string, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load configuration: %w", err)
	}

	location := cfg.Cache.Location
	if location == "" {
		location = cache.DefaultLocation()
	}

	store, err := cache.NewSQLiteStore(location)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open cache: %w", err)
	}
	return store, location, nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	store, location, err := openCacheDB()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("failed to read cache stats: %w", err)
	}

	fmt.Printf("Cache Location: %s\n", location)
	if len(stats) == 0 {
		fmt.Println("No cached entries")
		return nil
	}

	languages := make([]string, 0, len(stats))
	total := 0
	for language, count := range stats {
		languages = append(languages, language)
		total += count
	}
	sort.Strings(languages)

	fmt.Println()
	fmt.Printf("%-15s %s\n", "Language", "Entries")
	fmt.Println("-----------------------")
	for _, language := range languages {
		fmt.Printf("%-15s %d\n", language, stats[language])
	}
	fmt.Println()
	fmt.Printf("Total: %d entries\n", total)

	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	store, location, err := openCacheDB()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	fmt.Printf("Cleared cache at %s\n", location)
	if verbose {
		fmt.Fprintln(os.Stderr, "Entries are rebuilt on the next analysis")
	}
	return nil
}
