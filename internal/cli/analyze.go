package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gobwas/glob"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/project-prism/internal/analyzer"
	"github.com/mvp-joe/project-prism/internal/analyzer/parsers"
	"github.com/mvp-joe/project-prism/internal/cache"
	"github.com/mvp-joe/project-prism/internal/config"
)

var (
	analyzeOperation    string
	analyzeLanguage     string
	analyzeFormat       string
	analyzeMaxDepth     int
	analyzeNoCompact    bool
	analyzeNoSymTable   bool
	analyzeSemanticHash bool
	analyzeKeepText     bool
	analyzeNoCache      bool
	analyzeQuiet        bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <path>",
	Short: "Analyze a source file or directory",
	Long: `Analyze a source file or every matching file under a directory.

Single file output is the operation's JSON response (or the Markdown
outline with --format structure). Directory mode walks the tree using the
configured include/ignore patterns and reports per-file results.

Examples:
  prism analyze src/app.ts
  prism analyze src/app.ts --operation extract_symbols
  prism analyze src/app.ts --operation get_structure --format structure
  prism analyze ./src`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeOperation, "operation", "o", analyzer.OpParse,
		"operation: parse, extract_symbols, extract_imports, extract_exports, get_structure, get_diagnostics")
	analyzeCmd.Flags().StringVarP(&analyzeLanguage, "language", "l", "",
		"language override (default: auto-detect)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "json",
		"output format: json or structure")
	analyzeCmd.Flags().IntVar(&analyzeMaxDepth, "max-depth", -1,
		"truncate the compact tree below this depth (-1 = unlimited)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCompact, "no-compact", false,
		"return the full syntax tree instead of the compacted tree")
	analyzeCmd.Flags().BoolVar(&analyzeNoSymTable, "no-symbol-table", false,
		"disable symbol-table substitution")
	analyzeCmd.Flags().BoolVar(&analyzeSemanticHash, "semantic-hash", false,
		"include a semantic structure hash")
	analyzeCmd.Flags().BoolVar(&analyzeKeepText, "keep-text", false,
		"keep raw text on simple leaf nodes")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false,
		"bypass the result cache")
	analyzeCmd.Flags().BoolVarP(&analyzeQuiet, "quiet", "q", false,
		"suppress progress output in directory mode")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	engine, store, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("cannot analyze %s: %w", args[0], err)
	}

	if info.IsDir() {
		return analyzeDirectory(ctx, engine, cfg, args[0])
	}
	return analyzeFile(ctx, engine, args[0])
}

// buildEngine assembles the engine with the configured parser registry and
// cache store.
func buildEngine(cfg *config.Config) (*analyzer.Engine, cache.Store, error) {
	enabled := cfg.Cache.Enabled && !analyzeNoCache
	store, err := cache.OpenStore(enabled, cfg.Cache.Location, cfg.Cache.MemoryCapacity)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return analyzer.New(cfg, parsers.NewRegistry(cfg), store), store, nil
}

func newAnalyzeRequest(filePath string) analyzer.Request {
	req := analyzer.NewRequest(analyzeOperation, filePath)
	if analyzeLanguage != "" {
		req.Language = analyzeLanguage
	}
	req.Compact = !analyzeNoCompact
	req.UseSymbolTable = !analyzeNoSymTable
	req.MaxDepth = analyzeMaxDepth
	req.IncludeSemanticHash = analyzeSemanticHash
	req.OmitRedundantText = !analyzeKeepText
	return req
}

func analyzeFile(ctx context.Context, engine *analyzer.Engine, filePath string) error {
	resp := engine.Analyze(ctx, newAnalyzeRequest(filePath))

	if analyzeFormat == "structure" {
		if structure, ok := resp.(*analyzer.StructureResponse); ok {
			fmt.Print(structure.Structure)
			return nil
		}
		return fmt.Errorf("--format structure requires --operation get_structure")
	}

	jsonData, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	fmt.Println(string(jsonData))

	if !analyzer.Succeeded(resp) {
		os.Exit(1)
	}
	return nil
}

func analyzeDirectory(ctx context.Context, engine *analyzer.Engine, cfg *config.Config, dir string) error {
	files, err := discoverFiles(dir, cfg.Analyze.Include, cfg.Analyze.Ignore)
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}
	if len(files) == 0 {
		fmt.Println("No matching files found")
		return nil
	}

	var bar *progressbar.ProgressBar
	if !analyzeQuiet {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("Analyzing files"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files/s"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)
	}

	type failure struct {
		path    string
		message string
	}
	var failures []failure
	succeeded := 0
	start := time.Now()

	for _, file := range files {
		resp := engine.Analyze(ctx, newAnalyzeRequest(file))
		if analyzer.Succeeded(resp) {
			succeeded++
		} else {
			failures = append(failures, failure{path: file, message: firstError(resp)})
		}
		if bar != nil {
			bar.Add(1)
		}
	}

	fmt.Printf("✓ Analyzed %d file(s) in %.1fs: %d succeeded, %d failed\n",
		len(files), time.Since(start).Seconds(), succeeded, len(failures))

	for _, f := range failures {
		fmt.Printf("  ✗ %s: %s\n", f.path, f.message)
	}
	if len(failures) > 0 {
		os.Exit(1)
	}
	return nil
}

// discoverFiles walks dir collecting files that match any include pattern
// and no ignore pattern. Patterns match the path relative to dir.
func discoverFiles(dir string, include, ignore []string) ([]string, error) {
	includes, err := compileGlobs(include)
	if err != nil {
		return nil, err
	}
	ignores, err := compileGlobs(ignore)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if matchAny(ignores, rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if matchAny(includes, rel) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// firstError pulls the first error message out of a failed response via its
// JSON shape, which every response type shares.
func firstError(resp any) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return "unknown error"
	}
	var payload struct {
		Errors []struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.Errors) == 0 {
		return "unknown error"
	}
	e := payload.Errors[0]
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}
