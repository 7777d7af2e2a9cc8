package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jadenpxrk/promptpack/internal/assemble"
	"github.com/jadenpxrk/promptpack/internal/classify"
	"github.com/jadenpxrk/promptpack/internal/extract"
	"github.com/jadenpxrk/promptpack/internal/logging"
)

const appName = "promptpack"

// version is the application version, set via ldflags.
var version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "promptpack [ROOT]",
	Short: "Pack a project into a single Markdown prompt for an LLM.",
	Long: `promptpack scans a project directory (or a git URL), includes code files in
full, truncates other text files to their first and last lines, leaves out
binary and private files, redacts secrets, and writes one Markdown document
to stdout or a file. The document is also copied to the clipboard.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := logging.Setup(viper.GetBool("debug"), appName, version)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions(args)
		if err != nil {
			return err
		}
		return run(cmd.Context(), opts, logging.Logger, cmd.OutOrStdout(), os.Stderr)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", appName, version, runtime.Version())
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/promptpack/config.toml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Verbose logging to stderr")
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	f := rootCmd.Flags()

	// Input
	f.String("root", ".", "Project root to scan (a git URL is cloned first)")
	viper.BindPFlag("root", f.Lookup("root"))
	f.StringSlice("include", nil, "Only include files matching this glob (repeatable, e.g. *.go)")
	viper.BindPFlag("include", f.Lookup("include"))
	f.StringSlice("exclude", nil, "Additional directory name to exclude (repeatable)")
	viper.BindPFlag("exclude", f.Lookup("exclude"))
	f.Bool("follow-symlinks", false, "Descend into symlinked directories")
	viper.BindPFlag("follow_symlinks", f.Lookup("follow-symlinks"))
	f.Bool("hide-empty", false, "Skip empty files")
	viper.BindPFlag("hide_empty", f.Lookup("hide-empty"))
	f.Bool("no-ignore", false, "Don't respect the root .gitignore")
	viper.BindPFlag("no_ignore", f.Lookup("no-ignore"))
	f.Bool("interactive", false, "Pick the files to include with a fuzzy finder")
	viper.BindPFlag("interactive", f.Lookup("interactive"))
	f.StringSlice("doc-url", nil, "Documentation page to fetch and append as Markdown (repeatable)")
	viper.BindPFlag("doc_url", f.Lookup("doc-url"))
	f.Int("doc-depth", 0, "Follow same-host links from --doc-url pages this many levels deep")
	viper.BindPFlag("doc_depth", f.Lookup("doc-depth"))
	f.String("languages", "", "languages.yml with extra extensions and file names")
	viper.BindPFlag("languages", f.Lookup("languages"))

	// Content
	f.String("mode", string(assemble.ModeExport), "Prompt mode: export, ack or describe")
	viper.BindPFlag("mode", f.Lookup("mode"))
	f.Int("truncate-n", extract.DefaultWindow, "Lines kept at the start and end of non-code text files")
	viper.BindPFlag("truncate_n", f.Lookup("truncate-n"))
	f.String("sort", string(assemble.SortByPath), "File order: name, path or none")
	viper.BindPFlag("sort", f.Lookup("sort"))
	f.Bool("include-private", false, "Include private files (.env, keys, credentials), truncated")
	viper.BindPFlag("include_private", f.Lookup("include-private"))
	f.Bool("no-redact", false, "Don't redact secrets")
	viper.BindPFlag("no_redact", f.Lookup("no-redact"))

	// Output
	f.StringP("out", "o", "-", "Output file, or '-' for stdout")
	viper.BindPFlag("out", f.Lookup("out"))
	f.Bool("no-clipboard", false, "Don't copy the document to the clipboard")
	viper.BindPFlag("no_clipboard", f.Lookup("no-clipboard"))
	f.String("pdf", "", "Also save the document as a PDF")
	viper.BindPFlag("pdf", f.Lookup("pdf"))

	// Token estimate
	f.String("tokenizer", "tiktoken", "Tokenizer for the estimate: tiktoken, huggingface or none")
	viper.BindPFlag("tokenizer", f.Lookup("tokenizer"))
	f.String("model", "", "Model name for the tokenizer (e.g. gpt-4o, gpt2)")
	viper.BindPFlag("model", f.Lookup("model"))
	f.String("tokenizer-file", "", "Path to a local tokenizer.json")
	viper.BindPFlag("tokenizer_file", f.Lookup("tokenizer-file"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("PROMPTPACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
		}
	}
}

// resolveOptions turns the merged viper state into runOptions. A positional
// ROOT wins over --root.
func resolveOptions(args []string) (runOptions, error) {
	mode, err := assemble.ParseMode(viper.GetString("mode"))
	if err != nil {
		return runOptions{}, err
	}
	order, err := assemble.ParseSortOrder(viper.GetString("sort"))
	if err != nil {
		return runOptions{}, err
	}
	n := viper.GetInt("truncate_n")
	if n <= 0 {
		return runOptions{}, fmt.Errorf("--truncate-n must be positive, got %d", n)
	}

	opts := runOptions{
		Root:           viper.GetString("root"),
		Out:            viper.GetString("out"),
		Mode:           mode,
		Sort:           order,
		TruncateN:      n,
		Includes:       viper.GetStringSlice("include"),
		Excludes:       viper.GetStringSlice("exclude"),
		FollowSymlinks: viper.GetBool("follow_symlinks"),
		HideEmpty:      viper.GetBool("hide_empty"),
		NoIgnore:       viper.GetBool("no_ignore"),
		IncludePrivate: viper.GetBool("include_private"),
		Redact:         !viper.GetBool("no_redact"),
		Clipboard:      !viper.GetBool("no_clipboard"),
		Interactive:    viper.GetBool("interactive"),
		PDFFile:        viper.GetString("pdf"),
		DocURLs:        viper.GetStringSlice("doc_url"),
		DocDepth:       viper.GetInt("doc_depth"),
		Tokenizer:      viper.GetString("tokenizer"),
		Model:          viper.GetString("model"),
		TokenizerFile:  viper.GetString("tokenizer_file"),
		LanguagesFile:  viper.GetString("languages"),
		Debug:          viper.GetBool("debug"),
	}
	if len(args) == 1 {
		opts.Root = args[0]
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	return opts, nil
}

// run executes one export. Only failing to list the files or to write an
// output is returned as an error; everything else is logged and skipped.
func run(ctx context.Context, opts runOptions, logger *zap.Logger, stdout io.Writer, stderr *os.File) error {
	displayRoot := opts.Root
	if isGitURL(opts.Root) {
		dir, err := cloneRepo(ctx, opts.Root, logger)
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)
		opts.Root = dir
	} else if abs, err := filepath.Abs(opts.Root); err == nil {
		displayRoot = abs
	}

	classifier := classify.New(loadTables(opts.LanguagesFile, logger))

	entries, err := collectFiles(opts, logger)
	if err != nil {
		return err
	}
	assemble.SortEntries(entries, opts.Sort)

	if opts.Interactive {
		entries, err = pickEntries(entries, classifier)
		if errors.Is(err, errPickerAborted) {
			logger.Info("Interactive selection aborted")
			return nil
		}
		if err != nil {
			return err
		}
	}
	if len(opts.DocURLs) > 0 {
		entries = append(entries, newPageFetcher(opts.DocDepth, logger).fetchAll(ctx, opts.DocURLs)...)
	}
	logger.Debug("Collected files", zap.String("root", displayRoot), zap.Int("count", len(entries)))

	doc := assemble.New(opts.assembleOptions(displayRoot), classifier, logger).Build(entries)

	tk, err := newTokenizer(opts.Tokenizer, opts.Model, opts.TokenizerFile, logger)
	if err != nil {
		logger.Warn("Token estimate disabled", zap.Error(err))
	} else if tk != nil {
		doc.Tokens = tk.CountTokens(doc.Body())
	}

	md := doc.Markdown()
	if err := writeOutput(md, opts.Out, stdout); err != nil {
		return err
	}
	logger.Info("Document written",
		zap.String("out", opts.Out),
		zap.Int("files", doc.Stats.Files),
		zap.Int("skipped_private", doc.Stats.SkippedPrivate),
		zap.Int("redacted", doc.Stats.RedactedHits),
		zap.Int("tokens", doc.Tokens))

	if opts.PDFFile != "" {
		if err := writePDF(doc, opts.PDFFile); err != nil {
			return err
		}
	}
	if opts.Clipboard {
		copyToClipboard(md, stderr, logger)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if syncErr := logging.Sync(logging.Logger); syncErr != nil {
		fmt.Fprintf(os.Stderr, "Logger sync failed: %v\n", syncErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
