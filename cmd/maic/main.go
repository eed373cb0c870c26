// Package main provides the maic CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"maic/internal/config"
	"maic/internal/logging"
	"maic/internal/prompt"
	"maic/internal/retrieval"
	"maic/internal/service"
)

var (
	// Global flags
	verbose    bool
	configPath string
	workspace  string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "maic",
	Short: "MAIC - evidence-ranked prompt composition for English tutoring",
	Long: `maic assembles mode-aware system prompts for an English tutoring
assistant: it canonicalizes the instructional mode, reranks retrieved
evidence with provenance boosts, decides the citation label, and renders
the [ROLE]/[INSTRUCTIONS]/[CITATIONS]/[GUARDRAILS] prompt for the model.

Run without arguments to start the interactive chat interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		ws := workspace
		if ws == "" {
			ws, _ = os.Getwd()
		}
		if err := logging.Initialize(ws); err != nil {
			logger.Warn("category logging disabled", zap.Error(err))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch interactive chat
		return runChat(cmd.Context())
	},
}

// buildTutor wires the Tutor from the loaded configuration. The returned
// cleanup stops the template watcher and closes the cache store.
func buildTutor(ctx context.Context) (*service.Tutor, func(), error) {
	var store *prompt.Store
	if cfg.Prompts.CachePath != "" {
		s, err := prompt.OpenStore(cfg.Prompts.CachePath)
		if err != nil {
			logger.Warn("template cache unavailable", zap.String("path", cfg.Prompts.CachePath), zap.Error(err))
		} else {
			store = s
		}
	}

	src := prompt.NewSource(cfg.Prompts.Path, store)

	var watcher *prompt.Watcher
	if cfg.Prompts.WatchReload {
		w, err := prompt.NewWatcher(cfg.Prompts.Path, src)
		if err != nil {
			logger.Warn("template hot reload unavailable", zap.Error(err))
		} else if err := w.Start(ctx); err != nil {
			logger.Warn("template watcher failed to start", zap.Error(err))
		} else {
			watcher = w
		}
	}

	reranker := retrieval.NewReranker(&retrieval.RerankerConfig{
		Classifier:  retrieval.FilenameClassifier,
		BoostReason: cfg.Retrieval.BoostReason,
		BoostBook:   cfg.Retrieval.BoostBook,
		Parallelism: cfg.Retrieval.Parallelism,
	})

	tutor := service.NewTutor(service.TutorConfig{
		Templates: src,
		Searcher:  retrieval.DemoSearcher{},
		Reranker:  reranker,
		TopK:      cfg.Retrieval.TopK,
		Logger:    logger,
	})

	cleanup := func() {
		if watcher != nil {
			watcher.Stop()
		}
		if store != nil {
			store.Close()
		}
	}
	return tutor, cleanup, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml (default: built-in defaults + MAIC_* env)")
	rootCmd.PersistentFlags().StringVar(&workspace, "workspace", "", "Workspace directory for .maic logs (default: cwd)")

	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(evalParseCmd)
	rootCmd.AddCommand(chatCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
