package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ideaforge/internal/config"
	"ideaforge/internal/llm"
	"ideaforge/internal/logging"
	"ideaforge/internal/pipeline"
	"ideaforge/internal/store"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "ideaforge",
	Short: "ideaforge - turn a product idea into a persisted MVP plan",
	Long: `ideaforge takes a free-text product idea, asks a text-generation
service for a narrative plan and a task breakdown, validates the
output against a strict schema, and persists the resulting
idea/task/subtask hierarchy in SQLite.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// openStore opens the configured SQLite database.
func openStore() (*store.Store, error) {
	return store.Open(cfg.Storage.DatabasePath, logger)
}

// newPipeline wires the generation client and store into a pipeline.
func newPipeline(st *store.Store) *pipeline.Pipeline {
	client := llm.NewGeminiClient(llm.GeminiConfig{
		APIKey:          cfg.LLM.APIKey,
		BaseURL:         cfg.LLM.BaseURL,
		Model:           cfg.LLM.Model,
		Timeout:         cfg.LLMTimeout(),
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
	}, logger)
	return pipeline.New(client, st, logger)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "ideaforge.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(ideaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
