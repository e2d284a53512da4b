// Package main provides the linguacart CLI entry point: an interactive
// terminal assistant that recommends language-learning books, manages a
// cart, and walks the user through checkout.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"linguacart/internal/catalog"
	"linguacart/internal/config"
	"linguacart/internal/dialogue"
	"linguacart/internal/orders"
	"linguacart/internal/retrieval"
)

var (
	configPath string
	verbose    bool

	logger *zap.Logger
)

// rootCmd starts the interactive chat when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "linguacart",
	Short: "linguacart - conversational assistant for language-learning books",
	Long: `linguacart is a conversational ordering assistant for a catalog of
language-learning books. It understands free-text requests ("Italian A2
reader under €20"), asks for whatever is still missing, recommends and
ranks matching titles from two catalog sources, and handles cart and
checkout in the same conversation.

Run without arguments to start the interactive chat. Type 'quit', 'exit'
or 'bye' to leave.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The chat has its own UI; route its logs to a file so they do
		// not tear the display.
		var err error
		logger, err = buildLogger(cmd.Name() == "linguacart")
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func buildLogger(interactive bool) (*zap.Logger, error) {
	if interactive && !verbose {
		return zap.NewNop(), nil
	}

	level := zapcore.InfoLevel
	if appCfg, err := config.Load(configPath); err == nil && appCfg.Logging.Level != "" {
		_ = level.Set(appCfg.Logging.Level)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(level)
	if interactive {
		cfg.OutputPaths = []string{"linguacart.log"}
		cfg.ErrorOutputPaths = []string{"linguacart.log"}
	}
	return cfg.Build()
}

// session bundles everything one conversation needs.
type session struct {
	cfg    config.Config
	engine *dialogue.Engine
	orders *orders.Store
}

// newSession loads config and catalogs and wires the dialogue engine.
func newSession() (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	src, err := catalog.Load(cfg.Catalog.PrimaryPath, cfg.Catalog.TabularPath, logger)
	if err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}

	var ledger *orders.Store
	if !cfg.Orders.Disabled {
		ledger, err = orders.Open(cfg.Orders.Path)
		if err != nil {
			// The conversation works without the ledger; say so and go on.
			logger.Warn("order ledger unavailable", zap.Error(err))
			ledger = nil
		}
	}

	engine := dialogue.NewEngine(src, retrieval.New(src, logger), ledger, logger)
	return &session{cfg: cfg, engine: engine, orders: ledger}, nil
}

func (s *session) close() {
	if s.orders != nil {
		_ = s.orders.Close()
	}
}

func main() {
	start := time.Now()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(ordersCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if logger != nil {
		logger.Debug("exit", zap.Duration("uptime", time.Since(start)))
	}
}
