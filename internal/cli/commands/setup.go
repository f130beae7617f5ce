package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nativedb/nativedb/internal/cli/config"
	"github.com/nativedb/nativedb/internal/cli/output"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/nativedb/nativedb/pkg/natives"
	"github.com/spf13/cobra"

	// Register every bundled generator.
	_ "github.com/nativedb/nativedb/pkg/generators/all"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	DB       *natives.Database
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with the natives database loaded.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cmdCtx := NewCommandContextWithoutDB(cmd)

	db, err := loadDatabase(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, err
	}
	cmdCtx.DB = db

	return cmdCtx, nil
}

// NewCommandContextWithoutDB creates a CommandContext without loading natives.
// Useful for commands that only need the generator registry.
func NewCommandContextWithoutDB(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration, or the defaults when none
// has been loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Defaults()
}

func loadDatabase(cfg *config.Config, logger *slog.Logger) (*natives.Database, error) {
	if err := cfg.ValidateNatives(); err != nil {
		return nil, err
	}

	start := time.Now()
	db, err := natives.LoadFile(cfg.NativesPath)
	if err != nil {
		return nil, err
	}

	logger.Debug("natives loaded",
		slog.String("path", cfg.NativesPath),
		slog.Int("natives", db.Len()),
		slog.Int("namespaces", len(db.Namespaces())),
		slog.Duration("took", time.Since(start)))
	return db, nil
}

// generatorFor returns the generator for lang, or the configured language
// when lang is empty.
func generatorFor(cfg *config.Config, lang string) (generator.Generator, error) {
	if lang == "" {
		lang = cfg.Language
	}
	return generator.Lookup(lang)
}

// completeLanguages completes generator names and aliases.
func completeLanguages(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return generator.List(), cobra.ShellCompDirectiveNoFileComp
}

// lookupNative wraps Lookup with a hint for the search command.
func lookupNative(db *natives.Database, key string) (*natives.Native, error) {
	n, err := db.Lookup(key)
	if err != nil {
		return nil, fmt.Errorf("%w\nHint: use 'nativedb search %s' to find similar natives", err, key)
	}
	return n, nil
}
