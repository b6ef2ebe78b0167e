package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adamancini/ferry/internal/config"
	"github.com/adamancini/ferry/internal/logging"
	"github.com/adamancini/ferry/internal/organize"
	"github.com/adamancini/ferry/internal/rules"
	"github.com/adamancini/ferry/internal/update"
	"github.com/adamancini/ferry/internal/watcher"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Watch the configured directory (the default when no subcommand is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch()
		},
	}
}

// runWatch is the main workflow: handoff if relaunched, load config,
// start the background updater and the watcher, then consume events
// until the process is replaced or killed.
func runWatch() error {
	logger := logging.GetLogger("ferry")

	// 1. Finish a pending update before anything else
	if postUpdatePath != "" {
		if err := runHandoff(); err != nil {
			return err
		}
	}

	// 2. Load configuration, falling back to defaults when no file exists
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 3. Start the background update checker
	update.NewUpdater(ferryVersion).Start()

	// 4. Compile rules
	compiled := make([]rules.Rule, len(cfg.Rules))
	for i, r := range cfg.Rules {
		compiled[i] = rules.New(r.Patterns, r.Destination)
	}

	// 5. Start the watcher
	w := watcher.Watch(cfg.Watcher.WatchPath, watcher.Options{
		Recursive: cfg.Watcher.Recursive,
		Interval:  cfg.Watcher.Interval(),
		MaxDepth:  cfg.Watcher.Depth(),
	})

	logger.Info().
		Str("path", cfg.Watcher.WatchPath).
		Str("version", ferryVersion).
		Int("rules", len(compiled)).
		Msg("watching")

	// 6. Consume events until the channel closes (never, in practice)
	organize.NewDispatcher(compiled).Run(w.Events)

	return nil
}

func loadConfig() (*config.Config, error) {
	logger := logging.GetLogger("config")

	path, err := config.Find(configPath)
	if err != nil {
		if configPath != "" {
			// An explicitly named file that cannot be read is fatal.
			return nil, err
		}
		logger.Warn().Msg("no config file found, using defaults (no rules)")
		return config.Default(), nil
	}

	logger.Debug().Str("path", path).Msg("using config file")
	return config.Load(path)
}
