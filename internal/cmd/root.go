// Package cmd wires the ferry CLI.
package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/adamancini/ferry/internal/logging"
	"github.com/adamancini/ferry/internal/update"
)

var (
	// Global flags
	configPath     string
	verbosity      int
	postUpdatePath string
)

// ferryVersion is set during command initialization.
var ferryVersion = "dev"

var newHandoff = update.NewHandoff

// Execute builds the command tree and runs it.
func Execute(version, commit, date string) error {
	ferryVersion = version

	rootCmd := &cobra.Command{
		Use:   "ferry",
		Short: "Watch a directory and route files to where they belong",
		Long: `ferry watches a directory tree and moves new or changed files to
configured destinations based on glob rules. It keeps itself current by
downloading and applying new releases in the background.

Running ferry with no subcommand starts watching.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to ferry config file")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v, -vv)")

	// Passed by the updater when it relaunches into a new binary.
	rootCmd.PersistentFlags().StringVar(&postUpdatePath, "post-update", "",
		"Path of the executable this process is replacing")
	_ = rootCmd.PersistentFlags().MarkHidden("post-update")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(newUnsetupCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd.Execute()
}

// runHandoff executes the post-update protocol when this process was
// spawned by its predecessor's updater. A failed replacement leaves a
// stale binary on disk but never stops startup; not knowing our own
// executable path is fatal, since there is nothing to hand off from.
func runHandoff() error {
	logger := logging.GetLogger("update")

	err := newHandoff().Replace(postUpdatePath)
	if errors.Is(err, update.ErrNoExecutable) {
		return err
	}
	if err != nil {
		logger.Error().Err(err).
			Str("old_exe", postUpdatePath).
			Msg("could not replace previous binary, continuing anyway")
		return nil
	}

	logger.Info().Str("version", ferryVersion).Msg("update complete")
	return nil
}
