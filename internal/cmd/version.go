package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adamancini/ferry/internal/update"
)

func newVersionCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information and check for updates",
		Long: `Display the current ferry version and optionally check the release
endpoint for a newer one. The running daemon applies updates by itself;
this is for a quick look from the terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(checkOnly)
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Check whether an update is available")

	return cmd
}

func runVersion(check bool) error {
	fmt.Printf("ferry version %s\n", ferryVersion)

	if !check {
		return nil
	}

	checker := update.NewGitHubChecker(ferryVersion, "adamancini", "ferry")
	info, err := checker.CheckForUpdate()
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	if !info.Available {
		fmt.Println("Already running the latest version")
		return nil
	}

	if update.IsAhead(ferryVersion, info.LatestVersion) {
		fmt.Printf("Running %s, ahead of the latest published release %s\n",
			ferryVersion, info.LatestVersion)
		return nil
	}

	fmt.Printf("Version %s is available: %s\n", info.LatestVersion, info.ReleaseURL)
	return nil
}
