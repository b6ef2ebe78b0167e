package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adamancini/ferry/internal/autostart"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Register ferry to start at login",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := autostart.Install(); err != nil {
				return fmt.Errorf("failed to install autostart: %w", err)
			}
			fmt.Println("ferry will now start on login")
			return nil
		},
	}
}

func newUnsetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unsetup",
		Short: "Remove the login registration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := autostart.Uninstall(); err != nil {
				return fmt.Errorf("failed to remove autostart: %w", err)
			}
			fmt.Println("autostart removed")
			return nil
		},
	}
}
