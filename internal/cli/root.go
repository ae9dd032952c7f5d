// Package cli implements the hbnb command-line entrypoint using Cobra.
// The root command opens a session and runs the interactive console.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hbnb-network/hbnb/internal/console"
	"github.com/hbnb-network/hbnb/internal/session"
)

// Process exit statuses.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

var rootCmd = &cobra.Command{
	Use:   "hbnb",
	Short: "Manage rental listing objects from a command shell",
	Long: `hbnb is an interactive shell for the User, State, City, Amenity, Place
and Review models. Commands read from stdin; objects persist to the
configured storage backend ($HBNB_HOME/config.toml).`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	err := rootCmd.Execute()
	if code := exitCode(err); code != exitOK {
		if code == exitFailure {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(code)
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, console.ErrInterrupted):
		return exitInterrupted
	default:
		return exitFailure
	}
}

func runShell(cmd *cobra.Command, args []string) error {
	s, err := session.New()
	if err != nil {
		return err
	}
	defer s.Close()

	c := s.Console(cmd.OutOrStdout())
	lines, err := newLineSource(os.Stdin, cmd.OutOrStdout(), s.Config.Console.Prompt, s.Registry.Names())
	if err != nil {
		return err
	}
	defer lines.Close()

	return c.Run(lines)
}
