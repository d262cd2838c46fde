package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordled",
		Short: "Multiplayer word-guessing game over TCP",
		Long: `wordled is a multiplayer word-guessing game server and client.

The server rotates a secret word on a schedule, scores guesses over a
persistent connection and shares finished games on a multicast channel.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPlayCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
