package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/acarlini/wordled/internal/client"
	"github.com/acarlini/wordled/internal/config"
)

func newPlayCmd() *cobra.Command {
	var envFile string
	var serverAddr string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Connect to a server and play interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if serverAddr != "" {
				cfg.ServerAddr = serverAddr
			}

			// The client's terminal output is the interface; logs stay out
			// of the way unless asked for.
			var logOut io.Writer = io.Discard
			if verbose {
				logOut = os.Stderr
			}
			logger := slog.New(slog.NewJSONHandler(logOut, nil))

			c := client.New(cfg, os.Stdin, os.Stdout, logger)
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to a .env configuration file")
	cmd.Flags().StringVar(&serverAddr, "server", "", "Server address (host:port)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log client internals to stderr")

	return cmd
}
