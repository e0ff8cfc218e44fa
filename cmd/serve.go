package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the triage proxy and record builder API",
	Long: `serve exposes the triage proxy (/triage/proxy) and the builder endpoints
(/api/render_preview, /api/generate, /api/download, /api/load, /api/triage).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return deps.Server.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
