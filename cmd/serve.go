package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/bcdetect/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the prediction form over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := buildRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		addr := rt.cfg.Server.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		srv, err := api.NewServer(rt.service, rt.logger)
		if err != nil {
			return fmt.Errorf("build server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
