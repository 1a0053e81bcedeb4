package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/esgsync/internal/bridge"
	"github.com/rshade/esgsync/internal/logging"
	"github.com/rshade/esgsync/internal/server"
)

// NewServeCmd creates the "serve" command, which runs the preview HTTP API
// until interrupted.
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mapping, validation and dashboard HTTP API",
		Long: `Serve the stateless preview API:

  POST /v1/map/{section}   request body a sync would send
  POST /v1/validate        validation result (?mode=draft|submit)
  POST /v1/dashboard       ESG KPIs
  POST /v1/bridge/match    ranked investors
  GET  /healthz, /metrics

No request reaches the disclosure API.`,
		Example: `  esgsync serve
  esgsync serve --addr 127.0.0.1:9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cfg := configFrom(ctx)

			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			dir, err := bridge.LoadDirectoryOrDefault(cfg.Bridge.DirectoryPath)
			if err != nil {
				return err
			}

			srv, err := server.New(server.Config{
				Addr:              addr,
				ReadHeaderTimeout: time.Duration(cfg.Server.ReadHeaderTimeoutSeconds) * time.Second,
				ShutdownTimeout:   time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second,
			}, server.WithLogger(*logging.FromContext(ctx)), server.WithDirectory(dir))
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "Listen address")
	return cmd
}
