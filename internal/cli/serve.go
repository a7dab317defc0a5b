package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/internal/server"
	"github.com/matzehuels/skyline/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP render service
// until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered scenes over HTTP",
		Long: `Serve rendered scenes over HTTP.

Routes:
  GET  /healthz
  GET  /version
  GET  /v1/render?street=<descriptor>&format=text|json
  POST /v1/render   (JSON {"street": "...", "format": "..."} or a raw descriptor)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}

			runner, store, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer store.Close()

			printInfo(cmd.ErrOrStderr(), "Serving on %s (cache: %s)", StyleNumber.Render(cfg.Addr), c.Config.Cache.Backend)
			srv := server.New(server.Config{
				Addr:           cfg.Addr,
				ReadTimeout:    cfg.ReadTimeout.Duration,
				WriteTimeout:   cfg.WriteTimeout.Duration,
				RequestTimeout: cfg.RequestTimeout.Duration,
				MaxBody:        cfg.MaxBody,
				Format:         c.Config.Render.Format,
				TTL:            c.Config.Cache.TTL.Duration,
				Limits:         pipeline.Limits{MaxWidth: cfg.MaxWidth, MaxHeight: cfg.MaxHeight},
			}, runner, loggerFromContext(ctx))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	return cmd
}
