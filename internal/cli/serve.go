package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/card-statement-parser/internal/api"
	"github.com/insightdelivered/card-statement-parser/internal/parser"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the statement parser over HTTP",
		Long: `Starts an HTTP server with:
  POST /api/parse   multipart "file" (PDF) or "text" field, returns the extracted fields
  GET  /api/health  liveness and supported issuers`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func (a *app) runServe(ctx context.Context, addr string) error {
	p := parser.New(parser.WithLogger(a.log))
	server := api.NewApp(api.NewHandler(p, a.log), a.cfg.Server.BodyLimitMB)

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("addr", addr).Info("listening")
		errCh <- server.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.ShutdownWithContext(shutdownCtx)
	}
}
