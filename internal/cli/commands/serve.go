package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nativedb/nativedb/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the natives database over HTTP",
		Long: `Start a local HTTP server exposing the natives database as JSON and
generated code.

Endpoints:
- GET /api/search?q=<query>
- GET /api/natives/{native} and /api/natives/{native}/code?lang=<language>
- GET /api/namespaces and /api/namespaces/{namespace}/code
- GET /api/types and /api/types/{type}
- GET /api/events (server-sent reload events)

With --watch the natives file is reloaded when it changes.`,
		Example: `  # Serve on the default port
  nativedb serve

  # Serve on a custom port and reload on change
  nativedb serve --port 3000 --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	cmd.Flags().Int("port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().Bool("watch", false, "Reload the natives file when it changes")
	cmd.Flags().StringP("language", "l", "", "Default language for code endpoints")
	_ = cmd.RegisterFlagCompletionFunc("language", completeLanguages)

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg

	// Fail before listening when the default language is unknown.
	g, err := generatorFor(cfg, "")
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		NativesPath: cfg.NativesPath,
		Port:        cfg.Server.Port,
		Watch:       cfg.Server.Watch,
		Language:    g.Name(),
		Options:     cfg.Codegen.Options(),
		SearchLimit: cfg.Search.Limit,
		Logger:      cmdCtx.Logger,
	}, cmdCtx.DB)

	cmdCtx.Renderer.Success(fmt.Sprintf("Serving %d natives on http://localhost:%d", cmdCtx.DB.Len(), cfg.Server.Port))
	cmdCtx.Renderer.Muted("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(serveContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Serve(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// serveContext is the base context for commands run without one.
func serveContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
