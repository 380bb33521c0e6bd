package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/screengod/internal/server"
)

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP. The API resolves expressions to
rectangles and renders diagrams; it never moves windows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = c.Config.Server.Addr
	}
	srv := server.New(c.newRunner(nil), loggerFromContext(ctx))
	printInfo("serving on http://%s", addr)
	return srv.ListenAndServe(ctx, addr)
}
