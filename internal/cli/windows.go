package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// windowsCommand lists open windows through the configured manager.
func (c *CLI) windowsCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "List open windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWindows(cmd.Context(), jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print windows as JSON")
	return cmd
}

func (c *CLI) runWindows(ctx context.Context, jsonOut bool) error {
	mgr, err := c.newManager(false)
	if err != nil {
		return err
	}
	ws, err := mgr.List(ctx)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ws)
	}
	if len(ws) == 0 {
		printInfo("no windows")
		return nil
	}

	rows := make([]windowRow, len(ws))
	for i, w := range ws {
		rows[i] = windowRow{Window: w, Geometry: "?"}
		if r, err := mgr.Geometry(ctx, w.Handle); err == nil {
			rows[i].Geometry = r.String()
		} else {
			loggerFromContext(ctx).Debug("geometry unavailable", "window", w.Handle, "err", err)
		}
	}
	fmt.Println(windowsTable(rows))
	return nil
}
