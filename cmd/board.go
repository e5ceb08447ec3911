package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evfleet/core/board"
	"github.com/kilianp07/evfleet/infra/fleetapi"
	"github.com/kilianp07/evfleet/pkg/export"
)

var (
	boardRoute  string
	boardFormat string
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List routes with their fleet compatibility",
	RunE:  runRoutes,
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the ranked board for a route",
	RunE:  runBoard,
}

func init() {
	boardCmd.Flags().StringVarP(&boardRoute, "route", "r", "", "selected route id")
	boardCmd.Flags().StringVarP(&boardFormat, "format", "f", "table", "output format: table, json or csv")
	rootCmd.AddCommand(routesCmd, boardCmd)
}

func fetchSnapshot(ctx context.Context) (board.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return fleetapi.NewClient(cfg.FleetAPI).FetchSnapshot(ctx)
}

func runRoutes(cmd *cobra.Command, _ []string) error {
	snap, err := fetchSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	v := board.Build(snap, board.Selection{})
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUTE\tNAME\tMILES\tPRIORITY\tCHARGERS\tGREEN\tYELLOW\tRED\t")
	for _, c := range v.Routes {
		g, y, r := "-", "-", "-"
		if s := c.Summary; s != nil {
			g, y, r = fmt.Sprint(s.Green), fmt.Sprint(s.Yellow), fmt.Sprint(s.Red)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.0f\t%s\t%d\t%s\t%s\t%s\t\n",
			c.Route.ID, c.Route.Name, c.Route.DistanceMiles, c.Route.Priority, c.ChargerCount, g, y, r)
	}
	return tw.Flush()
}

func runBoard(cmd *cobra.Command, _ []string) error {
	snap, err := fetchSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	if boardRoute != "" {
		if _, ok := snap.Route(boardRoute); !ok {
			return fmt.Errorf("%w: %s", board.ErrUnknownRoute, boardRoute)
		}
	}
	return writeView(cmd.OutOrStdout(), board.Build(snap, board.Select(boardRoute)), boardFormat)
}

func writeView(w io.Writer, v board.View, format string) error {
	switch format {
	case "table", "":
		return export.WriteTable(w, v)
	case "json":
		return export.WriteJSON(w, v)
	case "csv":
		return export.WriteCSV(w, v)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
