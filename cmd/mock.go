package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/evfleet/infra/fleetapi"
)

var mockAddr string

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Serve the demo fleet as a local fleet API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signalContext()
		defer stop()
		mc := cfg.Mock
		if mockAddr != "" {
			mc.Address = mockAddr
		}
		return fleetapi.NewMockServer(mc).Start(ctx)
	},
}

func init() {
	mockCmd.Flags().StringVar(&mockAddr, "addr", "", "listen address (defaults to mock.address)")
	rootCmd.AddCommand(mockCmd)
}
