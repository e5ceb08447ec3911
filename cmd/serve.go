package cmd

import "github.com/spf13/cobra"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Refresh fleet data and serve the board API",
	RunE:  serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
