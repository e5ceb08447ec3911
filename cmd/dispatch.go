package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evfleet/app"
	"github.com/kilianp07/evfleet/infra/mqtt"
)

var (
	dispatchTruck string
	dispatchRoute string
	dispatchWait  time.Duration
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Send a truck on a route",
	RunE:  runDispatch,
}

func init() {
	dispatchCmd.Flags().StringVarP(&dispatchTruck, "truck", "t", "", "truck id")
	dispatchCmd.Flags().StringVarP(&dispatchRoute, "route", "r", "", "route id")
	dispatchCmd.Flags().DurationVar(&dispatchWait, "wait", 0, "wait this long for the truck acknowledgment (requires mqtt.ack_topic)")
	_ = dispatchCmd.MarkFlagRequired("truck")
	_ = dispatchCmd.MarkFlagRequired("route")
	rootCmd.AddCommand(dispatchCmd)
}

func runDispatch(cmd *cobra.Command, _ []string) error {
	if !cfg.MQTT.Enabled() {
		return errors.New("dispatch requires mqtt.broker to be configured")
	}
	ctx, stop := signalContext()
	defer stop()

	snap, err := fetchSnapshot(ctx)
	if err != nil {
		return err
	}
	pub, err := mqtt.NewPublisher(cfg.MQTT)
	if err != nil {
		return err
	}
	defer pub.Disconnect()

	store := app.NewSnapshotStore()
	store.Set(snap)
	o, err := app.NewBoard(store, nil, pub).Dispatch(ctx, dispatchTruck, dispatchRoute)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "order %s sent to %s (%s)\n", o.OrderID, o.TruckID, pub.OrderTopic(o.TruckID))
	if dispatchWait <= 0 {
		return nil
	}
	if _, err := pub.WaitForAck(o.OrderID, dispatchWait); err != nil {
		return fmt.Errorf("order %s: %w", o.OrderID, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "order %s acknowledged\n", o.OrderID)
	return nil
}
