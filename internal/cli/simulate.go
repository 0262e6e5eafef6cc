package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/relabs-tech/gyro_pointer/internal/app"
	"github.com/relabs-tech/gyro_pointer/internal/mapping"
	"github.com/relabs-tech/gyro_pointer/internal/observability"
	"github.com/relabs-tech/gyro_pointer/internal/orientation"
)

func newSimulateCmd(st *state) *cobra.Command {
	var (
		mode      string
		count     int
		publish   bool
		realMouse bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Drive a session from a synthetic phone and print the emissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *st.cfg
			if !realMouse {
				cfg.PointerDriver = "log"
			}
			broker := ""
			if publish {
				broker = cfg.MQTTBroker
			}

			logger := observability.GetLogger()
			engine, cleanup, err := buildEngine(&cfg, broker, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			return app.RunSimulate(cmd.Context(), engine, orientation.NewMockSource(), app.SimulateOptions{
				Interval: time.Duration(cfg.SimulateInterval) * time.Millisecond,
				Mode:     mapping.ParseMode(mode),
				Count:    count,
			}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "absolute", "pointing mode: absolute or relative")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "stop after n samples (0 runs until interrupted)")
	cmd.Flags().BoolVar(&publish, "publish", false, "publish emissions to MQTT_BROKER")
	cmd.Flags().BoolVar(&realMouse, "move-pointer", false, "move the real pointer with POINTER_DRIVER")
	return cmd
}
