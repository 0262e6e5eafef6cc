package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/relabs-tech/gyro_pointer/internal/app"
	"github.com/relabs-tech/gyro_pointer/internal/observability"
)

func newMonitorCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Print emissions published on the MQTT telemetry topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := st.cfg
			if cfg.MQTTBroker == "" {
				return errors.New("monitor needs MQTT_BROKER")
			}
			return app.RunMonitor(cmd.Context(), cfg.MQTTBroker, cfg.MQTTClientIDMonitor, cfg.TopicEmissions,
				cmd.OutOrStdout(), observability.GetLogger().Named("monitor"))
		},
	}
}
