package app

import (
	"context"
	"fmt"
	"io"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/relabs-tech/gyro_pointer/internal/mapping"
	"github.com/relabs-tech/gyro_pointer/internal/protocol"
)

// RunMonitor subscribes to the emissions topic and prints every record to
// out until ctx is cancelled.
func RunMonitor(ctx context.Context, broker, clientID, topic string, out io.Writer, logger *zap.Logger) error {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT connect %s: %w", broker, token.Error())
	}
	defer client.Disconnect(250)
	logger.Info("monitor connected to MQTT broker", zap.String("broker", broker))

	token := client.Subscribe(topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		rec, err := protocol.DecodeEmission(msg.Payload())
		if err != nil {
			logger.Warn("emission unmarshal error", zap.Error(err))
			return
		}
		fmt.Fprintln(out, formatEmission(rec))
	})
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("MQTT subscribe %s: %w", topic, token.Error())
	}
	logger.Info("monitor subscribed", zap.String("topic", topic))

	<-ctx.Done()
	logger.Info("monitor shutting down")
	return nil
}

func formatEmission(rec protocol.Emission) string {
	conn := rec.Conn
	if len(conn) > 8 {
		conn = conn[:8]
	}
	switch rec.Kind {
	case mapping.EmitMoveAbsolute:
		return fmt.Sprintf("[ABS ] %-8s x=%5d y=%5d", conn, rec.X, rec.Y)
	case mapping.EmitMoveRelative:
		return fmt.Sprintf("[REL ] %-8s x=%5d y=%5d", conn, rec.X, rec.Y)
	case mapping.EmitPress:
		return fmt.Sprintf("[DOWN] %-8s button=%s", conn, rec.Button)
	case mapping.EmitRelease:
		return fmt.Sprintf("[UP  ] %-8s button=%s", conn, rec.Button)
	case mapping.EmitScroll:
		return fmt.Sprintf("[SCRL] %-8s amount=%+.3f", conn, rec.Amount)
	}
	return fmt.Sprintf("[????] %-8s kind=%s", conn, rec.Kind)
}
