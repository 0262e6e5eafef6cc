package app

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/relabs-tech/gyro_pointer/internal/mapping"
	"github.com/relabs-tech/gyro_pointer/internal/protocol"
)

// Publisher receives every emission the engine applies.
type Publisher interface {
	Publish(conn string, e mapping.Emission)
	Close()
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, mapping.Emission) {}
func (nopPublisher) Close()                           {}

// publishTimeout bounds how long the mapping loop waits on the broker.
const publishTimeout = 50 * time.Millisecond

type mqttPublisher struct {
	client mqtt.Client
	topic  string
	logger *zap.Logger
}

// NewMQTTPublisher connects to broker and publishes emissions as JSON on
// topic. An empty broker disables telemetry.
func NewMQTTPublisher(broker, clientID, topic string, logger *zap.Logger) (Publisher, error) {
	if broker == "" {
		return nopPublisher{}, nil
	}
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("MQTT connect %s: %w", broker, token.Error())
	}
	logger.Info("connected to MQTT broker", zap.String("broker", broker), zap.String("topic", topic))
	return &mqttPublisher{client: client, topic: topic, logger: logger}, nil
}

func (p *mqttPublisher) Publish(conn string, e mapping.Emission) {
	payload, err := protocol.EncodeEmission(conn, e)
	if err != nil {
		p.logger.Warn("emission marshal error", zap.Error(err))
		return
	}
	token := p.client.Publish(p.topic, 0, false, payload)
	if token.WaitTimeout(publishTimeout) && token.Error() != nil {
		p.logger.Warn("MQTT publish error", zap.String("topic", p.topic), zap.Error(token.Error()))
	}
}

func (p *mqttPublisher) Close() {
	p.client.Disconnect(250)
}
