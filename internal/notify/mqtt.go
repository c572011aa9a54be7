package notify

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"lookaway/internal/core/cycle"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// DefaultTopic is the MQTT topic for transition messages.
const DefaultTopic = "lookaway/transitions"

const publishTimeout = 5 * time.Second

// mqttClient is the subset of paho.Client used for publishing.
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// MQTT publishes transitions to a broker.
type MQTT struct {
	client mqttClient
	topic  string
}

// Payload is the MQTT message body.
type Payload struct {
	Transition TransitionPayload `json:"transition"`
}

// TransitionPayload describes one phase change.
type TransitionPayload struct {
	Timestamp string `json:"timestamp"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// FormatPayload creates the JSON payload for a transition.
func FormatPayload(transition cycle.Transition) ([]byte, error) {
	return json.Marshal(Payload{
		Transition: TransitionPayload{
			Timestamp: transition.At.UTC().Format(time.RFC3339),
			From:      string(transition.From),
			To:        string(transition.To),
		},
	})
}

// NewMQTT connects to broker and publishes on topic.
func NewMQTT(broker, topic string) (*MQTT, error) {
	if topic == "" {
		topic = DefaultTopic
	}
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(fmt.Sprintf("lookaway-%d", os.Getpid())).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		client.Disconnect(0)
		return nil, fmt.Errorf("connect to broker %s: timeout", broker)
	}
	if err := token.Error(); err != nil {
		client.Disconnect(0)
		return nil, fmt.Errorf("connect to broker %s: %w", broker, err)
	}
	return &MQTT{client: client, topic: topic}, nil
}

// Name implements Sender.
func (publisher *MQTT) Name() string {
	return "mqtt"
}

// Send implements Sender. Messages are QoS 0 and not retained.
func (publisher *MQTT) Send(transition cycle.Transition) error {
	payload, err := FormatPayload(transition)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	token := publisher.client.Publish(publisher.topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish: timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Close disconnects from the broker.
func (publisher *MQTT) Close() error {
	publisher.client.Disconnect(1000)
	return nil
}
