package mqtt

import (
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"iot-backend/confs"
)

// MessageHandler receives every message delivered on the subscribed
// namespace. It must not block; the paho dispatcher invokes it once per
// message.
type MessageHandler func(topic string, payload []byte)

// Publisher is the outbound half of the broker link. Publishing is
// fire-and-forget: failures are logged, never returned.
type Publisher interface {
	Publish(topic, payload string)
}

// Client owns the single broker connection shared by the telemetry
// subscriber and the command publisher.
type Client struct {
	cli paho.Client
	cfg confs.MQTTConfig
}

func NewClient(cfg confs.MQTTConfig, onMessage MessageHandler) *Client {
	opts := paho.NewClientOptions().
		AddBroker(cfg.BrokerURL()).
		SetClientID(fmt.Sprintf("%s-%s", cfg.ClientID, uuid.NewString()[:8])).
		SetKeepAlive(cfg.KeepAlive).
		SetPingTimeout(cfg.PingTimeout).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetCleanSession(true)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Error().Err(err).Msg("MQTT connection lost")
	}
	opts.OnConnect = func(c paho.Client) {
		log.Info().Str("topic", cfg.SubscribeTopic).Msg("MQTT connected, subscribing")
		token := c.Subscribe(cfg.SubscribeTopic, 1, func(_ paho.Client, m paho.Message) {
			onMessage(m.Topic(), m.Payload())
		})
		if token.Wait() && token.Error() != nil {
			log.Error().Err(token.Error()).Str("topic", cfg.SubscribeTopic).Msg("MQTT subscribe failed")
		}
	}

	return &Client{cli: paho.NewClient(opts), cfg: cfg}
}

func (c *Client) Connect() error {
	if token := c.cli.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (c *Client) Disconnect() {
	if c.cli.IsConnected() {
		c.cli.Disconnect(500)
	}
}

// Publish sends payload to topic with QoS 1 without awaiting the ack.
// A failed publish is reported and swallowed; the durable store stays
// the system of record.
func (c *Client) Publish(topic, payload string) {
	log.Info().Str("topic", topic).Str("payload", payload).Msg("MQTT publish")
	token := c.cli.Publish(topic, 1, false, payload)
	go func() {
		if token.Wait() && token.Error() != nil {
			log.Error().Err(token.Error()).Str("topic", topic).Msg("MQTT publish failed")
		}
	}()
}
