package alerts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"iot-backend/confs"
	"iot-backend/entities"
)

// Notifier posts a webhook message when a device reports a temperature
// above the configured threshold. A cooldown window keeps a continuously
// hot sensor from flooding the channel. With no webhook URL configured
// the notifier is inert.
type Notifier struct {
	webhookURL string
	threshold  float64
	cooldown   time.Duration
	client     *http.Client

	mu        sync.Mutex
	lastAlert time.Time
}

func NewNotifier(cfg confs.AlertConfig) *Notifier {
	return &Notifier{
		webhookURL: cfg.WebhookURL,
		threshold:  cfg.TempThreshold,
		cooldown:   cfg.Cooldown,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether alerting is configured.
func (n *Notifier) Enabled() bool { return n.webhookURL != "" }

// Check inspects a stored reading and fires the webhook when the
// temperature crosses the threshold outside the cooldown window.
func (n *Notifier) Check(device *entities.Device, reading *entities.SensorReading) {
	if !n.Enabled() || reading.Temperature == nil || *reading.Temperature < n.threshold {
		return
	}

	n.mu.Lock()
	if time.Since(n.lastAlert) < n.cooldown {
		n.mu.Unlock()
		log.Debug().Str("device", device.Name).Msg("alert suppressed by cooldown")
		return
	}
	n.lastAlert = time.Now()
	n.mu.Unlock()

	n.send(device, reading)
}

func (n *Notifier) send(device *entities.Device, reading *entities.SensorReading) {
	text := fmt.Sprintf("High temperature alert: %s reported %.1f°C (threshold %.1f°C)",
		device.Name, *reading.Temperature, n.threshold)
	msg := map[string]interface{}{"content": text}
	if reading.Humidity != nil {
		msg["content"] = fmt.Sprintf("%s, humidity %.1f%%", text, *reading.Humidity)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal alert payload")
		return
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Msg("failed to deliver alert webhook")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Error().Int("status", resp.StatusCode).Msg("alert webhook rejected")
		return
	}
	log.Info().Str("device", device.Name).Float64("temperature", *reading.Temperature).Msg("temperature alert sent")
}
