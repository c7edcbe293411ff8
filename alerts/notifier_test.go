package alerts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iot-backend/confs"
	"iot-backend/entities"
)

func f64(v float64) *float64 { return &v }

func newWebhookServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Contains(t, body, "content")
		hits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNotifierFiresAboveThreshold(t *testing.T) {
	var hits atomic.Int64
	srv := newWebhookServer(t, &hits)

	n := NewNotifier(confs.AlertConfig{WebhookURL: srv.URL, TempThreshold: 30, Cooldown: time.Hour})
	device := &entities.Device{ID: 1, Name: "room sensor"}

	n.Check(device, &entities.SensorReading{DeviceID: 1, Temperature: f64(35), Humidity: f64(50)})
	assert.Equal(t, int64(1), hits.Load())
}

func TestNotifierCooldownSuppressesRepeats(t *testing.T) {
	var hits atomic.Int64
	srv := newWebhookServer(t, &hits)

	n := NewNotifier(confs.AlertConfig{WebhookURL: srv.URL, TempThreshold: 30, Cooldown: time.Hour})
	device := &entities.Device{ID: 1, Name: "room sensor"}

	n.Check(device, &entities.SensorReading{DeviceID: 1, Temperature: f64(35)})
	n.Check(device, &entities.SensorReading{DeviceID: 1, Temperature: f64(36)})
	assert.Equal(t, int64(1), hits.Load())
}

func TestNotifierIgnoresBelowThreshold(t *testing.T) {
	var hits atomic.Int64
	srv := newWebhookServer(t, &hits)

	n := NewNotifier(confs.AlertConfig{WebhookURL: srv.URL, TempThreshold: 30, Cooldown: time.Hour})
	device := &entities.Device{ID: 1, Name: "room sensor"}

	n.Check(device, &entities.SensorReading{DeviceID: 1, Temperature: f64(29.9)})
	n.Check(device, &entities.SensorReading{DeviceID: 1, Humidity: f64(80)})
	assert.Zero(t, hits.Load())
}

func TestNotifierDisabledWithoutURL(t *testing.T) {
	n := NewNotifier(confs.AlertConfig{TempThreshold: 30, Cooldown: time.Hour})
	assert.False(t, n.Enabled())

	// Must be a no-op, not a panic.
	n.Check(&entities.Device{ID: 1}, &entities.SensorReading{DeviceID: 1, Temperature: f64(99)})
}
