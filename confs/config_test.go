package confs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "/esp32/#", cfg.MQTT.SubscribeTopic)
	assert.Equal(t, "/esp32/sensor", cfg.MQTT.SensorTopic)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 30.0, cfg.Alerts.TempThreshold)
	assert.Equal(t, 5*time.Minute, cfg.Alerts.Cooldown)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MQTT_SENSOR_TOPIC", "/home/sensor")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("ALERT_COOLDOWN", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/home/sensor", cfg.MQTT.SensorTopic)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 90*time.Second, cfg.Alerts.Cooldown)
}

func TestDatabaseDSN(t *testing.T) {
	dsn := DatabaseConfig{
		Host: "dbhost", Port: 5432, User: "iot", Password: "secret", Name: "iotdb", SSLMode: "disable",
	}.DSN()
	assert.Equal(t, "host=dbhost user=iot password=secret dbname=iotdb port=5432 sslmode=disable TimeZone=UTC", dsn)
}

func TestBrokerURL(t *testing.T) {
	url := MQTTConfig{BrokerHost: "broker", BrokerPort: 1883}.BrokerURL()
	assert.Equal(t, "tcp://broker:1883", url)
}
