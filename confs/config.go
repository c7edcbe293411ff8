package confs

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	MQTT     MQTTConfig
	CORS     CORSConfig
	Alerts   AlertConfig
}

type ServerConfig struct {
	Addr string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type MQTTConfig struct {
	BrokerHost string
	BrokerPort int
	Username   string
	Password   string
	ClientID   string

	// SubscribeTopic covers the whole device namespace; SensorTopic is the
	// single subtopic treated as telemetry. Everything else delivered under
	// the namespace is ignored.
	SubscribeTopic string
	SensorTopic    string

	KeepAlive   time.Duration
	PingTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// AlertConfig drives the temperature alert notifier. An empty WebhookURL
// disables alerting.
type AlertConfig struct {
	WebhookURL    string
	TempThreshold float64
	Cooldown      time.Duration
}

// Load reads .env if present and builds the configuration from environment
// variables with sensible defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr: getEnv("HTTP_ADDR", "0.0.0.0:8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "iot"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "iot"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		MQTT: MQTTConfig{
			BrokerHost:     getEnv("MQTT_BROKER_HOST", "localhost"),
			BrokerPort:     getInt("MQTT_BROKER_PORT", 1883),
			Username:       getEnv("MQTT_USERNAME", ""),
			Password:       getEnv("MQTT_PASSWORD", ""),
			ClientID:       getEnv("MQTT_CLIENT_ID", "iot-backend"),
			SubscribeTopic: getEnv("MQTT_SUBSCRIBE_TOPIC", "/esp32/#"),
			SensorTopic:    getEnv("MQTT_SENSOR_TOPIC", "/esp32/sensor"),
			KeepAlive:      getDuration("MQTT_KEEP_ALIVE", 30*time.Second),
			PingTimeout:    getDuration("MQTT_PING_TIMEOUT", 10*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:3000")},
		},
		Alerts: AlertConfig{
			WebhookURL:    getEnv("ALERT_WEBHOOK_URL", ""),
			TempThreshold: getFloat("ALERT_TEMP_THRESHOLD", 30.0),
			Cooldown:      getDuration("ALERT_COOLDOWN", 5*time.Minute),
		},
	}

	return cfg, nil
}

// DSN returns the Postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// BrokerURL returns the tcp:// address of the MQTT broker.
func (c MQTTConfig) BrokerURL() string {
	return fmt.Sprintf("tcp://%s:%d", c.BrokerHost, c.BrokerPort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
