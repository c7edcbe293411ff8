package server

import (
	"encoding/json"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"iot-backend/alerts"
	"iot-backend/confs"
	"iot-backend/db"
	"iot-backend/entities"
	"iot-backend/handlers"
	httpHandler "iot-backend/handlers/http"
	"iot-backend/mqtt"
	"iot-backend/repositories"
	"iot-backend/usecases"
	"iot-backend/ws"
)

type Server struct {
	app *gin.Engine
	cfg *confs.Config
	db  db.Database
}

func NewServer(cfg *confs.Config, database db.Database) *Server {
	return &Server{
		app: gin.Default(),
		cfg: cfg,
		db:  database,
	}
}

// feedEvent is the envelope pushed to websocket feed clients for every
// stored reading.
type feedEvent struct {
	Type        string    `json:"type"`
	DeviceID    uint      `json:"device_id"`
	Device      string    `json:"device"`
	Temperature *float64  `json:"temperature"`
	Humidity    *float64  `json:"humidity"`
	Timestamp   time.Time `json:"timestamp"`
}

// Start wires every component explicitly and serves until the HTTP
// listener stops.
func (s *Server) Start() error {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = s.cfg.CORS.AllowedOrigins
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(corsCfg))

	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// Repositories
	deviceRepo := repositories.NewDevicePgRepository(s.db)
	actionRepo := repositories.NewActionPgRepository(s.db)
	readingRepo := repositories.NewReadingPgRepository(s.db)

	// Telemetry ingest and broker link. The subscriber and the command
	// publisher share one connection.
	telemetryUC := usecases.NewTelemetryUseCase(deviceRepo, readingRepo, s.cfg.MQTT.SensorTopic)
	client := mqtt.NewClient(s.cfg.MQTT, telemetryUC.HandleMessage)
	if err := client.Connect(); err != nil {
		return err
	}
	defer client.Disconnect()

	deviceUC := usecases.NewDeviceUseCase(deviceRepo, actionRepo, client)

	// Live feed and alerting observe accepted readings.
	hub := ws.NewHub()
	notifier := alerts.NewNotifier(s.cfg.Alerts)
	telemetryUC.OnReading = func(device *entities.Device, reading *entities.SensorReading) {
		notifier.Check(device, reading)
		if hub.Count() == 0 {
			return
		}
		b, err := json.Marshal(feedEvent{
			Type:        "sensor_reading",
			DeviceID:    device.ID,
			Device:      device.Name,
			Temperature: reading.Temperature,
			Humidity:    reading.Humidity,
			Timestamp:   reading.Timestamp,
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal feed event")
			return
		}
		hub.Broadcast(b)
	}

	// Handlers
	deviceHandler := httpHandler.NewDeviceHandler(deviceUC)
	sensorHandler := httpHandler.NewSensorHandler(telemetryUC)
	feedHandler := handlers.NewFeedHandler(hub)

	api := s.app.Group("/api")
	{
		devices := api.Group("/devices")
		{
			devices.GET("", deviceHandler.GetAllDevices)
			devices.POST("", deviceHandler.CreateDevice)
			devices.POST("/:id/led", deviceHandler.SetLed)
			devices.POST("/:id/motor", deviceHandler.SetMotor)
			devices.DELETE("/:id", deviceHandler.DeleteDevice)
			devices.GET("/:id/actions", deviceHandler.GetDeviceActions)
		}

		api.GET("/sensors/:deviceId", sensorHandler.GetRecentReadings)
	}

	s.app.GET("/ws", feedHandler.HandleFeed)

	log.Info().Str("addr", s.cfg.Server.Addr).Msg("http server listening")
	return s.app.Run(s.cfg.Server.Addr)
}
