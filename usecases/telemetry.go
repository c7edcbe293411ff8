package usecases

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"iot-backend/entities"
	"iot-backend/repositories"
)

// sensorPayload is the wire shape of a telemetry message. Both fields are
// optional; a message carrying neither is dropped.
type sensorPayload struct {
	Temp *float64 `json:"temp"`
	Humi *float64 `json:"humi"`
}

// TelemetryUseCase handles inbound sensor messages and serves the recent
// readings query. Errors on the ingest path are logged and swallowed;
// there is no caller to report to and no retry.
type TelemetryUseCase struct {
	DeviceRepo  repositories.DeviceRepository
	ReadingRepo repositories.ReadingRepository

	// sensorTopic is the one delivered topic treated as telemetry. All
	// other subtopics of the namespace are ignored.
	sensorTopic string

	// OnReading, when set, observes every accepted reading after it has
	// been persisted (websocket feed, alerting).
	OnReading func(device *entities.Device, reading *entities.SensorReading)
}

func NewTelemetryUseCase(deviceRepo repositories.DeviceRepository, readingRepo repositories.ReadingRepository, sensorTopic string) *TelemetryUseCase {
	return &TelemetryUseCase{
		DeviceRepo:  deviceRepo,
		ReadingRepo: readingRepo,
		sensorTopic: sensorTopic,
	}
}

// HandleMessage processes one delivered MQTT message. A valid message
// produces exactly one device update and one appended reading; every
// discard leaves the store untouched.
func (uc *TelemetryUseCase) HandleMessage(topic string, payload []byte) {
	if topic != uc.sensorTopic {
		log.Debug().Str("topic", topic).Msg("ignoring non-sensor topic")
		return
	}

	var p sensorPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		log.Error().Err(err).Str("payload", string(payload)).Msg("malformed telemetry payload")
		return
	}
	if p.Temp == nil && p.Humi == nil {
		log.Error().Str("payload", string(payload)).Msg("telemetry payload carries no temp or humi")
		return
	}

	devices, err := uc.DeviceRepo.GetByTopic(topic)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("device lookup failed")
		return
	}
	if len(devices) == 0 {
		log.Error().Str("topic", topic).Msg("no device registered for sensor topic")
		return
	}
	// First match wins when several devices share the topic.
	device := devices[0]

	now := time.Now().UTC()
	if p.Temp != nil {
		device.Temperature = p.Temp
	}
	if p.Humi != nil {
		device.Humidity = p.Humi
	}
	device.LastSensorUpdate = &now

	reading := &entities.SensorReading{
		DeviceID:    device.ID,
		Temperature: p.Temp,
		Humidity:    p.Humi,
		Timestamp:   now,
	}

	if err := uc.DeviceRepo.UpdateWithReading(&device, reading); err != nil {
		log.Error().Err(err).Uint("device_id", device.ID).Msg("failed to persist telemetry")
		return
	}

	log.Info().Uint("device_id", device.ID).Str("device", device.Name).
		Interface("temp", p.Temp).Interface("humi", p.Humi).Msg("sensor reading stored")

	if uc.OnReading != nil {
		uc.OnReading(&device, reading)
	}
}

// RecentReadings returns up to 20 readings for a device, newest first.
// Unknown ids yield an empty slice, not an error.
func (uc *TelemetryUseCase) RecentReadings(deviceID uint) ([]entities.SensorReading, error) {
	return uc.ReadingRepo.GetRecentByDeviceID(deviceID, 20)
}
