package entities

import (
	"time"

	"gorm.io/gorm"
)

// SensorReading is one telemetry sample, appended once per accepted
// message and never mutated. Temperature and humidity are individually
// optional; the ingest path guarantees at least one is set.
type SensorReading struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DeviceID    uint      `gorm:"not null;index" json:"device_id"`
	Temperature *float64  `json:"temperature"`
	Humidity    *float64  `json:"humidity"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
}

func (r *SensorReading) TableName() string { return "sensor_readings" }

func (r *SensorReading) BeforeCreate(tx *gorm.DB) (err error) {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	return nil
}
