package entities

import (
	"time"
)

// Device types accepted at registration time.
const (
	DeviceTypeLED    = "LED"
	DeviceTypeMotor  = "MOTOR"
	DeviceTypeSensor = "SENSOR"
)

type Device struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `json:"name"`
	Topic      string `gorm:"index" json:"topic"`
	Type       string `json:"type"` // LED, MOTOR or SENSOR
	LedState   bool   `gorm:"not null;default:false" json:"ledState"`
	MotorState int    `gorm:"not null;default:0" json:"motorState"`

	// Last known telemetry; nil until the first sensor message arrives.
	Temperature      *float64   `json:"temperature"`
	Humidity         *float64   `json:"humidity"`
	LastSensorUpdate *time.Time `json:"lastSensorUpdate"`

	// Owned rows; both tables carry ON DELETE CASCADE back to devices.
	Actions  []DeviceAction  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Readings []SensorReading `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// ValidType reports whether the device type is one of LED, MOTOR, SENSOR.
// Checked at creation only; later state updates do not re-validate.
func (d *Device) ValidType() bool {
	switch d.Type {
	case DeviceTypeLED, DeviceTypeMotor, DeviceTypeSensor:
		return true
	}
	return false
}
