package entities

import (
	"time"

	"gorm.io/gorm"
)

// Action codes written to the audit log when a device is commanded.
const (
	ActionLedOn        = "LED_ON"
	ActionLedOff       = "LED_OFF"
	ActionMotorReverse = "MOTOR_REVERSE"
	ActionMotorStop    = "MOTOR_STOP"
	ActionMotorForward = "MOTOR_FORWARD"
	ActionMotorUnknown = "MOTOR_UNKNOWN"
)

// DeviceAction is an immutable audit record of a command issued to a device.
// It serializes the owning device as a plain foreign key, never as an
// embedded object.
type DeviceAction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DeviceID  uint      `gorm:"not null;index" json:"device_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func (a *DeviceAction) TableName() string { return "device_actions" }

func (a *DeviceAction) BeforeCreate(tx *gorm.DB) (err error) {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return nil
}

// MotorAction maps a raw motor state to its audit code. States outside
// {-1, 0, 1} are recorded as MOTOR_UNKNOWN rather than rejected.
func MotorAction(state int) string {
	switch state {
	case -1:
		return ActionMotorReverse
	case 0:
		return ActionMotorStop
	case 1:
		return ActionMotorForward
	default:
		return ActionMotorUnknown
	}
}
