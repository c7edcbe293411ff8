package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMotorAction(t *testing.T) {
	assert.Equal(t, ActionMotorReverse, MotorAction(-1))
	assert.Equal(t, ActionMotorStop, MotorAction(0))
	assert.Equal(t, ActionMotorForward, MotorAction(1))
	assert.Equal(t, ActionMotorUnknown, MotorAction(2))
	assert.Equal(t, ActionMotorUnknown, MotorAction(-7))
}

func TestDeviceValidType(t *testing.T) {
	assert.True(t, (&Device{Type: DeviceTypeLED}).ValidType())
	assert.True(t, (&Device{Type: DeviceTypeMotor}).ValidType())
	assert.True(t, (&Device{Type: DeviceTypeSensor}).ValidType())
	assert.False(t, (&Device{Type: "FAN"}).ValidType())
	assert.False(t, (&Device{}).ValidType())
}
