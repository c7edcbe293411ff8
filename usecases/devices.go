package usecases

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"iot-backend/entities"
	"iot-backend/mqtt"
	"iot-backend/repositories"
)

var (
	ErrDeviceNotFound    = errors.New("device not found")
	ErrInvalidDeviceType = errors.New("invalid device type (must be LED, MOTOR or SENSOR)")
)

// DeviceUseCase implements device registration, command dispatch and
// deletion. Every command mutates the store first and publishes second;
// a failed publish never rolls the mutation back.
type DeviceUseCase struct {
	DeviceRepo repositories.DeviceRepository
	ActionRepo repositories.ActionRepository
	Publisher  mqtt.Publisher
}

func NewDeviceUseCase(deviceRepo repositories.DeviceRepository, actionRepo repositories.ActionRepository, publisher mqtt.Publisher) *DeviceUseCase {
	return &DeviceUseCase{
		DeviceRepo: deviceRepo,
		ActionRepo: actionRepo,
		Publisher:  publisher,
	}
}

// CreateDevice registers a new device. The type must be LED, MOTOR or
// SENSOR; nothing else is checked, duplicate names and topics are allowed.
func (uc *DeviceUseCase) CreateDevice(device *entities.Device) error {
	if !device.ValidType() {
		return ErrInvalidDeviceType
	}
	return uc.DeviceRepo.Create(device)
}

func (uc *DeviceUseCase) GetAllDevices() ([]entities.Device, error) {
	return uc.DeviceRepo.GetAll()
}

func (uc *DeviceUseCase) GetDevice(id uint) (*entities.Device, error) {
	device, err := uc.DeviceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return device, nil
}

// SetLed switches the LED on or off: persists the new state together
// with its audit record, then publishes ON/OFF to <topic>/led.
func (uc *DeviceUseCase) SetLed(id uint, on bool) (*entities.Device, error) {
	device, err := uc.GetDevice(id)
	if err != nil {
		return nil, err
	}

	device.LedState = on
	action := &entities.DeviceAction{DeviceID: device.ID, Action: entities.ActionLedOff}
	payload := "OFF"
	if on {
		action.Action = entities.ActionLedOn
		payload = "ON"
	}

	if err := uc.DeviceRepo.UpdateWithAction(device, action); err != nil {
		return nil, err
	}

	uc.Publisher.Publish(device.Topic+"/led", payload)
	return device, nil
}

// SetMotor persists the raw motor state and publishes it to
// <topic>/motor. The state is deliberately not validated here: creation
// restricts device types, but motor commands accept any integer and
// values outside {-1, 0, 1} are audited as MOTOR_UNKNOWN.
func (uc *DeviceUseCase) SetMotor(id uint, state int) (*entities.Device, error) {
	device, err := uc.GetDevice(id)
	if err != nil {
		return nil, err
	}

	device.MotorState = state
	action := &entities.DeviceAction{DeviceID: device.ID, Action: entities.MotorAction(state)}

	if err := uc.DeviceRepo.UpdateWithAction(device, action); err != nil {
		return nil, err
	}

	uc.Publisher.Publish(device.Topic+"/motor", strconv.Itoa(state))
	return device, nil
}

// DeleteDevice notifies <topic>/delete and removes the device. The
// database cascades the deletion to its actions and readings. The
// deletion notice is best effort; the delete proceeds regardless.
func (uc *DeviceUseCase) DeleteDevice(id uint) error {
	device, err := uc.GetDevice(id)
	if err != nil {
		return err
	}

	uc.Publisher.Publish(device.Topic+"/delete", "DEVICE_DELETED")

	return uc.DeviceRepo.Delete(device.ID)
}

// GetDeviceActions returns the audit log for a device, newest first.
func (uc *DeviceUseCase) GetDeviceActions(id uint) ([]entities.DeviceAction, error) {
	if _, err := uc.GetDevice(id); err != nil {
		return nil, err
	}
	return uc.ActionRepo.GetByDeviceID(id)
}
