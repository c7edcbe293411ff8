package repositories

import "iot-backend/entities"

type DeviceRepository interface {
	Create(device *entities.Device) error
	GetByID(id uint) (*entities.Device, error)
	GetAll() ([]entities.Device, error)
	GetByTopic(topic string) ([]entities.Device, error)
	Update(device *entities.Device) error
	Delete(id uint) error

	// UpdateWithAction persists a device mutation and its audit record in
	// a single transaction.
	UpdateWithAction(device *entities.Device, action *entities.DeviceAction) error

	// UpdateWithReading persists a telemetry-driven device update and the
	// new reading in a single transaction.
	UpdateWithReading(device *entities.Device, reading *entities.SensorReading) error
}

type ActionRepository interface {
	Create(action *entities.DeviceAction) error
	GetByDeviceID(deviceID uint) ([]entities.DeviceAction, error)
}

type ReadingRepository interface {
	Create(reading *entities.SensorReading) error
	GetRecentByDeviceID(deviceID uint, limit int) ([]entities.SensorReading, error)
}
