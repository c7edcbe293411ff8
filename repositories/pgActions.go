package repositories

import (
	"iot-backend/db"
	"iot-backend/entities"
)

type actionPgRepository struct {
	db db.Database
}

func NewActionPgRepository(database db.Database) ActionRepository {
	return &actionPgRepository{db: database}
}

func (r *actionPgRepository) Create(action *entities.DeviceAction) error {
	return r.db.GetDB().Create(action).Error
}

func (r *actionPgRepository) GetByDeviceID(deviceID uint) ([]entities.DeviceAction, error) {
	var actions []entities.DeviceAction
	err := r.db.GetDB().Where("device_id = ?", deviceID).Order("timestamp DESC, id DESC").Find(&actions).Error
	return actions, err
}
