package repositories

import (
	"iot-backend/db"
	"iot-backend/entities"

	"gorm.io/gorm"
)

type devicePgRepository struct {
	db db.Database
}

func NewDevicePgRepository(database db.Database) DeviceRepository {
	return &devicePgRepository{db: database}
}

func (r *devicePgRepository) Create(device *entities.Device) error {
	return r.db.GetDB().Create(device).Error
}

func (r *devicePgRepository) GetByID(id uint) (*entities.Device, error) {
	var device entities.Device
	err := r.db.GetDB().Where("id = ?", id).First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *devicePgRepository) GetAll() ([]entities.Device, error) {
	var devices []entities.Device
	err := r.db.GetDB().Find(&devices).Error
	return devices, err
}

// GetByTopic returns every device registered under the given topic, in
// primary-key order. Callers that need a single owner take the first
// element; with duplicate topics that choice is an artifact of insertion
// order, not a guarantee.
func (r *devicePgRepository) GetByTopic(topic string) ([]entities.Device, error) {
	var devices []entities.Device
	err := r.db.GetDB().Where("topic = ?", topic).Order("id").Find(&devices).Error
	return devices, err
}

func (r *devicePgRepository) Update(device *entities.Device) error {
	return r.db.GetDB().Save(device).Error
}

func (r *devicePgRepository) Delete(id uint) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.Device{}).Error
}

func (r *devicePgRepository) UpdateWithAction(device *entities.Device, action *entities.DeviceAction) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(device).Error; err != nil {
			return err
		}
		return tx.Create(action).Error
	})
}

func (r *devicePgRepository) UpdateWithReading(device *entities.Device, reading *entities.SensorReading) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(device).Error; err != nil {
			return err
		}
		return tx.Create(reading).Error
	})
}
