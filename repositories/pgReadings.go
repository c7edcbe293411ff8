package repositories

import (
	"iot-backend/db"
	"iot-backend/entities"
)

type readingPgRepository struct {
	db db.Database
}

func NewReadingPgRepository(database db.Database) ReadingRepository {
	return &readingPgRepository{db: database}
}

func (r *readingPgRepository) Create(reading *entities.SensorReading) error {
	return r.db.GetDB().Create(reading).Error
}

// GetRecentByDeviceID returns the newest readings first, capped at limit.
// An unknown device id simply yields an empty slice.
func (r *readingPgRepository) GetRecentByDeviceID(deviceID uint, limit int) ([]entities.SensorReading, error) {
	if limit <= 0 {
		limit = 20
	}
	var readings []entities.SensorReading
	err := r.db.GetDB().Where("device_id = ?", deviceID).Order("timestamp DESC, id DESC").Limit(limit).Find(&readings).Error
	return readings, err
}
