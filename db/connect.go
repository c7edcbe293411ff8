package db

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"iot-backend/confs"
	"iot-backend/entities"
)

// Connect opens the Postgres connection and migrates the schema. The
// devices, device_actions and sensor_readings tables are created with
// cascading foreign keys from the owned rows back to devices.
func Connect(cfg confs.DatabaseConfig) (Database, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := Migrate(gdb); err != nil {
		return nil, err
	}

	log.Info().Str("host", cfg.Host).Str("db", cfg.Name).Msg("database connection established")
	return &GormDatabase{DB: gdb}, nil
}

// Migrate creates or updates the schema for all entities.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&entities.Device{}, &entities.DeviceAction{}, &entities.SensorReading{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
