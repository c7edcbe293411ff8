package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"iot-backend/db"
	"iot-backend/entities"
)

func newTestDB(t *testing.T) db.Database {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&entities.Device{}, &entities.DeviceAction{}, &entities.SensorReading{}))
	return &db.GormDatabase{DB: gdb}
}

func f64(v float64) *float64 { return &v }

func TestDeviceCreateAssignsID(t *testing.T) {
	repo := NewDevicePgRepository(newTestDB(t))

	d := &entities.Device{Name: "living room led", Topic: "/esp32/led1", Type: entities.DeviceTypeLED}
	require.NoError(t, repo.Create(d))
	assert.NotZero(t, d.ID)

	got, err := repo.GetByID(d.ID)
	require.NoError(t, err)
	assert.Equal(t, "living room led", got.Name)
	assert.False(t, got.LedState)
	assert.Nil(t, got.Temperature)
}

func TestDeviceGetByIDUnknown(t *testing.T) {
	repo := NewDevicePgRepository(newTestDB(t))

	_, err := repo.GetByID(99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetByTopicReturnsInsertionOrder(t *testing.T) {
	repo := NewDevicePgRepository(newTestDB(t))

	first := &entities.Device{Name: "first", Topic: "/esp32/sensor", Type: entities.DeviceTypeSensor}
	second := &entities.Device{Name: "second", Topic: "/esp32/sensor", Type: entities.DeviceTypeSensor}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	devices, err := repo.GetByTopic("/esp32/sensor")
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, first.ID, devices[0].ID)
	assert.Equal(t, second.ID, devices[1].ID)
}

func TestDeleteCascadesActionsAndReadings(t *testing.T) {
	database := newTestDB(t)
	deviceRepo := NewDevicePgRepository(database)
	actionRepo := NewActionPgRepository(database)
	readingRepo := NewReadingPgRepository(database)

	d := &entities.Device{Name: "motor", Topic: "/esp32/motor1", Type: entities.DeviceTypeMotor}
	require.NoError(t, deviceRepo.Create(d))
	require.NoError(t, actionRepo.Create(&entities.DeviceAction{DeviceID: d.ID, Action: entities.ActionMotorStop}))
	require.NoError(t, readingRepo.Create(&entities.SensorReading{DeviceID: d.ID, Temperature: f64(21)}))

	require.NoError(t, deviceRepo.Delete(d.ID))

	var actions, readings int64
	require.NoError(t, database.GetDB().Model(&entities.DeviceAction{}).Count(&actions).Error)
	require.NoError(t, database.GetDB().Model(&entities.SensorReading{}).Count(&readings).Error)
	assert.Zero(t, actions)
	assert.Zero(t, readings)
}

func TestRecentReadingsCapAndOrder(t *testing.T) {
	database := newTestDB(t)
	deviceRepo := NewDevicePgRepository(database)
	readingRepo := NewReadingPgRepository(database)

	d := &entities.Device{Name: "sensor", Topic: "/esp32/sensor", Type: entities.DeviceTypeSensor}
	require.NoError(t, deviceRepo.Create(d))

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		r := &entities.SensorReading{
			DeviceID:    d.ID,
			Temperature: f64(20 + float64(i)),
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, readingRepo.Create(r))
	}

	readings, err := readingRepo.GetRecentByDeviceID(d.ID, 20)
	require.NoError(t, err)
	require.Len(t, readings, 20)
	for i := 1; i < len(readings); i++ {
		assert.True(t, !readings[i].Timestamp.After(readings[i-1].Timestamp),
			"readings must be ordered newest first")
	}
	assert.Equal(t, 44.0, *readings[0].Temperature)
}

func TestRecentReadingsUnknownDeviceEmpty(t *testing.T) {
	readingRepo := NewReadingPgRepository(newTestDB(t))

	readings, err := readingRepo.GetRecentByDeviceID(123, 20)
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestUpdateWithActionIsAtomic(t *testing.T) {
	database := newTestDB(t)
	deviceRepo := NewDevicePgRepository(database)
	actionRepo := NewActionPgRepository(database)

	d := &entities.Device{Name: "led", Topic: "/esp32/led1", Type: entities.DeviceTypeLED}
	require.NoError(t, deviceRepo.Create(d))

	d.LedState = true
	require.NoError(t, deviceRepo.UpdateWithAction(d, &entities.DeviceAction{DeviceID: d.ID, Action: entities.ActionLedOn}))

	got, err := deviceRepo.GetByID(d.ID)
	require.NoError(t, err)
	assert.True(t, got.LedState)

	actions, err := actionRepo.GetByDeviceID(d.ID)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, entities.ActionLedOn, actions[0].Action)
	assert.False(t, actions[0].Timestamp.IsZero())
}

func TestUpdateWithReadingIsAtomic(t *testing.T) {
	database := newTestDB(t)
	deviceRepo := NewDevicePgRepository(database)
	readingRepo := NewReadingPgRepository(database)

	d := &entities.Device{Name: "sensor", Topic: "/esp32/sensor", Type: entities.DeviceTypeSensor}
	require.NoError(t, deviceRepo.Create(d))

	now := time.Now().UTC()
	d.Temperature = f64(25.5)
	d.LastSensorUpdate = &now
	reading := &entities.SensorReading{DeviceID: d.ID, Temperature: f64(25.5), Timestamp: now}
	require.NoError(t, deviceRepo.UpdateWithReading(d, reading))

	got, err := deviceRepo.GetByID(d.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Temperature)
	assert.Equal(t, 25.5, *got.Temperature)

	readings, err := readingRepo.GetRecentByDeviceID(d.ID, 20)
	require.NoError(t, err)
	assert.Len(t, readings, 1)
}
