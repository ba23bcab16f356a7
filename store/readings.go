package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"agridata/models"
)

// LatestRow is one entry of the cross-sensor latest query: a reading joined
// to its owning sensor's external identifier.
type LatestRow struct {
	SensorID     string    `json:"sensor_id"`
	Timestamp    time.Time `json:"timestamp"`
	SoilMoisture *float64  `json:"soil_moisture"`
	Temperature  *float64  `json:"temperature"`
	Humidity     *float64  `json:"humidity"`
	PH           *float64  `json:"ph" gorm:"column:ph"`
	Crop         *string   `json:"crop"`
}

// RecordReading resolves the sensor and appends one reading in a single
// transaction, so a failed reading write never commits on its own.
func (s *Store) RecordReading(ctx context.Context, sensorID string, location *string, reading *models.Reading) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sensor, err := resolveSensor(tx, sensorID, location)
		if err != nil {
			return err
		}
		reading.SensorID = sensor.ID
		return tx.Create(reading).Error
	})
}

// Latest returns the most recent readings across all sensors, newest first.
// Equal timestamps are broken by surrogate key, newest insert first.
func (s *Store) Latest(ctx context.Context, limit int) ([]LatestRow, error) {
	var rows []LatestRow
	err := s.db.WithContext(ctx).
		Table("readings").
		Select("sensors.sensor_id AS sensor_id, readings.timestamp, readings.soil_moisture, readings.temperature, readings.humidity, readings.ph, readings.crop").
		Joins("JOIN sensors ON sensors.id = readings.sensor_id").
		Order("readings.timestamp DESC").
		Order("readings.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Timeseries returns one sensor's readings with timestamp >= since, oldest
// first (insertion order on ties). An unknown sensor yields
// ErrSensorNotFound; a sensor with no readings in the window yields an empty
// slice.
func (s *Store) Timeseries(ctx context.Context, sensorID string, since time.Time) ([]models.Reading, error) {
	db := s.db.WithContext(ctx)

	var sensor models.Sensor
	if err := db.Where("sensor_id = ?", sensorID).First(&sensor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSensorNotFound
		}
		return nil, err
	}

	var readings []models.Reading
	err := db.Where("sensor_id = ? AND timestamp >= ?", sensor.ID, since).
		Order("timestamp ASC").
		Order("id ASC").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}

// LatestForSensor returns one sensor's newest reading, or nil when the
// sensor exists but has no readings yet.
func (s *Store) LatestForSensor(ctx context.Context, sensorID string) (*models.Reading, error) {
	db := s.db.WithContext(ctx)

	var sensor models.Sensor
	if err := db.Where("sensor_id = ?", sensorID).First(&sensor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSensorNotFound
		}
		return nil, err
	}

	var reading models.Reading
	err := db.Where("sensor_id = ?", sensor.ID).
		Order("timestamp DESC").
		Order("id DESC").
		First(&reading).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reading, nil
}
