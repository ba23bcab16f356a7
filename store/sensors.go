package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agridata/models"
)

// ResolveSensor returns the sensor with the given external identifier,
// creating it if it does not exist yet. When a non-empty location is supplied
// and differs from the stored value, the stored location is overwritten.
// Repeated identical calls are idempotent: at most one write happens per call.
func (s *Store) ResolveSensor(ctx context.Context, sensorID string, location *string) (*models.Sensor, error) {
	return resolveSensor(s.db.WithContext(ctx), sensorID, location)
}

// resolveSensor runs against the given handle so the ingest path can reuse it
// inside a transaction. First-sight creation uses an insert-or-ignore upsert
// on the unique sensor_id column: two concurrent first-sight calls both
// succeed and exactly one row is created.
func resolveSensor(db *gorm.DB, sensorID string, location *string) (*models.Sensor, error) {
	sensor := models.Sensor{SensorID: sensorID, Location: location}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sensor_id"}},
		DoNothing: true,
	}).Create(&sensor)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 1 {
		return &sensor, nil
	}

	// Lost the insert (or the sensor already existed): load the stored row.
	if err := db.Where("sensor_id = ?", sensorID).First(&sensor).Error; err != nil {
		return nil, err
	}
	if location != nil && *location != "" && (sensor.Location == nil || *sensor.Location != *location) {
		if err := db.Model(&sensor).Update("location", location).Error; err != nil {
			return nil, err
		}
		sensor.Location = location
	}
	return &sensor, nil
}

// ListSensors returns every registered sensor.
func (s *Store) ListSensors(ctx context.Context) ([]models.Sensor, error) {
	var sensors []models.Sensor
	if err := s.db.WithContext(ctx).Order("sensor_id asc").Find(&sensors).Error; err != nil {
		return nil, err
	}
	return sensors, nil
}
