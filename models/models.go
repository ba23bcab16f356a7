package models

import "time"

// Sensor is a logical telemetry source identified by a stable external
// string identifier. It is created lazily the first time an ingest
// references it.
type Sensor struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SensorID    string    `json:"sensor_id" gorm:"uniqueIndex;not null"`
	Location    *string   `json:"location"`
	Description *string   `json:"description"`
	Readings    []Reading `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// Reading is one timestamped measurement record. All measurement fields are
// optional; a reading is never updated after it is written.
type Reading struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SensorID     uint      `json:"sensor_id" gorm:"index;not null"`
	Timestamp    time.Time `json:"timestamp" gorm:"index"`
	SoilMoisture *float64  `json:"soil_moisture"`
	Temperature  *float64  `json:"temperature"`
	Humidity     *float64  `json:"humidity"`
	PH           *float64  `json:"ph" gorm:"column:ph"`
	Crop         *string   `json:"crop"`
}
