// Package simulator is the telemetry producer: it synthesizes plausible
// field readings and posts them to the ingestion endpoint.
package simulator

import (
	"math"
	"math/rand"
	"time"
)

// SimSensor is one simulated telemetry source.
type SimSensor struct {
	SensorID string
	Location string
}

// DefaultFleet is the fixed set of simulated sensors.
var DefaultFleet = []SimSensor{
	{SensorID: "field-1-sensor-A", Location: "Field 1"},
	{SensorID: "field-1-sensor-B", Location: "Field 1"},
	{SensorID: "field-2-sensor-A", Location: "Field 2"},
}

var crops = []string{"maize", "beans", "tomatoes"}

// ReadingPayload matches the ingestion endpoint's JSON contract.
type ReadingPayload struct {
	SensorID     string  `json:"sensor_id"`
	Location     string  `json:"location"`
	Timestamp    string  `json:"timestamp"`
	SoilMoisture float64 `json:"soil_moisture"`
	Temperature  float64 `json:"temperature"`
	Humidity     float64 `json:"humidity"`
	PH           float64 `json:"ph"`
	Crop         string  `json:"crop"`
}

// Generate synthesizes one reading for the given sensor with values in
// ranges plausible for many soils and crops.
func Generate(rng *rand.Rand, s SimSensor) ReadingPayload {
	return ReadingPayload{
		SensorID:     s.SensorID,
		Location:     s.Location,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		SoilMoisture: round2(uniform(rng, 8.0, 45.0)),
		Temperature:  round2(uniform(rng, 15.0, 35.0)),
		Humidity:     round2(uniform(rng, 30.0, 90.0)),
		PH:           round2(uniform(rng, 4.5, 8.5)),
		Crop:         crops[rng.Intn(len(crops))],
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
