package simulator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStaysInPlausibleRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		r := Generate(rng, DefaultFleet[i%len(DefaultFleet)])
		assert.GreaterOrEqual(t, r.SoilMoisture, 8.0)
		assert.LessOrEqual(t, r.SoilMoisture, 45.0)
		assert.GreaterOrEqual(t, r.Temperature, 15.0)
		assert.LessOrEqual(t, r.Temperature, 35.0)
		assert.GreaterOrEqual(t, r.Humidity, 30.0)
		assert.LessOrEqual(t, r.Humidity, 90.0)
		assert.GreaterOrEqual(t, r.PH, 4.5)
		assert.LessOrEqual(t, r.PH, 8.5)
		assert.Contains(t, []string{"maize", "beans", "tomatoes"}, r.Crop)
	}
}

func TestGenerateCarriesSensorIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := Generate(rng, SimSensor{SensorID: "field-9-sensor-Z", Location: "Field 9"})
	assert.Equal(t, "field-9-sensor-Z", r.SensorID)
	assert.Equal(t, "Field 9", r.Location)

	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, 5*time.Second)
}
