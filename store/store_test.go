package store_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agridata/models"
	"agridata/store"
)

var dbSeq int64

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:storetest%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	st, err := store.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, st.Migrate())
	return st
}

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func TestResolveSensorCreatesExactlyOnce(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := st.ResolveSensor(ctx, "field-1-sensor-A", s("Field 1"))
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	for i := 0; i < 5; i++ {
		again, err := st.ResolveSensor(ctx, "field-1-sensor-A", s("Field 1"))
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	}

	sensors, err := st.ListSensors(ctx)
	require.NoError(t, err)
	assert.Len(t, sensors, 1)
}

func TestResolveSensorUpdatesLocation(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.ResolveSensor(ctx, "field-1-sensor-A", s("Field 1"))
	require.NoError(t, err)

	moved, err := st.ResolveSensor(ctx, "field-1-sensor-A", s("Field 2"))
	require.NoError(t, err)
	require.NotNil(t, moved.Location)
	assert.Equal(t, "Field 2", *moved.Location)

	// Absent location leaves the stored value unchanged.
	same, err := st.ResolveSensor(ctx, "field-1-sensor-A", nil)
	require.NoError(t, err)
	require.NotNil(t, same.Location)
	assert.Equal(t, "Field 2", *same.Location)

	sensors, err := st.ListSensors(ctx)
	require.NoError(t, err)
	require.Len(t, sensors, 1)
}

func TestRecordReadingAppendsOnePerCall(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		r := models.Reading{Timestamp: now.Add(time.Duration(i) * time.Minute), SoilMoisture: f(20)}
		require.NoError(t, st.RecordReading(ctx, "field-1-sensor-A", s("Field 1"), &r))
		require.NotZero(t, r.ID)
	}

	readings, err := st.Timeseries(ctx, "field-1-sensor-A", now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, readings, 3)
}

func TestLatestOrdering(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	t1 := base
	t2 := base.Add(10 * time.Minute)
	t3 := base.Add(20 * time.Minute)
	require.NoError(t, st.RecordReading(ctx, "s1", nil, &models.Reading{Timestamp: t1, Temperature: f(21)}))
	require.NoError(t, st.RecordReading(ctx, "s2", nil, &models.Reading{Timestamp: t3, Temperature: f(23)}))
	require.NoError(t, st.RecordReading(ctx, "s1", nil, &models.Reading{Timestamp: t2, Temperature: f(22)}))

	rows, err := st.Latest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "s2", rows[0].SensorID)
	assert.True(t, rows[0].Timestamp.Equal(t3))
	assert.Equal(t, "s1", rows[1].SensorID)
	assert.True(t, rows[1].Timestamp.Equal(t2))
}

func TestLatestTieBreakByInsertionOrder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	ts := time.Now().UTC().Add(-time.Minute)

	require.NoError(t, st.RecordReading(ctx, "s1", nil, &models.Reading{Timestamp: ts, Temperature: f(1)}))
	require.NoError(t, st.RecordReading(ctx, "s1", nil, &models.Reading{Timestamp: ts, Temperature: f(2)}))

	rows, err := st.Latest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2.0, *rows[0].Temperature)
	assert.Equal(t, 1.0, *rows[1].Temperature)
}

func TestTimeseriesWindowFiltering(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	old := models.Reading{Timestamp: now.Add(-2000 * time.Minute), SoilMoisture: f(30)}
	recent := models.Reading{Timestamp: now.Add(-10 * time.Minute), SoilMoisture: f(15)}
	require.NoError(t, st.RecordReading(ctx, "field-1-sensor-A", nil, &old))
	require.NoError(t, st.RecordReading(ctx, "field-1-sensor-A", nil, &recent))

	readings, err := st.Timeseries(ctx, "field-1-sensor-A", now.Add(-1440*time.Minute))
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 15.0, *readings[0].SoilMoisture)
}

func TestTimeseriesOldestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, st.RecordReading(ctx, "s1", nil, &models.Reading{Timestamp: now.Add(-5 * time.Minute), PH: f(6.5)}))
	require.NoError(t, st.RecordReading(ctx, "s1", nil, &models.Reading{Timestamp: now.Add(-30 * time.Minute), PH: f(6.0)}))

	readings, err := st.Timeseries(ctx, "s1", now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, 6.0, *readings[0].PH)
	assert.Equal(t, 6.5, *readings[1].PH)
}

func TestTimeseriesUnknownSensor(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Timeseries(context.Background(), "nonexistent-id", time.Now().Add(-time.Hour))
	assert.ErrorIs(t, err, store.ErrSensorNotFound)
}

func TestTimeseriesEmptyWindowIsNotAnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.ResolveSensor(ctx, "s1", nil)
	require.NoError(t, err)

	readings, err := st.Timeseries(ctx, "s1", time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestLatestForSensor(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := st.LatestForSensor(ctx, "nonexistent-id")
	assert.ErrorIs(t, err, store.ErrSensorNotFound)

	_, err = st.ResolveSensor(ctx, "s1", nil)
	require.NoError(t, err)

	reading, err := st.LatestForSensor(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, reading)

	require.NoError(t, st.RecordReading(ctx, "s1", nil, &models.Reading{Timestamp: now.Add(-time.Minute), Humidity: f(40)}))
	require.NoError(t, st.RecordReading(ctx, "s1", nil, &models.Reading{Timestamp: now, Humidity: f(60)}))

	reading, err = st.LatestForSensor(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, reading)
	assert.Equal(t, 60.0, *reading.Humidity)
}
