package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"agridata/store"
)

const (
	defaultLatestLimit  = 50
	defaultSinceMinutes = 1440
	defaultExportLimit  = 1000
)

// TimeseriesEntry is one reading in a single-sensor series; the sensor is
// implied by the query.
type TimeseriesEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	SoilMoisture *float64  `json:"soil_moisture"`
	Temperature  *float64  `json:"temperature"`
	Humidity     *float64  `json:"humidity"`
	PH           *float64  `json:"ph"`
	Crop         *string   `json:"crop"`
}

func positiveIntQuery(c *gin.Context, key string, def int) int {
	if s := c.Query(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// Latest returns the most recent readings across all sensors, newest first.
func (h *Handler) Latest(c *gin.Context) {
	limit := positiveIntQuery(c, "limit", defaultLatestLimit)

	rows, err := h.Store.Latest(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch readings"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Timeseries returns one sensor's readings within the requested window,
// oldest first.
func (h *Handler) Timeseries(c *gin.Context) {
	sensorID := c.Query("sensor_id")
	if sensorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sensor_id is required"})
		return
	}
	sinceMinutes := positiveIntQuery(c, "since_minutes", defaultSinceMinutes)
	since := time.Now().UTC().Add(-time.Duration(sinceMinutes) * time.Minute)

	readings, err := h.Store.Timeseries(c.Request.Context(), sensorID, since)
	if err != nil {
		if errors.Is(err, store.ErrSensorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sensor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch readings"})
		return
	}

	out := make([]TimeseriesEntry, 0, len(readings))
	for _, r := range readings {
		out = append(out, TimeseriesEntry{
			Timestamp:    r.Timestamp,
			SoilMoisture: r.SoilMoisture,
			Temperature:  r.Temperature,
			Humidity:     r.Humidity,
			PH:           r.PH,
			Crop:         r.Crop,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ListSensors returns every registered sensor.
func (h *Handler) ListSensors(c *gin.Context) {
	sensors, err := h.Store.ListSensors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sensors"})
		return
	}
	c.JSON(http.StatusOK, sensors)
}

// ExportCSV sends recent readings as a CSV file, newest first.
func (h *Handler) ExportCSV(c *gin.Context) {
	limit := positiveIntQuery(c, "limit", defaultExportLimit)

	rows, err := h.Store.Latest(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch readings"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=readings.csv")
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"sensor_id", "timestamp", "soil_moisture", "temperature", "humidity", "ph", "crop"})
	for _, row := range rows {
		writer.Write([]string{
			row.SensorID,
			row.Timestamp.UTC().Format(time.RFC3339),
			formatFloat(row.SoilMoisture),
			formatFloat(row.Temperature),
			formatFloat(row.Humidity),
			formatFloat(row.PH),
			formatString(row.Crop),
		})
	}
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
