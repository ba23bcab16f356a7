package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"agridata/metrics"
	"agridata/models"
)

// IngestPayload is one incoming reading. Only the sensor identifier is
// required; all measurements are optional and stored without range
// validation.
type IngestPayload struct {
	SensorID     string   `json:"sensor_id" binding:"required"`
	Location     *string  `json:"location"`
	Timestamp    *string  `json:"timestamp"`
	SoilMoisture *float64 `json:"soil_moisture"`
	Temperature  *float64 `json:"temperature"`
	Humidity     *float64 `json:"humidity"`
	PH           *float64 `json:"ph"`
	Crop         *string  `json:"crop"`
}

// Timestamps arrive as RFC3339 or as timezone-naive ISO-8601 (the simulator
// sends the latter); naive values are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Ingest validates one reading, lazily registers its sensor and appends the
// reading to the store.
func (h *Handler) Ingest(c *gin.Context) {
	var payload IngestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		metrics.IngestTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: sensor_id is required"})
		return
	}
	if strings.TrimSpace(payload.SensorID) == "" {
		metrics.IngestTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "sensor_id is required"})
		return
	}

	ts := time.Now().UTC()
	if payload.Timestamp != nil && *payload.Timestamp != "" {
		parsed, ok := parseTimestamp(*payload.Timestamp)
		if !ok {
			metrics.IngestTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "timestamp is not a valid ISO-8601 value"})
			return
		}
		ts = parsed
	}

	reading := models.Reading{
		Timestamp:    ts,
		SoilMoisture: payload.SoilMoisture,
		Temperature:  payload.Temperature,
		Humidity:     payload.Humidity,
		PH:           payload.PH,
		Crop:         payload.Crop,
	}
	if err := h.Store.RecordReading(c.Request.Context(), payload.SensorID, payload.Location, &reading); err != nil {
		metrics.IngestTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store reading"})
		return
	}

	metrics.IngestTotal.WithLabelValues("created").Inc()
	metrics.ReadingsCreated.Inc()
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "reading_id": reading.ID})
}
