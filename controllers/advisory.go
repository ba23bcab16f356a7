package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agridata/store"
	"agridata/utils"
)

// Advisories evaluates the static threshold rules against a sensor's newest
// reading. A sensor with no readings yet gets an empty advisory list.
func (h *Handler) Advisories(c *gin.Context) {
	sensorID := c.Query("sensor_id")
	if sensorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sensor_id is required"})
		return
	}

	reading, err := h.Store.LatestForSensor(c.Request.Context(), sensorID)
	if err != nil {
		if errors.Is(err, store.ErrSensorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sensor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reading"})
		return
	}

	advisories := []string{}
	if reading != nil {
		advisories = utils.Advisories(*reading)
	}
	c.JSON(http.StatusOK, gin.H{"sensor_id": sensorID, "advisories": advisories})
}
