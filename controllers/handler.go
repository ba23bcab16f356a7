package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agridata/store"
)

// Handler serves the ingestion and query endpoints against an injected
// store.
type Handler struct {
	Store *store.Store
}

func NewHandler(st *store.Store) *Handler {
	return &Handler{Store: st}
}

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/ingest", h.Ingest)

	api := r.Group("/api")
	api.GET("/latest", h.Latest)
	api.GET("/timeseries", h.Timeseries)
	api.GET("/sensors", h.ListSensors)
	api.GET("/advisories", h.Advisories)
	api.GET("/export.csv", h.ExportCSV)
}
