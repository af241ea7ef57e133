package controllers

import (
	"fmt"
	"imgstore/internal/assets"
	"imgstore/internal/services"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	assets    assets.AssetStoreInterface
	service   services.ViewReportServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status         string  `json:"status"`
	Uptime         string  `json:"uptime"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	AssetBackend   string  `json:"asset_backend"`
	ViewLogEnabled bool    `json:"view_log_enabled"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:         "ok",
		Uptime:         formatDuration(uptime),
		UptimeSeconds:  uptime.Seconds(),
		AssetBackend:   hc.assets.Kind().String(),
		ViewLogEnabled: hc.service.Enabled(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(assetStore assets.AssetStoreInterface, service services.ViewReportServiceInterface) *HealthController {
	return &HealthController{
		assets:    assetStore,
		service:   service,
		startTime: time.Now(),
	}
}
