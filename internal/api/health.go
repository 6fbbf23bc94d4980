package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/OPRYAN90/robodog-request-system/internal/engine"
	"github.com/OPRYAN90/robodog-request-system/internal/models/entities"
	"github.com/OPRYAN90/robodog-request-system/internal/services"
)

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(svc *services.PathService, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		svcStatuses := make(map[string]entities.ServiceStatus)

		svcStatuses["repository"] = entities.ServiceStatus{
			Status:  "ok",
			Details: fmt.Sprintf("%d paths stored", len(svc.ListPaths())),
		}

		engineStatus := "ok"
		engineDetails := "idle"
		switch svc.EngineState() {
		case engine.StateRunning:
			engineDetails = "animating path " + svc.Engine().ActivePathID()
		case engine.StateCompleted:
			engineDetails = "last run completed"
		}
		svcStatuses["engine"] = entities.ServiceStatus{
			Status:  engineStatus,
			Details: engineDetails,
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Services: svcStatuses,
			Status:   "ok",
			UpSince:  upSince,
			Uptime:   uptime,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
