package dtos

import (
	"time"

	"github.com/OPRYAN90/robodog-request-system/internal/geo"
	"github.com/OPRYAN90/robodog-request-system/internal/models/entities"
)

type APIResponse[T any] struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
	Data      *T        `json:"data,omitempty"`
}

// PathResponse mirrors the stored entity plus the completed-waypoint
// percentage the list view renders.
type PathResponse struct {
	entities.Path
	ProgressPct float64 `json:"progress_pct"`
}

func NewPathResponse(p *entities.Path) PathResponse {
	return PathResponse{Path: *p, ProgressPct: p.Progress()}
}

type PathListResponse struct {
	Paths []PathResponse `json:"paths"`
	Count int            `json:"count"`
}

func NewPathListResponse(paths []*entities.Path) PathListResponse {
	out := PathListResponse{Paths: make([]PathResponse, len(paths)), Count: len(paths)}
	for i, p := range paths {
		out.Paths[i] = NewPathResponse(p)
	}
	return out
}

type RobotPositionResponse struct {
	Position geo.Coordinate `json:"position"`
}

type DraftResponse struct {
	Active bool             `json:"active"`
	Points []geo.Coordinate `json:"points"`
	Count  int              `json:"count"`
}
