package dtos

import "github.com/OPRYAN90/robodog-request-system/internal/geo"

type CreatePathRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Priority    string           `json:"priority"`
	Waypoints   []geo.Coordinate `json:"waypoints"`
}

// AddDraftPointRequest is one pin dropped while drawing a path.
type AddDraftPointRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CompleteDraftRequest carries the save-dialog fields that turn the current
// draft into a stored path.
type CompleteDraftRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}
