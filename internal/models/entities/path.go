package entities

import (
	"time"

	"github.com/OPRYAN90/robodog-request-system/internal/geo"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether the priority is one of the known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Waypoint is one geographic stop along a path. Completed is flipped by the
// animation engine once the robot has traversed the segment at this waypoint;
// waypoints are never removed individually.
type Waypoint struct {
	ID        string         `json:"id"`
	Position  geo.Coordinate `json:"position"`
	Completed bool           `json:"completed"`
}

// Path is a named, ordered sequence of waypoints representing a planned
// route. EstimatedDistanceKm and EstimatedTimeHours describe the planned
// route, are computed once at creation, and never change afterward.
type Path struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	Waypoints           []Waypoint `json:"waypoints"`
	IsActive            bool       `json:"is_active"`
	CreatedAt           time.Time  `json:"created_at"`
	EstimatedDistanceKm float64    `json:"estimated_distance_km"`
	EstimatedTimeHours  float64    `json:"estimated_time_hours"`
	Priority            Priority   `json:"priority"`
	Status              Status     `json:"status"`
}

// Clone returns a deep copy. The repository hands out clones so readers can
// never mutate stored state.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Waypoints = make([]Waypoint, len(p.Waypoints))
	copy(cp.Waypoints, p.Waypoints)
	return &cp
}

// Coordinates returns the waypoint positions in traversal order.
func (p *Path) Coordinates() []geo.Coordinate {
	coords := make([]geo.Coordinate, len(p.Waypoints))
	for i, wp := range p.Waypoints {
		coords[i] = wp.Position
	}
	return coords
}

// TotalSegments is the number of straight-line stretches between consecutive
// waypoints.
func (p *Path) TotalSegments() int {
	if len(p.Waypoints) < 2 {
		return 0
	}
	return len(p.Waypoints) - 1
}

// Progress is the share of completed waypoints as a percentage, the figure
// the sidebar list renders next to each path.
func (p *Path) Progress() float64 {
	if len(p.Waypoints) == 0 {
		return 0
	}
	done := 0
	for _, wp := range p.Waypoints {
		if wp.Completed {
			done++
		}
	}
	return 100 * float64(done) / float64(len(p.Waypoints))
}
