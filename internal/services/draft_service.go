package services

import (
	"sync"

	"github.com/OPRYAN90/robodog-request-system/internal/constants"
	"github.com/OPRYAN90/robodog-request-system/internal/geo"
	"github.com/OPRYAN90/robodog-request-system/internal/repository"
)

// DraftService holds the transient waypoint sequence being drawn before a
// path is saved. It lives outside the repository and is discarded on cancel
// or after a successful save.
type DraftService struct {
	mu     sync.Mutex
	active bool
	points []geo.Coordinate
}

func NewDraftService() *DraftService {
	return &DraftService{}
}

// Begin starts a fresh draft, discarding any previous one.
func (d *DraftService) Begin() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = true
	d.points = nil
}

// AddPoint appends a pin to the draft and returns the new point count.
func (d *DraftService) AddPoint(pt geo.Coordinate) (int, error) {
	if !pt.IsFinite() {
		return 0, &repository.ValidationError{Reason: constants.MsgCoordinateNotFinite}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.active {
		return 0, &repository.ValidationError{Reason: constants.MsgDraftNotStarted}
	}
	d.points = append(d.points, pt)
	return len(d.points), nil
}

// Points returns a copy of the draft sequence.
func (d *DraftService) Points() (points []geo.Coordinate, active bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]geo.Coordinate, len(d.points))
	copy(out, d.points)
	return out, d.active
}

// Cancel discards the draft.
func (d *DraftService) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = false
	d.points = nil
}

// Complete hands back the drawn sequence for saving and clears the draft.
// The draft survives untouched when it is still too short to save.
func (d *DraftService) Complete() ([]geo.Coordinate, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.active {
		return nil, &repository.ValidationError{Reason: constants.MsgDraftNotStarted}
	}
	if len(d.points) < constants.MinWaypoints {
		return nil, &repository.ValidationError{Reason: constants.MsgPathTooShort}
	}
	points := d.points
	d.active = false
	d.points = nil
	return points, nil
}
