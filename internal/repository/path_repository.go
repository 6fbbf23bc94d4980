package repository

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/OPRYAN90/robodog-request-system/internal/constants"
	"github.com/OPRYAN90/robodog-request-system/internal/geo"
	"github.com/OPRYAN90/robodog-request-system/internal/logging"
	"github.com/OPRYAN90/robodog-request-system/internal/models/entities"
)

// Subscriber receives the full ordered snapshot after every successful
// mutation. Subscribers run synchronously on the mutating goroutine and must
// not call back into the repository, the engine, or the service facade.
type Subscriber func(snapshot []*entities.Path)

// PathRepository owns the canonical in-memory path collection. It is the only
// writer of path state; everything else reads snapshots and requests
// mutations. At most one stored path has IsActive set at any instant.
type PathRepository struct {
	mu       sync.RWMutex
	paths    []*entities.Path
	subs     []Subscriber
	speedKmh float64
}

func NewPathRepository(speedKmh float64) *PathRepository {
	if speedKmh <= 0 {
		speedKmh = constants.RobotSpeedKmh
	}
	return &PathRepository{speedKmh: speedKmh}
}

// Subscribe registers a change listener. Not safe to call concurrently with
// mutations; wiring happens at startup.
func (r *PathRepository) Subscribe(fn Subscriber) {
	r.subs = append(r.subs, fn)
}

// Create validates the draft, computes the planned distance and travel time,
// and prepends the new pending path (most-recent-first is the user-visible
// ordering).
func (r *PathRepository) Create(points []geo.Coordinate, name, description string, priority entities.Priority) (*entities.Path, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Reason: constants.MsgPathNameRequired}
	}
	if len(points) < constants.MinWaypoints {
		return nil, &ValidationError{Reason: constants.MsgPathTooShort}
	}
	for _, pt := range points {
		if !pt.IsFinite() {
			return nil, &ValidationError{Reason: constants.MsgCoordinateNotFinite}
		}
	}
	if priority == "" {
		priority = entities.PriorityMedium
	}
	if !priority.Valid() {
		return nil, &ValidationError{Reason: "unknown priority " + string(priority)}
	}

	waypoints := make([]entities.Waypoint, len(points))
	for i, pt := range points {
		waypoints[i] = entities.Waypoint{
			ID:       uuid.NewString(),
			Position: pt,
		}
	}

	distanceKm := geo.PathDistanceKm(points)
	path := &entities.Path{
		ID:                  uuid.NewString(),
		Name:                strings.TrimSpace(name),
		Description:         description,
		Waypoints:           waypoints,
		CreatedAt:           time.Now(),
		EstimatedDistanceKm: distanceKm,
		EstimatedTimeHours:  geo.EstimatedTimeHours(distanceKm, r.speedKmh),
		Priority:            priority,
		Status:              entities.StatusPending,
	}

	r.mu.Lock()
	r.paths = append([]*entities.Path{path}, r.paths...)
	r.mu.Unlock()

	logging.Info("Path created",
		"path_id", path.ID,
		"name", path.Name,
		"waypoints", len(path.Waypoints),
		"distance_km", path.EstimatedDistanceKm,
	)

	r.notify()
	return path.Clone(), nil
}

// Update replaces the stored path carrying the same id. The animation engine
// pushes every tick's progress mutation through here.
func (r *PathRepository) Update(path *entities.Path) error {
	r.mu.Lock()
	idx := r.indexOf(path.ID)
	if idx < 0 {
		r.mu.Unlock()
		return &NotFoundError{PathID: path.ID}
	}
	r.paths[idx] = path.Clone()
	r.mu.Unlock()

	r.notify()
	return nil
}

// Activate marks the target in-progress and active and clears the active flag
// on every other path. Statuses of the others are left untouched: a
// superseded in-progress path stays in-progress, just no longer active.
func (r *PathRepository) Activate(pathID string) error {
	r.mu.Lock()
	idx := r.indexOf(pathID)
	if idx < 0 {
		r.mu.Unlock()
		return &NotFoundError{PathID: pathID}
	}
	for i, p := range r.paths {
		if i == idx {
			p.IsActive = true
			p.Status = entities.StatusInProgress
			continue
		}
		p.IsActive = false
	}
	r.mu.Unlock()

	logging.Info("Path activated", "path_id", pathID)
	r.notify()
	return nil
}

// Deactivate clears the active flag without touching status, leaving an
// interrupted run paused as in-progress.
func (r *PathRepository) Deactivate(pathID string) error {
	r.mu.Lock()
	idx := r.indexOf(pathID)
	if idx < 0 {
		r.mu.Unlock()
		return &NotFoundError{PathID: pathID}
	}
	r.paths[idx].IsActive = false
	r.mu.Unlock()

	logging.Info("Path deactivated", "path_id", pathID)
	r.notify()
	return nil
}

// Delete removes the path. Callers running an animation for this id must
// cancel it before calling; the repository does not stop timers.
func (r *PathRepository) Delete(pathID string) error {
	r.mu.Lock()
	idx := r.indexOf(pathID)
	if idx < 0 {
		r.mu.Unlock()
		return &NotFoundError{PathID: pathID}
	}
	r.paths = append(r.paths[:idx], r.paths[idx+1:]...)
	r.mu.Unlock()

	logging.Info("Path deleted", "path_id", pathID)
	r.notify()
	return nil
}

// Get returns a deep copy of the path with the given id.
func (r *PathRepository) Get(pathID string) (*entities.Path, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(pathID)
	if idx < 0 {
		return nil, &NotFoundError{PathID: pathID}
	}
	return r.paths[idx].Clone(), nil
}

// Snapshot returns deep copies of all paths in display order.
func (r *PathRepository) Snapshot() []*entities.Path {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Active returns the currently active path, or nil.
func (r *PathRepository) Active() *entities.Path {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.paths {
		if p.IsActive {
			return p.Clone()
		}
	}
	return nil
}

// Count returns the number of stored paths.
func (r *PathRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.paths)
}

func (r *PathRepository) snapshotLocked() []*entities.Path {
	out := make([]*entities.Path, len(r.paths))
	for i, p := range r.paths {
		out[i] = p.Clone()
	}
	return out
}

// indexOf requires r.mu held.
func (r *PathRepository) indexOf(pathID string) int {
	for i, p := range r.paths {
		if p.ID == pathID {
			return i
		}
	}
	return -1
}

// notify delivers the post-mutation snapshot to subscribers. Called outside
// the lock so subscribers can read from the repository.
func (r *PathRepository) notify() {
	if len(r.subs) == 0 {
		return
	}
	r.mu.RLock()
	snap := r.snapshotLocked()
	r.mu.RUnlock()
	for _, fn := range r.subs {
		fn(snap)
	}
}
