package engine

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/OPRYAN90/robodog-request-system/internal/constants"
	"github.com/OPRYAN90/robodog-request-system/internal/geo"
	"github.com/OPRYAN90/robodog-request-system/internal/logging"
	"github.com/OPRYAN90/robodog-request-system/internal/metrics"
	"github.com/OPRYAN90/robodog-request-system/internal/models/entities"
	"github.com/OPRYAN90/robodog-request-system/internal/repository"
)

type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
)

// Telemetry is the progress snapshot emitted on every tick of a running
// animation.
type Telemetry struct {
	PathID             string    `json:"path_id"`
	OverallProgressPct float64   `json:"overall_progress_pct"`
	SegmentIndex       int       `json:"segment_index"`
	TotalSegments      int       `json:"total_segments"`
	SegmentProgressPct float64   `json:"segment_progress_pct"`
	TraveledKm         float64   `json:"traveled_km"`
	RemainingKm        float64   `json:"remaining_km"`
	ETA                time.Time `json:"eta"`
}

// Listener receives engine notifications. Callbacks run synchronously on the
// tick (or Start/Cancel) goroutine while the engine lock is held, so they
// must return quickly and must not call back into the Animator.
type Listener interface {
	OnRobotPosition(pos geo.Coordinate)
	OnTelemetry(t Telemetry)
	OnPathCompleted(path *entities.Path)
}

// NopListener is an embeddable no-op Listener.
type NopListener struct{}

func (NopListener) OnRobotPosition(geo.Coordinate) {}
func (NopListener) OnTelemetry(Telemetry)          {}
func (NopListener) OnPathCompleted(*entities.Path) {}

// run is one owned animation: the working path copy, the interpolation
// cursor, and the ticker handle. At most one run exists at a time.
type run struct {
	path        *entities.Path
	coords      []geo.Coordinate
	segmentIdx  int
	segmentProg float64
	totalKm     float64
	eta         time.Time
	startedAt   time.Time
	ticker      *time.Ticker
	stop        chan struct{}
}

// Animator moves the robot marker along one active path. It owns the tick
// timer as an explicit cancellable handle: Cancel (or a superseding Start)
// releases it synchronously, and no notification fires after Cancel returns.
type Animator struct {
	repo     *repository.PathRepository
	listener Listener
	metrics  *metrics.MetricsRegistry
	log      *zap.SugaredLogger

	tickInterval time.Duration
	speedKmh     float64
	now          func() time.Time

	mu       sync.Mutex
	state    State
	run      *run
	robotPos geo.Coordinate
}

type Option func(*Animator)

// WithTickInterval overrides the wall-clock period between animation steps.
func WithTickInterval(d time.Duration) Option {
	return func(a *Animator) { a.tickInterval = d }
}

// WithSpeed overrides the nominal speed in km/h used for stepping and ETA.
func WithSpeed(kmh float64) Option {
	return func(a *Animator) { a.speedKmh = kmh }
}

// WithListener sets the notification sink.
func WithListener(l Listener) Option {
	return func(a *Animator) { a.listener = l }
}

// WithMetrics attaches the prometheus registry.
func WithMetrics(m *metrics.MetricsRegistry) Option {
	return func(a *Animator) { a.metrics = m }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Animator) { a.now = now }
}

func NewAnimator(repo *repository.PathRepository, opts ...Option) *Animator {
	a := &Animator{
		repo:         repo,
		listener:     NopListener{},
		log:          logging.WithComponent("engine"),
		tickInterval: constants.TickInterval,
		speedKmh:     constants.RobotSpeedKmh,
		now:          time.Now,
		state:        StateIdle,
		robotPos:     InitialPosition(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// InitialPosition returns a jittered idle position near the campus base.
func InitialPosition() geo.Coordinate {
	return geo.Coordinate{
		Lat: constants.BaseLat + (rand.Float64()-0.5)*constants.InitialJitterDeg,
		Lng: constants.BaseLng + (rand.Float64()-0.5)*constants.InitialJitterDeg,
	}
}

// State returns the current engine state.
func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Position returns the robot's current position.
func (a *Animator) Position() geo.Coordinate {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.robotPos
}

// ActivePathID returns the id of the path being animated, or "".
func (a *Animator) ActivePathID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.run == nil {
		return ""
	}
	return a.run.path.ID
}

// Start begins animating the given path from its first waypoint. Any prior
// run is cancelled first, so two concurrent runs can never exist. The path is
// marked in-progress and active through the repository, which also clears the
// active flag on every other path.
func (a *Animator) Start(path *entities.Path) error {
	if path == nil || len(path.Waypoints) < constants.MinWaypoints {
		return &repository.ValidationError{Reason: constants.MsgPathTooShort}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Unknown ids must leave everything untouched, including a prior run.
	if _, err := a.repo.Get(path.ID); err != nil {
		return err
	}

	a.cancelLocked()

	if err := a.repo.Activate(path.ID); err != nil {
		return err
	}
	work, err := a.repo.Get(path.ID)
	if err != nil {
		return err
	}

	coords := work.Coordinates()
	totalKm := geo.PathDistanceKm(coords)
	now := a.now()

	rn := &run{
		path:      work,
		coords:    coords,
		totalKm:   totalKm,
		eta:       now.Add(time.Duration(geo.EstimatedTimeHours(totalKm, a.speedKmh) * float64(time.Hour))),
		startedAt: now,
		ticker:    time.NewTicker(a.tickInterval),
		stop:      make(chan struct{}),
	}
	a.run = rn
	a.state = StateRunning
	a.robotPos = coords[0]

	if a.metrics != nil {
		a.metrics.ActiveRuns.Set(1)
	}
	a.log.Infow("Animation started",
		"path_id", work.ID,
		"segments", work.TotalSegments(),
		"distance_km", totalKm,
		"eta", rn.eta,
	)

	a.listener.OnRobotPosition(a.robotPos)

	go a.loop(rn)
	return nil
}

// Cancel stops the current run, if any. Synchronous: once it returns, no
// further position or telemetry notification fires for the cancelled run.
func (a *Animator) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
}

// cancelLocked requires a.mu held.
func (a *Animator) cancelLocked() {
	if a.run == nil {
		return
	}
	rn := a.run
	a.run = nil
	a.state = StateIdle
	rn.ticker.Stop()
	close(rn.stop)
	if a.metrics != nil {
		a.metrics.ActiveRuns.Set(0)
	}
	a.log.Infow("Animation cancelled", "path_id", rn.path.ID)
}

func (a *Animator) loop(rn *run) {
	for {
		select {
		case <-rn.stop:
			return
		case <-rn.ticker.C:
			if !a.advance(rn) {
				return
			}
		}
	}
}

// advance performs one animation step. Returns false once rn is no longer the
// current run so the loop goroutine can exit. All work happens under the
// engine lock: a step is atomic relative to Start/Cancel and to other steps.
func (a *Animator) advance(rn *run) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.run != rn {
		return false
	}

	// The path may have been deleted or superseded out from under the run;
	// confirm before mutating anything.
	stored, err := a.repo.Get(rn.path.ID)
	if err != nil || !stored.IsActive {
		a.cancelLocked()
		return false
	}

	if a.metrics != nil {
		a.metrics.EngineTicksTotal.Inc()
	}

	start := rn.coords[rn.segmentIdx]
	end := rn.coords[rn.segmentIdx+1]
	rn.segmentProg += a.stepFor(start, end)

	t := rn.segmentProg
	if t > 1 {
		t = 1
	}
	a.robotPos = geo.Interpolate(start, end, t)

	traveledKm := geo.PathDistanceKm(rn.coords[:rn.segmentIdx+1]) + geo.DistanceKm(start, end)*t
	remainingKm := rn.totalKm - traveledKm
	if remainingKm < 0 {
		remainingKm = 0
	}
	overallPct := 100.0
	if rn.totalKm > 0 {
		overallPct = 100 * traveledKm / rn.totalKm
	}

	if rn.segmentProg >= 1 {
		rn.path.Waypoints[rn.segmentIdx].Completed = true
		if err := a.repo.Update(rn.path.Clone()); err != nil {
			// Deleted mid-tick: treat as an implicit cancellation.
			a.cancelLocked()
			return false
		}
		rn.segmentIdx++
		rn.segmentProg = 0

		if rn.segmentIdx >= len(rn.coords)-1 {
			a.completeLocked(rn)
			return false
		}
	}

	a.listener.OnRobotPosition(a.robotPos)
	a.listener.OnTelemetry(Telemetry{
		PathID:             rn.path.ID,
		OverallProgressPct: overallPct,
		SegmentIndex:       rn.segmentIdx,
		TotalSegments:      len(rn.coords) - 1,
		SegmentProgressPct: 100 * rn.segmentProg,
		TraveledKm:         traveledKm,
		RemainingKm:        remainingKm,
		ETA:                rn.eta,
	})
	return true
}

// stepFor returns the segment-progress increment for one tick, derived from
// the real segment length so traversal time is proportional to distance and
// consistent with the advertised ETA. Zero-length segments finish in a single
// tick.
func (a *Animator) stepFor(start, end geo.Coordinate) float64 {
	segKm := geo.DistanceKm(start, end)
	if segKm <= 0 {
		return 1
	}
	perTickKm := a.speedKmh * a.tickInterval.Hours()
	return perTickKm / segKm
}

// completeLocked finishes the run: every waypoint completed, status
// completed, active flag cleared, position snapped exactly onto the final
// waypoint so no interpolation drift remains. Requires a.mu held with rn
// still current.
func (a *Animator) completeLocked(rn *run) {
	rn.ticker.Stop()
	close(rn.stop)
	a.run = nil
	a.state = StateCompleted

	for i := range rn.path.Waypoints {
		rn.path.Waypoints[i].Completed = true
	}
	rn.path.Status = entities.StatusCompleted
	rn.path.IsActive = false
	if err := a.repo.Update(rn.path.Clone()); err != nil {
		a.log.Warnw("Completed path vanished before final update", "path_id", rn.path.ID)
	}

	final := rn.coords[len(rn.coords)-1]
	a.robotPos = final

	if a.metrics != nil {
		a.metrics.ActiveRuns.Set(0)
		a.metrics.PathsCompletedTotal.Inc()
		a.metrics.RunDuration.Observe(a.now().Sub(rn.startedAt).Seconds())
	}
	a.log.Infow("Path completed",
		"path_id", rn.path.ID,
		"distance_km", rn.totalKm,
		"duration", a.now().Sub(rn.startedAt),
	)

	a.listener.OnRobotPosition(final)
	a.listener.OnTelemetry(Telemetry{
		PathID:             rn.path.ID,
		OverallProgressPct: 100,
		SegmentIndex:       len(rn.coords) - 2,
		TotalSegments:      len(rn.coords) - 1,
		SegmentProgressPct: 100,
		TraveledKm:         rn.totalKm,
		RemainingKm:        0,
		ETA:                rn.eta,
	})
	a.listener.OnPathCompleted(rn.path.Clone())
}

// step advances the current run by one tick without waiting on the ticker.
// Used by tests for deterministic stepping.
func (a *Animator) step() {
	a.mu.Lock()
	rn := a.run
	a.mu.Unlock()
	if rn != nil {
		a.advance(rn)
	}
}
