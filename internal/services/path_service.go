package services

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/OPRYAN90/robodog-request-system/internal/common"
	"github.com/OPRYAN90/robodog-request-system/internal/constants"
	"github.com/OPRYAN90/robodog-request-system/internal/engine"
	"github.com/OPRYAN90/robodog-request-system/internal/geo"
	"github.com/OPRYAN90/robodog-request-system/internal/logging"
	"github.com/OPRYAN90/robodog-request-system/internal/metrics"
	"github.com/OPRYAN90/robodog-request-system/internal/models/entities"
	"github.com/OPRYAN90/robodog-request-system/internal/repository"
)

// telemetryTTL bounds how long a stale telemetry snapshot is served after the
// last tick for a path.
const telemetryTTL = time.Minute

// PathService is the facade the presentation layer talks to. It coordinates
// the repository and the animation engine so callers never have to sequence
// cancellation against mutations themselves.
type PathService struct {
	repo    *repository.PathRepository
	engine  *engine.Animator
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
	log     *zap.SugaredLogger

	mu        sync.Mutex
	listeners []engine.Listener
}

// NewPathService wires the facade and registers it as the engine's listener.
// metricsReg may be nil (tests).
func NewPathService(repo *repository.PathRepository, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry, engineOpts ...engine.Option) *PathService {
	svc := &PathService{
		repo:    repo,
		cache:   cache,
		metrics: metricsReg,
		log:     logging.WithComponent("path_service"),
	}
	opts := append([]engine.Option{
		engine.WithListener(svc),
		engine.WithMetrics(metricsReg),
	}, engineOpts...)
	svc.engine = engine.NewAnimator(repo, opts...)
	return svc
}

// Engine exposes the animator for state inspection (health checks, tests).
func (s *PathService) Engine() *engine.Animator {
	return s.engine
}

// Subscribe registers a snapshot listener invoked after every repository
// mutation.
func (s *PathService) Subscribe(fn repository.Subscriber) {
	s.repo.Subscribe(fn)
}

// AddListener registers an additional engine notification sink. The service
// fans engine callbacks out to all registered listeners.
func (s *PathService) AddListener(l engine.Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// CreatePath validates and stores a new pending path.
func (s *PathService) CreatePath(points []geo.Coordinate, name, description string, priority entities.Priority) (*entities.Path, error) {
	path, err := s.repo.Create(points, name, description, priority)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.PathsCreatedTotal.Inc()
	}
	return path, nil
}

// ActivatePath starts animating the path with the given id. Any running
// animation is cancelled first; the single-active invariant holds throughout.
func (s *PathService) ActivatePath(pathID string) error {
	path, err := s.repo.Get(pathID)
	if err != nil {
		return err
	}
	if err := s.engine.Start(path); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.PathsActivatedTotal.Inc()
	}
	return nil
}

// DeactivatePath stops the robot without discarding progress: the run is
// cancelled and the path stays in-progress, just no longer active.
func (s *PathService) DeactivatePath(pathID string) error {
	if s.engine.ActivePathID() == pathID {
		s.engine.Cancel()
	}
	return s.repo.Deactivate(pathID)
}

// DeletePath removes a path. When it is the one being animated, the run is
// cancelled before the repository mutation so no tick can touch a deleted id.
func (s *PathService) DeletePath(pathID string) error {
	if s.engine.ActivePathID() == pathID {
		s.engine.Cancel()
	}
	if err := s.repo.Delete(pathID); err != nil {
		return err
	}
	s.cache.Delete(string(constants.CachePrefixTelemetry) + pathID)
	if s.metrics != nil {
		s.metrics.PathsDeletedTotal.Inc()
	}
	return nil
}

// ListPaths returns the ordered snapshot, most recent first.
func (s *PathService) ListPaths() []*entities.Path {
	return s.repo.Snapshot()
}

// GetPath returns one path by id.
func (s *PathService) GetPath(pathID string) (*entities.Path, error) {
	return s.repo.Get(pathID)
}

// RobotPosition returns the robot's current position.
func (s *PathService) RobotPosition() geo.Coordinate {
	return s.engine.Position()
}

// EngineState returns the animator state.
func (s *PathService) EngineState() engine.State {
	return s.engine.State()
}

// LatestTelemetry returns the most recent tick telemetry for a path, served
// from the in-memory cache the engine writes through OnTelemetry.
func (s *PathService) LatestTelemetry(pathID string) (*engine.Telemetry, bool) {
	val, found := s.cache.Get(string(constants.CachePrefixTelemetry) + pathID)
	if !found {
		if s.metrics != nil {
			s.metrics.TelemetryCacheMisses.Inc()
		}
		return nil, false
	}
	tel, ok := val.(engine.Telemetry)
	if !ok {
		return nil, false
	}
	if s.metrics != nil {
		s.metrics.TelemetryCacheHits.Inc()
	}
	return &tel, true
}

// OnRobotPosition implements engine.Listener.
func (s *PathService) OnRobotPosition(pos geo.Coordinate) {
	s.mu.Lock()
	listeners := s.listeners
	s.mu.Unlock()
	for _, l := range listeners {
		l.OnRobotPosition(pos)
	}
}

// OnTelemetry implements engine.Listener; every tick lands in the cache for
// readback.
func (s *PathService) OnTelemetry(t engine.Telemetry) {
	s.cache.Set(string(constants.CachePrefixTelemetry)+t.PathID, t, telemetryTTL)
	s.mu.Lock()
	listeners := s.listeners
	s.mu.Unlock()
	for _, l := range listeners {
		l.OnTelemetry(t)
	}
}

// OnPathCompleted implements engine.Listener.
func (s *PathService) OnPathCompleted(path *entities.Path) {
	s.log.Infow("Path run finished", "path_id", path.ID, "name", path.Name)
	s.mu.Lock()
	listeners := s.listeners
	s.mu.Unlock()
	for _, l := range listeners {
		l.OnPathCompleted(path)
	}
}
