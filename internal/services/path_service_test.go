package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/OPRYAN90/robodog-request-system/internal/common"
	"github.com/OPRYAN90/robodog-request-system/internal/constants"
	"github.com/OPRYAN90/robodog-request-system/internal/engine"
	"github.com/OPRYAN90/robodog-request-system/internal/geo"
	"github.com/OPRYAN90/robodog-request-system/internal/models/entities"
	"github.com/OPRYAN90/robodog-request-system/internal/repository"
)

var servicePoints = []geo.Coordinate{
	{Lat: 32.9582, Lng: -117.1895},
	{Lat: 32.9595, Lng: -117.1880},
}

// newTestService builds the facade with a slow tick so tests control timing
// explicitly, unless opts override it.
func newTestService(opts ...engine.Option) *PathService {
	repo := repository.NewPathRepository(constants.RobotSpeedKmh)
	cache := common.NewCacheService(60, 600)
	base := []engine.Option{engine.WithTickInterval(time.Hour)}
	return NewPathService(repo, cache, nil, append(base, opts...)...)
}

type completionWaiter struct {
	engine.NopListener
	done chan struct{}
}

func (w *completionWaiter) OnPathCompleted(*entities.Path) {
	close(w.done)
}

func TestCreateActivateDelete(t *testing.T) {
	svc := newTestService()

	path, err := svc.CreatePath(servicePoints, "Morning patrol", "", entities.PriorityHigh)
	if err != nil {
		t.Fatalf("CreatePath failed: %v", err)
	}

	if err := svc.ActivatePath(path.ID); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}
	if svc.EngineState() != engine.StateRunning {
		t.Errorf("engine state = %s, want running", svc.EngineState())
	}

	if err := svc.DeletePath(path.ID); err != nil {
		t.Fatalf("DeletePath failed: %v", err)
	}
	if svc.EngineState() != engine.StateIdle {
		t.Errorf("engine state after deleting active path = %s, want idle", svc.EngineState())
	}
	if _, err := svc.GetPath(path.ID); err == nil {
		t.Error("GetPath succeeded for deleted path")
	}
}

func TestActivateUnknownPath(t *testing.T) {
	svc := newTestService()

	err := svc.ActivatePath("nope")
	var nfe *repository.NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("ActivatePath = %v, want NotFoundError", err)
	}
	if svc.EngineState() != engine.StateIdle {
		t.Errorf("engine state = %s, want idle", svc.EngineState())
	}
}

func TestDeactivateKeepsProgress(t *testing.T) {
	svc := newTestService()

	path, err := svc.CreatePath(servicePoints, "Perimeter", "", "")
	if err != nil {
		t.Fatalf("CreatePath failed: %v", err)
	}
	if err := svc.ActivatePath(path.ID); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}
	if err := svc.DeactivatePath(path.ID); err != nil {
		t.Fatalf("DeactivatePath failed: %v", err)
	}

	if svc.EngineState() != engine.StateIdle {
		t.Errorf("engine state = %s, want idle", svc.EngineState())
	}
	stored, err := svc.GetPath(path.ID)
	if err != nil {
		t.Fatalf("GetPath failed: %v", err)
	}
	if stored.IsActive {
		t.Error("deactivated path still active")
	}
	if stored.Status != entities.StatusInProgress {
		t.Errorf("status = %s, want in-progress retained", stored.Status)
	}
}

func TestTelemetryCachedForReadback(t *testing.T) {
	done := make(chan struct{})
	svc := newTestService(
		engine.WithTickInterval(time.Millisecond),
		engine.WithSpeed(100000),
	)
	svc.AddListener(&completionWaiter{done: done})

	path, err := svc.CreatePath(servicePoints, "Telemetry run", "", "")
	if err != nil {
		t.Fatalf("CreatePath failed: %v", err)
	}

	if _, ok := svc.LatestTelemetry(path.ID); ok {
		t.Error("telemetry available before any tick")
	}

	if err := svc.ActivatePath(path.ID); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not complete in time")
	}

	tel, ok := svc.LatestTelemetry(path.ID)
	if !ok {
		t.Fatal("no telemetry cached after run")
	}
	if tel.PathID != path.ID {
		t.Errorf("telemetry path id = %q, want %q", tel.PathID, path.ID)
	}
	if tel.OverallProgressPct != 100 {
		t.Errorf("final cached progress = %f, want 100", tel.OverallProgressPct)
	}

	if err := svc.DeletePath(path.ID); err != nil {
		t.Fatalf("DeletePath failed: %v", err)
	}
	if _, ok := svc.LatestTelemetry(path.ID); ok {
		t.Error("telemetry still cached after path deletion")
	}
}

func TestSubscribeSeesMutations(t *testing.T) {
	svc := newTestService()

	var snapshots [][]*entities.Path
	svc.Subscribe(func(paths []*entities.Path) {
		snapshots = append(snapshots, paths)
	})

	if _, err := svc.CreatePath(servicePoints, "Watched", "", ""); err != nil {
		t.Fatalf("CreatePath failed: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("snapshot count = %d, want 1", len(snapshots))
	}
	if len(snapshots[0]) != 1 || snapshots[0][0].Name != "Watched" {
		t.Errorf("snapshot = %+v, want the created path", snapshots[0])
	}
}

func TestDraftLifecycle(t *testing.T) {
	draft := NewDraftService()

	if _, err := draft.AddPoint(servicePoints[0]); err == nil {
		t.Error("AddPoint succeeded before Begin")
	}

	draft.Begin()
	for i, pt := range servicePoints {
		n, err := draft.AddPoint(pt)
		if err != nil {
			t.Fatalf("AddPoint failed: %v", err)
		}
		if n != i+1 {
			t.Errorf("point count = %d, want %d", n, i+1)
		}
	}

	points, active := draft.Points()
	if !active || len(points) != 2 {
		t.Fatalf("Points() = %d points active=%v, want 2 points active", len(points), active)
	}

	got, err := draft.Complete()
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("completed draft has %d points, want 2", len(got))
	}

	if _, active := draft.Points(); active {
		t.Error("draft still active after Complete")
	}
}

func TestDraftCompleteTooShortKeepsDraft(t *testing.T) {
	draft := NewDraftService()
	draft.Begin()
	if _, err := draft.AddPoint(servicePoints[0]); err != nil {
		t.Fatalf("AddPoint failed: %v", err)
	}

	_, err := draft.Complete()
	var ve *repository.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Complete = %v, want ValidationError", err)
	}

	points, active := draft.Points()
	if !active || len(points) != 1 {
		t.Errorf("draft after failed save: %d points active=%v, want untouched", len(points), active)
	}
}

func TestDraftRejectsNonFinitePoint(t *testing.T) {
	draft := NewDraftService()
	draft.Begin()

	bad := geo.Coordinate{Lat: math.NaN(), Lng: 0}
	if _, err := draft.AddPoint(bad); err == nil {
		t.Error("AddPoint accepted a NaN coordinate")
	}
	if points, _ := draft.Points(); len(points) != 0 {
		t.Errorf("draft has %d points after rejected add, want 0", len(points))
	}
}
