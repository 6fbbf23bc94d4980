package repository

import (
	"errors"
	"testing"

	"github.com/OPRYAN90/robodog-request-system/internal/geo"
	"github.com/OPRYAN90/robodog-request-system/internal/models/entities"
)

func testPoints() []geo.Coordinate {
	return []geo.Coordinate{
		{Lat: 32.9588, Lng: -117.1897},
		{Lat: 32.9600, Lng: -117.1880},
	}
}

func TestCreateComputesEstimates(t *testing.T) {
	repo := NewPathRepository(5)

	path, err := repo.Create(testPoints(), "Loop A", "around the field", entities.PriorityMedium)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if path.Status != entities.StatusPending {
		t.Errorf("new path status = %s, want pending", path.Status)
	}
	if path.IsActive {
		t.Error("new path must not be active")
	}
	if path.EstimatedDistanceKm <= 0 {
		t.Errorf("estimated distance = %f, want > 0", path.EstimatedDistanceKm)
	}
	wantHours := path.EstimatedDistanceKm / 5
	if path.EstimatedTimeHours != wantHours {
		t.Errorf("estimated hours = %f, want %f", path.EstimatedTimeHours, wantHours)
	}
	if len(path.Waypoints) != 2 {
		t.Fatalf("waypoint count = %d, want 2", len(path.Waypoints))
	}
	for i, wp := range path.Waypoints {
		if wp.Completed {
			t.Errorf("waypoint %d created as completed", i)
		}
		if wp.ID == "" {
			t.Errorf("waypoint %d has empty id", i)
		}
	}
}

func TestCreateValidation(t *testing.T) {
	repo := NewPathRepository(5)

	cases := []struct {
		name   string
		points []geo.Coordinate
		title  string
	}{
		{"empty name", testPoints(), "   "},
		{"single waypoint", testPoints()[:1], "Loop"},
		{"no waypoints", nil, "Loop"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.Create(tc.points, tc.title, "", entities.PriorityLow)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Create = %v, want ValidationError", err)
			}
			if repo.Count() != 0 {
				t.Errorf("failed create mutated repository, count = %d", repo.Count())
			}
		})
	}
}

func TestCreateDefaultsPriority(t *testing.T) {
	repo := NewPathRepository(5)
	path, err := repo.Create(testPoints(), "Loop", "", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if path.Priority != entities.PriorityMedium {
		t.Errorf("priority = %s, want medium", path.Priority)
	}
}

func TestSnapshotOrderMostRecentFirst(t *testing.T) {
	repo := NewPathRepository(5)

	first, _ := repo.Create(testPoints(), "First", "", entities.PriorityLow)
	second, _ := repo.Create(testPoints(), "Second", "", entities.PriorityLow)

	snap := repo.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot length = %d, want 2", len(snap))
	}
	if snap[0].ID != second.ID || snap[1].ID != first.ID {
		t.Error("snapshot is not most-recent-first")
	}
}

func TestSnapshotIsolatedFromStore(t *testing.T) {
	repo := NewPathRepository(5)
	repo.Create(testPoints(), "Loop", "", entities.PriorityLow)

	snap := repo.Snapshot()
	snap[0].Name = "mutated"
	snap[0].Waypoints[0].Completed = true

	fresh := repo.Snapshot()
	if fresh[0].Name != "Loop" || fresh[0].Waypoints[0].Completed {
		t.Error("mutating a snapshot leaked into the repository")
	}
}

func TestActivateEnforcesSingleActive(t *testing.T) {
	repo := NewPathRepository(5)
	a, _ := repo.Create(testPoints(), "A", "", entities.PriorityLow)
	b, _ := repo.Create(testPoints(), "B", "", entities.PriorityLow)

	if err := repo.Activate(a.ID); err != nil {
		t.Fatalf("Activate(a) failed: %v", err)
	}
	if err := repo.Activate(b.ID); err != nil {
		t.Fatalf("Activate(b) failed: %v", err)
	}

	active := 0
	for _, p := range repo.Snapshot() {
		if p.IsActive {
			active++
			if p.ID != b.ID {
				t.Errorf("active path = %s, want %s", p.ID, b.ID)
			}
		}
	}
	if active != 1 {
		t.Errorf("active count = %d, want 1", active)
	}

	// The superseded path keeps its status, just loses the active flag.
	gotA, _ := repo.Get(a.ID)
	if gotA.IsActive {
		t.Error("superseded path still active")
	}
	if gotA.Status != entities.StatusInProgress {
		t.Errorf("superseded path status = %s, want in-progress", gotA.Status)
	}
}

func TestActivateSetsStatus(t *testing.T) {
	repo := NewPathRepository(5)
	p, _ := repo.Create(testPoints(), "A", "", entities.PriorityLow)

	repo.Activate(p.ID)
	got, _ := repo.Get(p.ID)
	if !got.IsActive || got.Status != entities.StatusInProgress {
		t.Errorf("after activate: active=%v status=%s", got.IsActive, got.Status)
	}
}

func TestDeactivateKeepsStatus(t *testing.T) {
	repo := NewPathRepository(5)
	p, _ := repo.Create(testPoints(), "A", "", entities.PriorityLow)
	repo.Activate(p.ID)

	if err := repo.Deactivate(p.ID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	got, _ := repo.Get(p.ID)
	if got.IsActive {
		t.Error("path still active after deactivate")
	}
	if got.Status != entities.StatusInProgress {
		t.Errorf("status = %s, want in-progress (paused)", got.Status)
	}
}

func TestUnknownIDsReturnNotFound(t *testing.T) {
	repo := NewPathRepository(5)
	repo.Create(testPoints(), "A", "", entities.PriorityLow)

	var nfe *NotFoundError

	if err := repo.Activate("missing"); !errors.As(err, &nfe) {
		t.Errorf("Activate unknown = %v, want NotFoundError", err)
	}
	if err := repo.Delete("missing"); !errors.As(err, &nfe) {
		t.Errorf("Delete unknown = %v, want NotFoundError", err)
	}
	if err := repo.Deactivate("missing"); !errors.As(err, &nfe) {
		t.Errorf("Deactivate unknown = %v, want NotFoundError", err)
	}
	if _, err := repo.Get("missing"); !errors.As(err, &nfe) {
		t.Errorf("Get unknown = %v, want NotFoundError", err)
	}
	if err := repo.Update(&entities.Path{ID: "missing"}); !errors.As(err, &nfe) {
		t.Errorf("Update unknown = %v, want NotFoundError", err)
	}

	if repo.Count() != 1 {
		t.Errorf("failed operations mutated the repository, count = %d", repo.Count())
	}
}

func TestUpdateReplacesStoredPath(t *testing.T) {
	repo := NewPathRepository(5)
	p, _ := repo.Create(testPoints(), "A", "", entities.PriorityLow)

	p.Waypoints[0].Completed = true
	p.Status = entities.StatusInProgress
	if err := repo.Update(p); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, _ := repo.Get(p.ID)
	if !got.Waypoints[0].Completed || got.Status != entities.StatusInProgress {
		t.Error("Update did not replace stored path")
	}
}

func TestDeleteRemovesPath(t *testing.T) {
	repo := NewPathRepository(5)
	p, _ := repo.Create(testPoints(), "A", "", entities.PriorityLow)

	if err := repo.Delete(p.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if repo.Count() != 0 {
		t.Errorf("count after delete = %d, want 0", repo.Count())
	}
}

func TestSubscribersNotifiedSynchronously(t *testing.T) {
	repo := NewPathRepository(5)

	var calls int
	var lastLen int
	repo.Subscribe(func(snapshot []*entities.Path) {
		calls++
		lastLen = len(snapshot)
	})

	p, _ := repo.Create(testPoints(), "A", "", entities.PriorityLow)
	if calls != 1 || lastLen != 1 {
		t.Fatalf("after create: calls=%d lastLen=%d", calls, lastLen)
	}

	repo.Activate(p.ID)
	if calls != 2 {
		t.Errorf("after activate: calls=%d, want 2", calls)
	}

	repo.Delete(p.ID)
	if calls != 3 || lastLen != 0 {
		t.Errorf("after delete: calls=%d lastLen=%d", calls, lastLen)
	}

	// Failed mutations emit nothing.
	repo.Delete("missing")
	if calls != 3 {
		t.Errorf("failed delete notified subscribers, calls=%d", calls)
	}
}
