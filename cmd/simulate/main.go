package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/OPRYAN90/robodog-request-system/internal/common"
	"github.com/OPRYAN90/robodog-request-system/internal/constants"
	"github.com/OPRYAN90/robodog-request-system/internal/engine"
	"github.com/OPRYAN90/robodog-request-system/internal/geo"
	"github.com/OPRYAN90/robodog-request-system/internal/logging"
	"github.com/OPRYAN90/robodog-request-system/internal/models/entities"
	"github.com/OPRYAN90/robodog-request-system/internal/repository"
	"github.com/OPRYAN90/robodog-request-system/internal/services"
)

// demoListener prints playback progress to the structured log and signals
// completion.
type demoListener struct {
	engine.NopListener
	every int
	ticks int
	done  chan struct{}
}

func (l *demoListener) OnTelemetry(t engine.Telemetry) {
	l.ticks++
	if l.ticks%l.every != 0 {
		return
	}
	logging.Info("Telemetry",
		"progress_pct", t.OverallProgressPct,
		"segment", t.SegmentIndex+1,
		"total_segments", t.TotalSegments,
		"remaining_km", t.RemainingKm,
		"eta", t.ETA.Format(time.Kitchen),
	)
}

func (l *demoListener) OnPathCompleted(path *entities.Path) {
	logging.Info("Path completed", "path_id", path.ID, "name", path.Name)
	close(l.done)
}

// Headless playback demo: seeds a loop around the campus base, activates it,
// and logs telemetry until the robot arrives.
func main() {
	speed := flag.Float64("speed", 250, "playback speed in km/h (raise for faster playback)")
	tick := flag.Duration("tick", constants.TickInterval, "animation step interval")
	flag.Parse()

	if err := logging.Init(os.Getenv("APP_ENV")); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	repo := repository.NewPathRepository(constants.RobotSpeedKmh)
	cache := common.NewCacheService(60, 600)
	svc := services.NewPathService(repo, cache, nil,
		engine.WithSpeed(*speed),
		engine.WithTickInterval(*tick),
	)

	listener := &demoListener{every: 10, done: make(chan struct{})}
	svc.AddListener(listener)

	points := []geo.Coordinate{
		{Lat: constants.BaseLat, Lng: constants.BaseLng},
		{Lat: constants.BaseLat + 0.0012, Lng: constants.BaseLng + 0.0017},
		{Lat: constants.BaseLat + 0.0024, Lng: constants.BaseLng - 0.0005},
		{Lat: constants.BaseLat, Lng: constants.BaseLng},
	}

	path, err := svc.CreatePath(points, "Campus loop", "Demo playback route", entities.PriorityMedium)
	if err != nil {
		log.Fatalf("failed to create demo path: %v", err)
	}
	logging.Info("Demo path created",
		"path_id", path.ID,
		"distance_km", path.EstimatedDistanceKm,
		"planned_hours", path.EstimatedTimeHours,
	)

	if err := svc.ActivatePath(path.ID); err != nil {
		log.Fatalf("failed to activate demo path: %v", err)
	}

	select {
	case <-listener.done:
	case <-time.After(10 * time.Minute):
		log.Fatal("playback did not finish in time")
	}

	final := svc.RobotPosition()
	logging.Info("Robot parked", "lat", final.Lat, "lng", final.Lng)
}
