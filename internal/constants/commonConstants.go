package constants

import "time"

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixTelemetry CachePrefix = "TELEMETRY_"
)

// Robot simulation tunables. The engine takes these as defaults and accepts
// overrides through functional options.
const (
	// RobotSpeedKmh is the nominal ground speed used for both the planned-time
	// estimate and the playback step size.
	RobotSpeedKmh = 5.0

	// TickInterval is the wall-clock period of one animation step.
	TickInterval = 100 * time.Millisecond
)

// Campus base location. The robot idles near this point until a path is
// activated.
const (
	BaseLat = 32.9588
	BaseLng = -117.1897

	// InitialJitterDeg spreads the idle position up to ~50m around the base.
	InitialJitterDeg = 0.0005
)

// MinWaypoints is the smallest waypoint count a path can be created or
// activated with.
const MinWaypoints = 2
