package api

import (
	"github.com/OPRYAN90/robodog-request-system/internal/common"
	"github.com/OPRYAN90/robodog-request-system/internal/constants"
	"github.com/OPRYAN90/robodog-request-system/internal/metrics"
	"github.com/OPRYAN90/robodog-request-system/internal/repository"
	"github.com/OPRYAN90/robodog-request-system/internal/services"
)

type Repositories struct {
	Paths *repository.PathRepository
}

type Services struct {
	Cache common.CacheInterface
	Paths *services.PathService
	Draft *services.DraftService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires the repository, cache, engine, and facade. The
// metrics registry is created by the router and may be nil in tests.
func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Paths: repository.NewPathRepository(constants.RobotSpeedKmh),
	}

	cacheSvc := common.NewCacheService(60, 600)
	pathSvc := services.NewPathService(repos.Paths, cacheSvc, metricsReg)

	svcs := &Services{
		Cache: cacheSvc,
		Paths: pathSvc,
		Draft: services.NewDraftService(),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
	}, nil
}
