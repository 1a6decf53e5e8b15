package services

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/singleflight"

	"reparto_tracker/internal/models"
	"reparto_tracker/internal/ports"
)

// ReportService assembles the printable report of a route.
type ReportService struct {
	routes ports.RouteRepository
	cache  ports.Cache
	ttl    time.Duration
	group  singleflight.Group
}

func NewReportService(routes ports.RouteRepository, cache ports.Cache, ttl time.Duration) *ReportService {
	return &ReportService{routes: routes, cache: cache, ttl: ttl}
}

// BuildReport returns the cached report or assembles it. Concurrent misses for the
// same route share a single datastore read.
func (s *ReportService) BuildReport(ctx context.Context, routeID uint) (models.RouteReport, error) {
	key := ReportKey(routeID)

	var report models.RouteReport
	if ok, err := s.cache.Get(ctx, key, &report); err != nil {
		cacheWarn(err, "Failed to read cached report")
	} else if ok {
		return report, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		fillCtx := context.WithoutCancel(ctx)
		detail, err := s.routes.GetRouteDetail(fillCtx, routeID)
		if err != nil {
			return nil, err
		}
		report := AssembleReport(detail)
		if err := s.cache.Set(fillCtx, key, report, s.ttl); err != nil {
			cacheWarn(err, "Failed to cache report")
		}
		return report, nil
	})
	if err != nil {
		return models.RouteReport{}, err
	}
	return v.(models.RouteReport), nil
}

// AssembleReport totals a route's stops. Missing amounts count as zero and the
// total is rounded to cents.
func AssembleReport(detail models.RouteDetail) models.RouteReport {
	if detail.Stops == nil {
		detail.Stops = []models.StopTask{}
	}
	var total float64
	for _, st := range detail.Stops {
		if st.Amount != nil {
			total += *st.Amount
		}
	}
	return models.RouteReport{
		RouteDetail: detail,
		TotalStops:  len(detail.Stops),
		TotalAmount: math.Round(total*100) / 100,
	}
}
