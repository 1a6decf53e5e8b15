package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"reparto_tracker/internal/apperr"
	"reparto_tracker/internal/models"
	"reparto_tracker/internal/ports"
	"reparto_tracker/internal/validation"
)

// DropOffLookup answers which drop-off points a route may visit.
type DropOffLookup struct {
	catalog ports.CatalogRepository
}

func NewDropOffLookup(catalog ports.CatalogRepository) *DropOffLookup {
	return &DropOffLookup{catalog: catalog}
}

// ForClient returns the client's drop-off points ordered by name.
func (l *DropOffLookup) ForClient(ctx context.Context, clientID uuid.UUID) ([]models.DropOffPoint, error) {
	return l.catalog.ListDropOffPointsForClient(ctx, clientID)
}

// CheckStops adds a violation for every stop whose drop-off point does not exist or,
// when the route has a principal client, belongs to someone else.
func (l *DropOffLookup) CheckStops(ctx context.Context, clientID *uuid.UUID, stops []validation.StopCommand, v *apperr.Violations) error {
	if len(stops) == 0 {
		return nil
	}

	var (
		points []models.DropOffPoint
		err    error
		msg    string
	)
	if clientID != nil {
		points, err = l.ForClient(ctx, *clientID)
		msg = "drop-off point does not belong to the principal client"
	} else {
		ids := make([]uint, 0, len(stops))
		for _, s := range stops {
			ids = append(ids, s.DropOffPointID)
		}
		points, err = l.catalog.GetDropOffPoints(ctx, ids)
		msg = "drop-off point does not exist"
	}
	if err != nil {
		return err
	}

	known := make(map[uint]struct{}, len(points))
	for _, p := range points {
		known[p.ID] = struct{}{}
	}
	for i, s := range stops {
		if _, ok := known[s.DropOffPointID]; !ok {
			v.Add(fmt.Sprintf("stops.%d.dropoff_point_id", i), msg)
		}
	}
	return nil
}
