package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"reparto_tracker/internal/apperr"
	"reparto_tracker/internal/logger"
	"reparto_tracker/internal/models"
	"reparto_tracker/internal/ports"
	"reparto_tracker/internal/validation"
)

// CatalogService serves the collaborator lists the planner screens pick from.
type CatalogService struct {
	catalog ports.CatalogRepository
	lookup  *DropOffLookup
}

func NewCatalogService(catalog ports.CatalogRepository, lookup *DropOffLookup) *CatalogService {
	return &CatalogService{catalog: catalog, lookup: lookup}
}

func (s *CatalogService) ListClients(ctx context.Context) ([]models.Client, error) {
	return s.catalog.ListClients(ctx)
}

func (s *CatalogService) ListDrivers(ctx context.Context) ([]models.DeliveryPerson, error) {
	return s.catalog.ListDrivers(ctx)
}

func (s *CatalogService) ListZones(ctx context.Context) ([]models.Zone, error) {
	return s.catalog.ListZones(ctx)
}

// ListDropOffPointsForClient fails with not-found for an unknown client.
func (s *CatalogService) ListDropOffPointsForClient(ctx context.Context, clientID uuid.UUID) ([]models.DropOffPoint, error) {
	if _, err := s.catalog.GetClient(ctx, clientID); err != nil {
		return nil, err
	}
	return s.lookup.ForClient(ctx, clientID)
}

func (s *CatalogService) CreateDriver(ctx context.Context, in validation.DeliveryPersonSubmission) (d models.DeliveryPerson, err error) {
	defer logger.Time(ctx, "drivers.create")(&err)

	d, v := validation.ValidateDeliveryPerson(in)
	if !v.Empty() {
		return d, apperr.Invalid(v)
	}
	if err := s.catalog.CreateDriver(ctx, &d); err != nil {
		return d, err
	}
	return d, nil
}

func (s *CatalogService) CreateDropOffPoint(ctx context.Context, in validation.DropOffSubmission) (p models.DropOffPoint, err error) {
	defer logger.Time(ctx, "dropoffs.create")(&err)

	p, v := validation.ValidateDropOffPoint(in)
	if !v.Empty() {
		return p, apperr.Invalid(v)
	}
	if _, err := s.catalog.GetClient(ctx, p.ClientID); err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return p, err
		}
		v.Add("client_id", "client does not exist")
		return p, apperr.Invalid(v)
	}
	if err := s.catalog.CreateDropOffPoint(ctx, &p); err != nil {
		return p, err
	}
	return p, nil
}
