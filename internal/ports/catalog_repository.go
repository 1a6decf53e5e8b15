package ports

import (
	"context"

	"github.com/google/uuid"

	"reparto_tracker/internal/models"
)

// Port: collaborator entities owned by the catalog screens.
type CatalogRepository interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	ListDrivers(ctx context.Context) ([]models.DeliveryPerson, error)
	ListZones(ctx context.Context) ([]models.Zone, error)
	ListDropOffPointsForClient(ctx context.Context, clientID uuid.UUID) ([]models.DropOffPoint, error)
	// Drop-off points with the given ids. Unknown ids are skipped.
	GetDropOffPoints(ctx context.Context, ids []uint) ([]models.DropOffPoint, error)

	GetDriver(ctx context.Context, id uuid.UUID) (models.DeliveryPerson, error)
	GetClient(ctx context.Context, id uuid.UUID) (models.Client, error)
	GetZone(ctx context.Context, id uint) (models.Zone, error)

	CreateDriver(ctx context.Context, d *models.DeliveryPerson) error
	CreateClient(ctx context.Context, c *models.Client) error
	CreateZone(ctx context.Context, z *models.Zone) error
	CreateDropOffPoint(ctx context.Context, p *models.DropOffPoint) error
}

// Store bundles every repository port behind one datastore.
type Store interface {
	RouteRepository
	StopRepository
	TaskRepository
	CatalogRepository
}
