package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reparto_tracker/internal/apperr"
	"reparto_tracker/internal/models"
)

func (s *GormStore) ListClients(ctx context.Context) ([]models.Client, error) {
	clients := []models.Client{}
	err := s.db.WithContext(ctx).Order("name").Find(&clients).Error
	return clients, translate("list clients", err)
}

func (s *GormStore) ListDrivers(ctx context.Context) ([]models.DeliveryPerson, error) {
	drivers := []models.DeliveryPerson{}
	err := s.db.WithContext(ctx).Order("name").Find(&drivers).Error
	return drivers, translate("list drivers", err)
}

func (s *GormStore) ListZones(ctx context.Context) ([]models.Zone, error) {
	zones := []models.Zone{}
	err := s.db.WithContext(ctx).Order("name").Find(&zones).Error
	return zones, translate("list zones", err)
}

func (s *GormStore) ListDropOffPointsForClient(ctx context.Context, clientID uuid.UUID) ([]models.DropOffPoint, error) {
	points := []models.DropOffPoint{}
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Order("name").Find(&points).Error
	return points, translate("list drop-off points", err)
}

func (s *GormStore) GetDropOffPoints(ctx context.Context, ids []uint) ([]models.DropOffPoint, error) {
	points := []models.DropOffPoint{}
	if len(ids) == 0 {
		return points, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&points).Error
	return points, translate("get drop-off points", err)
}

func (s *GormStore) GetDriver(ctx context.Context, id uuid.UUID) (models.DeliveryPerson, error) {
	var d models.DeliveryPerson
	return d, first(s.db.WithContext(ctx), &d, "driver", id)
}

func (s *GormStore) GetClient(ctx context.Context, id uuid.UUID) (models.Client, error) {
	var c models.Client
	return c, first(s.db.WithContext(ctx), &c, "client", id)
}

func (s *GormStore) GetZone(ctx context.Context, id uint) (models.Zone, error) {
	var z models.Zone
	return z, first(s.db.WithContext(ctx), &z, "zone", id)
}

func first(db *gorm.DB, dst any, entity string, id any) error {
	err := db.Where("id = ?", id).First(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return translate("get "+entity, err)
}

func (s *GormStore) CreateDriver(ctx context.Context, d *models.DeliveryPerson) error {
	return translate("create driver", s.db.WithContext(ctx).Create(d).Error)
}

func (s *GormStore) CreateClient(ctx context.Context, c *models.Client) error {
	return translate("create client", s.db.WithContext(ctx).Omit("DropOffPoints").Create(c).Error)
}

func (s *GormStore) CreateZone(ctx context.Context, z *models.Zone) error {
	return translate("create zone", s.db.WithContext(ctx).Create(z).Error)
}

func (s *GormStore) CreateDropOffPoint(ctx context.Context, p *models.DropOffPoint) error {
	return translate("create drop-off point", s.db.WithContext(ctx).Create(p).Error)
}
