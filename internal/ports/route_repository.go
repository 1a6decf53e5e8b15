package ports

import (
	"context"

	"reparto_tracker/internal/models"
)

// Port: persistence of routes and their stops as one aggregate.
type RouteRepository interface {
	// Insert the route and its stops atomically. visit_order follows the slice order.
	CreateRoute(ctx context.Context, route *models.Route, stops []models.Stop) error
	// Lock the route, overwrite its fields and replace its stops atomically.
	ReplaceRoute(ctx context.Context, route *models.Route, stops []models.Stop) error
	// Remove the route and, by cascade, its stops.
	DeleteRoute(ctx context.Context, id uint) error
	// Find the route created by an earlier request carrying the same idempotency key.
	FindRouteByIdempotencyKey(ctx context.Context, key string) (models.Route, error)
	GetRouteDetail(ctx context.Context, id uint) (models.RouteDetail, error)
	ListRoutes(ctx context.Context, filter models.RouteFilter) ([]models.RouteSummary, error)
}
