package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reparto_tracker/internal/services"
	"reparto_tracker/internal/validation"
)

// CatalogController serves the pick lists of the planner forms.
type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

func (cc *CatalogController) ListClients(c *gin.Context) {
	clients, err := cc.catalog.ListClients(c.Request.Context())
	if err != nil {
		respondError(c, err, "list clients")
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

func (cc *CatalogController) ListDrivers(c *gin.Context) {
	drivers, err := cc.catalog.ListDrivers(c.Request.Context())
	if err != nil {
		respondError(c, err, "list drivers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

func (cc *CatalogController) ListZones(c *gin.Context) {
	zones, err := cc.catalog.ListZones(c.Request.Context())
	if err != nil {
		respondError(c, err, "list zones")
		return
	}
	c.JSON(http.StatusOK, gin.H{"zones": zones})
}

// dropOffPointView adds the rendered time window to a drop-off point.
type dropOffPointView struct {
	ID         uint     `json:"id"`
	ClientID   string   `json:"client_id"`
	Name       string   `json:"name"`
	Address    *string  `json:"address"`
	TimeFrom   *string  `json:"time_from"`
	TimeTo     *string  `json:"time_to"`
	TimeWindow *string  `json:"time_window"`
	Tariff     *float64 `json:"tariff"`
	Phone      *string  `json:"phone"`
}

func (cc *CatalogController) ListDropOffPoints(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID format."})
		return
	}
	points, err := cc.catalog.ListDropOffPointsForClient(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err, "list drop-off points")
		return
	}

	views := make([]dropOffPointView, 0, len(points))
	for _, p := range points {
		views = append(views, dropOffPointView{
			ID:         p.ID,
			ClientID:   p.ClientID.String(),
			Name:       p.Name,
			Address:    p.Address,
			TimeFrom:   p.TimeFrom,
			TimeTo:     p.TimeTo,
			TimeWindow: p.TimeWindow(),
			Tariff:     p.Tariff,
			Phone:      p.Phone,
		})
	}
	c.JSON(http.StatusOK, gin.H{"dropoff_points": views})
}

func (cc *CatalogController) CreateDriver(c *gin.Context) {
	var in validation.DeliveryPersonSubmission
	if !bindJSON(c, &in) {
		return
	}
	driver, err := cc.catalog.CreateDriver(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "create driver")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"driver": driver})
}

func (cc *CatalogController) CreateDropOffPoint(c *gin.Context) {
	var in validation.DropOffSubmission
	if !bindJSON(c, &in) {
		return
	}
	point, err := cc.catalog.CreateDropOffPoint(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "create drop-off point")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"dropoff_point": point})
}
