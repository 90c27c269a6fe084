package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/cabin-reservation/internal/repository"
)

// CatalogHandler serves the public, read-only catalog.  Responses are
// sanitized: maintenance flags and audit timestamps stay internal.
type CatalogHandler struct {
	Catalog *repository.CatalogRepo
}

func NewCatalogHandler(r *repository.CatalogRepo) *CatalogHandler {
	return &CatalogHandler{Catalog: r}
}

type publicZone struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type publicCabin struct {
	ID          uint64          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	ZoneID      uint64          `json:"zone_id"`
	Capacity    int             `json:"capacity"`
	NightlyRate decimal.Decimal `json:"nightly_rate"`
}

type publicService struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	FeePerGuest decimal.Decimal `json:"fee_per_guest"`
}

// Zones handles GET /v1/zones.
func (h *CatalogHandler) Zones(c echo.Context) error {
	zones, err := h.Catalog.ListZones(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]publicZone, 0, len(zones))
	for _, z := range zones {
		out = append(out, publicZone{ID: z.ID, Name: z.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"zones": out})
}

// Cabins handles GET /v1/cabins with an optional zone_id filter.
func (h *CatalogHandler) Cabins(c echo.Context) error {
	var zoneID uint64
	if raw := c.QueryParam("zone_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "zone_id must be an integer"})
		}
		zoneID = id
	}
	cabins, err := h.Catalog.ListCabins(c.Request().Context(), zoneID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]publicCabin, 0, len(cabins))
	for _, cb := range cabins {
		out = append(out, publicCabin{
			ID:          cb.ID,
			Code:        cb.Code,
			Name:        cb.Name,
			ZoneID:      cb.ZoneID,
			Capacity:    cb.Capacity,
			NightlyRate: cb.NightlyRate,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"cabins": out})
}

// Services handles GET /v1/services.
func (h *CatalogHandler) Services(c echo.Context) error {
	services, err := h.Catalog.ListServices(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]publicService, 0, len(services))
	for _, s := range services {
		out = append(out, publicService{ID: s.ID, Name: s.Name, FeePerGuest: s.FeePerGuest})
	}
	return c.JSON(http.StatusOK, echo.Map{"services": out})
}
