package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Cordeleria-api/internal/application/dto"
	"github.com/jhoicas/Cordeleria-api/internal/application/zone"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/pkg/logger"
)

// ZoneHandler consulta del registro de zonas.
type ZoneHandler struct {
	registry *zone.Registry
	log      *logger.Logger
}

// NewZoneHandler construye el handler.
func NewZoneHandler(registry *zone.Registry, log *logger.Logger) *ZoneHandler {
	return &ZoneHandler{registry: registry, log: log}
}

// List godoc
// @Summary      Listar zonas
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Param        kind  query  string  false  "RECEPTION | PRODUCTION | WAREHOUSE | SCRAP"
// @Success      200  {array}   dto.ZoneResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/zones [get]
func (h *ZoneHandler) List(c *fiber.Ctx) error {
	zones, err := h.registry.ListZones(c.UserContext(), entity.ZoneKind(c.Query("kind")))
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.ZoneResponse, 0, len(zones))
	for _, z := range zones {
		out = append(out, toZoneResponse(z))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener zona
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la zona"
// @Success      200  {object}  dto.ZoneResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/zones/{id} [get]
func (h *ZoneHandler) GetByID(c *fiber.Ctx) error {
	z, err := h.registry.GetZone(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toZoneResponse(z))
}
