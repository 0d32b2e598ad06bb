package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Cordeleria-api/internal/application/dto"
	"github.com/jhoicas/Cordeleria-api/internal/application/production"
	"github.com/jhoicas/Cordeleria-api/pkg/logger"
)

// ProductionHandler partes de producción (protegido).
type ProductionHandler struct {
	uc  *production.RegisterProductionUseCase
	log *logger.Logger
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.RegisterProductionUseCase, log *logger.Logger) *ProductionHandler {
	return &ProductionHandler{uc: uc, log: log}
}

// Register godoc
// @Summary      Registrar producción
// @Description  Consume los materiales de la receta (o la lista manual) por FIFO e ingresa el producto al almacén.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterProductionRequest  true  "parte de producción"
// @Success      201   {object}  dto.ProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterProductionRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	res, err := h.uc.Register(c.UserContext(), production.RegisterInput{
		UserID:          GetUserID(c),
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
		WarehouseZoneID: in.WarehouseZoneID,
		ManualMaterials: toMaterialDraws(in.Materials),
		ZonePriority:    zoneKinds(in.ZonePriority),
		Note:            in.Note,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	resp := dto.ProductionResponse{
		TransactionID:  res.TransactionID,
		ProductEntryID: res.ProductEntry,
		Consumptions:   make([]dto.ConsumptionResponse, 0, len(res.Consumptions)),
	}
	for _, cr := range res.Consumptions {
		resp.Consumptions = append(resp.Consumptions, dto.ConsumptionResponse{
			MaterialID: cr.MaterialID,
			Quantity:   cr.Quantity,
			Postings:   toPostings(cr.Postings),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
