package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Cordeleria-api/internal/application/dto"
	"github.com/jhoicas/Cordeleria-api/internal/application/recipe"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// RecipeHandler recetas porcentuales (protegido).
type RecipeHandler struct {
	svc *recipe.Service
	log *logger.Logger
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(svc *recipe.Service, log *logger.Logger) *RecipeHandler {
	return &RecipeHandler{svc: svc, log: log}
}

func compositionResponse(productID string, rows []*entity.CompositionRow) dto.CompositionResponse {
	resp := dto.CompositionResponse{
		ProductID: productID,
		Total:     decimal.Zero,
		Rows:      make([]dto.CompositionRowResponse, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Total = resp.Total.Add(r.Percentage)
		resp.Rows = append(resp.Rows, dto.CompositionRowResponse{
			MaterialID: r.MaterialID,
			ZoneHint:   r.ZoneHint,
			Percentage: r.Percentage,
		})
	}
	return resp
}

// Get godoc
// @Summary      Receta de un producto
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CompositionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{productId} [get]
func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	productID := c.Params("productId")
	rows, err := h.svc.GetComposition(c.UserContext(), productID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(compositionResponse(productID, rows))
}

// Replace godoc
// @Summary      Reemplazar receta
// @Description  Porcentajes entre 0 y 100, sin materiales repetidos, suma hasta 100.
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                         true  "ID del producto"
// @Param        body       body  dto.ReplaceCompositionRequest  true  "filas"
// @Success      200  {object}  dto.CompositionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/recipes/{productId} [put]
func (h *RecipeHandler) Replace(c *fiber.Ctx) error {
	var in dto.ReplaceCompositionRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	rows := make([]recipe.RowInput, 0, len(in.Rows))
	for _, r := range in.Rows {
		rows = append(rows, recipe.RowInput{MaterialID: r.MaterialID, ZoneHint: r.ZoneHint, Percentage: r.Percentage})
	}
	productID := c.Params("productId")
	saved, err := h.svc.ReplaceComposition(c.UserContext(), productID, rows)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(compositionResponse(productID, saved))
}

// Plan calcula el consumo de materiales sin registrarlo.
func (h *RecipeHandler) Plan(c *fiber.Ctx) error {
	var in dto.PlanConsumptionRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	productID := c.Params("productId")
	draws, err := h.svc.PlanConsumption(c.UserContext(), productID, in.Quantity, toMaterialDraws(in.Materials))
	if err != nil {
		return writeError(c, h.log, err)
	}
	resp := dto.PlanConsumptionResponse{
		ProductID: productID,
		Quantity:  in.Quantity,
		Total:     recipe.Total(draws),
		Materials: make([]dto.MaterialDrawResponse, 0, len(draws)),
	}
	for _, d := range draws {
		resp.Materials = append(resp.Materials, dto.MaterialDrawResponse{MaterialID: d.MaterialID, Quantity: d.Quantity, ZoneHint: d.ZoneHint})
	}
	return c.JSON(resp)
}
