package http

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Cordeleria-api/internal/application/dto"
	"github.com/jhoicas/Cordeleria-api/internal/application/pricing"
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/pkg/logger"
)

// PriceHandler precios vigentes por cliente y producto (protegido).
type PriceHandler struct {
	svc *pricing.Service
	log *logger.Logger
	now func() time.Time
}

// NewPriceHandler construye el handler.
func NewPriceHandler(svc *pricing.Service, log *logger.Logger) *PriceHandler {
	return &PriceHandler{svc: svc, log: log, now: time.Now}
}

// Upsert godoc
// @Summary      Registrar precio vigente
// @Description  Registra el precio desde valid_from: actualiza, cierra o parte intervalos sin solaparlos.
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertPriceRequest  true  "precio"
// @Success      200   {object}  dto.UpsertPriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prices [put]
func (h *PriceHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertPriceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	at, err := civil.ParseDate(in.ValidFrom)
	if err != nil {
		return badRequest(c, "VALIDATION", "valid_from inválido, formato AAAA-MM-DD")
	}
	res, err := h.svc.UpsertPrice(c.UserContext(), pricing.UpsertInput{
		CustomerID: in.CustomerID,
		ProductID:  in.ProductID,
		Price:      in.Price,
		Currency:   in.Currency,
		At:         at,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toUpsertResponse(res.Action, res.Interval))
}

// Effective godoc
// @Summary      Precio vigente en una fecha
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Param        customer_id  query  string  true   "ID del cliente"
// @Param        product_id   query  string  true   "ID del producto"
// @Param        date         query  string  false  "AAAA-MM-DD, hoy si falta"
// @Success      200  {object}  dto.PriceIntervalResponse
// @Failure      422  {object}  dto.ErrorResponse  "NO_EFFECTIVE_PRICE"
// @Router       /api/prices/effective [get]
func (h *PriceHandler) Effective(c *fiber.Ctx) error {
	var q dto.PriceQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	at := civil.DateOf(h.now())
	if q.Date != "" {
		d, err := civil.ParseDate(q.Date)
		if err != nil {
			return badRequest(c, "VALIDATION", "date inválido, formato AAAA-MM-DD")
		}
		at = d
	}
	interval, err := h.svc.ResolvePrice(c.UserContext(), q.CustomerID, q.ProductID, at)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if interval == nil {
		return writeError(c, h.log, domain.Newf(domain.KindNoEffectivePrice,
			"cliente %s, producto %s: sin precio vigente al %s", q.CustomerID, q.ProductID, at.String()))
	}
	return c.JSON(toPriceResponse(interval))
}

// History intervalos del par ordenados por inicio de vigencia.
func (h *PriceHandler) History(c *fiber.Ctx) error {
	var q dto.PriceQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	history, err := h.svc.PriceHistory(c.UserContext(), q.CustomerID, q.ProductID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]*dto.PriceIntervalResponse, 0, len(history))
	for _, p := range history {
		out = append(out, toPriceResponse(p))
	}
	return c.JSON(out)
}
