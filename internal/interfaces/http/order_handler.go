package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Cordeleria-api/internal/application/dto"
	"github.com/jhoicas/Cordeleria-api/internal/application/fulfillment"
	"github.com/jhoicas/Cordeleria-api/pkg/logger"
)

// OrderHandler pedidos, entregas y cuentas por cobrar (protegido).
type OrderHandler struct {
	orders     *fulfillment.OrderUseCase
	deliveries *fulfillment.DeliveryUseCase
	log        *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *fulfillment.OrderUseCase, deliveries *fulfillment.DeliveryUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, deliveries: deliveries, log: log}
}

// Create godoc
// @Summary      Crear pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "cliente y líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	lines := make([]fulfillment.OrderLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, fulfillment.OrderLineInput{ProductID: l.ProductID, PresentationID: l.PresentationID, Quantity: l.Quantity})
	}
	view, err := h.orders.CreateOrder(c.UserContext(), fulfillment.CreateOrderInput{CustomerID: in.CustomerID, Lines: lines})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(view))
}

// GetByID pedido con entregado y pendiente por línea.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	view, err := h.orders.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toOrderResponse(view))
}

// CreateDelivery godoc
// @Summary      Registrar entrega de un pedido
// @Description  Cada línea no puede superar su pendiente. Sin unit_price se usa el precio vigente en date (hoy si falta).
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del pedido"
// @Param        body  body  dto.CreateDeliveryRequest  true  "líneas a entregar"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "ALREADY_FULFILLED | OVER_DELIVERY (con outstanding) | INSUFFICIENT_STOCK"
// @Failure      422   {object}  dto.ErrorResponse  "INVALID_LINE | NO_EFFECTIVE_PRICE"
// @Router       /api/orders/{id}/deliveries [post]
func (h *OrderHandler) CreateDelivery(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return badRequest(c, "VALIDATION", "fecha inválida, formato AAAA-MM-DD")
	}
	lines := make([]fulfillment.DeliveryLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, fulfillment.DeliveryLineInput{
			OrderLineID: l.OrderLineID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Currency:    l.Currency,
		})
	}
	view, err := h.deliveries.CreateDelivery(c.UserContext(), fulfillment.CreateDeliveryInput{
		UserID:  GetUserID(c),
		OrderID: c.Params("id"),
		Lines:   lines,
		Date:    date,
		ZoneID:  in.ZoneID,
		Note:    in.Note,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDeliveryResponse(view))
}

// GetDelivery entrega con sus líneas.
func (h *OrderHandler) GetDelivery(c *fiber.Ctx) error {
	view, err := h.deliveries.GetDelivery(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toDeliveryResponse(view))
}

// UpdateLine cambia la cantidad pedida de una línea (no se reduce si ya tiene entregas).
func (h *OrderHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.UpdateOrderLineRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	view, err := h.orders.UpdateOrderLineQuantity(c.UserContext(), c.Params("id"), in.Quantity)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toOrderLineResponse(*view))
}

// DeleteLine elimina una línea sin entregas.
func (h *OrderHandler) DeleteLine(c *fiber.Ctx) error {
	if err := h.orders.DeleteOrderLine(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receivables godoc
// @Summary      Cuentas por cobrar de un cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ReceivablesResponse
// @Router       /api/customers/{id}/receivables [get]
func (h *OrderHandler) Receivables(c *fiber.Ctx) error {
	customerID := c.Params("id")
	amounts, err := h.deliveries.CustomerReceivables(c.UserContext(), customerID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	resp := dto.ReceivablesResponse{CustomerID: customerID, Totals: make([]dto.ReceivableResponse, 0, len(amounts))}
	for _, a := range amounts {
		resp.Totals = append(resp.Totals, dto.ReceivableResponse{Currency: a.Currency, Amount: a.Amount})
	}
	return c.JSON(resp)
}
