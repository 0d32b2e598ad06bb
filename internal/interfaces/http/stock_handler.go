package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Cordeleria-api/internal/application/dto"
	"github.com/jhoicas/Cordeleria-api/internal/application/inventory"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/pkg/logger"
)

// StockHandler movimientos y consultas del kardex (protegido).
type StockHandler struct {
	movements *inventory.RegisterMovementUseCase
	ledger    *inventory.LedgerService
	log       *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(movements *inventory.RegisterMovementUseCase, ledger *inventory.LedgerService, log *logger.Logger) *StockHandler {
	return &StockHandler{movements: movements, ledger: ledger, log: log}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  RECEIPT ingresa a una zona, TRANSFER traslada entre zonas, CONSUME descuenta materia prima FIFO.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	kind := entity.ItemKind(in.ItemKind)
	if kind == "" {
		kind = entity.ItemKindMaterial
	}
	res, err := h.movements.RegisterMovement(c.UserContext(), inventory.MovementInputDTO{
		UserID:       GetUserID(c),
		Type:         in.Type,
		ItemKind:     kind,
		ItemID:       in.ItemID,
		ZoneID:       in.ZoneID,
		FromZoneID:   in.FromZoneID,
		ToZoneID:     in.ToZoneID,
		Quantity:     in.Quantity,
		ZonePriority: zoneKinds(in.ZonePriority),
		Note:         in.Note,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		TransactionID: res.TransactionID,
		Postings:      toPostings(res.Postings),
	})
}

// Balance godoc
// @Summary      Saldo de un ítem en una zona
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_kind  query  string  true  "MATERIAL | PRODUCT"
// @Param        item_id    query  string  true  "ID del ítem"
// @Param        zone_id    query  string  true  "ID de la zona"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/balance [get]
func (h *StockHandler) Balance(c *fiber.Ctx) error {
	var q dto.StockQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	balance, err := h.ledger.Balance(c.UserContext(), entity.ItemKind(q.ItemKind), q.ItemID, q.ZoneID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.BalanceResponse{ItemKind: q.ItemKind, ItemID: q.ItemID, ZoneID: q.ZoneID, Balance: balance})
}

// Lots lotes vivos del par en orden FIFO.
func (h *StockHandler) Lots(c *fiber.Ctx) error {
	var q dto.StockQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	lots, err := h.ledger.LotsOldestFirst(c.UserContext(), entity.ItemKind(q.ItemKind), q.ItemID, q.ZoneID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.LotResponse{EntryID: l.EntryID, ZoneID: l.ZoneID, Quantity: l.Quantity, Timestamp: l.Timestamp})
	}
	return c.JSON(out)
}

// Entries historial del kardex del par, paginado.
func (h *StockHandler) Entries(c *fiber.Ctx) error {
	var q dto.StockQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	var page dto.PageRequest
	if ok, err := parseQuery(c, &page); !ok {
		return err
	}
	page.DefaultPage()
	entries, err := h.ledger.Entries(c.UserContext(), entity.ItemKind(q.ItemKind), q.ItemID, q.ZoneID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	total := len(entries)
	from := min(page.Offset, total)
	to := min(from+page.Limit, total)
	out := make([]dto.StockEntryResponse, 0, to-from)
	for _, e := range entries[from:to] {
		out = append(out, toEntryResponse(e))
	}
	return c.JSON(dto.StockEntriesResponse{
		Page:    dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
		Entries: out,
	})
}
