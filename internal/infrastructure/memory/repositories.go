package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/inventory"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.ZoneRepository        = (*zoneRepo)(nil)
	_ repository.StockLedgerRepository = (*ledgerRepo)(nil)
	_ repository.OrderRepository       = (*orderRepo)(nil)
	_ repository.DeliveryRepository    = (*deliveryRepo)(nil)
	_ repository.CompositionRepository = (*compositionRepo)(nil)
	_ repository.PriceRepository       = (*priceRepo)(nil)
	_ repository.CatalogRepository     = (*catalogRepo)(nil)
)

// ── Zonas ───────────────────────────────────────────────────────────────────

type zoneRepo struct{ acc accessor }

func (r *zoneRepo) GetByID(_ context.Context, id string) (*entity.Zone, error) {
	st, release := r.acc()
	defer release()
	z, ok := st.zones[id]
	if !ok {
		return nil, nil
	}
	return &z, nil
}

func (r *zoneRepo) ListByKind(_ context.Context, kind entity.ZoneKind) ([]*entity.Zone, error) {
	st, release := r.acc()
	defer release()
	var list []*entity.Zone
	for _, z := range st.zones {
		if kind != "" && z.Kind != kind {
			continue
		}
		z := z
		list = append(list, &z)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name == list[j].Name {
			return list[i].ID < list[j].ID
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

// ── Kardex ──────────────────────────────────────────────────────────────────

type ledgerRepo struct {
	acc accessor
	now func() time.Time
}

func (r *ledgerRepo) Append(_ context.Context, entry *entity.StockEntry) error {
	st, release := r.acc()
	defer release()
	st.nextEntryID++
	entry.ID = st.nextEntryID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now()
	}
	st.entries = append(st.entries, *entry)
	return nil
}

func (r *ledgerRepo) Balance(ctx context.Context, kind entity.ItemKind, itemID, zoneID string) (decimal.Decimal, error) {
	entries, err := r.ListEntries(ctx, kind, itemID, zoneID)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.Balance(entries), nil
}

func (r *ledgerRepo) ListEntries(_ context.Context, kind entity.ItemKind, itemID, zoneID string) ([]*entity.StockEntry, error) {
	st, release := r.acc()
	defer release()
	var list []*entity.StockEntry
	for _, e := range st.entries {
		if e.ItemKind == kind && e.ItemID == itemID && e.ZoneID == zoneID {
			e := e
			list = append(list, &e)
		}
	}
	inventory.SortEntries(list)
	return list, nil
}

func (r *ledgerRepo) CountEntries(ctx context.Context, kind entity.ItemKind, itemID, zoneID string) (int, error) {
	entries, err := r.ListEntries(ctx, kind, itemID, zoneID)
	return len(entries), err
}

// LockItem no hace nada: Run ya serializa todas las transacciones.
func (r *ledgerRepo) LockItem(context.Context, entity.ItemKind, string) error {
	return nil
}

// ── Pedidos ─────────────────────────────────────────────────────────────────

type orderRepo struct{ acc accessor }

func (r *orderRepo) Create(_ context.Context, order *entity.Order) error {
	st, release := r.acc()
	defer release()
	if _, ok := st.orders[order.ID]; ok {
		return fmt.Errorf("insert order: id %s duplicado", order.ID)
	}
	st.orders[order.ID] = *order
	return nil
}

func (r *orderRepo) CreateLine(_ context.Context, line *entity.OrderLine) error {
	st, release := r.acc()
	defer release()
	if _, ok := st.orders[line.OrderID]; !ok {
		return fmt.Errorf("insert order line: pedido %s inexistente", line.OrderID)
	}
	st.orderLines[line.ID] = *line
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	st, release := r.acc()
	defer release()
	o, ok := st.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *orderRepo) GetLine(_ context.Context, lineID string) (*entity.OrderLine, error) {
	st, release := r.acc()
	defer release()
	l, ok := st.orderLines[lineID]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *orderRepo) ListLines(_ context.Context, orderID string) ([]*entity.OrderLine, error) {
	st, release := r.acc()
	defer release()
	var list []*entity.OrderLine
	for _, l := range st.orderLines {
		if l.OrderID == orderID {
			l := l
			list = append(list, &l)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *orderRepo) UpdateLineQuantity(_ context.Context, lineID string, quantity decimal.Decimal) error {
	st, release := r.acc()
	defer release()
	l, ok := st.orderLines[lineID]
	if !ok {
		return fmt.Errorf("update order line: %s inexistente", lineID)
	}
	l.OrderedQuantity = quantity
	st.orderLines[lineID] = l
	return nil
}

func (r *orderRepo) DeleteLine(_ context.Context, lineID string) error {
	st, release := r.acc()
	defer release()
	delete(st.orderLines, lineID)
	return nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, orderID, status string) error {
	st, release := r.acc()
	defer release()
	o, ok := st.orders[orderID]
	if !ok {
		return fmt.Errorf("update order status: %s inexistente", orderID)
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	st.orders[orderID] = o
	return nil
}

// ── Entregas ────────────────────────────────────────────────────────────────

type deliveryRepo struct{ acc accessor }

func (r *deliveryRepo) Create(_ context.Context, d *entity.Delivery) error {
	st, release := r.acc()
	defer release()
	st.deliveries[d.ID] = *d
	return nil
}

func (r *deliveryRepo) CreateLine(_ context.Context, l *entity.DeliveryLine) error {
	st, release := r.acc()
	defer release()
	if _, ok := st.deliveries[l.DeliveryID]; !ok {
		return fmt.Errorf("insert delivery line: entrega %s inexistente", l.DeliveryID)
	}
	st.deliveryLines = append(st.deliveryLines, *l)
	return nil
}

func (r *deliveryRepo) GetByID(_ context.Context, id string) (*entity.Delivery, error) {
	st, release := r.acc()
	defer release()
	d, ok := st.deliveries[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *deliveryRepo) ListLines(_ context.Context, deliveryID string) ([]*entity.DeliveryLine, error) {
	st, release := r.acc()
	defer release()
	var list []*entity.DeliveryLine
	for _, l := range st.deliveryLines {
		if l.DeliveryID == deliveryID {
			l := l
			list = append(list, &l)
		}
	}
	return list, nil
}

func (r *deliveryRepo) SumDeliveredByLine(_ context.Context, orderLineID string) (decimal.Decimal, error) {
	st, release := r.acc()
	defer release()
	total := decimal.Zero
	for _, l := range st.deliveryLines {
		if l.OrderLineID == orderLineID {
			total = total.Add(l.Quantity)
		}
	}
	return total, nil
}

func (r *deliveryRepo) CountByLine(_ context.Context, orderLineID string) (int, error) {
	st, release := r.acc()
	defer release()
	n := 0
	for _, l := range st.deliveryLines {
		if l.OrderLineID == orderLineID {
			n++
		}
	}
	return n, nil
}

func (r *deliveryRepo) SumAmountsByCustomer(_ context.Context, customerID string) ([]entity.CurrencyAmount, error) {
	st, release := r.acc()
	defer release()
	totals := map[string]decimal.Decimal{}
	for _, l := range st.deliveryLines {
		d, ok := st.deliveries[l.DeliveryID]
		if !ok || d.CustomerID != customerID {
			continue
		}
		totals[l.Currency] = totals[l.Currency].Add(l.Amount())
	}
	list := make([]entity.CurrencyAmount, 0, len(totals))
	for cur, amount := range totals {
		list = append(list, entity.CurrencyAmount{Currency: cur, Amount: amount})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Currency < list[j].Currency })
	return list, nil
}

// ── Recetas ─────────────────────────────────────────────────────────────────

type compositionRepo struct{ acc accessor }

func (r *compositionRepo) ListByProduct(_ context.Context, productID string) ([]*entity.CompositionRow, error) {
	st, release := r.acc()
	defer release()
	var list []*entity.CompositionRow
	for _, row := range st.compositions[productID] {
		row := row
		list = append(list, &row)
	}
	return list, nil
}

func (r *compositionRepo) Replace(_ context.Context, productID string, rows []*entity.CompositionRow) error {
	st, release := r.acc()
	defer release()
	next := make([]entity.CompositionRow, 0, len(rows))
	for _, row := range rows {
		next = append(next, *row)
	}
	st.compositions[productID] = next
	return nil
}

// ── Precios ─────────────────────────────────────────────────────────────────

type priceRepo struct{ acc accessor }

func (r *priceRepo) ListByCustomerProduct(_ context.Context, customerID, productID string) ([]*entity.PriceInterval, error) {
	st, release := r.acc()
	defer release()
	var list []*entity.PriceInterval
	for _, p := range st.prices {
		if p.CustomerID == customerID && p.ProductID == productID {
			p := p
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ValidFrom.Before(list[j].ValidFrom) })
	return list, nil
}

// LockPair no hace nada: Run ya serializa todas las transacciones.
func (r *priceRepo) LockPair(context.Context, string, string) error {
	return nil
}

func (r *priceRepo) Create(_ context.Context, p *entity.PriceInterval) error {
	st, release := r.acc()
	defer release()
	if _, ok := st.prices[p.ID]; ok {
		return fmt.Errorf("insert price interval: id %s duplicado", p.ID)
	}
	st.prices[p.ID] = *p
	return nil
}

func (r *priceRepo) Update(_ context.Context, p *entity.PriceInterval) error {
	st, release := r.acc()
	defer release()
	cur, ok := st.prices[p.ID]
	if !ok {
		return fmt.Errorf("update price interval: %s inexistente", p.ID)
	}
	cur.Price = p.Price
	cur.Currency = p.Currency
	cur.ValidTo = p.ValidTo
	cur.UpdatedAt = p.UpdatedAt
	st.prices[p.ID] = cur
	return nil
}

// ── Catálogo ────────────────────────────────────────────────────────────────

type catalogRepo struct{ acc accessor }

func (r *catalogRepo) MaterialExists(_ context.Context, id string) (bool, error) {
	st, release := r.acc()
	defer release()
	return st.materials[id], nil
}

func (r *catalogRepo) ProductExists(_ context.Context, id string) (bool, error) {
	st, release := r.acc()
	defer release()
	return st.products[id], nil
}
