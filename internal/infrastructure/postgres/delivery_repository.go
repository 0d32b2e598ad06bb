package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo entregas sobre PostgreSQL (usable con pool o tx).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create persiste la cabecera de la entrega.
func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (id, order_id, customer_id, delivery_date, zone_id, note, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.OrderID, d.CustomerID, d.Date, nullIfEmpty(d.ZoneID), d.Note, d.CreatedAt, nullIfEmpty(d.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de la entrega.
func (r *DeliveryRepo) CreateLine(ctx context.Context, l *entity.DeliveryLine) error {
	query := `
		INSERT INTO delivery_lines (id, delivery_id, order_line_id, quantity, unit_price, currency)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, l.ID, l.DeliveryID, l.OrderLineID, l.Quantity, l.UnitPrice, l.Currency)
	if err != nil {
		return fmt.Errorf("insert delivery line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una entrega.
func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	query := `
		SELECT id, order_id, customer_id, delivery_date, zone_id, note, created_at, created_by
		FROM deliveries WHERE id = $1`
	var d entity.Delivery
	var zoneID, createdBy *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.OrderID, &d.CustomerID, &d.Date, &zoneID, &d.Note, &d.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	d.ZoneID = derefStr(zoneID)
	d.CreatedBy = derefStr(createdBy)
	return &d, nil
}

// ListLines líneas de la entrega en orden de alta.
func (r *DeliveryRepo) ListLines(ctx context.Context, deliveryID string) ([]*entity.DeliveryLine, error) {
	query := `
		SELECT id, delivery_id, order_line_id, quantity, unit_price, currency
		FROM delivery_lines WHERE delivery_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("list delivery lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryLine
	for rows.Next() {
		var l entity.DeliveryLine
		if err := rows.Scan(&l.ID, &l.DeliveryID, &l.OrderLineID, &l.Quantity, &l.UnitPrice, &l.Currency); err != nil {
			return nil, fmt.Errorf("scan delivery line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// SumDeliveredByLine Σ cantidad entregada contra la línea de pedido.
func (r *DeliveryRepo) SumDeliveredByLine(ctx context.Context, orderLineID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM delivery_lines WHERE order_line_id = $1`, orderLineID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum delivered: %w", err)
	}
	return total, nil
}

// CountByLine cantidad de líneas de entrega contra la línea de pedido.
func (r *DeliveryRepo) CountByLine(ctx context.Context, orderLineID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM delivery_lines WHERE order_line_id = $1`, orderLineID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count delivery lines: %w", err)
	}
	return n, nil
}

// SumAmountsByCustomer importe entregado al cliente agrupado por moneda.
func (r *DeliveryRepo) SumAmountsByCustomer(ctx context.Context, customerID string) ([]entity.CurrencyAmount, error) {
	query := `
		SELECT dl.currency, COALESCE(SUM(dl.quantity * dl.unit_price), 0)
		FROM delivery_lines dl
		JOIN deliveries d ON d.id = dl.delivery_id
		WHERE d.customer_id = $1
		GROUP BY dl.currency
		ORDER BY dl.currency`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("sum receivables: %w", err)
	}
	defer rows.Close()
	var list []entity.CurrencyAmount
	for rows.Next() {
		var a entity.CurrencyAmount
		if err := rows.Scan(&a.Currency, &a.Amount); err != nil {
			return nil, fmt.Errorf("scan receivable: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
