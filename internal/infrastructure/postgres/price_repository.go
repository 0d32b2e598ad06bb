package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo intervalos de precio sobre PostgreSQL (usable con pool o tx).
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// ListByCustomerProduct historial del par ordenado por valid_from.
func (r *PriceRepo) ListByCustomerProduct(ctx context.Context, customerID, productID string) ([]*entity.PriceInterval, error) {
	query := `
		SELECT id, customer_id, product_id, price, currency, valid_from, valid_to, created_at, updated_at
		FROM customer_prices
		WHERE customer_id = $1 AND product_id = $2
		ORDER BY valid_from`
	rows, err := r.q.Query(ctx, query, customerID, productID)
	if err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceInterval
	for rows.Next() {
		var p entity.PriceInterval
		var from time.Time
		var to *time.Time
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.ProductID, &p.Price, &p.Currency,
			&from, &to, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		p.ValidFrom = civilDate(from)
		p.ValidTo = nullableDate(to)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// LockPair bloqueo consultivo por (cliente, producto) hasta el fin de la transacción.
func (r *PriceRepo) LockPair(ctx context.Context, customerID, productID string) error {
	_, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('price'), hashtext($1))`, customerID+":"+productID)
	if err != nil {
		return fmt.Errorf("lock price pair: %w", err)
	}
	return nil
}

// Create inserta un intervalo.
func (r *PriceRepo) Create(ctx context.Context, p *entity.PriceInterval) error {
	query := `
		INSERT INTO customer_prices (id, customer_id, product_id, price, currency, valid_from, valid_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CustomerID, p.ProductID, p.Price, p.Currency,
		dateParam(p.ValidFrom), nullableDateParam(p.ValidTo), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert price: %w", err)
	}
	return nil
}

// Update persiste precio, moneda y valid_to.
func (r *PriceRepo) Update(ctx context.Context, p *entity.PriceInterval) error {
	query := `
		UPDATE customer_prices SET price = $2, currency = $3, valid_to = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, p.ID, p.Price, p.Currency, nullableDateParam(p.ValidTo), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update price: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
