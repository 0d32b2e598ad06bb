package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

// StockLedgerRepo kardex sobre PostgreSQL (usable con pool o tx).
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

// Append inserta el asiento; id y created_at los asigna la base si no vienen.
func (r *StockLedgerRepo) Append(ctx context.Context, entry *entity.StockEntry) error {
	query := `
		INSERT INTO stock_entries (item_kind, item_id, zone_id, quantity, note, reference, source_entry_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, now()), $9)
		RETURNING id, created_at`
	var createdAt any
	if !entry.CreatedAt.IsZero() {
		createdAt = entry.CreatedAt
	}
	err := r.q.QueryRow(ctx, query,
		entry.ItemKind, entry.ItemID, entry.ZoneID, entry.Quantity,
		entry.Note, entry.Reference, entry.SourceEntryID, createdAt, nullIfEmpty(entry.CreatedBy),
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert stock entry: %w", err)
	}
	return nil
}

// Balance Σ cantidad del par (ítem, zona).
func (r *StockLedgerRepo) Balance(ctx context.Context, kind entity.ItemKind, itemID, zoneID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0) FROM stock_entries
		WHERE item_kind = $1 AND item_id = $2 AND zone_id = $3`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, kind, itemID, zoneID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("stock balance: %w", err)
	}
	return total, nil
}

// ListEntries historial del par en orden de kardex.
func (r *StockLedgerRepo) ListEntries(ctx context.Context, kind entity.ItemKind, itemID, zoneID string) ([]*entity.StockEntry, error) {
	query := `
		SELECT id, item_kind, item_id, zone_id, quantity, note, reference, source_entry_id, created_at, created_by
		FROM stock_entries
		WHERE item_kind = $1 AND item_id = $2 AND zone_id = $3
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, kind, itemID, zoneID)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		var createdBy *string
		if err := rows.Scan(&e.ID, &e.ItemKind, &e.ItemID, &e.ZoneID, &e.Quantity,
			&e.Note, &e.Reference, &e.SourceEntryID, &e.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		e.CreatedBy = derefStr(createdBy)
		list = append(list, &e)
	}
	return list, rows.Err()
}

// CountEntries cantidad de asientos del par.
func (r *StockLedgerRepo) CountEntries(ctx context.Context, kind entity.ItemKind, itemID, zoneID string) (int, error) {
	query := `SELECT COUNT(*) FROM stock_entries WHERE item_kind = $1 AND item_id = $2 AND zone_id = $3`
	var n int
	if err := r.q.QueryRow(ctx, query, kind, itemID, zoneID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock entries: %w", err)
	}
	return n, nil
}

// LockItem bloqueo consultivo por ítem hasta el fin de la transacción.
func (r *StockLedgerRepo) LockItem(ctx context.Context, kind entity.ItemKind, itemID string) error {
	_, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('stock'), hashtext($1))`, string(kind)+":"+itemID)
	if err != nil {
		return fmt.Errorf("lock stock item: %w", err)
	}
	return nil
}
