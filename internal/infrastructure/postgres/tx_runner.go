package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
	"go.uber.org/multierr"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// beginner abre transacciones; *pgxpool.Pool lo implementa.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool beginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// NewUnitOfWork repositorios atados a q (pool o tx).
func NewUnitOfWork(q Querier) repository.UnitOfWork {
	return repository.UnitOfWork{
		Zones:        NewZoneRepository(q),
		Ledger:       NewStockLedgerRepository(q),
		Orders:       NewOrderRepository(q),
		Deliveries:   NewDeliveryRepository(q),
		Compositions: NewCompositionRepository(q),
		Prices:       NewPriceRepository(q),
		Catalog:      NewCatalogRepository(q),
	}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido corre siempre (también si fn entra en pánico); tras un Commit
// devuelve ErrTxClosed y se ignora. Si falla junto con fn, ambos errores se combinan.
func (r *TxRunner) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		rbErr := tx.Rollback(ctx)
		if err != nil && rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = multierr.Append(err, fmt.Errorf("rollback transaction: %w", rbErr))
		}
	}()

	if err = fn(NewUnitOfWork(tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
