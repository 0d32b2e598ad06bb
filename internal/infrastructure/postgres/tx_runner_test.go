package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeTx registra Commit y Rollback; el resto de pgx.Tx no se usa en estos tests.
type fakeTx struct {
	pgx.Tx
	commits     int
	rollbacks   int
	closed      bool
	rollbackErr error
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.commits++
	tx.closed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	tx.rollbacks++
	if tx.closed {
		return pgx.ErrTxClosed
	}
	tx.closed = true
	return tx.rollbackErr
}

type fakePool struct{ tx *fakeTx }

func (p *fakePool) Begin(context.Context) (pgx.Tx, error) { return p.tx, nil }

func newFakeRunner(tx *fakeTx) *TxRunner {
	return &TxRunner{pool: &fakePool{tx: tx}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Run
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_ConfirmaSinError(t *testing.T) {
	tx := &fakeTx{}
	err := newFakeRunner(tx).Run(context.Background(), func(repository.UnitOfWork) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, 1, tx.commits)
	assert.Equal(t, 1, tx.rollbacks, "el rollback diferido corre siempre y devuelve ErrTxClosed")
}

func TestTxRunner_RevierteSiFnFalla(t *testing.T) {
	tx := &fakeTx{}
	boom := errors.New("falla de negocio")
	err := newFakeRunner(tx).Run(context.Background(), func(repository.UnitOfWork) error { return boom })

	require.ErrorIs(t, err, boom)
	assert.Zero(t, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
}

func TestTxRunner_RevierteSiFnEntraEnPanico(t *testing.T) {
	tx := &fakeTx{}
	runner := newFakeRunner(tx)

	assert.PanicsWithValue(t, "fallo inesperado", func() {
		_ = runner.Run(context.Background(), func(repository.UnitOfWork) error {
			panic("fallo inesperado")
		})
	})
	assert.Zero(t, tx.commits)
	assert.Equal(t, 1, tx.rollbacks, "la transacción no queda abierta con sus bloqueos")
}

func TestTxRunner_CombinaErrorDeRollback(t *testing.T) {
	tx := &fakeTx{rollbackErr: errors.New("conexión perdida")}
	boom := errors.New("falla de negocio")
	err := newFakeRunner(tx).Run(context.Background(), func(repository.UnitOfWork) error { return boom })

	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "rollback transaction: conexión perdida")
}
