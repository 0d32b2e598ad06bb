package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cordeleria-api/internal/application/inventory"
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
)

func TestRegisterMovement_Recepcion(t *testing.T) {
	store := newStore()
	uc := inventory.NewRegisterMovementUseCase(store, inventory.NewConsumptionEngine(nil, 0, nil), nil)

	res, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		UserID: "u1", Type: inventory.MovementTypeReceipt,
		ItemKind: entity.ItemKindMaterial, ItemID: "M", ZoneID: "RECEPCION", Quantity: d("12.5"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.TransactionID)
	require.Len(t, res.Postings, 1)
	assert.Equal(t, res.Postings[0].EntryID, res.Postings[0].LotEntryID)
	assert.True(t, d("12.5").Equal(balance(t, store, entity.ItemKindMaterial, "M", "RECEPCION")))

	entries, err := store.Repositories().Ledger.ListEntries(context.Background(), entity.ItemKindMaterial, "M", "RECEPCION")
	require.NoError(t, err)
	assert.Equal(t, "u1", entries[0].CreatedBy)
	assert.Equal(t, res.TransactionID, entries[0].Reference)
}

func TestRegisterMovement_RecepcionRechazaZonaIncompatible(t *testing.T) {
	store := newStore()
	uc := inventory.NewRegisterMovementUseCase(store, inventory.NewConsumptionEngine(nil, 0, nil), nil)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		Type: inventory.MovementTypeReceipt, ItemKind: entity.ItemKindProduct, ItemID: "P", ZoneID: "PLANTA", Quantity: d("1"),
	})
	assert.Equal(t, domain.KindZoneRejected, domain.KindOf(err))

	_, err = uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		Type: inventory.MovementTypeReceipt, ItemKind: entity.ItemKindMaterial, ItemID: "X", ZoneID: "PLANTA", Quantity: d("1"),
	})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestRegisterMovement_Traslado(t *testing.T) {
	store := newStore()
	receive(t, store, entity.ItemKindMaterial, "M", "RECEPCION", "30")
	uc := inventory.NewRegisterMovementUseCase(store, inventory.NewConsumptionEngine(nil, 0, nil), nil)

	res, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		Type: inventory.MovementTypeTransfer, ItemKind: entity.ItemKindMaterial, ItemID: "M",
		FromZoneID: "RECEPCION", ToZoneID: "PLANTA", Quantity: d("12"),
	})
	require.NoError(t, err)
	require.Len(t, res.Postings, 2)
	assert.True(t, d("18").Equal(balance(t, store, entity.ItemKindMaterial, "M", "RECEPCION")))
	assert.True(t, d("12").Equal(balance(t, store, entity.ItemKindMaterial, "M", "PLANTA")))

	_, err = uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		Type: inventory.MovementTypeTransfer, ItemKind: entity.ItemKindMaterial, ItemID: "M",
		FromZoneID: "RECEPCION", ToZoneID: "PLANTA", Quantity: d("18.5"),
	})
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))

	_, err = uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		Type: inventory.MovementTypeTransfer, ItemKind: entity.ItemKindMaterial, ItemID: "M",
		FromZoneID: "PLANTA", ToZoneID: "PLANTA", Quantity: d("1"),
	})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

func TestRegisterMovement_Consumo(t *testing.T) {
	store := newStore()
	receive(t, store, entity.ItemKindMaterial, "M", "PLANTA", "10")
	uc := inventory.NewRegisterMovementUseCase(store, inventory.NewConsumptionEngine(nil, 0, nil), nil)

	res, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		Type: inventory.MovementTypeConsume, ItemKind: entity.ItemKindMaterial, ItemID: "M", Quantity: d("4"),
	})
	require.NoError(t, err)
	require.Len(t, res.Postings, 1)
	assert.True(t, d("6").Equal(balance(t, store, entity.ItemKindMaterial, "M", "PLANTA")))
}

func TestRegisterMovement_TipoDesconocido(t *testing.T) {
	store := newStore()
	uc := inventory.NewRegisterMovementUseCase(store, inventory.NewConsumptionEngine(nil, 0, nil), nil)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		Type: "AJUSTE", ItemKind: entity.ItemKindMaterial, ItemID: "M", Quantity: d("1"),
	})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	_, err = uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		Type: inventory.MovementTypeReceipt, ItemKind: entity.ItemKindMaterial, ItemID: "M", ZoneID: "PLANTA", Quantity: d("-1"),
	})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// LedgerService
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerService_Consultas(t *testing.T) {
	store := newStore()
	receive(t, store, entity.ItemKindMaterial, "M", "PLANTA", "10")
	receive(t, store, entity.ItemKindMaterial, "M", "PLANTA", "5")
	repos := store.Repositories()
	svc := inventory.NewLedgerService(repos.Ledger, repos.Zones, 0)
	ctx := context.Background()

	b, err := svc.Balance(ctx, entity.ItemKindMaterial, "M", "PLANTA")
	require.NoError(t, err)
	assert.True(t, d("15").Equal(b))

	lots, err := svc.LotsOldestFirst(ctx, entity.ItemKindMaterial, "M", "PLANTA")
	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.True(t, lots[0].Timestamp.Before(lots[1].Timestamp))

	_, err = svc.Balance(ctx, entity.ItemKindMaterial, "M", "NO-EXISTE")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = svc.Entries(ctx, "OTRO", "M", "PLANTA")
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Post
// ──────────────────────────────────────────────────────────────────────────────

// Una cantidad por debajo de la tolerancia no llega a la base: se guardaría como cero.
func TestPost_RechazaCantidadDespreciable(t *testing.T) {
	store := newStore()
	ctx := context.Background()
	post := func(qty string) error {
		return store.Run(ctx, func(uow repository.UnitOfWork) error {
			_, err := inventory.Post(ctx, uow.Ledger, inventory.PostInput{
				ItemKind: entity.ItemKindMaterial, ItemID: "M", ZoneID: "RECEPCION", Quantity: d(qty),
			})
			return err
		})
	}

	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(post("0")))
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(post("0.0000000005")))
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(post("-0.000000001")))
	require.NoError(t, post("0.000000002"))
	assert.True(t, d("0.000000002").Equal(balance(t, store, entity.ItemKindMaterial, "M", "RECEPCION")))
}
