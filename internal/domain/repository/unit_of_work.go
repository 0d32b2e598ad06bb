package repository

import "context"

// UnitOfWork repositorios atados a una misma transacción.
type UnitOfWork struct {
	Zones        ZoneRepository
	Ledger       StockLedgerRepository
	Orders       OrderRepository
	Deliveries   DeliveryRepository
	Compositions CompositionRepository
	Prices       PriceRepository
	Catalog      CatalogRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback si no.
// Nada parcial persiste cuando fn falla.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow UnitOfWork) error) error
}
