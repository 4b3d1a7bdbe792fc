// Package postgres implements the unit-of-work port over GORM transactions.
//
// A unit of work scopes a business operation: the repositories it hands out
// share one transaction, so an order transition and the matching partner
// release commit or roll back together. Aggregates written through those
// repositories are tracked on the unit of work for post-commit processing.
//
// Typical handler usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.PartnerRepository().Update(ctx, p); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each Create call returns an isolated instance; concurrent operations must
// not share one. Keep transactions short, the version guards in the
// repositories turn lost updates into conflicts rather than blocking.
package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/partnerrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate records an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{} // A common Aggregate interface may replace this later.
}

// GormUnitOfWorkFactory builds unit-of-work instances over a shared GORM
// connection. One factory is created at composition time and every handler
// invocation asks it for a fresh, isolated instance.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory wraps the given database connection. All units of
// work created by the factory open their transactions on this connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a new unit of work with its own transaction state and its
// own aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork carries one business transaction. Repositories obtained
// from it write through the open transaction when there is one, or straight
// through the base connection when Begin was never called (the read path
// uses that mode).
//
// Not safe for concurrent use; each goroutine takes its own instance from
// the factory.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling Begin again on an instance that
// already holds an open transaction is a no-op, not a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit makes every change written through this unit of work permanent and
// closes the transaction. Returns gorm.ErrInvalidTransaction when Begin was
// never called or the transaction already finished.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards every change written through this unit of work and
// closes the transaction. Returns gorm.ErrInvalidTransaction when there is
// nothing to roll back, which makes `defer uow.Rollback(ctx)` after a
// successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction, or to the base connection when no transaction is open.
// Aggregates it writes are tracked on this unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// PartnerRepository returns a delivery-partner repository bound the same way
// as OrderRepository. The assignment and release flows rely on both
// repositories sharing one transaction.
func (uow *GormUnitOfWork) PartnerRepository() ports.PartnerRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return partnerrepo.NewGormPartnerRepository(db, uow)
}

// TrackAggregate records an aggregate written during this unit of work.
// Repositories call it from Add and Update; nothing consumes the list yet,
// it exists so post-commit processing (outbox, domain events) can be added
// without touching the repositories.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
