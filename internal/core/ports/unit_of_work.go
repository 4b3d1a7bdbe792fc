package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command, keeping
// concurrent operations isolated from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a single business operation.
// Callers drive the lifecycle explicitly: Begin, repository writes, then
// Commit or Rollback.
//
// Operations that touch both aggregates, partner assignment and the release
// coupled to a terminal transition, run both repository writes inside one
// unit of work so the pairing commits or rolls back as a whole.
type UnitOfWork interface {
	// Begin opens the transaction.
	Begin(ctx context.Context) error

	// Commit finalizes the transaction. Errors when none is open.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. Errors when none is open.
	Rollback(ctx context.Context) error

	// OrderRepository returns an order repository writing through the
	// transaction opened by Begin.
	OrderRepository() OrderRepository

	// PartnerRepository returns a partner repository writing through the
	// transaction opened by Begin.
	PartnerRepository() PartnerRepository
}
