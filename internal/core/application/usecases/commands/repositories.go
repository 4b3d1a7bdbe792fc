// Package commands holds the write side of the application layer. Every
// operation is a validated command struct plus a handler that opens a unit
// of work, mutates the aggregates, and commits.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Each handler declares the narrowest unit-of-work flavor it needs, so its
// tests mock only the repositories it actually touches.
type (
	// TxManager is the transaction lifecycle shared by every flavor.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory exposes the order repository of an open transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PartnerRepoFactory exposes the partner repository of an open transaction.
	PartnerRepoFactory interface {
		PartnerRepository() ports.PartnerRepository
	}

	// OrderUoW is the flavor for commands that touch orders only.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order-only unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PartnerUoW is the flavor for commands that touch partners only.
	PartnerUoW interface {
		TxManager
		PartnerRepoFactory
	}

	// PartnerUoWFactory creates partner-only unit of work instances.
	PartnerUoWFactory interface {
		Create() PartnerUoW
	}

	// UoW spans both aggregates. The two commands that need it are partner
	// assignment and the release coupled to a terminal transition, where an
	// order write and a partner write must commit together.
	UoW interface {
		TxManager
		OrderRepoFactory
		PartnerRepoFactory
	}

	// UoWFactory creates cross-aggregate unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
