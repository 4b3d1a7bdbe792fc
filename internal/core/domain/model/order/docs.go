// Package order provides domain entities and business logic for order
// fulfillment. It implements the Order aggregate root with lifecycle
// management and role-gated state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, partner binding, and lifecycle
//   - Item: A value object for a single order line with derived subtotal
//   - Status: A state machine that enforces valid, role-owned status transitions
//
// Key business rules:
//   - Orders must have a valid identifier, customer reference, address, and at least one item
//   - The order total is always derived from the items, never stored independently
//   - Vendor and delivery partner each own their edges of the status graph
//   - A delivery partner is bound iff the order is in a delivery sub-state
//   - Delivered and Cancelled are terminal; terminal orders are never mutated again
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
