package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrNotPreparing is returned when partner assignment is attempted while
	// the order is not in Preparing status.
	ErrNotPreparing = errors.New("order is not in Preparing status")
)

// StatusChange is one entry of an order's status history: the status the
// order entered and the time it entered it. The history backs the audit side
// table and the per-date grouping of the completed partition.
type StatusChange struct {
	Status Status
	At     time.Time
}

// Order represents a customer purchase moving through preparation and
// delivery. It is the aggregate root that owns the order lifecycle from
// creation to a terminal status.
//
// Order maintains these invariants:
//   - a valid unique identifier, customer reference, and delivery address
//   - at least one item; the total is always derived from the items
//   - status transitions follow the role-gated graph in Status
//   - a delivery partner is bound iff the status is a delivery sub-state;
//     the binding is cleared (not merely ignored) on Delivered/Cancelled
//   - the partner that carried the order to its terminal status is kept as
//     DeliveredBy, so completed orders stay attributable after the live
//     binding is cleared
//   - terminal orders carry the timestamp of their terminal transition
//
// The version counter supports optimistic concurrency control in the
// repository layer: a stale read-then-write loses the race with a conflict
// instead of silently clobbering a concurrent change.
type Order struct {
	id          kernel.UUID
	customerRef string
	address     string
	items       []Item
	status      Status
	partnerID   *kernel.UUID
	deliveredBy *kernel.UUID
	createdAt   time.Time
	completedAt *time.Time
	history     []StatusChange
	version     int

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Created status with validation. This is the
// entry point used by the intake boundary; all other mutations go through the
// aggregate's transition methods.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - customerRef: opaque reference to the ordering customer (required)
//   - address: delivery address (required)
//   - items: ordered lines (at least one, each constructed via NewItem)
//   - createdAt: placement time (must be non-zero)
//
// The status history starts with a single Created entry at createdAt, and
// the version counter starts at 1.
func NewOrder(id kernel.UUID, customerRef, address string, items []Item, createdAt time.Time) (*Order, error) {
	order := &Order{
		status:  Created,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerRef(customerRef),
		order.setAddress(address),
		order.setItems(items),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	order.history = []StatusChange{{Status: Created, At: createdAt}}
	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// including its status, partner binding, delivering partner record, history,
// and version. The restored
// aggregate is re-validated against the partner-binding invariant so corrupt
// rows cannot re-enter the domain.
func RestoreOrder(
	id kernel.UUID,
	customerRef, address string,
	items []Item,
	status Status,
	partnerID *kernel.UUID,
	deliveredBy *kernel.UUID,
	createdAt time.Time,
	completedAt *time.Time,
	history []StatusChange,
	version int,
) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerRef(customerRef),
		order.setAddress(address),
		order.setItems(items),
		order.setCreatedAt(createdAt),
		order.setStatus(status, partnerID, deliveredBy, completedAt),
		order.setVersion(version),
	); err != nil {
		return nil, err
	}

	order.history = append(order.history, history...)
	return order, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerRef returns the opaque reference to the ordering customer.
func (o *Order) CustomerRef() string {
	return o.customerRef
}

// Address returns the delivery address.
func (o *Order) Address() string {
	return o.address
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Total returns the derived order total: the sum of the item subtotals.
func (o *Order) Total() int {
	total := 0
	for _, item := range o.items {
		total += item.Subtotal()
	}
	return total
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Partner returns the assigned delivery partner's ID.
// It is non-nil if and only if the order is in a delivery sub-state.
func (o *Order) Partner() *kernel.UUID {
	return o.partnerID
}

// DeliveredBy returns the ID of the partner that carried the order to its
// terminal status, or nil when the order never had a partner. Unlike Partner
// it survives the terminal transition, keeping completed orders attributable
// on the partner console.
func (o *Order) DeliveredBy() *kernel.UUID {
	return o.deliveredBy
}

// CreatedAt returns the placement time of the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// CompletedAt returns the time of the terminal transition, or nil while the
// order is still in flight.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// History returns a copy of the status history in chronological order.
func (o *Order) History() []StatusChange {
	history := make([]StatusChange, len(o.history))
	copy(history, o.history)
	return history
}

// Version returns the optimistic concurrency version of the aggregate.
func (o *Order) Version() int {
	return o.version
}

// AdvanceVersion moves the aggregate to the version the repository just
// wrote. Called by the repository after a successful guarded update only, so
// the version echoed back to the client matches the stored row and can be
// replayed on the next mutation without a spurious conflict.
func (o *Order) AdvanceVersion() {
	o.version++
}

// TransitionTo advances the order to the requested status on behalf of the
// given actor, at the given time.
//
// The transition is validated against the role-gated lifecycle graph.
// Requesting the status the order already holds succeeds as a no-op and
// returns changed=false, absorbing duplicate requests from the polling
// transport. Transitioning into Assigned is rejected here because binding a
// delivery partner is a compound operation owned by the assignment
// coordinator (see AssignPartner).
//
// On a terminal transition the partner binding is cleared and the completion
// timestamp recorded; the partner is remembered as DeliveredBy so the order
// stays attributable. Freeing the partner itself is coupled into the same
// transaction by the caller.
func (o *Order) TransitionTo(to Status, actor kernel.ActorRole, at time.Time) (changed bool, err error) {
	if err := o.status.CanTransition(to, actor); err != nil {
		return false, err
	}

	if to == o.status {
		return false, nil
	}

	if to == Assigned {
		return false, fmt.Errorf("%w: assignment requires a delivery partner", ErrInvalidTransition)
	}

	o.status = to
	o.history = append(o.history, StatusChange{Status: to, At: at})

	if to.IsTerminal() {
		o.deliveredBy = o.partnerID
		o.partnerID = nil
		completedAt := at
		o.completedAt = &completedAt
	}

	return true, nil
}

// AssignPartner binds a delivery partner to the order and advances it from
// Preparing to Assigned. Called by the assignment coordinator only; the
// coordinator is responsible for flipping the partner's availability within
// the same transaction.
func (o *Order) AssignPartner(partnerID kernel.UUID, at time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	if o.status != Preparing {
		return fmt.Errorf("%w: current status is %s", ErrNotPreparing, o.status)
	}

	o.status = Assigned
	o.partnerID = &partnerID
	o.history = append(o.history, StatusChange{Status: Assigned, At: at})
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerRef(customerRef string) error {
	if customerRef == "" {
		return errs.NewValueIsRequiredError("customer reference")
	}
	o.customerRef = customerRef
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

// setStatus restores the status, the live partner binding, the delivering
// partner record, and the completion time with consistency checks. Used by
// RestoreOrder only.
func (o *Order) setStatus(status Status, partnerID, deliveredBy *kernel.UUID, completedAt *time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHavePartner(partnerID != nil); err != nil {
		return err
	}
	if status.IsTerminal() && completedAt == nil {
		return errs.NewValueIsRequiredError("completedAt")
	}
	if !status.IsTerminal() && completedAt != nil {
		return errs.NewValueIsInvalidErrorWithCause("completedAt is invalid",
			fmt.Errorf("%s order cannot have a completion time", status))
	}
	if deliveredBy != nil && !status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("deliveredBy is invalid",
			fmt.Errorf("%s order cannot have a delivering partner record", status))
	}
	if partnerID != nil {
		if err := partnerID.Validate(); err != nil {
			return err
		}
	}
	if deliveredBy != nil {
		if err := deliveredBy.Validate(); err != nil {
			return err
		}
	}

	o.status = status
	o.partnerID = partnerID
	o.deliveredBy = deliveredBy
	o.completedAt = completedAt
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 1 {
		return errs.NewValueIsInvalidErrorWithCause("version is invalid",
			fmt.Errorf("%d is not greater than 0", version))
	}
	o.version = version
	return nil
}
