package partner

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for delivery partner operations.
var (
	// ErrDeliveryPartnerIsNotConstructed is returned when a DeliveryPartner
	// instance was not created through the NewDeliveryPartner or
	// RestoreDeliveryPartner factory methods.
	ErrDeliveryPartnerIsNotConstructed = errors.New("DeliveryPartner must be created via NewDeliveryPartner constructor")
	// ErrNotAvailable is returned when an order is offered to a partner who
	// is not in Available status.
	ErrNotAvailable = errors.New("delivery partner is not available")
	// ErrAlreadyAssigned is returned when an order is offered to a partner
	// who is already carrying one.
	ErrAlreadyAssigned = errors.New("delivery partner already carries an order")
)

// DeliveryPartner represents a courier on the vendor's roster. It is the
// aggregate root that owns the partner's availability and the binding to the
// order being carried.
//
// DeliveryPartner maintains these invariants:
//   - a valid unique identifier, name, and contact
//   - the partner is Busy if and only if a current order is bound
//   - a partner carries at most one order at a time
//
// Take and Release are the only mutations of the availability/order pair, so
// the exactly-one-active-order rule cannot be bypassed. The version counter
// supports optimistic concurrency control in the repository layer, which is
// what makes concurrent assignment of the same partner lose cleanly.
type DeliveryPartner struct {
	id             kernel.UUID
	name           string
	contact        string
	vehicleInfo    string
	availability   Availability
	currentOrderID *kernel.UUID
	version        int

	guard guard.ConstructorGuard
}

// NewDeliveryPartner registers a new partner on the roster in Available
// status with no order bound.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: partner's display name (required)
//   - contact: phone or other contact handle (required)
//   - vehicleInfo: free-form vehicle description (optional)
func NewDeliveryPartner(id kernel.UUID, name, contact, vehicleInfo string) (*DeliveryPartner, error) {
	partner := &DeliveryPartner{
		availability: Available,
		version:      1,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		partner.setID(id),
		partner.setName(name),
		partner.setContact(contact),
	); err != nil {
		return nil, err
	}

	partner.vehicleInfo = vehicleInfo
	return partner, nil
}

// RestoreDeliveryPartner reconstructs a DeliveryPartner aggregate from
// persistent storage. The restored aggregate is re-validated against the
// Busy-iff-bound invariant so corrupt rows cannot re-enter the domain.
func RestoreDeliveryPartner(
	id kernel.UUID,
	name, contact, vehicleInfo string,
	availability Availability,
	currentOrderID *kernel.UUID,
	version int,
) (*DeliveryPartner, error) {
	partner := &DeliveryPartner{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		partner.setID(id),
		partner.setName(name),
		partner.setContact(contact),
		partner.setAvailability(availability, currentOrderID),
		partner.setVersion(version),
	); err != nil {
		return nil, err
	}

	partner.vehicleInfo = vehicleInfo
	return partner, nil
}

// Validate ensures the DeliveryPartner instance was properly constructed
// through NewDeliveryPartner or RestoreDeliveryPartner.
func (p *DeliveryPartner) Validate() error {
	if p == nil {
		return ErrDeliveryPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrDeliveryPartnerIsNotConstructed)
}

// IsEqual compares two partners by their unique identifiers.
func (p *DeliveryPartner) IsEqual(other *DeliveryPartner) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the partner's unique identifier.
func (p *DeliveryPartner) ID() kernel.UUID {
	return p.id
}

// Name returns the partner's display name.
func (p *DeliveryPartner) Name() string {
	return p.name
}

// Contact returns the partner's contact handle.
func (p *DeliveryPartner) Contact() string {
	return p.contact
}

// VehicleInfo returns the free-form vehicle description. May be empty.
func (p *DeliveryPartner) VehicleInfo() string {
	return p.vehicleInfo
}

// Availability returns the partner's current availability.
func (p *DeliveryPartner) Availability() Availability {
	return p.availability
}

// CurrentOrder returns the ID of the order the partner is carrying.
// It is non-nil if and only if the partner is Busy.
func (p *DeliveryPartner) CurrentOrder() *kernel.UUID {
	return p.currentOrderID
}

// Version returns the optimistic concurrency version of the aggregate.
func (p *DeliveryPartner) Version() int {
	return p.version
}

// AdvanceVersion moves the aggregate to the version the repository just
// wrote. Called by the repository after a successful guarded update only, so
// the version echoed back to the client matches the stored row and can be
// replayed on the next mutation without a spurious conflict.
func (p *DeliveryPartner) AdvanceVersion() {
	p.version++
}

// IsIdle reports whether the partner can accept a new order.
func (p *DeliveryPartner) IsIdle() bool {
	return p.availability == Available && p.currentOrderID == nil
}

// Take binds the given order to the partner and flips availability to Busy.
//
// It fails with ErrAlreadyAssigned when the partner already carries an order
// and with ErrNotAvailable when the partner is Inactive. The check order
// makes the already-carrying case win when both apply, which gives the
// caller the more specific conflict to report.
func (p *DeliveryPartner) Take(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	if p.currentOrderID != nil {
		return fmt.Errorf("%w: order %s", ErrAlreadyAssigned, p.currentOrderID)
	}
	if p.availability != Available {
		return fmt.Errorf("%w: availability is %s", ErrNotAvailable, p.availability)
	}

	p.availability = Busy
	p.currentOrderID = &orderID
	return nil
}

// Release frees the partner from the order being carried and flips
// availability back to Available. Releasing an idle partner is a no-op,
// which keeps terminal order transitions idempotent end to end.
func (p *DeliveryPartner) Release() {
	if p.currentOrderID == nil {
		return
	}
	p.currentOrderID = nil
	p.availability = Available
}

// Deactivate takes the partner off the roster. Only an idle partner can be
// deactivated; a Busy partner must finish the delivery first.
func (p *DeliveryPartner) Deactivate() error {
	if p.currentOrderID != nil {
		return fmt.Errorf("%w: order %s", ErrAlreadyAssigned, p.currentOrderID)
	}
	p.availability = Inactive
	return nil
}

// Activate puts an inactive partner back on the roster.
func (p *DeliveryPartner) Activate() {
	if p.availability == Inactive {
		p.availability = Available
	}
}

func (p *DeliveryPartner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *DeliveryPartner) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *DeliveryPartner) setContact(contact string) error {
	if contact == "" {
		return errs.NewValueIsRequiredError("contact")
	}
	p.contact = contact
	return nil
}

// setAvailability restores the availability/order pair with consistency
// checks. Used by RestoreDeliveryPartner only.
func (p *DeliveryPartner) setAvailability(availability Availability, currentOrderID *kernel.UUID) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	if availability == Busy && currentOrderID == nil {
		return errs.NewValueIsInvalidErrorWithCause("availability is invalid",
			fmt.Errorf("busy partner must carry an order"))
	}
	if availability != Busy && currentOrderID != nil {
		return errs.NewValueIsInvalidErrorWithCause("availability is invalid",
			fmt.Errorf("%s partner cannot carry an order", availability))
	}
	if currentOrderID != nil {
		if err := currentOrderID.Validate(); err != nil {
			return err
		}
	}

	p.availability = availability
	p.currentOrderID = currentOrderID
	return nil
}

func (p *DeliveryPartner) setVersion(version int) error {
	if version < 1 {
		return errs.NewValueIsInvalidErrorWithCause("version is invalid",
			fmt.Errorf("%d is not greater than 0", version))
	}
	p.version = version
	return nil
}
