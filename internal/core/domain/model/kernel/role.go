package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ActorRole identifies which console issued a mutating call. Every status
// transition in the order lifecycle is owned by exactly one role, and the
// domain rejects transitions requested by the wrong actor.
//
// ActorRole replaces the implicit trust in "whichever console happened to
// invoke the function": the role travels as an explicit tagged value with
// each mutating operation.
type ActorRole int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized ActorRole values.
	RoleUnknown ActorRole = iota

	// RoleVendor is the vendor operator console. Vendors confirm orders,
	// trigger partner assignment, and cancel pre-assignment orders.
	RoleVendor

	// RoleDeliveryPartner is the delivery partner console. Partners advance
	// an assigned order through its delivery sub-states.
	RoleDeliveryPartner
)

func getRoleStrings() map[ActorRole]string {
	return map[ActorRole]string{
		RoleUnknown:         "Unknown",
		RoleVendor:          "Vendor",
		RoleDeliveryPartner: "DeliveryPartner",
	}
}

func getValidRoleStrings() map[ActorRole]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[ActorRole]string{
		RoleVendor:          "Vendor",
		RoleDeliveryPartner: "DeliveryPartner",
	}
}

// Validate checks if the ActorRole value is valid.
// Valid roles are RoleVendor and RoleDeliveryPartner; RoleUnknown and any
// other values are invalid.
func (r ActorRole) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("actor role is invalid",
			fmt.Errorf("%d is not a valid actor role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// It implements the fmt.Stringer interface and is safe to call on any
// ActorRole value, including invalid ones.
func (r ActorRole) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// ActorRoleFromString parses a role from its string representation as used
// on the HTTP boundary. Parsing is exact; the two accepted values are
// "Vendor" and "DeliveryPartner".
func ActorRoleFromString(s string) (ActorRole, error) {
	for role, str := range getValidRoleStrings() {
		if s == str {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("actor role is invalid",
		fmt.Errorf("%q is not a valid actor role", s))
}
