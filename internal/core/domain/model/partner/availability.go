package partner

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Availability represents whether a delivery partner can take a new order.
//
// A partner is Available when idle, Busy while carrying an order, and
// Inactive when taken off the roster (shift ended, account suspended).
// Busy is entered and left only through Take and Release so availability
// stays consistent with the current-order binding.
type Availability int

const (
	// AvailabilityUnknown represents an invalid or undefined availability.
	// This value (0) helps catch uninitialized Availability values.
	AvailabilityUnknown Availability = iota

	// Available means the partner is idle and can be assigned an order.
	Available

	// Busy means the partner is carrying an order right now.
	Busy

	// Inactive means the partner is off the roster and must not be assigned.
	Inactive
)

func getAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		AvailabilityUnknown: "Unknown",
		Available:           "Available",
		Busy:                "Busy",
		Inactive:            "Inactive",
	}
}

func getValidAvailabilityStrings() map[Availability]string {
	//nolint:exhaustive // AvailabilityUnknown is intentionally excluded as it's invalid
	return map[Availability]string{
		Available: "Available",
		Busy:      "Busy",
		Inactive:  "Inactive",
	}
}

// Validate checks if the Availability value is valid.
// AvailabilityUnknown (0) and any out-of-range values are invalid.
func (a Availability) Validate() error {
	if _, ok := getValidAvailabilityStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("availability is invalid",
			fmt.Errorf("%d is not a valid availability", a))
	}
	return nil
}

// String returns the human-readable name of the availability.
// It implements the fmt.Stringer interface and is safe to call on any
// Availability value, including invalid ones.
func (a Availability) String() string {
	if str, ok := getAvailabilityStrings()[a]; ok {
		return str
	}
	return "Unknown"
}

// AvailabilityFromString parses an availability from its string
// representation as used on the HTTP boundary and in persistence.
func AvailabilityFromString(str string) (Availability, error) {
	for availability, name := range getValidAvailabilityStrings() {
		if str == name {
			return availability, nil
		}
	}
	return AvailabilityUnknown, errs.NewValueIsInvalidErrorWithCause("availability is invalid",
		fmt.Errorf("%q is not a valid availability", str))
}
