// Package partner contains the DeliveryPartner aggregate of the fulfillment
// domain.
//
// A delivery partner is a courier on the vendor's roster. The aggregate owns
// the partner's availability and the binding to the order being carried, and
// enforces the exactly-one-active-order rule: a partner is Busy if and only
// if exactly one order is bound, and a second assignment fails instead of
// overwriting the first.
//
// Key components:
//   - DeliveryPartner: aggregate root with Take, Release, Deactivate, Activate
//   - Availability: Available, Busy, Inactive roster states
//
// Business rules:
//   - only an Available partner with no bound order can take a new one
//   - Release is idempotent so terminal order transitions can be retried
//   - an Inactive partner is never offered orders
package partner
