// Package kernel holds the primitives shared by every aggregate in the
// domain model.
//
//   - UUID: identifier value object with constructed-vs-zero validation
//   - ActorRole: names the console (vendor or delivery partner) behind a
//     mutating call, so aggregates can gate transitions by who asks
//
// Both types are immutable values, safe to copy and compare, and validate
// themselves so aggregates never hold an identifier or role that was not
// built through a constructor.
package kernel
