// Package services contains stateless domain services of the fulfillment
// core: logic that spans aggregates or projects over the whole order set and
// therefore does not belong to any single aggregate.
//
// Key components:
//   - AssignmentService: couples an order and a delivery partner into one
//     assignment and frees the partner on terminal transitions
//   - ViewMaterializer: partitions the order set into the preparation,
//     active, and completed console views
//   - StatsAggregator: folds the order set into the headline counters
//
// The materializer and aggregator are pure functions of (orders, clock,
// filters); the refresh job relies on that to rebuild snapshots from
// scratch. AssignmentService mutates aggregates but persists nothing; the
// application layer wraps it in a transaction.
package services
