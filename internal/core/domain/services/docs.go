// Package services provides domain services that work across aggregates.
//
// The package includes:
//   - OrderPricer: computes order totals from item snapshots, a coupon and the delivery fee
//   - SlotPlanner: lists the delivery windows still bookable today and tomorrow
package services
