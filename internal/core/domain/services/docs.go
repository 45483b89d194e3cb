// Package services provides domain services of the fulfillment system that work
// across many orders rather than inside one aggregate.
//
// The package includes:
//   - StatisticsAggregator: Folds order facts into the dashboard Snapshot
package services
