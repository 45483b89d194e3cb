// Package packing models packing sessions: an admin scanning the items of a paid
// order into a box.
//
// A session starts InProgress with empty scan progress, collects per-product scan
// counts, and ends either Completed (with a duration in whole minutes) or
// Cancelled. The order side of each transition lives in the order package; the
// command handlers change both records in one unit of work.
package packing
