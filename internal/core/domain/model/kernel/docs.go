// Package kernel provides core domain primitives shared by the order and packing
// models of the fulfillment service.
//
// The package includes:
//   - UUID: A value object for entity identifiers with validation and comparison
//   - Money: A non-negative amount in currency minor units
//   - Clock: The time source used to stamp fulfillment transitions
//
// These primitives are immutable and safe for concurrent use.
package kernel
