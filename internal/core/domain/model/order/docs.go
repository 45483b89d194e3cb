// Package order provides the Order aggregate of the fulfillment service and the
// status machine that governs its lifecycle.
//
// The package includes:
//   - Order: The aggregate root holding customer, address, line items and totals
//   - Status: The closed set of fulfillment statuses and the legal transitions between them
//   - StatusChanged: The domain event raised by every successful transition
//
// Key business rules:
//   - Orders are created Pending with at least one line item and unique product ids
//   - Status follows Pending -> Paid -> InPacking -> Packed -> Shipped -> Delivered
//   - Pending and Paid orders may be cancelled; Delivered and Cancelled are terminal
//   - Paid -> InPacking and back, and InPacking -> Packed, are reserved for packing sessions
//   - Shipping requires a carrier and a tracking id
//   - Fulfillment timestamps never move backwards
package order
