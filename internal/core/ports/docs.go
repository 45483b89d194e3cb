// Package ports defines the contracts between the fulfillment core and its
// infrastructure: record stores, the unit of work that spans them, and the
// publisher of order status events.
package ports
