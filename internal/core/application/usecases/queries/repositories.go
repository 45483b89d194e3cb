// Package queries contains read-only operations. Queries never begin a
// transaction: the repositories of an idle unit of work read straight from the
// store.
package queries

import (
	"fulfillment/internal/core/ports"
)

// ReaderFactory hands out repositories for a single read.
type ReaderFactory interface {
	Create() ports.UnitOfWork
}
