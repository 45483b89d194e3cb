// Package badgerstore implements the record store ports on an embedded Badger
// database for single-node deployments.
//
// Layout:
//
//	order/<order id>                -> JSON order record
//	session/<session id>            -> JSON packing session record
//	session_active/<order id>       -> id of the order's in_progress session
//
// The session_active key is the uniqueness primitive for active sessions. Badger
// transactions are optimistic: two transactions that read the same key and both
// write it cannot both commit, and the loser's commit fails with
// badger.ErrConflict, which the store reports as a failed precondition.
package badgerstore

import (
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/pkg/errs"

	"github.com/dgraph-io/badger/v4"
)

const (
	orderPrefix         = "order/"
	sessionPrefix       = "session/"
	activeSessionPrefix = "session_active/"
)

// Open opens the database at path. An empty path opens an in-memory database.
func Open(path string, logger *slog.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	if logger != nil {
		opts = opts.WithLogger(slogLogger{logger: logger.With("component", "badger")})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return db, nil
}

// translateCommit maps optimistic transaction conflicts to PreconditionFailed.
func translateCommit(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, badger.ErrConflict) {
		return errs.NewPreconditionFailedErrorWithCause("transaction", "commit", "based on current data", err)
	}
	return err
}

// slogLogger routes badger's own logging into slog. Badger is chatty at info
// level, so info is demoted to debug.
type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l slogLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l slogLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l slogLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
