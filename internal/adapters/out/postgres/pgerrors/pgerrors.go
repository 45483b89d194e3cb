// Package pgerrors classifies driver errors shared by the gorm repositories.
package pgerrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UniqueViolation is the SQLSTATE of unique_violation.
const UniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint failure, either
// as translated by gorm (gorm.Config.TranslateError) or as a raw pgx error.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation
}
