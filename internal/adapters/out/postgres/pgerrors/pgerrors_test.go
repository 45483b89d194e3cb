package pgerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/adapters/out/postgres/pgerrors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"translated by gorm", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm error", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"raw pgx error", &pgconn.PgError{Code: "23505", ConstraintName: "idx_packing_sessions_active"}, true},
		{"other pgx error", &pgconn.PgError{Code: "23503"}, false},
		{"record not found", gorm.ErrRecordNotFound, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pgerrors.IsUniqueViolation(tt.err))
		})
	}
}
