// Package sessionrepo persists packing sessions with GORM.
package sessionrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"

	"github.com/google/uuid"
)

// ActiveIndexName is the partial unique index that allows a single in_progress
// session per order.
const ActiveIndexName = "idx_packing_sessions_active"

// PackingSessionDTO represents the database structure of a packing session.
type PackingSessionDTO struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID                uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_packing_sessions_active,where:status = 'in_progress'"`
	AdminEmail             string          `gorm:"not null"`
	ScanProgress           ScanProgressDTO `gorm:"type:jsonb;not null"`
	Status                 string          `gorm:"type:varchar(16);not null"`
	StartedAt              time.Time       `gorm:"not null"`
	CompletedAt            *time.Time
	PackingDurationMinutes *int
	CancelledAt            *time.Time
	CancelReason           *string
	Version                int64 `gorm:"not null;default:0"`
}

func (PackingSessionDTO) TableName() string {
	return "packing_sessions"
}

// ScanProgressDTO is stored as a JSON object of product id to scanned count.
type ScanProgressDTO map[string]int

func (p ScanProgressDTO) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(map[string]int(p))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (p *ScanProgressDTO) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*p = ScanProgressDTO{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into scan progress", src)
	}

	progress := map[string]int{}
	if err := json.Unmarshal(raw, &progress); err != nil {
		return err
	}
	*p = progress
	return nil
}

func fromDomain(s *packing.Session) PackingSessionDTO {
	dto := PackingSessionDTO{
		ID:                     s.ID().Bytes(),
		OrderID:                s.OrderID().Bytes(),
		AdminEmail:             s.AdminEmail(),
		ScanProgress:           ScanProgressDTO(s.Progress()),
		Status:                 s.Status().String(),
		StartedAt:              s.StartedAt(),
		CompletedAt:            s.CompletedAt(),
		PackingDurationMinutes: s.DurationMinutes(),
		CancelledAt:            s.CancelledAt(),
		Version:                s.Version(),
	}
	if reason := s.CancelReason(); reason != "" {
		dto.CancelReason = &reason
	}
	return dto
}

func toDomain(dto PackingSessionDTO) (*packing.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	status, err := packing.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var reason string
	if dto.CancelReason != nil {
		reason = *dto.CancelReason
	}

	return packing.RestoreSession(packing.RestoreSessionParams{
		ID:              id,
		OrderID:         orderID,
		AdminEmail:      dto.AdminEmail,
		Progress:        packing.ScanProgress(dto.ScanProgress),
		Status:          status,
		StartedAt:       dto.StartedAt,
		CompletedAt:     dto.CompletedAt,
		DurationMinutes: dto.PackingDurationMinutes,
		CancelledAt:     dto.CancelledAt,
		CancelReason:    reason,
		Version:         dto.Version,
	})
}
