package sessionrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/adapters/out/postgres/pgerrors"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPackingSessionRepository implements PackingSessionRepository using GORM.
// The partial unique index on order_id is what rejects a second active
// session, so two transactions racing to open the same order cannot both commit.
type GormPackingSessionRepository struct {
	db *gorm.DB
}

func NewGormPackingSessionRepository(db *gorm.DB) *GormPackingSessionRepository {
	return &GormPackingSessionRepository{db: db}
}

func (r *GormPackingSessionRepository) Add(ctx context.Context, session *packing.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	dto := fromDomain(session)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause("active packing session of order", session.OrderID().String(), err)
		}
		return err
	}
	return nil
}

func (r *GormPackingSessionRepository) Get(ctx context.Context, id kernel.UUID) (*packing.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackingSessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("packing session", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByOrder returns nil, nil when the order has no session in progress.
func (r *GormPackingSessionRepository) GetActiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*packing.Session, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PackingSessionDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status = ?", orderID.Bytes(), packing.InProgress.String()).
		Limit(1).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}

	return toDomain(dtos[0])
}

// UpdateIfStatus writes the session provided the stored row still has the
// expected status and the version the session was read at. Under READ COMMITTED
// a writer blocked behind a concurrent update re-checks the version and matches
// no row, so the later scan fails instead of overwriting the earlier one.
func (r *GormPackingSessionRepository) UpdateIfStatus(
	ctx context.Context,
	session *packing.Session,
	expected packing.Status,
) error {
	if err := session.Validate(); err != nil {
		return err
	}

	dto := fromDomain(session)
	dto.Version = session.Version() + 1
	result := r.db.WithContext(ctx).
		Model(&PackingSessionDTO{}).
		Where("id = ? AND status = ? AND version = ?", dto.ID, expected.String(), session.Version()).
		Select("*").
		Omit("id", "order_id", "started_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewPreconditionFailedError("packing session", session.ID().String(), expected.String())
	}
	session.SetVersion(dto.Version)
	return nil
}

// ListActiveStartedBefore returns the sessions in progress that started before
// cutoff, oldest first.
func (r *GormPackingSessionRepository) ListActiveStartedBefore(
	ctx context.Context,
	cutoff time.Time,
) ([]*packing.Session, error) {
	var dtos []PackingSessionDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND started_at < ?", packing.InProgress.String(), cutoff).
		Order("started_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]*packing.Session, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
