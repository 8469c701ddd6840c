package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meditation-backend/model"

	"gorm.io/gorm"
)

// SessionRepository defines the listening session ledger operations.
type SessionRepository interface {
	Create(ctx context.Context, s *model.MeditationSession) error
	GetByID(ctx context.Context, id int64) (*model.MeditationSession, error)
	// MarkCompleted stamps an open session. It reports false when no open
	// session with that id exists, leaving the row untouched.
	MarkCompleted(ctx context.Context, id int64, secondsListened int, at time.Time) (bool, error)
	SumSecondsByDevice(ctx context.Context, deviceID int64) (int64, error)
	CountCompletedSince(ctx context.Context, deviceID int64, since time.Time) (int64, error)
}

type gormSessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &gormSessionRepository{db: db}
}

// Create inserts s. A meditation id with no track row yields ErrNotFound.
func (r *gormSessionRepository) Create(ctx context.Context, s *model.MeditationSession) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to create session for meditation %d: %w", s.MeditationID, err)
	}
	return nil
}

func (r *gormSessionRepository) GetByID(ctx context.Context, id int64) (*model.MeditationSession, error) {
	var s model.MeditationSession
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFound(err, "session %d", id)
	}
	return &s, nil
}

func (r *gormSessionRepository) MarkCompleted(ctx context.Context, id int64, secondsListened int, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.MeditationSession{}).
		Where("id = ? AND completed_at IS NULL", id).
		Updates(map[string]interface{}{
			"seconds_listened": secondsListened,
			"completed_at":     at.UTC(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to complete session %d: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

// SumSecondsByDevice returns the seconds listened across all sessions of a device, 0 if none.
func (r *gormSessionRepository) SumSecondsByDevice(ctx context.Context, deviceID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.MeditationSession{}).
		Where("device_id = ?", deviceID).
		Select("COALESCE(SUM(seconds_listened), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum seconds for device %d: %w", deviceID, err)
	}
	return total, nil
}

// CountCompletedSince counts sessions of a device completed at or after since.
func (r *gormSessionRepository) CountCompletedSince(ctx context.Context, deviceID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.MeditationSession{}).
		Where("device_id = ? AND completed_at >= ?", deviceID, since.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count completed sessions for device %d: %w", deviceID, err)
	}
	return count, nil
}
