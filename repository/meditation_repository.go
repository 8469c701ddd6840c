package repository

import (
	"context"
	"fmt"

	"meditation-backend/model"

	"gorm.io/gorm"
)

// MeditationRepository defines the catalog data operations.
type MeditationRepository interface {
	ListPublished(ctx context.Context) ([]*model.Meditation, error)
	GetPublished(ctx context.Context, id int64) (*model.Meditation, error)
	GetByID(ctx context.Context, id int64) (*model.Meditation, error)
	Create(ctx context.Context, m *model.Meditation) error
	Save(ctx context.Context, m *model.Meditation) error
	// Delete removes the track and every session that references it, atomically.
	Delete(ctx context.Context, id int64) error
}

type gormMeditationRepository struct {
	db *gorm.DB
}

func NewMeditationRepository(db *gorm.DB) MeditationRepository {
	return &gormMeditationRepository{db: db}
}

func (r *gormMeditationRepository) ListPublished(ctx context.Context) ([]*model.Meditation, error) {
	meditations := make([]*model.Meditation, 0)
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("id").
		Find(&meditations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list published meditations: %w", err)
	}
	return meditations, nil
}

func (r *gormMeditationRepository) GetPublished(ctx context.Context, id int64) (*model.Meditation, error) {
	var m model.Meditation
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_published = ?", id, true).
		First(&m).Error
	if err != nil {
		return nil, notFound(err, "published meditation %d", id)
	}
	return &m, nil
}

func (r *gormMeditationRepository) GetByID(ctx context.Context, id int64) (*model.Meditation, error) {
	var m model.Meditation
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, "meditation %d", id)
	}
	return &m, nil
}

func (r *gormMeditationRepository) Create(ctx context.Context, m *model.Meditation) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create meditation %q: %w", m.Title, err)
	}
	return nil
}

// Save writes every column of m, including zero values and a NULL audio_url.
func (r *gormMeditationRepository) Save(ctx context.Context, m *model.Meditation) error {
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return fmt.Errorf("failed to save meditation %d: %w", m.ID, err)
	}
	return nil
}

func (r *gormMeditationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Sessions go first so the track row is never referenced when it is removed.
		if err := tx.Where("meditation_id = ?", id).Delete(&model.MeditationSession{}).Error; err != nil {
			return fmt.Errorf("failed to delete sessions of meditation %d: %w", id, err)
		}
		res := tx.Delete(&model.Meditation{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete meditation %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
