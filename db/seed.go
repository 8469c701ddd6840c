package db

import (
	"context"
	"errors"
	"fmt"

	"meditation-backend/config"
	"meditation-backend/core/auth"
	"meditation-backend/logger"
	"meditation-backend/model"

	"gorm.io/gorm"
)

func demoMeditations() []model.Meditation {
	calm := "https://example.com/calm.mp3"
	focus := "https://example.com/focus.mp3"
	return []model.Meditation{
		{Title: "5 min Calm Reset", Category: "stress", DurationSec: 300, Level: "beginner", AudioURL: &calm, IsPublished: true},
		{Title: "10 min Deep Focus", Category: "focus", DurationSec: 600, Level: "beginner", AudioURL: &focus, IsPublished: true},
	}
}

// Seed inserts demo tracks into an empty catalog and creates the bootstrap admin
// when ADMIN_EMAIL/ADMIN_PASSWORD are configured. It is safe to run repeatedly.
func Seed(ctx context.Context, gdb *gorm.DB, cfg *config.Config) error {
	gdb = gdb.WithContext(ctx)

	var count int64
	if err := gdb.Model(&model.Meditation{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count meditations: %w", err)
	}
	if count == 0 {
		demo := demoMeditations()
		if err := gdb.Create(&demo).Error; err != nil {
			return fmt.Errorf("failed to seed meditations: %w", err)
		}
		logger.Info("Seeded demo meditations", logger.Int("count", len(demo)))
	}

	return seedAdmin(gdb, cfg)
}

func seedAdmin(gdb *gorm.DB, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	// Any existing admin, bootstrapped or not, means there is nothing to do.
	var admins int64
	if err := gdb.Model(&model.User{}).Where("is_admin = ?", true).Count(&admins).Error; err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if admins > 0 {
		return nil
	}

	var existing model.User
	err := gdb.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	switch {
	case err == nil:
		if !existing.IsAdmin {
			logger.Warn("Bootstrap admin email belongs to a non-admin user; leaving it unchanged",
				logger.String("email", cfg.AdminEmail))
		}
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := model.User{Email: cfg.AdminEmail, PasswordHash: hash, IsAdmin: true}
	if err := gdb.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	logger.Info("Bootstrap admin created", logger.String("email", admin.Email))
	return nil
}
