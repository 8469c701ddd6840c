package model

import (
	"errors"
	"fmt"
)

// Meditation is a guided meditation track in the catalog.
type Meditation struct {
	ID          int64   `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Category    string  `gorm:"size:100;not null;index" json:"category"`
	DurationSec int     `gorm:"not null" json:"duration_sec"`
	Level       string  `gorm:"size:50;not null" json:"level"`
	AudioURL    *string `gorm:"size:1024" json:"audio_url"`
	IsPublished bool    `gorm:"not null;index" json:"is_published"`
}

func (Meditation) TableName() string {
	return "meditations"
}

// MeditationCreate is the admin payload for a new track. Presence and type are
// checked; values are not range-validated.
type MeditationCreate struct {
	Title       string  `json:"title" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	DurationSec *int    `json:"duration_sec" validate:"required"`
	Level       string  `json:"level" validate:"required"`
	AudioURL    *string `json:"audio_url"`
}

// MeditationUpdate carries a partial update. Fields absent from the request body
// stay unset and are left untouched.
type MeditationUpdate struct {
	Title       Optional[string] `json:"title"`
	Category    Optional[string] `json:"category"`
	DurationSec Optional[int]    `json:"duration_sec"`
	Level       Optional[string] `json:"level"`
	AudioURL    Optional[string] `json:"audio_url"`
	IsPublished Optional[bool]   `json:"is_published"`
}

// ErrNullField is returned when an update sets a non-nullable column to null.
var ErrNullField = errors.New("field may not be null")

// ApplyTo merges the present fields of u into m. audio_url is the only nullable
// column; null on any other field is rejected and m is left unchanged.
func (u MeditationUpdate) ApplyTo(m *Meditation) error {
	required := []struct {
		name string
		null bool
	}{
		{"title", u.Title.isNull()},
		{"category", u.Category.isNull()},
		{"duration_sec", u.DurationSec.isNull()},
		{"level", u.Level.isNull()},
		{"is_published", u.IsPublished.isNull()},
	}
	for _, f := range required {
		if f.null {
			return fmt.Errorf("%s: %w", f.name, ErrNullField)
		}
	}

	if u.Title.Set {
		m.Title = u.Title.Value
	}
	if u.Category.Set {
		m.Category = u.Category.Value
	}
	if u.DurationSec.Set {
		m.DurationSec = u.DurationSec.Value
	}
	if u.Level.Set {
		m.Level = u.Level.Value
	}
	if u.AudioURL.Set {
		m.AudioURL = u.AudioURL.Ptr()
	}
	if u.IsPublished.Set {
		m.IsPublished = u.IsPublished.Value
	}
	return nil
}

// Empty reports whether no field was present in the request.
func (u MeditationUpdate) Empty() bool {
	return !u.Title.Set && !u.Category.Set && !u.DurationSec.Set &&
		!u.Level.Set && !u.AudioURL.Set && !u.IsPublished.Set
}
