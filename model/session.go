package model

import "time"

// MeditationSession is one playback attempt of a track by a device. The foreign
// key restricts track deletion, so sessions must be removed first.
type MeditationSession struct {
	ID              int64       `gorm:"primaryKey" json:"id"`
	MeditationID    int64       `gorm:"not null;index" json:"meditation_id"`
	Meditation      *Meditation `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	DeviceID        int64       `gorm:"not null;index" json:"device_id"`
	StartedAt       time.Time   `gorm:"not null" json:"started_at"`
	CompletedAt     *time.Time  `gorm:"index" json:"completed_at"`
	SecondsListened int         `gorm:"not null;default:0" json:"seconds_listened"`
}

func (MeditationSession) TableName() string {
	return "meditation_sessions"
}

// SessionStart uses pointers so that a zero device id still counts as present.
type SessionStart struct {
	MeditationID *int64 `json:"meditation_id" validate:"required"`
	DeviceID     *int64 `json:"device_id" validate:"required"`
}

type SessionComplete struct {
	SecondsListened *int `json:"seconds_listened" validate:"required"`
}

// DeviceStats summarises the listening history of a device.
// Streak counts sessions completed since the start of the current UTC day.
type DeviceStats struct {
	TotalMinutes int64 `json:"total_minutes"`
	Streak       int64 `json:"streak"`
}
