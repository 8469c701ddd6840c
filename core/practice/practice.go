// Package practice records listening sessions and derives per-device statistics.
package practice

import (
	"context"
	"errors"
	"math"
	"time"

	"meditation-backend/logger"
	"meditation-backend/model"
	"meditation-backend/repository"
)

// ErrAlreadyCompleted is returned when a session is completed a second time.
var ErrAlreadyCompleted = errors.New("session already completed")

// Ledger owns the session lifecycle: started once, completed once.
type Ledger struct {
	sessions repository.SessionRepository
	now      func() time.Time
}

// NewLedger returns a Ledger. A nil clock means time.Now.
func NewLedger(sessions repository.SessionRepository, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{sessions: sessions, now: now}
}

// Start opens a session. An unknown meditation id yields repository.ErrNotFound.
func (l *Ledger) Start(ctx context.Context, meditationID, deviceID int64) (*model.MeditationSession, error) {
	s := &model.MeditationSession{
		MeditationID: meditationID,
		DeviceID:     deviceID,
		StartedAt:    l.now().UTC(),
	}
	if err := l.sessions.Create(ctx, s); err != nil {
		return nil, err
	}
	logger.Debug("Session started",
		logger.Int64("sessionId", s.ID),
		logger.Int64("meditationId", meditationID),
		logger.Int64("deviceId", deviceID))
	return s, nil
}

// Complete records the listened seconds and stamps completed_at. Only the first
// completion of a session wins; later ones get ErrAlreadyCompleted.
func (l *Ledger) Complete(ctx context.Context, sessionID int64, secondsListened int) (*model.MeditationSession, error) {
	done, err := l.sessions.MarkCompleted(ctx, sessionID, secondsListened, l.now())
	if err != nil {
		return nil, err
	}
	s, err := l.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, ErrAlreadyCompleted
	}
	return s, nil
}

// Stats sums listened time across every session of the device and counts the
// sessions completed since the start of the current UTC day.
func (l *Ledger) Stats(ctx context.Context, deviceID int64) (*model.DeviceStats, error) {
	seconds, err := l.sessions.SumSecondsByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	today, err := l.sessions.CountCompletedSince(ctx, deviceID, StartOfDay(l.now()))
	if err != nil {
		return nil, err
	}
	return &model.DeviceStats{
		TotalMinutes: int64(math.RoundToEven(float64(seconds) / 60)),
		Streak:       today,
	}, nil
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
