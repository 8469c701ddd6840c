// Package catalog manages the meditation track catalog and its audio files.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"meditation-backend/logger"
	"meditation-backend/model"
	"meditation-backend/repository"
	"meditation-backend/storage"
)

// ErrNotAudio is returned when an upload's content type is not audio/*.
var ErrNotAudio = errors.New("file must be an audio file")

// AudioUpload is a file received from an admin.
type AudioUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Service struct {
	repo  repository.MeditationRepository
	blobs storage.BlobStore
}

func NewService(repo repository.MeditationRepository, blobs storage.BlobStore) *Service {
	return &Service{repo: repo, blobs: blobs}
}

func (s *Service) ListPublished(ctx context.Context) ([]*model.Meditation, error) {
	return s.repo.ListPublished(ctx)
}

// GetPublished returns repository.ErrNotFound for missing and unpublished tracks alike.
func (s *Service) GetPublished(ctx context.Context, id int64) (*model.Meditation, error) {
	return s.repo.GetPublished(ctx, id)
}

// Create always publishes the new track.
func (s *Service) Create(ctx context.Context, in model.MeditationCreate) (*model.Meditation, error) {
	m := &model.Meditation{
		Title:       in.Title,
		Category:    in.Category,
		Level:       in.Level,
		AudioURL:    in.AudioURL,
		IsPublished: true,
	}
	if in.DurationSec != nil {
		m.DurationSec = *in.DurationSec
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	logger.Info("Meditation created", logger.Int64("meditationId", m.ID), logger.String("title", m.Title))
	return m, nil
}

// Update applies the fields present in upd. An empty update returns the track as is.
func (s *Service) Update(ctx context.Context, id int64, upd model.MeditationUpdate) (*model.Meditation, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Empty() {
		return m, nil
	}
	if err := upd.ApplyTo(m); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes the track together with its sessions.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Meditation deleted", logger.Int64("meditationId", id))
	return nil
}

// UploadAudio stores the file in the blob store and points the track's audio_url
// at it. A failed database write after a successful upload leaves the object
// orphaned; it is logged, not cleaned up.
func (s *Service) UploadAudio(ctx context.Context, id int64, file AudioUpload) (*model.Meditation, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(file.ContentType, "audio/") {
		return nil, ErrNotAudio
	}

	key := storage.NewObjectKey(file.Filename)
	if err := s.blobs.Put(ctx, key, file.Body, file.Size, file.ContentType); err != nil {
		return nil, fmt.Errorf("upload audio for meditation %d: %w", id, err)
	}
	url := s.blobs.PublicURL(key)

	m.AudioURL = &url
	if err := s.repo.Save(ctx, m); err != nil {
		logger.Error("Audio uploaded but meditation not updated; object is orphaned",
			logger.Int64("meditationId", id),
			logger.String("key", key),
			logger.ErrorField(err))
		return nil, err
	}
	logger.Info("Meditation audio uploaded",
		logger.Int64("meditationId", id),
		logger.String("key", key),
		logger.Int64("size", file.Size))
	return m, nil
}
