// Package testblob provides an in-memory storage.BlobStore for tests.
package testblob

import (
	"context"
	"errors"
	"io"
	"sync"
)

// Object is one stored upload.
type Object struct {
	Body        []byte
	ContentType string
}

// Store keeps uploads in memory. Set Err to make every Put fail.
type Store struct {
	BaseURL string
	Err     error

	mu      sync.Mutex
	objects map[string]Object
}

func New(baseURL string) *Store {
	return &Store{BaseURL: baseURL, objects: make(map[string]Object)}
}

func (s *Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if s.Err != nil {
		return s.Err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if size >= 0 && int64(len(data)) != size {
		return errors.New("size mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = Object{Body: data, ContentType: contentType}
	return nil
}

func (s *Store) PublicURL(key string) string {
	return s.BaseURL + "/" + key
}

// Objects returns a copy of everything stored so far.
func (s *Store) Objects() map[string]Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Object, len(s.objects))
	for k, v := range s.objects {
		out[k] = v
	}
	return out
}
