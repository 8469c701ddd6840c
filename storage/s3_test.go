package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meditation-backend/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURLForAWS(t *testing.T) {
	store, err := NewS3Store(&config.Config{
		S3Endpoint: "s3.amazonaws.com",
		S3Region:   "ap-south-1",
		S3Bucket:   "calm-audio",
		S3UseSSL:   true,
	})
	require.NoError(t, err)

	assert.Equal(t,
		"https://calm-audio.s3.ap-south-1.amazonaws.com/abc_morning%20breath.mp3",
		store.PublicURL("abc_morning breath.mp3"))
}

func TestPublicURLForCustomEndpoint(t *testing.T) {
	assert.Equal(t, "http://minio.local:9000/calm-audio/k.mp3",
		publicURL("minio.local:9000", "calm-audio", "us-east-1", false, "k.mp3"))
	assert.Equal(t, "https://storage.example.com/calm-audio/k.mp3",
		publicURL("storage.example.com", "calm-audio", "us-east-1", true, "k.mp3"))
}

func TestNewS3StoreStripsScheme(t *testing.T) {
	store, err := NewS3Store(&config.Config{
		S3Endpoint: "http://minio.local:9000",
		S3Bucket:   "calm-audio",
		S3Region:   "us-east-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://minio.local:9000/calm-audio/x", store.PublicURL("x"))
	assert.Equal(t, "calm-audio", store.Bucket())
}

func TestNewS3StoreRequiresBucket(t *testing.T) {
	_, err := NewS3Store(&config.Config{S3Endpoint: "s3.amazonaws.com"})
	assert.Error(t, err)
}

func TestNewObjectKey(t *testing.T) {
	a := NewObjectKey("rain.mp3")
	b := NewObjectKey("rain.mp3")
	assert.NotEqual(t, a, b)

	prefix, name, ok := strings.Cut(a, "_")
	require.True(t, ok)
	_, err := uuid.Parse(prefix)
	assert.NoError(t, err)
	assert.Equal(t, "rain.mp3", name)

	assert.True(t, strings.HasSuffix(NewObjectKey("../../etc/passwd"), "_passwd"))
	assert.True(t, strings.HasSuffix(NewObjectKey(`C:\music\ocean.wav`), "_ocean.wav"))
	assert.True(t, strings.HasSuffix(NewObjectKey(""), "_audio"))
}

func TestListReturnsStorageError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
			`<Error><Code>AccessDenied</Code><Message>Access Denied.</Message>` +
			`<BucketName>calm-audio</BucketName><RequestId>1</RequestId></Error>`))
	}))
	defer srv.Close()

	store, err := NewS3Store(&config.Config{
		S3Endpoint:  srv.URL,
		S3Bucket:    "calm-audio",
		S3Region:    "us-east-1",
		S3AccessKey: "key",
		S3SecretKey: "secret",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	objects, err := store.List(ctx, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calm-audio")
	assert.Nil(t, objects)
}
