package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeditationUpdateDistinguishesAbsentFromNull(t *testing.T) {
	var upd MeditationUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Evening Wind Down","audio_url":null}`), &upd))

	assert.True(t, upd.Title.Set)
	assert.False(t, upd.Title.Null)
	assert.Equal(t, "Evening Wind Down", upd.Title.Value)

	assert.True(t, upd.AudioURL.Set)
	assert.True(t, upd.AudioURL.Null)
	assert.Nil(t, upd.AudioURL.Ptr())

	assert.False(t, upd.Category.Set)
	assert.False(t, upd.DurationSec.Set)
	assert.False(t, upd.IsPublished.Set)
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var upd MeditationUpdate
	err := json.Unmarshal([]byte(`{"duration_sec":"ten minutes"}`), &upd)
	assert.Error(t, err)
}

func TestOptionalFalseIsPresent(t *testing.T) {
	var upd MeditationUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"is_published":false}`), &upd))
	assert.True(t, upd.IsPublished.Set)
	assert.False(t, upd.IsPublished.Value)
	assert.Equal(t, Some(false), upd.IsPublished)
}

func TestApplyToMergesOnlyPresentFields(t *testing.T) {
	audio := "https://cdn.example.com/a.mp3"
	m := Meditation{ID: 3, Title: "Body Scan", Category: "sleep", DurationSec: 900, Level: "beginner", AudioURL: &audio, IsPublished: true}

	require.NoError(t, MeditationUpdate{}.ApplyTo(&m))
	assert.Equal(t, "Body Scan", m.Title)
	assert.Equal(t, &audio, m.AudioURL)

	require.NoError(t, MeditationUpdate{Level: Some("advanced")}.ApplyTo(&m))
	assert.Equal(t, "advanced", m.Level)
	assert.Equal(t, "Body Scan", m.Title)
	assert.Equal(t, 900, m.DurationSec)

	require.NoError(t, MeditationUpdate{AudioURL: Optional[string]{Set: true, Null: true}}.ApplyTo(&m))
	assert.Nil(t, m.AudioURL)
}

func TestApplyToRejectsNullOnRequiredField(t *testing.T) {
	m := Meditation{Title: "Body Scan", Level: "beginner"}
	err := MeditationUpdate{
		Level: Some("advanced"),
		Title: Optional[string]{Set: true, Null: true},
	}.ApplyTo(&m)

	assert.ErrorIs(t, err, ErrNullField)
	assert.Equal(t, "Body Scan", m.Title)
	assert.Equal(t, "beginner", m.Level)
}

func TestEmpty(t *testing.T) {
	assert.True(t, MeditationUpdate{}.Empty())
	assert.False(t, MeditationUpdate{IsPublished: Some(false)}.Empty())
}
