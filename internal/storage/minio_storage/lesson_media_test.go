package minio_storage

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"CourseForge/internal/models"
)

func TestObjectKeyIsStableAcrossRoundTrips(t *testing.T) {
	item := models.MediaItem{
		ID:            uuid.New(),
		LessonID:      uuid.New(),
		Type:          "video/mp4",
		Name:          "clip.mp4",
		FileExtension: "mp4",
	}

	key := ObjectKey(item)
	assert.Equal(t, fmt.Sprintf("lessons/%s/%s.mp4", item.LessonID, item.ID), key)

	// URL and display name do not factor into the key, so an item read
	// back from a view or snapshot still maps to the same object
	stripped := models.MediaItem{ID: item.ID, LessonID: item.LessonID, FileExtension: item.FileExtension}
	assert.Equal(t, key, ObjectKey(stripped))
}
