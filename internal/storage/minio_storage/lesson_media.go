package minio_storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"CourseForge/internal/models"
)

// MediaStorage keeps lesson media files uploaded through the authoring
// wizard. Objects are keyed by lesson and a fresh id, so re-uploads
// never clobber each other.
type MediaStorage struct {
	storage      *MinioStorage
	bucket       string
	presignedTTL time.Duration
}

func NewMediaStorage(storage *MinioStorage, bucketName string, presignedTTL time.Duration) (*MediaStorage, error) {
	if err := storage.ensureBucket(context.Background(), bucketName); err != nil {
		return nil, err
	}
	return &MediaStorage{storage: storage, bucket: bucketName, presignedTTL: presignedTTL}, nil
}

// Upload stores the file and returns a MediaItem ready to add to the
// wizard's snapshot: object URL, MIME type, display name and extension.
func (s *MediaStorage) Upload(
	ctx context.Context,
	lessonID uuid.UUID,
	filename string,
	reader io.Reader,
	size int64,
	contentType string,
) (models.MediaItem, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(filename))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	item := models.MediaItem{
		ID:            uuid.New(),
		LessonID:      lessonID,
		Type:          contentType,
		Name:          filename,
		FileExtension: ext,
	}

	_, err := s.storage.client.PutObject(
		ctx,
		s.bucket,
		ObjectKey(item),
		reader,
		size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return models.MediaItem{}, fmt.Errorf("upload media: %w", err)
	}

	item.URL, err = s.PresignedURL(ctx, ObjectKey(item))
	if err != nil {
		return models.MediaItem{}, err
	}
	return item, nil
}

// ObjectKey derives the bucket key a media item was stored under. It
// depends only on the item's ids and extension, so the key survives
// serialization round trips without being stored.
func ObjectKey(item models.MediaItem) string {
	return fmt.Sprintf("lessons/%s/%s.%s", item.LessonID, item.ID, item.FileExtension)
}

func (s *MediaStorage) PresignedURL(ctx context.Context, objectKey string) (string, error) {
	reqParams := make(url.Values)
	u, err := s.storage.client.PresignedGetObject(ctx, s.bucket, objectKey, s.presignedTTL, reqParams)
	if err != nil {
		return "", fmt.Errorf("presign media: %w", err)
	}
	return u.String(), nil
}

// Delete drops the uploaded object backing a media item that was
// removed from the wizard before the course was committed.
func (s *MediaStorage) Delete(ctx context.Context, item models.MediaItem) error {
	return s.storage.client.RemoveObject(ctx, s.bucket, ObjectKey(item), minio.RemoveObjectOptions{})
}
