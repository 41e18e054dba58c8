package wizard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/delivery/http/controllers/middleware"
	"CourseForge/internal/models"
	"CourseForge/internal/service/authoring"
	"CourseForge/internal/service/authoring/store"
	"CourseForge/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMediaStorage struct {
	deleted []models.MediaItem
}

func (f *fakeMediaStorage) Upload(_ context.Context, lessonID uuid.UUID, filename string, _ io.Reader, _ int64, contentType string) (models.MediaItem, error) {
	return models.MediaItem{ID: uuid.New(), LessonID: lessonID, Name: filename, Type: contentType}, nil
}

func (f *fakeMediaStorage) Delete(_ context.Context, item models.MediaItem) error {
	f.deleted = append(f.deleted, item)
	return nil
}

func testContext(creatorID uuid.UUID, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/", nil)
	c.Params = params
	c.Set(middleware.ClientIDCtx, creatorID)
	return c, w
}

// startSessionWithMedia opens a session holding one module, one lesson
// and one uploaded media item, returning the item as stored.
func startSessionWithMedia(service *authoring.WizardService, creatorID uuid.UUID) (*authoring.Session, models.MediaItem) {
	session := service.Start(creatorID, nil)
	session.Mutate(func(s *store.Snapshot) *store.Snapshot {
		s = s.AddModule()
		moduleID := s.Modules()[0].ID
		s = s.AddLesson(moduleID)
		lessonID := s.LessonsOf(moduleID)[0].ID
		return s.AddMedia(lessonID, models.MediaItem{
			Type:          "video/mp4",
			URL:           "https://cdn.example.com/clip.mp4",
			Name:          "clip.mp4",
			FileExtension: "mp4",
		})
	})
	return session, session.Snapshot().AllMedia()[0]
}

func TestRemoveMediaDeletesUploadedObject(t *testing.T) {
	media := &fakeMediaStorage{}
	service := authoring.NewWizardService(logger.New("local"), nil, nil)
	h := NewWizardHandler(logger.New("local"), service, nil, media)

	creator := uuid.New()
	session, item := startSessionWithMedia(service, creator)

	c, w := testContext(creator, gin.Params{
		{Key: "session_id", Value: session.ID.String()},
		{Key: "media_id", Value: item.ID.String()},
	})
	h.RemoveMedia(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, media.deleted, 1)
	assert.Equal(t, item.ID, media.deleted[0].ID)
	assert.Equal(t, item.LessonID, media.deleted[0].LessonID)

	_, _, mediaCount, _, _, _ := session.Snapshot().Counts()
	assert.Zero(t, mediaCount)
}

func TestRemoveMediaUnknownIDSkipsObjectDelete(t *testing.T) {
	media := &fakeMediaStorage{}
	service := authoring.NewWizardService(logger.New("local"), nil, nil)
	h := NewWizardHandler(logger.New("local"), service, nil, media)

	creator := uuid.New()
	session, _ := startSessionWithMedia(service, creator)

	c, w := testContext(creator, gin.Params{
		{Key: "session_id", Value: session.ID.String()},
		{Key: "media_id", Value: uuid.New().String()},
	})
	h.RemoveMedia(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, media.deleted)
	_, _, mediaCount, _, _, _ := session.Snapshot().Counts()
	assert.Equal(t, 1, mediaCount)
}

func TestAbandonWizardPurgesUploadedMedia(t *testing.T) {
	media := &fakeMediaStorage{}
	service := authoring.NewWizardService(logger.New("local"), nil, nil)
	h := NewWizardHandler(logger.New("local"), service, nil, media)

	creator := uuid.New()
	session, item := startSessionWithMedia(service, creator)

	c, w := testContext(creator, gin.Params{
		{Key: "session_id", Value: session.ID.String()},
	})
	h.AbandonWizard(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, media.deleted, 1)
	assert.Equal(t, item.ID, media.deleted[0].ID)

	_, err := service.Session(session.ID, creator)
	assert.ErrorIs(t, err, app_errors.ErrSessionNotFound)
}

func TestResetPurgesUploadedMedia(t *testing.T) {
	media := &fakeMediaStorage{}
	service := authoring.NewWizardService(logger.New("local"), nil, nil)
	h := NewWizardHandler(logger.New("local"), service, nil, media)

	creator := uuid.New()
	session, item := startSessionWithMedia(service, creator)

	c, w := testContext(creator, gin.Params{
		{Key: "session_id", Value: session.ID.String()},
	})
	h.Reset(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, media.deleted, 1)
	assert.Equal(t, item.ID, media.deleted[0].ID)

	_, _, mediaCount, _, _, _ := session.Snapshot().Counts()
	assert.Zero(t, mediaCount)
}
