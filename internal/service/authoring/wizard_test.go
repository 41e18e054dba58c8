package authoring

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"
	"CourseForge/internal/service/authoring/steps"
	"CourseForge/internal/service/authoring/store"
	"CourseForge/pkg/logger"
)

type fakeCourseStore struct {
	id   uuid.UUID
	err  error
	docs []models.CourseDocument
}

func (f *fakeCourseStore) CreateCourseTree(_ context.Context, doc models.CourseDocument) (uuid.UUID, error) {
	f.docs = append(f.docs, doc)
	return f.id, f.err
}

type fakeCatalog struct {
	err     error
	indexed []uuid.UUID
}

func (f *fakeCatalog) IndexPublished(_ context.Context, courseID uuid.UUID, _ models.CourseDocument) error {
	f.indexed = append(f.indexed, courseID)
	return f.err
}

func newTestWizard(courses *fakeCourseStore, catalog *fakeCatalog) *WizardService {
	return NewWizardService(logger.New("local"), courses, catalog)
}

func fillToReview(t *testing.T, session *Session) {
	t.Helper()
	session.SetBasicInfo("Go from scratch", "an introduction", "programming")
	session.Mutate(func(s *store.Snapshot) *store.Snapshot {
		s = s.AddModule()
		moduleID := s.Modules()[0].ID
		s = s.UpdateModule(moduleID, func(m *models.Module) {
			m.Title = "basics"
			m.Description = "syntax and tooling"
		})
		return s.AddLesson(moduleID)
	})
	for session.Step() != steps.Review {
		require.True(t, session.Advance().OK())
	}
}

func TestSessionOwnership(t *testing.T) {
	w := newTestWizard(&fakeCourseStore{}, &fakeCatalog{})
	creator := uuid.New()
	session := w.Start(creator, nil)

	got, err := w.Session(session.ID, creator)
	require.NoError(t, err)
	assert.Same(t, session, got)

	_, err = w.Session(session.ID, uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrNotSessionOwner)

	_, err = w.Session(uuid.New(), creator)
	assert.ErrorIs(t, err, app_errors.ErrSessionNotFound)
}

func TestAdvanceBlocksOnValidation(t *testing.T) {
	w := newTestWizard(&fakeCourseStore{}, &fakeCatalog{})
	session := w.Start(uuid.New(), nil)

	errs := session.Advance()
	assert.False(t, errs.OK())
	assert.Equal(t, steps.BasicInfo, session.Step())

	session.SetBasicInfo("Go from scratch", "an introduction", "programming")
	require.True(t, session.Advance().OK())
	assert.Equal(t, steps.Modules, session.Step())
}

func TestRetreatKeepsEnteredData(t *testing.T) {
	w := newTestWizard(&fakeCourseStore{}, &fakeCatalog{})
	session := w.Start(uuid.New(), nil)
	fillToReview(t, session)

	session.Retreat()
	session.Retreat()
	assert.Equal(t, steps.Modules, session.Step())

	modules, lessons, _, _, _, _ := session.Snapshot().Counts()
	assert.Equal(t, 1, modules)
	assert.Equal(t, 1, lessons)
	assert.Equal(t, "Go from scratch", session.Snapshot().Course().Title)
}

func TestRetreatStopsAtFirstStep(t *testing.T) {
	w := newTestWizard(&fakeCourseStore{}, &fakeCatalog{})
	session := w.Start(uuid.New(), nil)

	session.Retreat()
	assert.Equal(t, steps.BasicInfo, session.Step())
}

func TestResetStartsOver(t *testing.T) {
	w := newTestWizard(&fakeCourseStore{}, &fakeCatalog{})
	session := w.Start(uuid.New(), nil)
	fillToReview(t, session)

	session.Reset()

	assert.Equal(t, steps.BasicInfo, session.Step())
	modules, _, _, _, _, _ := session.Snapshot().Counts()
	assert.Zero(t, modules)
	assert.Empty(t, session.Snapshot().Course().Title)
}

func TestCommitRefusedBeforeReview(t *testing.T) {
	courses := &fakeCourseStore{id: uuid.New()}
	w := newTestWizard(courses, &fakeCatalog{})
	session := w.Start(uuid.New(), nil)

	_, err := w.Commit(context.Background(), session, IntentPublish)

	assert.ErrorIs(t, err, app_errors.ErrStepLocked)
	assert.Empty(t, courses.docs)
}

func TestCommitPublishIndexesAndDiscardsSession(t *testing.T) {
	courseID := uuid.New()
	courses := &fakeCourseStore{id: courseID}
	catalog := &fakeCatalog{}
	w := newTestWizard(courses, catalog)
	creator := uuid.New()
	session := w.Start(creator, nil)
	fillToReview(t, session)

	result, err := w.Commit(context.Background(), session, IntentPublish)

	require.NoError(t, err)
	assert.Equal(t, courseID, result.CourseID)
	assert.Empty(t, result.Warning)

	require.Len(t, courses.docs, 1)
	assert.True(t, courses.docs[0].IsPublished)
	assert.Equal(t, []uuid.UUID{courseID}, catalog.indexed)

	_, err = w.Session(session.ID, creator)
	assert.ErrorIs(t, err, app_errors.ErrSessionNotFound)
}

func TestCommitDraftSkipsCatalog(t *testing.T) {
	courses := &fakeCourseStore{id: uuid.New()}
	catalog := &fakeCatalog{}
	w := newTestWizard(courses, catalog)
	session := w.Start(uuid.New(), nil)
	fillToReview(t, session)

	result, err := w.Commit(context.Background(), session, IntentDraft)

	require.NoError(t, err)
	require.Len(t, courses.docs, 1)
	assert.False(t, courses.docs[0].IsPublished)
	assert.Empty(t, catalog.indexed)
	assert.NotEqual(t, uuid.Nil, result.CourseID)
}

func TestCommitFailureReturnsStoreErrorAndKeepsSession(t *testing.T) {
	storeErr := errors.New("insert failed")
	courses := &fakeCourseStore{err: storeErr}
	w := newTestWizard(courses, &fakeCatalog{})
	creator := uuid.New()
	session := w.Start(creator, nil)
	fillToReview(t, session)

	_, err := w.Commit(context.Background(), session, IntentPublish)

	require.Error(t, err)
	assert.EqualError(t, err, "insert failed")

	// the session and its graph survive for a retry
	kept, sessErr := w.Session(session.ID, creator)
	require.NoError(t, sessErr)
	assert.Equal(t, steps.Review, kept.Step())
	modules, lessons, _, _, _, _ := kept.Snapshot().Counts()
	assert.Equal(t, 1, modules)
	assert.Equal(t, 1, lessons)
}

func TestCommitNilIDYieldsWarning(t *testing.T) {
	courses := &fakeCourseStore{}
	w := newTestWizard(courses, &fakeCatalog{})
	session := w.Start(uuid.New(), nil)
	fillToReview(t, session)

	result, err := w.Commit(context.Background(), session, IntentPublish)

	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, result.CourseID)
	assert.Equal(t, "course was not saved", result.Warning)
}

func TestCommitCatalogFailureDoesNotFailPublish(t *testing.T) {
	courseID := uuid.New()
	courses := &fakeCourseStore{id: courseID}
	catalog := &fakeCatalog{err: errors.New("index unavailable")}
	w := newTestWizard(courses, catalog)
	session := w.Start(uuid.New(), nil)
	fillToReview(t, session)

	result, err := w.Commit(context.Background(), session, IntentPublish)

	require.NoError(t, err)
	assert.Equal(t, courseID, result.CourseID)
	assert.Empty(t, result.Warning)
}

func TestStartWithSeedSnapshot(t *testing.T) {
	creator := uuid.New()
	seed := store.New(creator).AddModule()
	w := newTestWizard(&fakeCourseStore{}, &fakeCatalog{})

	session := w.Start(creator, seed)

	modules, _, _, _, _, _ := session.Snapshot().Counts()
	assert.Equal(t, 1, modules)
	assert.Equal(t, steps.BasicInfo, session.Step())
}
