package authoring

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"
	"CourseForge/internal/service/authoring/serialize"
	"CourseForge/internal/service/authoring/steps"
	"CourseForge/internal/service/authoring/store"
	"CourseForge/pkg/logger"
)

type courseStore interface {
	CreateCourseTree(ctx context.Context, doc models.CourseDocument) (uuid.UUID, error)
}

type catalogIndex interface {
	IndexPublished(ctx context.Context, courseID uuid.UUID, doc models.CourseDocument) error
}

// Intent mirrors the two terminal actions of the review step.
const (
	IntentPublish = "publish"
	IntentDraft   = "draft"
)

// CommitResult reports the outcome of handing a serialized course to
// the persistence layer. A zero CourseID with a Warning set means the
// store answered with nothing persisted, which the wizard treats as a
// soft failure rather than a crash.
type CommitResult struct {
	CourseID uuid.UUID `json:"course_id"`
	Warning  string    `json:"warning,omitempty"`
}

// WizardService owns the live authoring sessions and reconciles
// publish/draft commits against the course store.
type WizardService struct {
	log     logger.Log
	courses courseStore
	catalog catalogIndex

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewWizardService(log logger.Log, courses courseStore, catalog catalogIndex) *WizardService {
	return &WizardService{
		log:      log,
		courses:  courses,
		catalog:  catalog,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Start opens a fresh session for the creator. A non-nil seed snapshot
// (from a generated outline) pre-populates the graph; otherwise the
// course starts empty.
func (w *WizardService) Start(creatorID uuid.UUID, seed *store.Snapshot) *Session {
	session := newSession(creatorID, seed)
	w.mu.Lock()
	w.sessions[session.ID] = session
	w.mu.Unlock()
	w.log.Info("wizard session started", "session_id", session.ID, "creator_id", creatorID)
	return session
}

// Session fetches a live session, refusing callers other than its owner.
func (w *WizardService) Session(id, callerID uuid.UUID) (*Session, error) {
	w.mu.Lock()
	session, ok := w.sessions[id]
	w.mu.Unlock()
	if !ok {
		return nil, app_errors.ErrSessionNotFound
	}
	if session.CreatorID != callerID {
		return nil, app_errors.ErrNotSessionOwner
	}
	return session, nil
}

// Abandon drops a session without persisting anything.
func (w *WizardService) Abandon(id uuid.UUID) {
	w.mu.Lock()
	delete(w.sessions, id)
	w.mu.Unlock()
}

// Commit serializes the session's graph with the requested intent and
// hands it to the course store. On any failure the in-memory graph is
// left untouched so the user can retry; on success the session is
// discarded. Publish additionally feeds the catalog index, where a
// failure is logged but never fails the commit.
func (w *WizardService) Commit(ctx context.Context, session *Session, intent string) (CommitResult, error) {
	if session.Step() != steps.Review {
		return CommitResult{}, app_errors.ErrStepLocked
	}

	serializeIntent := serialize.Draft
	if intent == IntentPublish {
		serializeIntent = serialize.Publish
	}
	doc := serialize.Build(session.Snapshot(), serializeIntent)

	courseID, err := w.courses.CreateCourseTree(ctx, doc)
	if err != nil {
		w.log.ErrorErr("course commit failed", err, "session_id", session.ID, "intent", intent)
		return CommitResult{}, err
	}
	if courseID == uuid.Nil {
		w.log.Warn("course store persisted nothing", "session_id", session.ID, "intent", intent)
		return CommitResult{Warning: app_errors.ErrCourseNotSaved.Error()}, nil
	}

	if serializeIntent == serialize.Publish {
		if err := w.catalog.IndexPublished(ctx, courseID, doc); err != nil {
			w.log.ErrorErr("failed to index published course", err, "course_id", courseID)
		}
	}

	w.Abandon(session.ID)
	w.log.Info("course committed", "course_id", courseID, "intent", intent)
	return CommitResult{CourseID: courseID}, nil
}
