package wizard

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/delivery/http/controllers/middleware"
	"CourseForge/internal/models"
	"CourseForge/internal/service/authoring"
	"CourseForge/internal/service/authoring/store"
	"CourseForge/internal/service/outline"
	"CourseForge/pkg/logger"
)

type wizardService interface {
	Start(creatorID uuid.UUID, seed *store.Snapshot) *authoring.Session
	Session(id, callerID uuid.UUID) (*authoring.Session, error)
	Abandon(id uuid.UUID)
	Commit(ctx context.Context, session *authoring.Session, intent string) (authoring.CommitResult, error)
}

type outlineService interface {
	Generate(ctx context.Context, description string, settings outline.Settings) (*outline.Outline, error)
}

type mediaStorage interface {
	Upload(ctx context.Context, lessonID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (models.MediaItem, error)
	Delete(ctx context.Context, item models.MediaItem) error
}

type WizardHandler struct {
	log     logger.Log
	service wizardService
	outline outlineService
	media   mediaStorage
}

func NewWizardHandler(l logger.Log, s wizardService, o outlineService, m mediaStorage) *WizardHandler {
	return &WizardHandler{
		log:     l,
		service: s,
		outline: o,
		media:   m,
	}
}

// session resolves the :session_id path param against the caller's
// identity. Writes the error response itself on failure.
func (h *WizardHandler) session(c *gin.Context) (*authoring.Session, bool) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session_id"})
		return nil, false
	}
	callerID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	session, err := h.service.Session(sessionID, callerID)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrNotSessionOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return session, true
}

type startRequest struct {
	Description string           `json:"description"`
	Settings    outline.Settings `json:"settings"`
}

// StartWizard opens a new authoring session. When a course description
// is supplied the outline service drafts a starting structure; a
// malformed draft is dropped and the session starts empty.
func (h *WizardHandler) StartWizard(c *gin.Context) {
	creatorID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input startRequest
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var seed *store.Snapshot
	if input.Description != "" && h.outline != nil {
		generated, err := h.outline.Generate(c.Request.Context(), input.Description, input.Settings)
		if err != nil {
			h.log.Warn("outline generation discarded", logger.Err(err))
		} else {
			seed = outline.Seed(creatorID, generated)
		}
	}

	session := h.service.Start(creatorID, seed)
	c.JSON(http.StatusCreated, sessionView(session))
}

func (h *WizardHandler) GetWizard(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

// Advance validates the current step and moves forward. Validation
// failures come back as a field-keyed message map and the step stays
// where it was.
func (h *WizardHandler) Advance(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	errs := session.Advance()
	if !errs.OK() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"step": session.Step().String(), "errors": errs})
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": session.Step().String()})
}

func (h *WizardHandler) Retreat(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Retreat()
	c.JSON(http.StatusOK, gin.H{"step": session.Step().String()})
}

func (h *WizardHandler) Reset(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	h.purgeMedia(c, session.Snapshot())
	session.Reset()
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *WizardHandler) AbandonWizard(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	h.purgeMedia(c, session.Snapshot())
	h.service.Abandon(session.ID)
	c.JSON(http.StatusOK, gin.H{})
}

// purgeMedia deletes the uploaded objects of every media item in the
// snapshot. Used when the graph is discarded uncommitted; a committed
// course keeps its objects since the persisted rows reference them.
func (h *WizardHandler) purgeMedia(c *gin.Context, snap *store.Snapshot) {
	for _, item := range snap.AllMedia() {
		if err := h.media.Delete(c.Request.Context(), item); err != nil {
			h.log.ErrorErr("media object delete failed", err, "media_id", item.ID)
		}
	}
}

func (h *WizardHandler) Publish(c *gin.Context) {
	h.commit(c, authoring.IntentPublish)
}

func (h *WizardHandler) SaveAsDraft(c *gin.Context) {
	h.commit(c, authoring.IntentDraft)
}

func (h *WizardHandler) commit(c *gin.Context, intent string) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	result, err := h.service.Commit(c.Request.Context(), session, intent)
	if err != nil {
		if errors.Is(err, app_errors.ErrStepLocked) {
			c.JSON(http.StatusConflict, gin.H{"error": "course must be on the review step"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if result.Warning != "" {
		c.JSON(http.StatusOK, gin.H{"warning": result.Warning})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"course_id": result.CourseID})
}
