package wizard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"
	"CourseForge/internal/service/authoring/store"
)

// Entity mutations mirror the store's semantics: every operation is
// total, a stale id is a silent no-op and the response always carries
// the session's current tree.

type basicInfoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *WizardHandler) SetBasicInfo(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var input basicInfoRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session.SetBasicInfo(input.Title, input.Description, input.Category)
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *WizardHandler) AddModule(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Mutate(func(s *store.Snapshot) *store.Snapshot { return s.AddModule() })
	c.JSON(http.StatusOK, sessionView(session))
}

type updateModuleRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Position    *int    `json:"position"`
}

func (h *WizardHandler) UpdateModule(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	moduleID, ok := parseID(c, "module_id")
	if !ok {
		return
	}
	var input updateModuleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session.Mutate(func(s *store.Snapshot) *store.Snapshot {
		return s.UpdateModule(moduleID, func(m *models.Module) {
			if input.Title != nil {
				m.Title = *input.Title
			}
			if input.Description != nil {
				m.Description = *input.Description
			}
			if input.Position != nil {
				m.Position = *input.Position
			}
		})
	})
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *WizardHandler) RemoveModule(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	moduleID, ok := parseID(c, "module_id")
	if !ok {
		return
	}
	session.Mutate(func(s *store.Snapshot) *store.Snapshot { return s.RemoveModule(moduleID) })
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *WizardHandler) AddLesson(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	moduleID, ok := parseID(c, "module_id")
	if !ok {
		return
	}
	session.Mutate(func(s *store.Snapshot) *store.Snapshot { return s.AddLesson(moduleID) })
	c.JSON(http.StatusOK, sessionView(session))
}

type updateLessonRequest struct {
	Title          *string `json:"title"`
	Content        *string `json:"content"`
	Position       *int    `json:"position"`
	IsPrerequisite *bool   `json:"is_prerequisite"`
}

func (h *WizardHandler) UpdateLesson(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	lessonID, ok := parseID(c, "lesson_id")
	if !ok {
		return
	}
	var input updateLessonRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session.Mutate(func(s *store.Snapshot) *store.Snapshot {
		return s.UpdateLesson(lessonID, func(l *models.Lesson) {
			if input.Title != nil {
				l.Title = *input.Title
			}
			if input.Content != nil {
				l.Content = *input.Content
			}
			if input.Position != nil {
				l.Position = *input.Position
			}
			if input.IsPrerequisite != nil {
				l.IsPrerequisite = *input.IsPrerequisite
			}
		})
	})
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *WizardHandler) RemoveLesson(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	lessonID, ok := parseID(c, "lesson_id")
	if !ok {
		return
	}
	session.Mutate(func(s *store.Snapshot) *store.Snapshot { return s.RemoveLesson(lessonID) })
	c.JSON(http.StatusOK, sessionView(session))
}

const maxMediaSize = 512 << 20

// UploadMedia stores a multipart file and records it under the lesson.
func (h *WizardHandler) UploadMedia(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	lessonID, ok := parseID(c, "lesson_id")
	if !ok {
		return
	}
	if _, found := session.Snapshot().Lesson(lessonID); !found {
		c.JSON(http.StatusOK, sessionView(session))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxMediaSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": app_errors.ErrFileSize.Error()})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	item, err := h.media.Upload(
		c.Request.Context(),
		lessonID,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		h.log.ErrorErr("media upload failed", err, "lesson_id", lessonID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	session.Mutate(func(s *store.Snapshot) *store.Snapshot { return s.AddMedia(lessonID, item) })
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *WizardHandler) RemoveMedia(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	mediaID, ok := parseID(c, "media_id")
	if !ok {
		return
	}
	item, found := session.Snapshot().Media(mediaID)
	session.Mutate(func(s *store.Snapshot) *store.Snapshot { return s.RemoveMedia(mediaID) })
	if found {
		if err := h.media.Delete(c.Request.Context(), item); err != nil {
			h.log.ErrorErr("media object delete failed", err, "media_id", mediaID)
		}
	}
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *WizardHandler) AddQuiz(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	lessonID, ok := parseID(c, "lesson_id")
	if !ok {
		return
	}
	session.Mutate(func(s *store.Snapshot) *store.Snapshot { return s.AddQuiz(lessonID) })
	c.JSON(http.StatusOK, sessionView(session))
}

type updateQuizRequest struct {
	Title       *string `json:"title"`
	MaxAttempts *int    `json:"max_attempts" binding:"omitempty,min=1"`
}

func (h *WizardHandler) UpdateQuiz(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	quizID, ok := parseID(c, "quiz_id")
	if !ok {
		return
	}
	var input updateQuizRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session.Mutate(func(s *store.Snapshot) *store.Snapshot {
		return s.UpdateQuiz(quizID, func(q *models.Quiz) {
			if input.Title != nil {
				q.Title = *input.Title
			}
			if input.MaxAttempts != nil {
				q.MaxAttempts = *input.MaxAttempts
			}
		})
	})
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *WizardHandler) RemoveQuiz(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	quizID, ok := parseID(c, "quiz_id")
	if !ok {
		return
	}
	session.Mutate(func(s *store.Snapshot) *store.Snapshot { return s.RemoveQuiz(quizID) })
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *WizardHandler) AddQuestion(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	quizID, ok := parseID(c, "quiz_id")
	if !ok {
		return
	}
	session.Mutate(func(s *store.Snapshot) *store.Snapshot { return s.AddQuestion(quizID) })
	c.JSON(http.StatusOK, sessionView(session))
}

type updateQuestionRequest struct {
	Type          *string `json:"type" binding:"omitempty,oneof=multiple_choice true_false essay"`
	QuestionText  *string `json:"question_text"`
	CorrectAnswer *string `json:"correct_answer"`
}

func (h *WizardHandler) UpdateQuestion(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	questionID, ok := parseID(c, "question_id")
	if !ok {
		return
	}
	var input updateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session.Mutate(func(s *store.Snapshot) *store.Snapshot {
		return s.UpdateQuestion(questionID, func(q *models.Question) {
			if input.Type != nil {
				q.Type = *input.Type
			}
			if input.QuestionText != nil {
				q.QuestionText = *input.QuestionText
			}
			if input.CorrectAnswer != nil {
				q.CorrectAnswer = input.CorrectAnswer
			}
		})
	})
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *WizardHandler) RemoveQuestion(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	questionID, ok := parseID(c, "question_id")
	if !ok {
		return
	}
	session.Mutate(func(s *store.Snapshot) *store.Snapshot { return s.RemoveQuestion(questionID) })
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *WizardHandler) AddOption(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	questionID, ok := parseID(c, "question_id")
	if !ok {
		return
	}
	session.Mutate(func(s *store.Snapshot) *store.Snapshot { return s.AddOption(questionID) })
	c.JSON(http.StatusOK, sessionView(session))
}

type updateOptionRequest struct {
	Text      *string `json:"text"`
	IsCorrect *bool   `json:"is_correct"`
}

func (h *WizardHandler) UpdateOption(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	optionID, ok := parseID(c, "option_id")
	if !ok {
		return
	}
	var input updateOptionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session.Mutate(func(s *store.Snapshot) *store.Snapshot {
		return s.UpdateOption(optionID, func(o *models.Option) {
			if input.Text != nil {
				o.Text = *input.Text
			}
			if input.IsCorrect != nil {
				o.IsCorrect = *input.IsCorrect
			}
		})
	})
	c.JSON(http.StatusOK, sessionView(session))
}

func (h *WizardHandler) RemoveOption(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	optionID, ok := parseID(c, "option_id")
	if !ok {
		return
	}
	session.Mutate(func(s *store.Snapshot) *store.Snapshot { return s.RemoveOption(optionID) })
	c.JSON(http.StatusOK, sessionView(session))
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
