package outline

import (
	"github.com/google/uuid"

	"CourseForge/internal/models"
	"CourseForge/internal/service/authoring/store"
)

// Seed builds a pre-populated wizard snapshot from a generated outline.
// Quizzes hang off each module's first lesson, matching where the
// outline places them.
func Seed(creatorID uuid.UUID, out *Outline) *store.Snapshot {
	snap := store.New(creatorID).UpdateCourse(func(c *models.Course) {
		c.Title = out.Title
		c.Description = out.Description
		c.Category = out.Category
	})

	for _, mod := range out.Modules {
		snap = snap.AddModule()
		modules := snap.Modules()
		moduleID := modules[len(modules)-1].ID
		snap = snap.UpdateModule(moduleID, func(m *models.Module) {
			m.Title = mod.Title
			m.Description = mod.Description
		})

		var firstLessonID uuid.UUID
		for _, title := range mod.Lessons {
			snap = snap.AddLesson(moduleID)
			lessons := snap.LessonsOf(moduleID)
			lessonID := lessons[len(lessons)-1].ID
			if firstLessonID == uuid.Nil {
				firstLessonID = lessonID
			}
			lessonTitle := title
			snap = snap.UpdateLesson(lessonID, func(l *models.Lesson) {
				l.Title = lessonTitle
			})
		}

		if mod.Quiz != nil && firstLessonID != uuid.Nil {
			snap = snap.AddQuiz(firstLessonID)
			quizzes := snap.QuizzesOf(firstLessonID)
			quizID := quizzes[len(quizzes)-1].ID
			quizTitle := mod.Quiz.Title
			snap = snap.UpdateQuiz(quizID, func(q *models.Quiz) {
				q.Title = quizTitle
			})
			for i := 0; i < mod.Quiz.QuestionCount; i++ {
				snap = snap.AddQuestion(quizID)
			}
		}
	}
	return snap
}
