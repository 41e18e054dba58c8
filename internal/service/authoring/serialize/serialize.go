package serialize

import (
	"github.com/samber/lo"

	"CourseForge/internal/models"
	"CourseForge/internal/service/authoring/store"
)

// Intent selects the is_published value stamped onto the serialized
// course and every lesson inside it. It is the only field the
// serializer overrides instead of copying from the snapshot.
type Intent bool

const (
	Publish Intent = true
	Draft   Intent = false
)

// Build folds the snapshot's flat collections into the nested course
// document the persistence layer accepts. It is a pure function of the
// snapshot: nested arrays follow stored positions, nothing is mutated,
// and two calls on the same snapshot yield identical documents.
func Build(snap *store.Snapshot, intent Intent) models.CourseDocument {
	course := snap.Course()
	return models.CourseDocument{
		Title:       course.Title,
		Description: course.Description,
		Category:    course.Category,
		CreatedBy:   course.CreatedBy,
		IsPublished: bool(intent),
		Modules: lo.Map(snap.Modules(), func(m models.Module, _ int) models.ModuleDocument {
			return buildModule(snap, m, intent)
		}),
	}
}

func buildModule(snap *store.Snapshot, m models.Module, intent Intent) models.ModuleDocument {
	return models.ModuleDocument{
		Title:       m.Title,
		Description: m.Description,
		Position:    m.Position,
		Lessons: lo.Map(snap.LessonsOf(m.ID), func(l models.Lesson, _ int) models.LessonDocument {
			return buildLesson(snap, l, intent)
		}),
	}
}

func buildLesson(snap *store.Snapshot, l models.Lesson, intent Intent) models.LessonDocument {
	return models.LessonDocument{
		Title:          l.Title,
		Content:        l.Content,
		Position:       l.Position,
		IsPrerequisite: l.IsPrerequisite,
		IsPublished:    bool(intent),
		MediaItems: lo.Map(snap.MediaOf(l.ID), func(item models.MediaItem, _ int) models.MediaDocument {
			return models.MediaDocument{
				URL:           item.URL,
				Type:          item.Type,
				FileExtension: item.FileExtension,
				Name:          item.Name,
			}
		}),
		Quizzes: lo.Map(snap.QuizzesOf(l.ID), func(q models.Quiz, _ int) models.QuizDocument {
			return buildQuiz(snap, q)
		}),
	}
}

func buildQuiz(snap *store.Snapshot, q models.Quiz) models.QuizDocument {
	return models.QuizDocument{
		Title:       q.Title,
		MaxAttempts: q.MaxAttempts,
		Questions: lo.Map(snap.QuestionsOf(q.ID), func(question models.Question, _ int) models.QuestionDocument {
			return buildQuestion(snap, question)
		}),
	}
}

// buildQuestion normalizes the type-dependent fields: options are
// emitted for multiple_choice only and correct_answer for true_false
// only, so downstream readers never see leftover don't-care values.
func buildQuestion(snap *store.Snapshot, q models.Question) models.QuestionDocument {
	doc := models.QuestionDocument{
		Type:         q.Type,
		QuestionText: q.QuestionText,
		Options:      []models.OptionDocument{},
	}
	switch q.Type {
	case models.QuestionTypeMultipleChoice:
		doc.Options = lo.Map(snap.OptionsOf(q.ID), func(o models.Option, _ int) models.OptionDocument {
			return models.OptionDocument{Text: o.Text, IsCorrect: o.IsCorrect}
		})
	case models.QuestionTypeTrueFalse:
		doc.CorrectAnswer = q.CorrectAnswer
	}
	return doc
}
