package wizard

import (
	"github.com/samber/lo"

	"CourseForge/internal/models"
	"CourseForge/internal/service/authoring"
	"CourseForge/internal/service/authoring/store"
)

// The view keeps entity ids so the client can address parts of the
// tree, unlike the persistence document which strips them.

type sessionViewResponse struct {
	SessionID string       `json:"session_id"`
	Step      string       `json:"step"`
	Course    courseView   `json:"course"`
	Modules   []moduleView `json:"modules"`
}

type courseView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type moduleView struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Position    int          `json:"position"`
	Lessons     []lessonView `json:"lessons"`
}

type lessonView struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Content        string      `json:"content"`
	Position       int         `json:"position"`
	IsPrerequisite bool        `json:"is_prerequisite"`
	MediaItems     []mediaView `json:"media_items"`
	Quizzes        []quizView  `json:"quizzes"`
}

type mediaView struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	URL           string `json:"url"`
	Name          string `json:"name"`
	FileExtension string `json:"file_extension"`
}

type quizView struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	MaxAttempts int            `json:"max_attempts"`
	Questions   []questionView `json:"questions"`
}

type questionView struct {
	ID            string       `json:"id"`
	Type          string       `json:"type"`
	QuestionText  string       `json:"question_text"`
	Options       []optionView `json:"options"`
	CorrectAnswer *string      `json:"correct_answer"`
}

type optionView struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

func sessionView(session *authoring.Session) sessionViewResponse {
	snap := session.Snapshot()
	course := snap.Course()
	return sessionViewResponse{
		SessionID: session.ID.String(),
		Step:      session.Step().String(),
		Course: courseView{
			ID:          course.ID.String(),
			Title:       course.Title,
			Description: course.Description,
			Category:    course.Category,
		},
		Modules: lo.Map(snap.Modules(), func(m models.Module, _ int) moduleView {
			return viewModule(snap, m)
		}),
	}
}

func viewModule(snap *store.Snapshot, m models.Module) moduleView {
	return moduleView{
		ID:          m.ID.String(),
		Title:       m.Title,
		Description: m.Description,
		Position:    m.Position,
		Lessons: lo.Map(snap.LessonsOf(m.ID), func(l models.Lesson, _ int) lessonView {
			return viewLesson(snap, l)
		}),
	}
}

func viewLesson(snap *store.Snapshot, l models.Lesson) lessonView {
	return lessonView{
		ID:             l.ID.String(),
		Title:          l.Title,
		Content:        l.Content,
		Position:       l.Position,
		IsPrerequisite: l.IsPrerequisite,
		MediaItems: lo.Map(snap.MediaOf(l.ID), func(item models.MediaItem, _ int) mediaView {
			return mediaView{
				ID:            item.ID.String(),
				Type:          item.Type,
				URL:           item.URL,
				Name:          item.Name,
				FileExtension: item.FileExtension,
			}
		}),
		Quizzes: lo.Map(snap.QuizzesOf(l.ID), func(q models.Quiz, _ int) quizView {
			return viewQuiz(snap, q)
		}),
	}
}

func viewQuiz(snap *store.Snapshot, q models.Quiz) quizView {
	return quizView{
		ID:          q.ID.String(),
		Title:       q.Title,
		MaxAttempts: q.MaxAttempts,
		Questions: lo.Map(snap.QuestionsOf(q.ID), func(question models.Question, _ int) questionView {
			return questionView{
				ID:            question.ID.String(),
				Type:          question.Type,
				QuestionText:  question.QuestionText,
				CorrectAnswer: question.CorrectAnswer,
				Options: lo.Map(snap.OptionsOf(question.ID), func(o models.Option, _ int) optionView {
					return optionView{
						ID:        o.ID.String(),
						Text:      o.Text,
						IsCorrect: o.IsCorrect,
					}
				}),
			}
		}),
	}
}
