package models

import (
	"github.com/google/uuid"
)

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeEssay          = "essay"
)

type Course struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	IsPublished bool      `json:"is_published"`
	CreatedBy   uuid.UUID `json:"created_by"`
}

type Module struct {
	ID          uuid.UUID `json:"id"`
	CourseID    uuid.UUID `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Position    int       `json:"position"`
}

type Lesson struct {
	ID             uuid.UUID `json:"id"`
	ModuleID       uuid.UUID `json:"module_id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Position       int       `json:"position"`
	IsPrerequisite bool      `json:"is_prerequisite"`
	IsPublished    bool      `json:"is_published"`
}

type MediaItem struct {
	ID            uuid.UUID `json:"id"`
	LessonID      uuid.UUID `json:"lesson_id"`
	Type          string    `json:"type"`
	URL           string    `json:"url"`
	Name          string    `json:"name"`
	FileExtension string    `json:"file_extension"`
}

type Quiz struct {
	ID          uuid.UUID `json:"id"`
	LessonID    uuid.UUID `json:"lesson_id"`
	Title       string    `json:"title"`
	MaxAttempts int       `json:"max_attempts"`
}

type Question struct {
	ID           uuid.UUID `json:"id"`
	QuizID       uuid.UUID `json:"quiz_id"`
	Type         string    `json:"type"`
	QuestionText string    `json:"question_text"`
	// CorrectAnswer is meaningful for true_false questions only.
	// Answers for multiple_choice live in the Option collection.
	CorrectAnswer *string `json:"correct_answer"`
}

type Option struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Text       string    `json:"text"`
	IsCorrect  bool      `json:"is_correct"`
}
