package models

import "github.com/google/uuid"

// CourseDocument is the nested course tree handed to the persistence layer.
// It mirrors the create_course payload: course fields at the top, then
// modules, lessons, media items, quizzes, questions and options nested
// inside each other, every array ordered by position.
type CourseDocument struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	CreatedBy   uuid.UUID        `json:"created_by"`
	IsPublished bool             `json:"is_published"`
	Modules     []ModuleDocument `json:"modules"`
}

type ModuleDocument struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Position    int              `json:"position"`
	Lessons     []LessonDocument `json:"lessons"`
}

type LessonDocument struct {
	Title          string          `json:"title"`
	Content        string          `json:"content"`
	Position       int             `json:"position"`
	IsPrerequisite bool            `json:"is_prerequisite"`
	IsPublished    bool            `json:"is_published"`
	MediaItems     []MediaDocument `json:"media_items"`
	Quizzes        []QuizDocument  `json:"quizzes"`
}

type MediaDocument struct {
	URL           string `json:"url"`
	Type          string `json:"type"`
	FileExtension string `json:"file_extension"`
	Name          string `json:"name"`
}

type QuizDocument struct {
	Title       string             `json:"title"`
	MaxAttempts int                `json:"max_attempts"`
	Questions   []QuestionDocument `json:"questions"`
}

type QuestionDocument struct {
	Type          string           `json:"type"`
	QuestionText  string           `json:"question_text"`
	Options       []OptionDocument `json:"options"`
	CorrectAnswer *string          `json:"correct_answer"`
}

type OptionDocument struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}
