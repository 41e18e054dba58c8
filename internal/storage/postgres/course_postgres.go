package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"CourseForge/internal/models"
)

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

// CreateCourseTree persists a whole serialized course in one
// transaction: the course row first, then modules, lessons, media,
// quizzes, questions and options, each child referencing the generated
// parent id. Either everything lands or nothing does.
func (r *CoursePostgres) CreateCourseTree(ctx context.Context, doc models.CourseDocument) (uuid.UUID, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin course tree tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var courseID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO courses (title, description, category, created_by, is_published)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, doc.Title, doc.Description, doc.Category, doc.CreatedBy, doc.IsPublished).Scan(&courseID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert course: %w", err)
	}

	for _, module := range doc.Modules {
		var moduleID uuid.UUID
		err = tx.QueryRow(ctx, `
			INSERT INTO course_modules (course_id, title, description, position)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, courseID, module.Title, module.Description, module.Position).Scan(&moduleID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert module: %w", err)
		}

		for _, lesson := range module.Lessons {
			if err = r.insertLesson(ctx, tx, courseID, moduleID, lesson); err != nil {
				return uuid.Nil, err
			}
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit course tree: %w", err)
	}
	return courseID, nil
}

func (r *CoursePostgres) insertLesson(ctx context.Context, tx pgx.Tx, courseID, moduleID uuid.UUID, lesson models.LessonDocument) error {
	var lessonID uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO lessons (course_id, module_id, title, content, position, is_prerequisite, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, courseID, moduleID, lesson.Title, lesson.Content, lesson.Position, lesson.IsPrerequisite, lesson.IsPublished).Scan(&lessonID)
	if err != nil {
		return fmt.Errorf("insert lesson: %w", err)
	}

	for _, item := range lesson.MediaItems {
		_, err = tx.Exec(ctx, `
			INSERT INTO media_library (lesson_id, url, type, file_extension, name)
			VALUES ($1, $2, $3, $4, $5)
		`, lessonID, item.URL, item.Type, item.FileExtension, item.Name)
		if err != nil {
			return fmt.Errorf("insert media item: %w", err)
		}
	}

	for _, quiz := range lesson.Quizzes {
		var quizID uuid.UUID
		err = tx.QueryRow(ctx, `
			INSERT INTO quizzes (lesson_id, title, max_attempts)
			VALUES ($1, $2, $3)
			RETURNING id
		`, lessonID, quiz.Title, quiz.MaxAttempts).Scan(&quizID)
		if err != nil {
			return fmt.Errorf("insert quiz: %w", err)
		}

		for _, question := range quiz.Questions {
			var questionID uuid.UUID
			err = tx.QueryRow(ctx, `
				INSERT INTO questions (quiz_id, type, question_text, correct_answer)
				VALUES ($1, $2, $3, $4)
				RETURNING id
			`, quizID, question.Type, question.QuestionText, question.CorrectAnswer).Scan(&questionID)
			if err != nil {
				return fmt.Errorf("insert question: %w", err)
			}

			for _, option := range question.Options {
				_, err = tx.Exec(ctx, `
					INSERT INTO question_options (question_id, text, is_correct)
					VALUES ($1, $2, $3)
				`, questionID, option.Text, option.IsCorrect)
				if err != nil {
					return fmt.Errorf("insert option: %w", err)
				}
			}
		}
	}
	return nil
}
