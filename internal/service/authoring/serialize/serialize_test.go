package serialize

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CourseForge/internal/models"
	"CourseForge/internal/service/authoring/store"
)

func sampleSnapshot(creatorID uuid.UUID) *store.Snapshot {
	s := store.New(creatorID).UpdateCourse(func(c *models.Course) {
		c.Title = "Go from scratch"
		c.Description = "an introduction"
		c.Category = "programming"
	})

	s = s.AddModule()
	moduleID := s.Modules()[0].ID
	s = s.UpdateModule(moduleID, func(m *models.Module) {
		m.Title = "basics"
		m.Description = "syntax and tooling"
	})

	s = s.AddLesson(moduleID).AddLesson(moduleID)
	lessons := s.LessonsOf(moduleID)
	s = s.UpdateLesson(lessons[0].ID, func(l *models.Lesson) { l.Title = "hello world" })
	s = s.UpdateLesson(lessons[1].ID, func(l *models.Lesson) { l.Title = "packages" })

	s = s.AddQuiz(lessons[1].ID)
	quizID := s.QuizzesOf(lessons[1].ID)[0].ID
	s = s.AddQuestion(quizID)
	return s
}

func TestBuildNestsByParentAndPosition(t *testing.T) {
	creator := uuid.New()
	doc := Build(sampleSnapshot(creator), Draft)

	assert.Equal(t, "Go from scratch", doc.Title)
	assert.Equal(t, creator, doc.CreatedBy)

	require.Len(t, doc.Modules, 1)
	m := doc.Modules[0]
	assert.Equal(t, "basics", m.Title)
	require.Len(t, m.Lessons, 2)
	assert.Equal(t, "hello world", m.Lessons[0].Title)
	assert.Equal(t, "packages", m.Lessons[1].Title)

	assert.Empty(t, m.Lessons[0].Quizzes)
	require.Len(t, m.Lessons[1].Quizzes, 1)
	require.Len(t, m.Lessons[1].Quizzes[0].Questions, 1)
	assert.Len(t, m.Lessons[1].Quizzes[0].Questions[0].Options, 2)
}

func TestBuildIsDeterministic(t *testing.T) {
	s := sampleSnapshot(uuid.New())
	assert.Equal(t, Build(s, Publish), Build(s, Publish))
}

func TestIntentStampsCourseAndEveryLesson(t *testing.T) {
	s := sampleSnapshot(uuid.New())
	// published flags in the snapshot are ignored, intent wins
	s = s.UpdateLesson(s.LessonsOf(s.Modules()[0].ID)[0].ID, func(l *models.Lesson) {
		l.IsPublished = true
	})

	draft := Build(s, Draft)
	assert.False(t, draft.IsPublished)
	for _, l := range draft.Modules[0].Lessons {
		assert.False(t, l.IsPublished)
	}

	published := Build(s, Publish)
	assert.True(t, published.IsPublished)
	for _, l := range published.Modules[0].Lessons {
		assert.True(t, l.IsPublished)
	}
}

func TestLessonsFollowStoredPositionsNotInsertionOrder(t *testing.T) {
	s := store.New(uuid.New()).AddModule()
	moduleID := s.Modules()[0].ID
	s = s.AddLesson(moduleID).AddLesson(moduleID).AddLesson(moduleID)
	lessons := s.LessonsOf(moduleID)

	// swap the first and last lessons by editing positions
	s = s.UpdateLesson(lessons[0].ID, func(l *models.Lesson) { l.Position = 2; l.Title = "last" })
	s = s.UpdateLesson(lessons[2].ID, func(l *models.Lesson) { l.Position = 0; l.Title = "first" })

	doc := Build(s, Draft)
	require.Len(t, doc.Modules[0].Lessons, 3)
	assert.Equal(t, "first", doc.Modules[0].Lessons[0].Title)
	assert.Equal(t, "last", doc.Modules[0].Lessons[2].Title)
}

func TestTrueFalseQuestionCarriesAnswerNotOptions(t *testing.T) {
	s := sampleSnapshot(uuid.New())
	moduleID := s.Modules()[0].ID
	lessonID := s.LessonsOf(moduleID)[1].ID
	quizID := s.QuizzesOf(lessonID)[0].ID
	questionID := s.QuestionsOf(quizID)[0].ID

	answer := "true"
	s = s.UpdateQuestion(questionID, func(q *models.Question) {
		q.Type = models.QuestionTypeTrueFalse
		q.CorrectAnswer = &answer
	})

	doc := Build(s, Draft)
	q := doc.Modules[0].Lessons[1].Quizzes[0].Questions[0]
	assert.Equal(t, models.QuestionTypeTrueFalse, q.Type)
	require.NotNil(t, q.CorrectAnswer)
	assert.Equal(t, "true", *q.CorrectAnswer)
	// the two seeded options are dropped for non-choice questions
	assert.Empty(t, q.Options)
}

func TestMultipleChoiceQuestionDropsCorrectAnswer(t *testing.T) {
	s := sampleSnapshot(uuid.New())
	moduleID := s.Modules()[0].ID
	lessonID := s.LessonsOf(moduleID)[1].ID
	quizID := s.QuizzesOf(lessonID)[0].ID
	questionID := s.QuestionsOf(quizID)[0].ID

	stray := "true"
	s = s.UpdateQuestion(questionID, func(q *models.Question) {
		q.CorrectAnswer = &stray
	})

	q := Build(s, Draft).Modules[0].Lessons[1].Quizzes[0].Questions[0]
	assert.Nil(t, q.CorrectAnswer)
	assert.Len(t, q.Options, 2)
}

func TestMediaItemsSerializedUnderLesson(t *testing.T) {
	s := store.New(uuid.New()).AddModule()
	moduleID := s.Modules()[0].ID
	s = s.AddLesson(moduleID)
	lessonID := s.LessonsOf(moduleID)[0].ID
	s = s.AddMedia(lessonID, models.MediaItem{
		Type:          "video/mp4",
		URL:           "https://cdn.example.com/clip.mp4",
		Name:          "clip.mp4",
		FileExtension: "mp4",
	})

	doc := Build(s, Draft)
	media := doc.Modules[0].Lessons[0].MediaItems
	require.Len(t, media, 1)
	assert.Equal(t, "video/mp4", media[0].Type)
	assert.Equal(t, "https://cdn.example.com/clip.mp4", media[0].URL)
	assert.Equal(t, "mp4", media[0].FileExtension)
}
