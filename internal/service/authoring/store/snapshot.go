package store

import (
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"CourseForge/internal/models"
)

// Snapshot holds the flat entity collections of one authoring session:
// the course under construction plus its modules, lessons, media items,
// quizzes, questions and options, each child keyed by its parent id
// through an adjacency index. Snapshots are immutable; every mutation
// returns a new Snapshot and leaves the receiver untouched.
type Snapshot struct {
	course models.Course

	modules   map[uuid.UUID]models.Module
	lessons   map[uuid.UUID]models.Lesson
	media     map[uuid.UUID]models.MediaItem
	quizzes   map[uuid.UUID]models.Quiz
	questions map[uuid.UUID]models.Question
	options   map[uuid.UUID]models.Option

	moduleIDs       []uuid.UUID
	lessonsByModule map[uuid.UUID][]uuid.UUID
	mediaByLesson   map[uuid.UUID][]uuid.UUID
	quizzesByLesson map[uuid.UUID][]uuid.UUID
	questionsByQuiz map[uuid.UUID][]uuid.UUID
	optionsByQ      map[uuid.UUID][]uuid.UUID
}

// New starts an empty snapshot for the given creator. The course record
// exists from the first moment with blank fields; the basic-info step
// fills it in.
func New(creatorID uuid.UUID) *Snapshot {
	return &Snapshot{
		course: models.Course{
			ID:        uuid.New(),
			CreatedBy: creatorID,
		},
		modules:         map[uuid.UUID]models.Module{},
		lessons:         map[uuid.UUID]models.Lesson{},
		media:           map[uuid.UUID]models.MediaItem{},
		quizzes:         map[uuid.UUID]models.Quiz{},
		questions:       map[uuid.UUID]models.Question{},
		options:         map[uuid.UUID]models.Option{},
		lessonsByModule: map[uuid.UUID][]uuid.UUID{},
		mediaByLesson:   map[uuid.UUID][]uuid.UUID{},
		quizzesByLesson: map[uuid.UUID][]uuid.UUID{},
		questionsByQuiz: map[uuid.UUID][]uuid.UUID{},
		optionsByQ:      map[uuid.UUID][]uuid.UUID{},
	}
}

func (s *Snapshot) Course() models.Course {
	return s.course
}

// Modules returns all modules ordered by position ascending.
func (s *Snapshot) Modules() []models.Module {
	out := lo.Map(s.moduleIDs, func(id uuid.UUID, _ int) models.Module {
		return s.modules[id]
	})
	slices.SortStableFunc(out, func(a, b models.Module) int {
		return a.Position - b.Position
	})
	return out
}

// LessonsOf returns the lessons of one module ordered by position ascending.
func (s *Snapshot) LessonsOf(moduleID uuid.UUID) []models.Lesson {
	out := lo.Map(s.lessonsByModule[moduleID], func(id uuid.UUID, _ int) models.Lesson {
		return s.lessons[id]
	})
	slices.SortStableFunc(out, func(a, b models.Lesson) int {
		return a.Position - b.Position
	})
	return out
}

// MediaOf returns the media items of one lesson in insertion order.
func (s *Snapshot) MediaOf(lessonID uuid.UUID) []models.MediaItem {
	return lo.Map(s.mediaByLesson[lessonID], func(id uuid.UUID, _ int) models.MediaItem {
		return s.media[id]
	})
}

// QuizzesOf returns the quizzes of one lesson in insertion order.
func (s *Snapshot) QuizzesOf(lessonID uuid.UUID) []models.Quiz {
	return lo.Map(s.quizzesByLesson[lessonID], func(id uuid.UUID, _ int) models.Quiz {
		return s.quizzes[id]
	})
}

// QuestionsOf returns the questions of one quiz in insertion order.
func (s *Snapshot) QuestionsOf(quizID uuid.UUID) []models.Question {
	return lo.Map(s.questionsByQuiz[quizID], func(id uuid.UUID, _ int) models.Question {
		return s.questions[id]
	})
}

// OptionsOf returns the options of one question in insertion order.
func (s *Snapshot) OptionsOf(questionID uuid.UUID) []models.Option {
	return lo.Map(s.optionsByQ[questionID], func(id uuid.UUID, _ int) models.Option {
		return s.options[id]
	})
}

func (s *Snapshot) Module(id uuid.UUID) (models.Module, bool) {
	m, ok := s.modules[id]
	return m, ok
}

func (s *Snapshot) Lesson(id uuid.UUID) (models.Lesson, bool) {
	l, ok := s.lessons[id]
	return l, ok
}

func (s *Snapshot) Media(id uuid.UUID) (models.MediaItem, bool) {
	item, ok := s.media[id]
	return item, ok
}

// AllMedia returns every media item in the snapshot regardless of
// lesson, for callers that need to clean up uploaded objects.
func (s *Snapshot) AllMedia() []models.MediaItem {
	return lo.Values(s.media)
}

func (s *Snapshot) Quiz(id uuid.UUID) (models.Quiz, bool) {
	q, ok := s.quizzes[id]
	return q, ok
}

func (s *Snapshot) Question(id uuid.UUID) (models.Question, bool) {
	q, ok := s.questions[id]
	return q, ok
}

func (s *Snapshot) Counts() (modules, lessons, media, quizzes, questions, options int) {
	return len(s.modules), len(s.lessons), len(s.media), len(s.quizzes), len(s.questions), len(s.options)
}

// clone copies every collection so mutations on the copy never leak into
// the receiver. Entity values are plain structs, so shallow map copies
// are enough.
func (s *Snapshot) clone() *Snapshot {
	return &Snapshot{
		course:          s.course,
		modules:         maps.Clone(s.modules),
		lessons:         maps.Clone(s.lessons),
		media:           maps.Clone(s.media),
		quizzes:         maps.Clone(s.quizzes),
		questions:       maps.Clone(s.questions),
		options:         maps.Clone(s.options),
		moduleIDs:       slices.Clone(s.moduleIDs),
		lessonsByModule: cloneIndex(s.lessonsByModule),
		mediaByLesson:   cloneIndex(s.mediaByLesson),
		quizzesByLesson: cloneIndex(s.quizzesByLesson),
		questionsByQuiz: cloneIndex(s.questionsByQuiz),
		optionsByQ:      cloneIndex(s.optionsByQ),
	}
}

func cloneIndex(idx map[uuid.UUID][]uuid.UUID) map[uuid.UUID][]uuid.UUID {
	out := make(map[uuid.UUID][]uuid.UUID, len(idx))
	for parent, children := range idx {
		out[parent] = slices.Clone(children)
	}
	return out
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	return slices.DeleteFunc(ids, func(x uuid.UUID) bool { return x == id })
}
