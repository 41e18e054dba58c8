package store

import (
	"github.com/google/uuid"

	"CourseForge/internal/models"
)

// Mutations are total: an unknown id is a silent no-op returning the
// receiver unchanged, and removals are idempotent. New siblings take
// position = current sibling count; positions of survivors are never
// renumbered after a removal.

// UpdateCourse applies fn to a copy of the course record. The course id
// and creator are restored afterwards, so fn can only touch content
// fields.
func (s *Snapshot) UpdateCourse(fn func(*models.Course)) *Snapshot {
	next := s.clone()
	c := next.course
	fn(&c)
	c.ID = next.course.ID
	c.CreatedBy = next.course.CreatedBy
	next.course = c
	return next
}

func (s *Snapshot) AddModule() *Snapshot {
	next := s.clone()
	m := models.Module{
		ID:       uuid.New(),
		CourseID: next.course.ID,
		Position: len(next.moduleIDs),
	}
	next.modules[m.ID] = m
	next.moduleIDs = append(next.moduleIDs, m.ID)
	return next
}

func (s *Snapshot) UpdateModule(id uuid.UUID, fn func(*models.Module)) *Snapshot {
	m, ok := s.modules[id]
	if !ok {
		return s
	}
	next := s.clone()
	fn(&m)
	m.ID = id
	m.CourseID = next.course.ID
	next.modules[id] = m
	return next
}

func (s *Snapshot) RemoveModule(id uuid.UUID) *Snapshot {
	if _, ok := s.modules[id]; !ok {
		return s
	}
	next := s.clone()
	for _, lessonID := range next.lessonsByModule[id] {
		next.dropLesson(lessonID)
	}
	delete(next.lessonsByModule, id)
	delete(next.modules, id)
	next.moduleIDs = removeID(next.moduleIDs, id)
	return next
}

func (s *Snapshot) AddLesson(moduleID uuid.UUID) *Snapshot {
	if _, ok := s.modules[moduleID]; !ok {
		return s
	}
	next := s.clone()
	l := models.Lesson{
		ID:       uuid.New(),
		ModuleID: moduleID,
		Position: len(next.lessonsByModule[moduleID]),
	}
	next.lessons[l.ID] = l
	next.lessonsByModule[moduleID] = append(next.lessonsByModule[moduleID], l.ID)
	return next
}

func (s *Snapshot) UpdateLesson(id uuid.UUID, fn func(*models.Lesson)) *Snapshot {
	l, ok := s.lessons[id]
	if !ok {
		return s
	}
	next := s.clone()
	moduleID := l.ModuleID
	fn(&l)
	l.ID = id
	l.ModuleID = moduleID
	next.lessons[id] = l
	return next
}

func (s *Snapshot) RemoveLesson(id uuid.UUID) *Snapshot {
	l, ok := s.lessons[id]
	if !ok {
		return s
	}
	next := s.clone()
	next.dropLesson(id)
	next.lessonsByModule[l.ModuleID] = removeID(next.lessonsByModule[l.ModuleID], id)
	return next
}

// AddMedia records an already-uploaded file under a lesson. Unlike the
// other entities a media item arrives complete, since the upload decides
// its URL, MIME type and extension.
func (s *Snapshot) AddMedia(lessonID uuid.UUID, item models.MediaItem) *Snapshot {
	if _, ok := s.lessons[lessonID]; !ok {
		return s
	}
	next := s.clone()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.LessonID = lessonID
	next.media[item.ID] = item
	next.mediaByLesson[lessonID] = append(next.mediaByLesson[lessonID], item.ID)
	return next
}

func (s *Snapshot) RemoveMedia(id uuid.UUID) *Snapshot {
	item, ok := s.media[id]
	if !ok {
		return s
	}
	next := s.clone()
	delete(next.media, id)
	next.mediaByLesson[item.LessonID] = removeID(next.mediaByLesson[item.LessonID], id)
	return next
}

func (s *Snapshot) AddQuiz(lessonID uuid.UUID) *Snapshot {
	if _, ok := s.lessons[lessonID]; !ok {
		return s
	}
	next := s.clone()
	q := models.Quiz{
		ID:          uuid.New(),
		LessonID:    lessonID,
		MaxAttempts: 1,
	}
	next.quizzes[q.ID] = q
	next.quizzesByLesson[lessonID] = append(next.quizzesByLesson[lessonID], q.ID)
	return next
}

func (s *Snapshot) UpdateQuiz(id uuid.UUID, fn func(*models.Quiz)) *Snapshot {
	q, ok := s.quizzes[id]
	if !ok {
		return s
	}
	next := s.clone()
	lessonID := q.LessonID
	fn(&q)
	q.ID = id
	q.LessonID = lessonID
	next.quizzes[id] = q
	return next
}

func (s *Snapshot) RemoveQuiz(id uuid.UUID) *Snapshot {
	q, ok := s.quizzes[id]
	if !ok {
		return s
	}
	next := s.clone()
	next.dropQuiz(id)
	next.quizzesByLesson[q.LessonID] = removeID(next.quizzesByLesson[q.LessonID], id)
	return next
}

// AddQuestion seeds a multiple_choice question with two blank options,
// neither pre-marked correct.
func (s *Snapshot) AddQuestion(quizID uuid.UUID) *Snapshot {
	if _, ok := s.quizzes[quizID]; !ok {
		return s
	}
	next := s.clone()
	q := models.Question{
		ID:     uuid.New(),
		QuizID: quizID,
		Type:   models.QuestionTypeMultipleChoice,
	}
	next.questions[q.ID] = q
	next.questionsByQuiz[quizID] = append(next.questionsByQuiz[quizID], q.ID)
	for i := 0; i < 2; i++ {
		o := models.Option{ID: uuid.New(), QuestionID: q.ID}
		next.options[o.ID] = o
		next.optionsByQ[q.ID] = append(next.optionsByQ[q.ID], o.ID)
	}
	return next
}

func (s *Snapshot) UpdateQuestion(id uuid.UUID, fn func(*models.Question)) *Snapshot {
	q, ok := s.questions[id]
	if !ok {
		return s
	}
	next := s.clone()
	quizID := q.QuizID
	fn(&q)
	q.ID = id
	q.QuizID = quizID
	next.questions[id] = q
	return next
}

func (s *Snapshot) RemoveQuestion(id uuid.UUID) *Snapshot {
	q, ok := s.questions[id]
	if !ok {
		return s
	}
	next := s.clone()
	next.dropQuestion(id)
	next.questionsByQuiz[q.QuizID] = removeID(next.questionsByQuiz[q.QuizID], id)
	return next
}

func (s *Snapshot) AddOption(questionID uuid.UUID) *Snapshot {
	if _, ok := s.questions[questionID]; !ok {
		return s
	}
	next := s.clone()
	o := models.Option{ID: uuid.New(), QuestionID: questionID}
	next.options[o.ID] = o
	next.optionsByQ[questionID] = append(next.optionsByQ[questionID], o.ID)
	return next
}

func (s *Snapshot) UpdateOption(id uuid.UUID, fn func(*models.Option)) *Snapshot {
	o, ok := s.options[id]
	if !ok {
		return s
	}
	next := s.clone()
	questionID := o.QuestionID
	fn(&o)
	o.ID = id
	o.QuestionID = questionID
	next.options[id] = o
	return next
}

func (s *Snapshot) RemoveOption(id uuid.UUID) *Snapshot {
	o, ok := s.options[id]
	if !ok {
		return s
	}
	next := s.clone()
	delete(next.options, id)
	next.optionsByQ[o.QuestionID] = removeID(next.optionsByQ[o.QuestionID], id)
	return next
}

// dropLesson removes a lesson and everything under it. The caller owns
// fixing up lessonsByModule for the parent.
func (s *Snapshot) dropLesson(id uuid.UUID) {
	for _, mediaID := range s.mediaByLesson[id] {
		delete(s.media, mediaID)
	}
	delete(s.mediaByLesson, id)
	for _, quizID := range s.quizzesByLesson[id] {
		s.dropQuiz(quizID)
	}
	delete(s.quizzesByLesson, id)
	delete(s.lessons, id)
}

func (s *Snapshot) dropQuiz(id uuid.UUID) {
	for _, questionID := range s.questionsByQuiz[id] {
		s.dropQuestion(questionID)
	}
	delete(s.questionsByQuiz, id)
	delete(s.quizzes, id)
}

func (s *Snapshot) dropQuestion(id uuid.UUID) {
	for _, optionID := range s.optionsByQ[id] {
		delete(s.options, optionID)
	}
	delete(s.optionsByQ, id)
	delete(s.questions, id)
}
