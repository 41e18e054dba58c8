package authoring

import (
	"sync"

	"github.com/google/uuid"

	"CourseForge/internal/models"
	"CourseForge/internal/service/authoring/steps"
	"CourseForge/internal/service/authoring/store"
)

// Session is one user's pass through the authoring wizard: the current
// step plus the in-memory course graph. All entered data survives
// forward and backward navigation; only an explicit reset or a
// successful commit discards it.
type Session struct {
	ID        uuid.UUID
	CreatorID uuid.UUID

	mu   sync.Mutex
	step steps.Step
	snap *store.Snapshot
}

func newSession(creatorID uuid.UUID, snap *store.Snapshot) *Session {
	if snap == nil {
		snap = store.New(creatorID)
	}
	return &Session{
		ID:        uuid.New(),
		CreatorID: creatorID,
		step:      steps.BasicInfo,
		snap:      snap,
	}
}

func (s *Session) Step() steps.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Session) Snapshot() *store.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Advance moves to the next step if the current step's validation
// passes. On failure the returned map names each offending field and
// the step stays put.
func (s *Session) Advance() steps.ValidationErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step >= steps.Review {
		return steps.ValidationErrors{}
	}
	errs := steps.Validate(s.step, s.snap)
	if !errs.OK() {
		return errs
	}
	s.step++
	return errs
}

// Retreat steps back unconditionally without touching entered data.
func (s *Session) Retreat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step > steps.BasicInfo {
		s.step--
	}
}

// Reset discards the whole graph and starts over from basic info.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = steps.BasicInfo
	s.snap = store.New(s.CreatorID)
}

// Mutate swaps in the snapshot produced by fn. Every store mutation is
// total, so fn has no error path.
func (s *Session) Mutate(fn func(*store.Snapshot) *store.Snapshot) *store.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = fn(s.snap)
	return s.snap
}

func (s *Session) SetBasicInfo(title, description, category string) *store.Snapshot {
	return s.Mutate(func(snap *store.Snapshot) *store.Snapshot {
		return snap.UpdateCourse(func(c *models.Course) {
			c.Title = title
			c.Description = description
			c.Category = category
		})
	})
}
