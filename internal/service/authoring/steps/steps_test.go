package steps

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CourseForge/internal/models"
	"CourseForge/internal/service/authoring/store"
)

func TestStepString(t *testing.T) {
	assert.Equal(t, "basic_info", BasicInfo.String())
	assert.Equal(t, "review", Review.String())
	assert.Equal(t, "step(9)", Step(9).String())
}

func TestBasicInfoReportsEveryMissingField(t *testing.T) {
	snap := store.New(uuid.New())

	errs := Validate(BasicInfo, snap)

	require.False(t, errs.OK())
	assert.Equal(t, ValidationErrors{
		"title":       "title is required",
		"description": "description is required",
		"category":    "category is required",
	}, errs)
}

func TestBasicInfoReportsOnlyMissingFields(t *testing.T) {
	snap := store.New(uuid.New()).UpdateCourse(func(c *models.Course) {
		c.Description = "learn things"
	})

	errs := Validate(BasicInfo, snap)

	assert.Len(t, errs, 2)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "category")
	assert.NotContains(t, errs, "description")
}

func TestBasicInfoPassesWhenComplete(t *testing.T) {
	snap := store.New(uuid.New()).UpdateCourse(func(c *models.Course) {
		c.Title = "Go from scratch"
		c.Description = "an introduction"
		c.Category = "programming"
	})

	assert.True(t, Validate(BasicInfo, snap).OK())
}

func TestModulesKeysCarryPosition(t *testing.T) {
	snap := store.New(uuid.New()).AddModule().AddModule()
	first := snap.Modules()[0]
	snap = snap.UpdateModule(first.ID, func(m *models.Module) {
		m.Title = "basics"
		m.Description = "syntax and tooling"
	})

	errs := Validate(Modules, snap)

	assert.Equal(t, ValidationErrors{
		"modules[1].title":       "title is required",
		"modules[1].description": "description is required",
	}, errs)
}

func TestModulesPassesWithNoModules(t *testing.T) {
	// a course with zero modules may still reach review
	assert.True(t, Validate(Modules, store.New(uuid.New())).OK())
}

func TestLessonsAndReviewNeverBlock(t *testing.T) {
	snap := store.New(uuid.New()).AddModule()
	assert.True(t, Validate(Lessons, snap).OK())
	assert.True(t, Validate(Review, snap).OK())
}
