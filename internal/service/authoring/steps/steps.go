package steps

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"CourseForge/internal/service/authoring/store"
)

// Step is one stage of the authoring wizard. The sequence is strictly
// linear: BasicInfo, Modules, Lessons, Review.
type Step int

const (
	BasicInfo Step = iota
	Modules
	Lessons
	Review
)

var names = [...]string{"basic_info", "modules", "lessons", "review"}

func (s Step) String() string {
	if s < BasicInfo || s > Review {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return names[s]
}

// ValidationErrors maps an offending field to a human-readable message.
// An empty map means the step may be advanced.
type ValidationErrors map[string]string

func (v ValidationErrors) OK() bool { return len(v) == 0 }

var validate = validator.New()

type basicInfoFields struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Category    string `validate:"required"`
}

type moduleFields struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
}

// Validate checks whether the given snapshot satisfies the step's
// advance predicate. Lessons and Review have no blocking validation;
// Review is terminal and is left to publish/draft instead of advance.
func Validate(step Step, snap *store.Snapshot) ValidationErrors {
	errs := ValidationErrors{}
	switch step {
	case BasicInfo:
		c := snap.Course()
		collect(errs, "", basicInfoFields{
			Title:       c.Title,
			Description: c.Description,
			Category:    c.Category,
		})
	case Modules:
		for i, m := range snap.Modules() {
			collect(errs, fmt.Sprintf("modules[%d].", i), moduleFields{
				Title:       m.Title,
				Description: m.Description,
			})
		}
	}
	return errs
}

func collect(errs ValidationErrors, prefix string, fields any) {
	err := validate.Struct(fields)
	if err == nil {
		return
	}
	for _, fe := range err.(validator.ValidationErrors) {
		name := strings.ToLower(fe.Field())
		errs[prefix+name] = fmt.Sprintf("%s is required", name)
	}
}
