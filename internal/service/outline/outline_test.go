package outline

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"CourseForge/internal/app_errors"
	"CourseForge/pkg/logger"
)

const sampleOutline = `{
	"title": "Go from scratch",
	"description": "an introduction",
	"category": "programming",
	"modules": [
		{
			"title": "basics",
			"description": "syntax and tooling",
			"lessons": [{"title": "hello world"}, {"title": "packages"}],
			"quiz": {"title": "basics check", "question_count": 2}
		},
		{
			"title": "concurrency",
			"description": "goroutines and channels",
			"lessons": [{"title": "goroutines"}]
		}
	]
}`

func TestParseValidOutline(t *testing.T) {
	out, err := Parse(sampleOutline)

	require.NoError(t, err)
	assert.Equal(t, "Go from scratch", out.Title)
	assert.Equal(t, "programming", out.Category)
	require.Len(t, out.Modules, 2)

	basics := out.Modules[0]
	assert.Equal(t, []string{"hello world", "packages"}, basics.Lessons)
	require.NotNil(t, basics.Quiz)
	assert.Equal(t, "basics check", basics.Quiz.Title)
	assert.Equal(t, 2, basics.Quiz.QuestionCount)

	assert.Nil(t, out.Modules[1].Quiz)
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	for _, raw := range []string{
		`{"title": "truncated`,
		`not json at all`,
		`["an", "array"]`,
		`{"description": "no title"}`,
	} {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, app_errors.ErrMalformedOutline, "input: %s", raw)
	}
}

func TestParseToleratesMissingArrays(t *testing.T) {
	out, err := Parse(`{"title": "bare", "modules": [{"title": "empty"}]}`)

	require.NoError(t, err)
	require.Len(t, out.Modules, 1)
	assert.Empty(t, out.Modules[0].Lessons)
	assert.Nil(t, out.Modules[0].Quiz)
}

func TestGenerateReattachesPrefilledBrace(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		// the assistant turn was primed with "{", so the reply omits it
		_, _ = w.Write([]byte(`{"content": [{"type": "text", "text": "\"title\": \"Go from scratch\", \"modules\": []}"}]}`))
	}))
	defer srv.Close()

	svc := New(logger.New("local"), srv.URL, "test-key", "test-model", 5*time.Second)
	out, err := svc.Generate(context.Background(), "a go course", Settings{ModuleCount: 2})

	require.NoError(t, err)
	assert.Equal(t, "Go from scratch", out.Title)

	body := gjson.ParseBytes(gotBody)
	assert.Equal(t, "test-model", body.Get("model").String())
	assert.Equal(t, "assistant", body.Get("messages.1.role").String())
	assert.Equal(t, "{", body.Get("messages.1.content").String())
}

func TestGenerateSurfacesUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := New(logger.New("local"), srv.URL, "test-key", "test-model", 5*time.Second)
	_, err := svc.Generate(context.Background(), "a go course", Settings{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSeedBuildsGraphFromOutline(t *testing.T) {
	out, err := Parse(sampleOutline)
	require.NoError(t, err)

	creator := uuid.New()
	snap := Seed(creator, out)

	assert.Equal(t, "Go from scratch", snap.Course().Title)
	assert.Equal(t, creator, snap.Course().CreatedBy)

	modules := snap.Modules()
	require.Len(t, modules, 2)
	assert.Equal(t, "basics", modules[0].Title)
	assert.Equal(t, "concurrency", modules[1].Title)

	lessons := snap.LessonsOf(modules[0].ID)
	require.Len(t, lessons, 2)
	assert.Equal(t, "hello world", lessons[0].Title)

	// quiz hangs off the module's first lesson with the requested count
	quizzes := snap.QuizzesOf(lessons[0].ID)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "basics check", quizzes[0].Title)
	assert.Len(t, snap.QuestionsOf(quizzes[0].ID), 2)

	assert.Empty(t, snap.QuizzesOf(snap.LessonsOf(modules[1].ID)[0].ID))
}

func TestSeedWithoutLessonsSkipsQuiz(t *testing.T) {
	out := &Outline{
		Title:   "bare",
		Modules: []ModuleOutline{{Title: "empty", Quiz: &QuizOutline{Title: "orphan", QuestionCount: 3}}},
	}

	snap := Seed(uuid.New(), out)

	_, _, _, quizzes, questions, _ := snap.Counts()
	assert.Zero(t, quizzes)
	assert.Zero(t, questions)
}
