package outline

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"CourseForge/internal/app_errors"
	"CourseForge/pkg/logger"
)

const systemPrompt = `You are an AI course designer specializing in outlines for online courses.
Given a course description and a settings JSON, respond with a single JSON object:
{"title": string, "description": string, "category": string,
 "modules": [{"title": string, "description": string,
   "lessons": [{"title": string}],
   "quiz": {"title": string, "question_count": number}}]}
Respond with JSON only, no prose.`

// Settings steer the generated outline.
type Settings struct {
	ModuleCount      int `json:"module_count"`
	LessonsPerModule int `json:"lessons_per_module"`
	QuizQuestions    int `json:"quiz_questions"`
	PassingPct       int `json:"passing_pct"`
}

// Outline is the parsed draft the wizard may seed its graph from.
type Outline struct {
	Title       string
	Description string
	Category    string
	Modules     []ModuleOutline
}

type ModuleOutline struct {
	Title       string
	Description string
	Lessons     []string
	Quiz        *QuizOutline
}

type QuizOutline struct {
	Title         string
	QuestionCount int
}

// Service drafts course outlines through a messages-style LLM API. The
// model's reply is primed with an opening brace and parsed tolerantly;
// anything that is not valid JSON is discarded so the wizard simply
// starts empty.
type Service struct {
	log    logger.Log
	client *resty.Client
	model  string
}

func New(log logger.Log, baseURL, apiKey, model string, timeout time.Duration) *Service {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", "2023-06-01").
		SetHeader("Content-Type", "application/json")
	return &Service{log: log, client: client, model: model}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (s *Service) Generate(ctx context.Context, description string, settings Settings) (*Outline, error) {
	input := fmt.Sprintf("Course Description: %s Settings JSON: {\"module_count\":%d,\"lessons_per_module\":%d,\"quiz_questions\":%d,\"passing_pct\":%d}",
		description, settings.ModuleCount, settings.LessonsPerModule, settings.QuizQuestions, settings.PassingPct)

	body := messageRequest{
		Model:     s.model,
		MaxTokens: 8000,
		System:    systemPrompt,
		Messages: []message{
			{Role: "user", Content: input},
			{Role: "assistant", Content: "{"},
		},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/v1/messages")
	if err != nil {
		return nil, fmt.Errorf("outline request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("outline request failed with status %d", resp.StatusCode())
	}

	text := gjson.GetBytes(resp.Body(), "content.0.text").String()
	return Parse("{" + text)
}

// Parse extracts an outline from raw model output. Strict about shape
// but forgiving about extras: unknown fields are ignored, missing
// arrays yield empty slices.
func Parse(raw string) (*Outline, error) {
	if !gjson.Valid(raw) {
		return nil, app_errors.ErrMalformedOutline
	}
	doc := gjson.Parse(raw)
	if !doc.IsObject() || !doc.Get("title").Exists() {
		return nil, app_errors.ErrMalformedOutline
	}

	out := &Outline{
		Title:       doc.Get("title").String(),
		Description: doc.Get("description").String(),
		Category:    doc.Get("category").String(),
	}
	for _, m := range doc.Get("modules").Array() {
		mod := ModuleOutline{
			Title:       m.Get("title").String(),
			Description: m.Get("description").String(),
		}
		for _, l := range m.Get("lessons").Array() {
			if title := l.Get("title").String(); title != "" {
				mod.Lessons = append(mod.Lessons, title)
			}
		}
		if quiz := m.Get("quiz"); quiz.IsObject() {
			mod.Quiz = &QuizOutline{
				Title:         quiz.Get("title").String(),
				QuestionCount: int(quiz.Get("question_count").Int()),
			}
		}
		out.Modules = append(out.Modules, mod)
	}
	return out, nil
}
