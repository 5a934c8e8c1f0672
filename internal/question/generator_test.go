package question

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"careerprep/interview/internal/models"
	"careerprep/interview/internal/prompts"
)

type mockProvider struct {
	response string
	err      error
	calls    int
}

func (m *mockProvider) Complete(ctx context.Context, prompt string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockProvider) CompleteStream(ctx context.Context, prompt string, fn func(chunk string) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(m.response)
}

func (m *mockProvider) GetProviderName() string {
	return "mock"
}

func newTestGenerator(t *testing.T, provider *mockProvider) *Generator {
	t.Helper()
	pm, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager() error = %v", err)
	}
	if provider == nil {
		return NewGenerator(nil, pm, zap.NewNop())
	}
	return NewGenerator(provider, pm, zap.NewNop())
}

func TestExpandDistribution(t *testing.T) {
	tests := []struct {
		name         string
		distribution map[string]int
		count        int
		want         []models.Difficulty
	}{
		{
			name:         "exact count",
			distribution: map[string]int{"easy": 1, "medium": 2, "hard": 1},
			count:        4,
			want: []models.Difficulty{
				models.DifficultyEasy,
				models.DifficultyMedium,
				models.DifficultyMedium,
				models.DifficultyHard,
			},
		},
		{
			name:         "pads with rotation",
			distribution: map[string]int{"easy": 1},
			count:        4,
			want: []models.Difficulty{
				models.DifficultyEasy,
				models.DifficultyMedium,
				models.DifficultyEasy,
				models.DifficultyHard,
			},
		},
		{
			name:         "truncates overflow",
			distribution: map[string]int{"easy": 5},
			count:        2,
			want: []models.Difficulty{
				models.DifficultyEasy,
				models.DifficultyEasy,
			},
		},
		{
			name:         "empty distribution",
			distribution: map[string]int{},
			count:        3,
			want: []models.Difficulty{
				models.DifficultyMedium,
				models.DifficultyEasy,
				models.DifficultyHard,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandDistribution(tt.distribution, tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("expandDistribution() len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("expandDistribution()[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGenerateExactCountAndOrder(t *testing.T) {
	provider := &mockProvider{response: `{"question": "What is a goroutine?", "expected_keywords": ["concurrency"], "follow_up_questions": ["How do channels work?"]}`}
	g := newTestGenerator(t, provider)

	config := models.InterviewConfig{
		Role:                   "Backend Engineer",
		Topic:                  "Go",
		NumQuestions:           5,
		DifficultyDistribution: map[string]int{"easy": 1, "medium": 3, "hard": 1},
	}

	questions := g.Generate(context.Background(), config, models.CandidateProfile{})
	if len(questions) != 5 {
		t.Fatalf("Generate() returned %d questions, want 5", len(questions))
	}
	for i, q := range questions {
		if q.Index != i {
			t.Errorf("question %d has index %d", i, q.Index)
		}
		if q.ID == "" {
			t.Errorf("question %d has no ID", i)
		}
		if q.Question != "What is a goroutine?" {
			t.Errorf("question %d text = %q", i, q.Question)
		}
	}
}

func TestGenerateFallbackOnProviderError(t *testing.T) {
	provider := &mockProvider{err: errors.New("quota exceeded")}
	g := newTestGenerator(t, provider)

	config := models.InterviewConfig{
		Role:         "Data Engineer",
		Topic:        "SQL",
		NumQuestions: 7,
	}

	questions := g.Generate(context.Background(), config, models.CandidateProfile{})
	if len(questions) != 7 {
		t.Fatalf("Generate() returned %d questions, want 7", len(questions))
	}
	// Fallbacks rotate through five fixed formats.
	if questions[0].Question != questions[5].Question {
		t.Errorf("fallback rotation broken: %q vs %q", questions[0].Question, questions[5].Question)
	}
	for i, q := range questions {
		if !strings.Contains(q.Question, "SQL") && !strings.Contains(q.Question, "Data Engineer") {
			t.Errorf("fallback question %d mentions neither topic nor role: %q", i, q.Question)
		}
	}
}

func TestGenerateWithoutProvider(t *testing.T) {
	g := newTestGenerator(t, nil)

	config := models.InterviewConfig{
		Role:         "Engineer",
		NumQuestions: 3,
	}

	questions := g.Generate(context.Background(), config, models.CandidateProfile{})
	if len(questions) != 3 {
		t.Fatalf("Generate() returned %d questions, want 3", len(questions))
	}
	for _, q := range questions {
		if q.Topic != "General" {
			t.Errorf("topic = %q, want General when config has none", q.Topic)
		}
	}
}

func TestGenerateFromTemplateBank(t *testing.T) {
	provider := &mockProvider{response: `{"question": "Generated question"}`}
	g := newTestGenerator(t, provider)

	config := models.InterviewConfig{
		Role:                   "Software Engineer",
		TemplateID:             "software_engineer",
		NumQuestions:           3,
		DifficultyDistribution: map[string]int{"easy": 1, "medium": 1, "hard": 1},
	}

	questions := g.Generate(context.Background(), config, models.CandidateProfile{})
	if len(questions) != 3 {
		t.Fatalf("Generate() returned %d questions, want 3", len(questions))
	}

	seen := make(map[string]bool)
	for _, q := range questions {
		if seen[q.Question] {
			t.Errorf("duplicate question drawn from bank: %q", q.Question)
		}
		seen[q.Question] = true
	}
	// Bank covers all three difficulties, so no LLM calls expected.
	if provider.calls != 0 {
		t.Errorf("provider called %d times, want 0 with full bank coverage", provider.calls)
	}
}

func TestGenerateRotatesQuestionTypes(t *testing.T) {
	provider := &mockProvider{response: `{"question": "A question"}`}
	g := newTestGenerator(t, provider)

	config := models.InterviewConfig{
		Role:         "Engineer",
		Topic:        "Systems",
		NumQuestions: 4,
	}

	questions := g.Generate(context.Background(), config, models.CandidateProfile{})
	want := []models.QuestionSource{
		models.SourceTechnical,
		models.SourceBehavioral,
		models.SourceRoleBased,
		models.SourceTechnical,
	}
	for i, q := range questions {
		if q.Source != want[i] {
			t.Errorf("question %d source = %s, want %s", i, q.Source, want[i])
		}
	}
}

func TestParseQuestionResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "clean json",
			content: `{"question": "Explain indexes"}`,
			want:    "Explain indexes",
		},
		{
			name:    "json wrapped in prose",
			content: "Here you go:\n```json\n{\"question\": \"Explain joins\"}\n```\nDone.",
			want:    "Explain joins",
		},
		{
			name:    "no json falls back to raw text",
			content: "Just a plain question?",
			want:    "Just a plain question?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseQuestionResponse(tt.content, "General")
			if got.Question != tt.want {
				t.Errorf("parseQuestionResponse() = %q, want %q", got.Question, tt.want)
			}
		})
	}
}
