// Package question turns an interview configuration into an ordered
// question list, drawing from template banks first and the completion
// provider second. Generation never hard-fails: any provider trouble
// degrades to fixed fallback questions.
package question

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"careerprep/interview/internal/llm"
	"careerprep/interview/internal/models"
	"careerprep/interview/internal/prompts"
	"careerprep/interview/internal/templates"
)

const maxBackgroundChars = 2000

// fallback difficulty rotation when the distribution under-supplies the
// requested count
var fallbackDifficulties = []models.Difficulty{
	models.DifficultyMedium,
	models.DifficultyEasy,
	models.DifficultyHard,
}

// question type rotation for LLM-generated slots
var questionTypes = []models.QuestionSource{
	models.SourceTechnical,
	models.SourceBehavioral,
	models.SourceRoleBased,
}

type Generator struct {
	provider llm.Provider // nil when the capability is unavailable
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewGenerator(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Generator {
	return &Generator{
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
	}
}

// Generate returns exactly config.NumQuestions questions with indices
// 0..n-1 in order.
func (g *Generator) Generate(ctx context.Context, config models.InterviewConfig, profile models.CandidateProfile) []models.InterviewQuestion {
	var template *templates.InterviewTemplate
	if config.TemplateID != "" {
		template = templates.Get(config.TemplateID)
	}

	difficulties := expandDistribution(config.DifficultyDistribution, config.NumQuestions)

	questions := make([]models.InterviewQuestion, 0, config.NumQuestions)
	existing := make([]string, 0, config.NumQuestions)

	for idx, difficulty := range difficulties {
		var q models.InterviewQuestion

		if banked := drawTemplateQuestion(template, difficulty, existing); banked != nil {
			q = models.InterviewQuestion{
				ID:                uuid.New().String(),
				Index:             idx,
				Question:          banked.Question,
				Difficulty:        difficulty,
				Source:            banked.Source,
				Topic:             banked.Topic,
				ExpectedKeywords:  banked.ExpectedKeywords,
				FollowUpQuestions: banked.FollowUps,
				CodeChallenge:     banked.CodeChallenge,
			}
		} else {
			topic := config.Topic
			if topic == "" && template != nil && len(template.Topics) > 0 {
				topic = template.Topics[0]
			}
			if topic == "" {
				topic = "General"
			}
			q = g.generateLLMQuestion(ctx, idx, config.Role, difficulty, topic, profile, existing)
		}

		questions = append(questions, q)
		existing = append(existing, q.Question)
	}

	return questions
}

// expandDistribution flattens the per-difficulty counts into an ordered
// request list, padding with the fallback rotation and truncating to count.
func expandDistribution(distribution map[string]int, count int) []models.Difficulty {
	out := make([]models.Difficulty, 0, count)

	for _, d := range []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard} {
		for i := 0; i < distribution[string(d)]; i++ {
			out = append(out, d)
		}
	}

	for i := 0; len(out) < count; i++ {
		out = append(out, fallbackDifficulties[i%len(fallbackDifficulties)])
	}

	return out[:count]
}

// drawTemplateQuestion picks a random not-yet-used bank question of the
// requested difficulty, or nil when none match.
func drawTemplateQuestion(template *templates.InterviewTemplate, difficulty models.Difficulty, existing []string) *templates.QuestionTemplate {
	if template == nil || len(template.QuestionBank) == 0 {
		return nil
	}

	used := make(map[string]bool, len(existing))
	for _, q := range existing {
		used[q] = true
	}

	var matching []*templates.QuestionTemplate
	for i := range template.QuestionBank {
		banked := &template.QuestionBank[i]
		if banked.Difficulty == difficulty && !used[banked.Question] {
			matching = append(matching, banked)
		}
	}
	if len(matching) == 0 {
		return nil
	}
	return matching[rand.Intn(len(matching))]
}

func (g *Generator) generateLLMQuestion(ctx context.Context, idx int, role string, difficulty models.Difficulty, topic string, profile models.CandidateProfile, existing []string) models.InterviewQuestion {
	if g.provider == nil {
		return fallbackQuestion(idx, role, difficulty, topic)
	}

	questionType := questionTypes[idx%len(questionTypes)]

	background := "No resume provided"
	if profile.ResumeData != nil {
		if data, err := json.MarshalIndent(profile.ResumeData, "", "  "); err == nil {
			background = string(data)
			if len(background) > maxBackgroundChars {
				background = background[:maxBackgroundChars]
			}
		}
	}

	existingStr := "None"
	if len(existing) > 0 {
		var b strings.Builder
		for _, q := range existing {
			b.WriteString("- ")
			b.WriteString(q)
			b.WriteString("\n")
		}
		existingStr = b.String()
	}

	prompt, err := g.prompts.BuildPrompt("question", "default", map[string]string{
		"Role":                role,
		"Difficulty":          string(difficulty),
		"Topic":               topic,
		"QuestionType":        string(questionType),
		"CandidateBackground": background,
		"ExistingQuestions":   existingStr,
	})
	if err != nil {
		g.logger.Error("Failed to build question prompt", zap.Error(err))
		return fallbackQuestion(idx, role, difficulty, topic)
	}

	content, err := g.provider.Complete(ctx, prompt)
	if err != nil {
		g.logger.Warn("Question generation failed, using fallback",
			zap.Error(err), zap.Int("index", idx))
		return fallbackQuestion(idx, role, difficulty, topic)
	}

	parsed := parseQuestionResponse(content, topic)

	return models.InterviewQuestion{
		ID:                uuid.New().String(),
		Index:             idx,
		Question:          parsed.Question,
		Difficulty:        difficulty,
		Source:            questionType,
		Topic:             topic,
		ExpectedKeywords:  parsed.ExpectedKeywords,
		FollowUpQuestions: parsed.FollowUpQuestions,
	}
}

type parsedQuestion struct {
	Question          string   `json:"question"`
	ExpectedKeywords  []string `json:"expected_keywords"`
	FollowUpQuestions []string `json:"follow_up_questions"`
}

// parseQuestionResponse extracts the JSON object between the first '{' and
// the last '}'. When no JSON parses, the whole reply becomes the question.
func parseQuestionResponse(content, topic string) parsedQuestion {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end > start {
		var parsed parsedQuestion
		if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err == nil && parsed.Question != "" {
			return parsed
		}
	}

	text := strings.TrimSpace(content)
	if text == "" {
		text = fmt.Sprintf("Tell me about your experience with %s", topic)
	}
	return parsedQuestion{Question: text}
}

// fallbackQuestion substitutes a fixed question (selected by index) so
// generation always yields the full count.
func fallbackQuestion(idx int, role string, difficulty models.Difficulty, topic string) models.InterviewQuestion {
	fallbacks := []string{
		fmt.Sprintf("Can you describe your experience with %s in your previous roles?", topic),
		fmt.Sprintf("What challenges have you faced when working on %s and how did you overcome them?", topic),
		fmt.Sprintf("How would you approach solving a complex problem related to %s?", topic),
		fmt.Sprintf("Tell me about a project where you demonstrated skills relevant to %s.", role),
		fmt.Sprintf("What is your approach to learning new technologies or concepts in %s?", topic),
	}

	return models.InterviewQuestion{
		ID:         uuid.New().String(),
		Index:      idx,
		Question:   fallbacks[idx%len(fallbacks)],
		Difficulty: difficulty,
		Source:     models.SourceBehavioral,
		Topic:      topic,
	}
}
