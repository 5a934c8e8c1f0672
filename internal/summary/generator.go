// Package summary produces the end-of-session verdict: an arithmetic final
// score plus an LLM-written narrative. The score never depends on the
// provider; only the narrative degrades when completion is unavailable.
package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"careerprep/interview/internal/llm"
	"careerprep/interview/internal/models"
	"careerprep/interview/internal/prompts"
)

var recommendationRe = regexp.MustCompile(`\*\*Recommendation:\s*(STRONG YES|YES|MAYBE|NO|STRONG NO)\s*\**`)

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

// FinalScore is the percentage score over answered questions:
// round(100 * sum(scores) / (5 * n)). Sessions without questions score 0.
func FinalScore(questions []models.InterviewQuestion) int {
	if len(questions) == 0 {
		return 0
	}
	sum := 0
	for _, q := range questions {
		if q.Score != nil {
			sum += *q.Score
		}
	}
	return int(math.Round(100 * float64(sum) / (5 * float64(len(questions)))))
}

// Generate builds the session summary in one shot.
func (g *Generator) Generate(ctx context.Context, session *models.InterviewSession) models.SummaryResult {
	finalScore := FinalScore(session.Questions)

	if g.provider == nil {
		return unavailableResult(finalScore)
	}

	prompt, err := g.prompts.BuildPrompt("summary", "default", g.summaryData(session, finalScore))
	if err != nil {
		g.logger.Error("Failed to build summary prompt", zap.Error(err))
		return unavailableResult(finalScore)
	}

	content, err := g.provider.Complete(ctx, prompt)
	if err != nil {
		g.logger.Warn("Summary generation failed, using fallback",
			zap.Error(err), zap.String("session_id", session.SessionID))
		return unavailableResult(finalScore)
	}

	return parseSummary(content, finalScore)
}

// GenerateStream streams the narrative through emit and returns the parsed
// result. Emit errors abort the stream; provider errors degrade to the
// unavailable fallback.
func (g *Generator) GenerateStream(ctx context.Context, session *models.InterviewSession, emit func(chunk string) error) (models.SummaryResult, error) {
	finalScore := FinalScore(session.Questions)

	if g.provider == nil {
		result := unavailableResult(finalScore)
		if err := emit(result.Summary); err != nil {
			return result, err
		}
		return result, nil
	}

	prompt, err := g.prompts.BuildPrompt("summary", "streaming", g.summaryData(session, finalScore))
	if err != nil {
		g.logger.Error("Failed to build summary prompt", zap.Error(err))
		result := unavailableResult(finalScore)
		if emitErr := emit(result.Summary); emitErr != nil {
			return result, emitErr
		}
		return result, nil
	}

	var full strings.Builder
	err = g.provider.CompleteStream(ctx, prompt, func(chunk string) error {
		full.WriteString(chunk)
		return emit(chunk)
	})
	if err != nil {
		var perr *llm.ProviderError
		if !errors.As(err, &perr) {
			return unavailableResult(finalScore), err
		}
		g.logger.Warn("Streaming summary failed, using fallback",
			zap.Error(err), zap.String("session_id", session.SessionID))
		if full.Len() == 0 {
			return unavailableResult(finalScore), nil
		}
	}

	return parseSummary(full.String(), finalScore), nil
}

func (g *Generator) summaryData(session *models.InterviewSession, finalScore int) map[string]string {
	var qs strings.Builder
	for _, q := range session.Questions {
		score := "unanswered"
		if q.Score != nil {
			score = fmt.Sprintf("%d/5", *q.Score)
		}
		fmt.Fprintf(&qs, "%d. [%s] %s\n   Score: %s\n", q.Index+1, q.Difficulty, q.Question, score)
		if q.Feedback != "" {
			fmt.Fprintf(&qs, "   Feedback: %s\n", q.Feedback)
		}
	}
	questionsSummary := qs.String()
	if questionsSummary == "" {
		questionsSummary = "No questions were asked."
	}

	otherEvents := 0
	for _, ev := range session.Events {
		if ev.EventType != models.EventTabSwitch {
			otherEvents++
		}
	}

	return map[string]string{
		"Role":             session.Config.Role,
		"TotalQuestions":   fmt.Sprintf("%d", len(session.Questions)),
		"FinalScore":       fmt.Sprintf("%d", finalScore),
		"QuestionsSummary": questionsSummary,
		"TabSwitchCount":   fmt.Sprintf("%d", session.TabSwitchCount),
		"OtherEvents":      fmt.Sprintf("%d", otherEvents),
	}
}

func unavailableResult(finalScore int) models.SummaryResult {
	return models.SummaryResult{
		Summary:              "The interview has concluded. A detailed summary is temporarily unavailable.",
		HiringRecommendation: "maybe",
		FinalScore:           finalScore,
	}
}

type jsonSummary struct {
	Summary              string   `json:"summary"`
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	Recommendations      []string `json:"recommendations"`
	HiringRecommendation string   `json:"hiring_recommendation"`
}

// parseSummary tries the JSON reply format first, then the markdown
// streaming format with ## sections and the bold recommendation line.
func parseSummary(content string, finalScore int) models.SummaryResult {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end > start {
		var parsed jsonSummary
		if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err == nil && parsed.Summary != "" {
			return models.SummaryResult{
				Summary:              parsed.Summary,
				Strengths:            parsed.Strengths,
				Weaknesses:           parsed.Weaknesses,
				Recommendations:      parsed.Recommendations,
				HiringRecommendation: normalizeRecommendation(parsed.HiringRecommendation),
				FinalScore:           finalScore,
			}
		}
	}

	result := models.SummaryResult{
		Summary:              strings.TrimSpace(content),
		HiringRecommendation: "maybe",
		FinalScore:           finalScore,
	}

	if assessment := extractHeading(content, "Overall Assessment"); assessment != "" {
		result.Summary = assessment
	}
	result.Strengths = headingBullets(content, "Key Strengths")
	result.Weaknesses = headingBullets(content, "Areas for Improvement")
	result.Recommendations = headingBullets(content, "Next Steps")

	if m := recommendationRe.FindStringSubmatch(content); m != nil {
		result.HiringRecommendation = normalizeRecommendation(m[1])
	}

	return result
}

func normalizeRecommendation(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	switch normalized {
	case "strong_yes", "yes", "maybe", "no", "strong_no":
		return normalized
	}
	return "maybe"
}

// extractHeading returns the text between "## Name" and the next "## ".
func extractHeading(content, name string) string {
	header := "## " + name
	idx := strings.Index(content, header)
	if idx == -1 {
		return ""
	}
	rest := content[idx+len(header):]
	if next := strings.Index(rest, "\n## "); next != -1 {
		rest = rest[:next]
	}
	return strings.TrimSpace(rest)
}

func headingBullets(content, name string) []string {
	section := extractHeading(content, name)
	if section == "" {
		return nil
	}
	var items []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") {
			if item := strings.TrimSpace(strings.TrimPrefix(line, "- ")); item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}
