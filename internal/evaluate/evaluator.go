// Package evaluate scores candidate answers and code submissions via the
// completion provider. Evaluation is degrade-not-fail: when the provider is
// unavailable or returns garbage, a neutral score 3 result is produced so
// the interview can proceed.
package evaluate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"careerprep/interview/internal/llm"
	"careerprep/interview/internal/models"
	"careerprep/interview/internal/prompts"
)

const (
	maxStdoutChars = 1000
	maxStderrChars = 500
)

type Evaluator struct {
	provider llm.Provider // nil when the capability is unavailable
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewEvaluator(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
	}
}

// Evaluate scores an answer in one shot. Any failure yields the neutral
// fallback result rather than an error.
func (e *Evaluator) Evaluate(ctx context.Context, question *models.InterviewQuestion, answer, role string) models.EvaluationResult {
	if e.provider == nil {
		return neutralResult()
	}

	prompt, err := e.prompts.BuildPrompt("evaluation", "default", evaluationData(question, answer, role))
	if err != nil {
		e.logger.Error("Failed to build evaluation prompt", zap.Error(err))
		return neutralResult()
	}

	content, err := e.provider.Complete(ctx, prompt)
	if err != nil {
		e.logger.Warn("Evaluation failed, using neutral score",
			zap.Error(err), zap.String("question_id", question.ID))
		return neutralResult()
	}

	return ParseEvaluation(content)
}

// EvaluateStream streams the raw evaluation text through emit and returns
// the result parsed from the accumulated text. Emit errors abort the stream
// and are returned as-is; provider errors degrade to the neutral result.
func (e *Evaluator) EvaluateStream(ctx context.Context, question *models.InterviewQuestion, answer, role string, emit func(chunk string) error) (models.EvaluationResult, error) {
	if e.provider == nil {
		result := neutralResult()
		if err := emit(result.Feedback); err != nil {
			return result, err
		}
		return result, nil
	}

	prompt, err := e.prompts.BuildPrompt("evaluation", "streaming", evaluationData(question, answer, role))
	if err != nil {
		e.logger.Error("Failed to build evaluation prompt", zap.Error(err))
		result := neutralResult()
		if emitErr := emit(result.Feedback); emitErr != nil {
			return result, emitErr
		}
		return result, nil
	}

	return e.streamAndParse(ctx, prompt, question.ID, emit)
}

// EvaluateCodeStream reviews a code submission together with its execution
// outcome, streaming the review text through emit.
func (e *Evaluator) EvaluateCodeStream(ctx context.Context, question *models.InterviewQuestion, code, language string, execution *models.CodeExecutionResult, emit func(chunk string) error) (models.EvaluationResult, error) {
	if e.provider == nil {
		result := neutralResult()
		if err := emit(result.Feedback); err != nil {
			return result, err
		}
		return result, nil
	}

	data := map[string]string{
		"Question":         question.Question,
		"Language":         language,
		"Code":             code,
		"ExecutionSuccess": "false",
		"Stdout":           "",
		"Stderr":           "",
		"ExecutionTime":    "0",
	}
	if execution != nil {
		data["ExecutionSuccess"] = fmt.Sprintf("%t", execution.Success)
		data["Stdout"] = clip(execution.Stdout, maxStdoutChars)
		data["Stderr"] = clip(execution.Stderr, maxStderrChars)
		data["ExecutionTime"] = fmt.Sprintf("%d", execution.ExecutionTimeMs)
	}

	prompt, err := e.prompts.BuildPrompt("code_review", "streaming", data)
	if err != nil {
		e.logger.Error("Failed to build code review prompt", zap.Error(err))
		result := neutralResult()
		if emitErr := emit(result.Feedback); emitErr != nil {
			return result, emitErr
		}
		return result, nil
	}

	return e.streamAndParse(ctx, prompt, question.ID, emit)
}

func (e *Evaluator) streamAndParse(ctx context.Context, prompt, questionID string, emit func(chunk string) error) (models.EvaluationResult, error) {
	var full strings.Builder

	err := e.provider.CompleteStream(ctx, prompt, func(chunk string) error {
		full.WriteString(chunk)
		return emit(chunk)
	})
	if err != nil {
		var perr *llm.ProviderError
		if !errors.As(err, &perr) {
			// Emit callback failed: the consumer is gone.
			return neutralResult(), err
		}
		e.logger.Warn("Streaming evaluation failed, using neutral score",
			zap.Error(err), zap.String("question_id", questionID))
		if full.Len() == 0 {
			return neutralResult(), nil
		}
	}

	return ParseEvaluation(full.String()), nil
}

func evaluationData(question *models.InterviewQuestion, answer, role string) map[string]string {
	keywords := "None specified"
	if len(question.ExpectedKeywords) > 0 {
		keywords = strings.Join(question.ExpectedKeywords, ", ")
	}
	return map[string]string{
		"Role":             role,
		"Difficulty":       string(question.Difficulty),
		"Topic":            question.Topic,
		"Question":         question.Question,
		"ExpectedKeywords": keywords,
		"Answer":           answer,
	}
}

func neutralResult() models.EvaluationResult {
	return models.EvaluationResult{
		Score:    3,
		Feedback: "Answer received. Detailed evaluation is temporarily unavailable.",
	}
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
