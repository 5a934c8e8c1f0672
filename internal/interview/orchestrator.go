// Package interview is the top-level facade over the session store, question
// generator, answer evaluator, code sandbox and summary generator. It owns
// the state-machine rules: every read-modify-write against one session runs
// under that session's lock, so concurrent submissions can never observe the
// same cursor twice.
package interview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"careerprep/interview/internal/evaluate"
	"careerprep/interview/internal/models"
	"careerprep/interview/internal/question"
	"careerprep/interview/internal/sandbox"
	"careerprep/interview/internal/store"
	"careerprep/interview/internal/summary"
)

var (
	ErrSessionNotFound  = store.ErrSessionNotFound
	ErrQuestionMismatch = errors.New("question does not match current interview state")
	ErrNoActiveQuestion = errors.New("no active question for this session")
)

const skipFeedback = "Question was skipped by the candidate."

// tab switches at or past this count flip the integrity warning flag
const tabSwitchWarningThreshold = 3

type Orchestrator struct {
	store      store.Store
	questions  *question.Generator
	evaluator  *evaluate.Evaluator
	executor   sandbox.Executor
	summarizer *summary.Generator
	logger     *zap.Logger
	locks      *sessionLocks
}

func NewOrchestrator(
	st store.Store,
	questions *question.Generator,
	evaluator *evaluate.Evaluator,
	executor sandbox.Executor,
	summarizer *summary.Generator,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		store:      st,
		questions:  questions,
		evaluator:  evaluator,
		executor:   executor,
		summarizer: summarizer,
		logger:     logger,
		locks:      newSessionLocks(),
	}
}

// CreateSession creates a session, generates its questions and starts the
// interview. The returned session is already in progress with the first
// question at the cursor.
func (o *Orchestrator) CreateSession(ctx context.Context, profile models.CandidateProfile, config models.InterviewConfig) (*models.SessionResponse, error) {
	session, err := o.store.Create(profile, config)
	if err != nil {
		return nil, err
	}

	unlock := o.locks.Lock(session.SessionID)
	defer unlock()

	session.Questions = o.questions.Generate(ctx, config, profile)
	if err := o.store.Save(session); err != nil {
		return nil, err
	}

	session, err = o.store.StartInterview(session.SessionID)
	if err != nil {
		return nil, err
	}

	o.logger.Info("Interview session created",
		zap.String("session_id", session.SessionID),
		zap.String("role", config.Role),
		zap.Int("num_questions", len(session.Questions)))

	return &models.SessionResponse{
		Session:         session,
		CurrentQuestion: session.CurrentQuestion(),
	}, nil
}

func (o *Orchestrator) GetSession(sessionID string) (*models.SessionResponse, error) {
	session, err := o.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return &models.SessionResponse{
		Session:         session,
		CurrentQuestion: session.CurrentQuestion(),
	}, nil
}

func (o *Orchestrator) ListSessions(status models.Status, limit int) (*models.ListSessionsResponse, error) {
	sessions, err := o.store.List(status, limit)
	if err != nil {
		return nil, err
	}
	return &models.ListSessionsResponse{Sessions: sessions, Count: len(sessions)}, nil
}

func (o *Orchestrator) DeleteSession(sessionID string) (*models.DeleteSessionResponse, error) {
	unlock := o.locks.Lock(sessionID)
	defer unlock()

	deleted, err := o.store.Delete(sessionID)
	if err != nil {
		return nil, err
	}
	return &models.DeleteSessionResponse{Deleted: deleted, SessionID: sessionID}, nil
}

// CancelSession marks a session cancelled. Terminal sessions stay as they are.
func (o *Orchestrator) CancelSession(sessionID string) (*models.SessionResponse, error) {
	unlock := o.locks.Lock(sessionID)
	defer unlock()

	session, err := o.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Status.Terminal() {
		session, err = o.store.CancelInterview(sessionID)
		if err != nil {
			return nil, err
		}
	}
	return &models.SessionResponse{Session: session}, nil
}

// SubmitAnswer evaluates the answer to the current question and advances
// the cursor. The question ID must match the question at the cursor.
func (o *Orchestrator) SubmitAnswer(ctx context.Context, sessionID, questionID, answer string) (*models.SubmitAnswerResponse, error) {
	unlock := o.locks.Lock(sessionID)
	defer unlock()

	session, current, err := o.currentQuestion(sessionID, questionID)
	if err != nil {
		return nil, err
	}

	result := o.evaluator.Evaluate(ctx, current, answer, session.Config.Role)

	applyEvaluation(current, answer, result)
	session.CurrentQuestionIndex++

	return o.finishAdvance(session, result)
}

// SubmitAnswerStreaming is SubmitAnswer with the evaluation text streamed
// through emit before the final complete event. An emit failure aborts the
// operation without advancing the session.
func (o *Orchestrator) SubmitAnswerStreaming(ctx context.Context, sessionID, questionID, answer string, emit EmitFunc) error {
	unlock := o.locks.Lock(sessionID)
	defer unlock()

	session, current, err := o.currentQuestion(sessionID, questionID)
	if err != nil {
		return err
	}

	result, err := o.evaluator.EvaluateStream(ctx, current, answer, session.Config.Role, func(chunk string) error {
		return emit(StreamEvent{Type: EventChunk, Data: ChunkData{Content: chunk}})
	})
	if err != nil {
		return err
	}

	applyEvaluation(current, answer, result)
	session.CurrentQuestionIndex++

	response, err := o.finishAdvance(session, result)
	if err != nil {
		return err
	}
	return emit(StreamEvent{Type: EventComplete, Data: response})
}

// ExecuteCode runs a code submission in the sandbox and records it on the
// current question without advancing the cursor; the candidate may iterate
// until submitting through the streaming review path.
func (o *Orchestrator) ExecuteCode(ctx context.Context, sessionID string, req *models.ExecuteCodeRequest) (*models.CodeExecutionResult, error) {
	unlock := o.locks.Lock(sessionID)
	defer unlock()

	session, current, err := o.currentQuestion(sessionID, req.QuestionID)
	if err != nil {
		return nil, err
	}

	var result models.CodeExecutionResult
	if len(req.TestCases) > 0 {
		result = o.executor.RunWithTests(ctx, req.Code, req.Language, req.TestCases)
	} else {
		result = o.executor.Execute(ctx, req.Code, req.Language, req.TestInput)
	}

	current.CodeSubmission = req.Code
	current.CodeLanguage = req.Language
	if err := o.store.Save(session); err != nil {
		return nil, err
	}

	o.recordInternalEvent(sessionID, models.EventCodeExecuted, map[string]interface{}{
		"language": req.Language,
		"success":  result.Success,
	})

	return &result, nil
}

// ExecuteCodeStreaming runs the code, emits the execution result, streams
// the code review, then scores the question and advances the cursor.
func (o *Orchestrator) ExecuteCodeStreaming(ctx context.Context, sessionID string, req *models.ExecuteCodeRequest, emit EmitFunc) error {
	unlock := o.locks.Lock(sessionID)
	defer unlock()

	session, current, err := o.currentQuestion(sessionID, req.QuestionID)
	if err != nil {
		return err
	}

	var execution models.CodeExecutionResult
	if len(req.TestCases) > 0 {
		execution = o.executor.RunWithTests(ctx, req.Code, req.Language, req.TestCases)
	} else {
		execution = o.executor.Execute(ctx, req.Code, req.Language, req.TestInput)
	}

	if err := emit(StreamEvent{Type: EventExecution, Data: execution}); err != nil {
		return err
	}

	result, err := o.evaluator.EvaluateCodeStream(ctx, current, req.Code, req.Language, &execution, func(chunk string) error {
		return emit(StreamEvent{Type: EventChunk, Data: ChunkData{Content: chunk}})
	})
	if err != nil {
		return err
	}

	answer := fmt.Sprintf("Code submission:\n```%s\n%s\n```", req.Language, req.Code)
	applyEvaluation(current, answer, result)
	current.CodeSubmission = req.Code
	current.CodeLanguage = req.Language
	session.CurrentQuestionIndex++

	response, err := o.finishAdvance(session, result)
	if err != nil {
		return err
	}

	o.recordInternalEvent(sessionID, models.EventCodeExecuted, map[string]interface{}{
		"language": req.Language,
		"success":  execution.Success,
	})

	return emit(StreamEvent{Type: EventComplete, Data: response})
}

// SkipQuestion bypasses evaluation: score 0, fixed feedback, cursor advance.
func (o *Orchestrator) SkipQuestion(sessionID, questionID string) (*models.SkipQuestionResponse, error) {
	unlock := o.locks.Lock(sessionID)
	defer unlock()

	session, current, err := o.currentQuestion(sessionID, questionID)
	if err != nil {
		return nil, err
	}

	applyEvaluation(current, "[SKIPPED]", models.EvaluationResult{Score: 0, Feedback: skipFeedback})
	session.CurrentQuestionIndex++

	response, err := o.finishAdvance(session, models.EvaluationResult{})
	if err != nil {
		return nil, err
	}

	o.recordInternalEvent(sessionID, models.EventQuestionSkipped, map[string]interface{}{
		"question_id": questionID,
	})

	return &models.SkipQuestionResponse{
		Skipped:      true,
		NextQuestion: response.NextQuestion,
		IsComplete:   response.IsComplete,
	}, nil
}

// GetSummary returns the cached summary when one exists, otherwise
// generates it and marks the session completed.
func (o *Orchestrator) GetSummary(ctx context.Context, sessionID string) (*models.SummaryResponse, error) {
	unlock := o.locks.Lock(sessionID)
	defer unlock()

	session, err := o.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if session.Summary != "" {
		return cachedSummary(session), nil
	}

	result := o.summarizer.Generate(ctx, session)
	if err := o.writeSummary(session, result); err != nil {
		return nil, err
	}

	return &models.SummaryResponse{SessionID: sessionID, SummaryResult: result}, nil
}

// GenerateSummaryStreaming streams the summary narrative, then persists the
// parsed result and emits a complete event with the final score.
func (o *Orchestrator) GenerateSummaryStreaming(ctx context.Context, sessionID string, emit EmitFunc) error {
	unlock := o.locks.Lock(sessionID)
	defer unlock()

	session, err := o.store.Get(sessionID)
	if err != nil {
		return err
	}

	result, err := o.summarizer.GenerateStream(ctx, session, func(chunk string) error {
		return emit(StreamEvent{Type: EventChunk, Data: ChunkData{Content: chunk}})
	})
	if err != nil {
		return err
	}

	if err := o.writeSummary(session, result); err != nil {
		return err
	}

	return emit(StreamEvent{Type: EventComplete, Data: models.SummaryResponse{
		SessionID:     sessionID,
		SummaryResult: result,
	}})
}

// RecordEvent appends an integrity event and reports the tab-switch count
// with the warning flag.
func (o *Orchestrator) RecordEvent(sessionID string, eventType models.EventType, metadata map[string]interface{}) (*models.RecordEventResponse, error) {
	unlock := o.locks.Lock(sessionID)
	defer unlock()

	if _, err := o.store.Get(sessionID); err != nil {
		return nil, err
	}

	if err := o.store.RecordEvent(models.NewEvent(sessionID, eventType, metadata)); err != nil {
		return nil, err
	}

	count, err := o.store.CountEvents(sessionID, models.EventTabSwitch)
	if err != nil {
		return nil, err
	}

	return &models.RecordEventResponse{
		Recorded:       true,
		EventType:      eventType,
		TabSwitchCount: count,
		Warning:        count >= tabSwitchWarningThreshold,
	}, nil
}

func (o *Orchestrator) GetEvents(sessionID string, eventType models.EventType) (*models.ListEventsResponse, error) {
	if _, err := o.store.Get(sessionID); err != nil {
		return nil, err
	}
	events, err := o.store.GetEvents(sessionID, eventType)
	if err != nil {
		return nil, err
	}
	return &models.ListEventsResponse{Events: events, Count: len(events)}, nil
}

// currentQuestion loads the session and checks that questionID is the
// question at the cursor. Any failure leaves the session untouched.
func (o *Orchestrator) currentQuestion(sessionID, questionID string) (*models.InterviewSession, *models.InterviewQuestion, error) {
	session, err := o.store.Get(sessionID)
	if err != nil {
		return nil, nil, err
	}

	current := session.CurrentQuestion()
	if current == nil {
		return nil, nil, ErrNoActiveQuestion
	}
	if current.ID != questionID {
		return nil, nil, ErrQuestionMismatch
	}
	return session, current, nil
}

// finishAdvance saves the advanced session, completes it when the cursor
// reached the end, and builds the answer response.
func (o *Orchestrator) finishAdvance(session *models.InterviewSession, result models.EvaluationResult) (*models.SubmitAnswerResponse, error) {
	if err := o.store.Save(session); err != nil {
		return nil, err
	}

	isComplete := session.IsComplete()
	if isComplete {
		if _, err := o.store.CompleteInterview(session.SessionID); err != nil {
			return nil, err
		}
	}

	return &models.SubmitAnswerResponse{
		Score:        result.Score,
		Feedback:     result.Feedback,
		Strengths:    result.Strengths,
		Improvements: result.Improvements,
		NextQuestion: session.CurrentQuestion(),
		IsComplete:   isComplete,
	}, nil
}

// writeSummary stores the summary fields and marks the session completed.
func (o *Orchestrator) writeSummary(session *models.InterviewSession, result models.SummaryResult) error {
	session.FinalScore = &result.FinalScore
	session.Summary = result.Summary
	session.Strengths = result.Strengths
	session.Weaknesses = result.Weaknesses
	session.Recommendations = result.Recommendations
	session.HiringRecommendation = result.HiringRecommendation
	session.Status = models.StatusCompleted
	if session.CompletedAt == nil {
		now := time.Now().UTC()
		session.CompletedAt = &now
	}
	return o.store.Save(session)
}

func cachedSummary(session *models.InterviewSession) *models.SummaryResponse {
	finalScore := 0
	if session.FinalScore != nil {
		finalScore = *session.FinalScore
	}
	return &models.SummaryResponse{
		SessionID: session.SessionID,
		SummaryResult: models.SummaryResult{
			Summary:              session.Summary,
			Strengths:            session.Strengths,
			Weaknesses:           session.Weaknesses,
			Recommendations:      session.Recommendations,
			HiringRecommendation: session.HiringRecommendation,
			FinalScore:           finalScore,
		},
	}
}

func (o *Orchestrator) recordInternalEvent(sessionID string, eventType models.EventType, metadata map[string]interface{}) {
	if err := o.store.RecordEvent(models.NewEvent(sessionID, eventType, metadata)); err != nil {
		o.logger.Warn("Failed to record event",
			zap.Error(err),
			zap.String("session_id", sessionID),
			zap.String("event_type", string(eventType)))
	}
}

func applyEvaluation(q *models.InterviewQuestion, answer string, result models.EvaluationResult) {
	now := time.Now().UTC()
	score := result.Score
	q.Answer = answer
	q.Score = &score
	q.Feedback = result.Feedback
	q.Strengths = result.Strengths
	q.Improvements = result.Improvements
	q.AnsweredAt = &now
}
