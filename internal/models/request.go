package models

import (
	"strings"

	"careerprep/interview/internal/utils"
)

const (
	MinQuestions = 1
	MaxQuestions = 20
)

// DefaultDifficultyDistribution is used when a request supplies none.
func DefaultDifficultyDistribution() map[string]int {
	return map[string]int{"easy": 1, "medium": 3, "hard": 1}
}

type CreateSessionRequest struct {
	Profile CandidateProfile `json:"profile"`
	Config  InterviewConfig  `json:"config"`
}

// implements the Validator interface
func (r *CreateSessionRequest) Validate() error {
	if r.Config.Role == "" {
		return &ErrorResponse{
			Code:    "missing_role",
			Message: "Config role field is required",
		}
	}

	if r.Config.NumQuestions == 0 {
		r.Config.NumQuestions = 5
	}
	if r.Config.NumQuestions < MinQuestions || r.Config.NumQuestions > MaxQuestions {
		return &ErrorResponse{
			Code:    "invalid_num_questions",
			Message: "Number of questions must be between 1 and 20",
		}
	}

	if r.Config.DifficultyDistribution == nil {
		r.Config.DifficultyDistribution = DefaultDifficultyDistribution()
	}
	normalized := make(map[string]int, len(r.Config.DifficultyDistribution))
	for key, count := range r.Config.DifficultyDistribution {
		normalized[utils.NormalizeDifficulty(key)] += count
	}
	r.Config.DifficultyDistribution = normalized
	for key, count := range r.Config.DifficultyDistribution {
		if !Difficulty(key).Valid() {
			return &ErrorResponse{
				Code:    "invalid_difficulty",
				Message: "Difficulty must be one of: easy, medium, hard",
			}
		}
		if count < 0 {
			return &ErrorResponse{
				Code:    "invalid_difficulty_count",
				Message: "Difficulty counts must not be negative",
			}
		}
	}

	return nil
}

type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

func (r *SubmitAnswerRequest) Validate() error {
	if r.QuestionID == "" {
		return &ErrorResponse{Code: "missing_question_id", Message: "Question ID is required"}
	}
	if r.Answer == "" {
		return &ErrorResponse{Code: "missing_answer", Message: "Answer field is required"}
	}
	return nil
}

type ExecuteCodeRequest struct {
	QuestionID string     `json:"question_id"`
	Code       string     `json:"code"`
	Language   string     `json:"language"`
	TestInput  string     `json:"test_input,omitempty"`
	TestCases  []TestCase `json:"test_cases,omitempty"`
}

func (r *ExecuteCodeRequest) Validate() error {
	if r.QuestionID == "" {
		return &ErrorResponse{Code: "missing_question_id", Message: "Question ID is required"}
	}
	if r.Code == "" {
		return &ErrorResponse{Code: "missing_code", Message: "Code field is required"}
	}
	if r.Language == "" {
		return &ErrorResponse{Code: "missing_language", Message: "Language field is required"}
	}
	r.Language = utils.NormalizeLanguage(r.Language)
	return nil
}

type SkipQuestionRequest struct {
	QuestionID string `json:"question_id"`
}

func (r *SkipQuestionRequest) Validate() error {
	if r.QuestionID == "" {
		return &ErrorResponse{Code: "missing_question_id", Message: "Question ID is required"}
	}
	return nil
}

type RecordEventRequest struct {
	EventType EventType              `json:"event_type"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

func (r *RecordEventRequest) Validate() error {
	if r.EventType == "" {
		return &ErrorResponse{Code: "missing_event_type", Message: "Event type is required"}
	}
	r.EventType = EventType(utils.NormalizeEventType(string(r.EventType)))
	if !r.EventType.Valid() {
		return &ErrorResponse{
			Code:    "invalid_event_type",
			Message: "Event type must be one of: " + strings.Join(ValidEventTypeList(), ", "),
		}
	}
	return nil
}
