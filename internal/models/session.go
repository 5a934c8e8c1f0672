package models

import (
	"time"

	"github.com/google/uuid"
)

// InterviewQuestion is a single question with its answer and evaluation,
// populated once the candidate answers or skips it.
type InterviewQuestion struct {
	ID                string         `json:"id"`
	Index             int            `json:"index"`
	Question          string         `json:"question"`
	Difficulty        Difficulty     `json:"difficulty"`
	Source            QuestionSource `json:"source"`
	Topic             string         `json:"topic,omitempty"`
	ExpectedKeywords  []string       `json:"expected_keywords,omitempty"`
	FollowUpQuestions []string       `json:"follow_up_questions,omitempty"`
	CodeChallenge     string         `json:"code_challenge,omitempty"`

	// Answer and evaluation, empty until answered
	Answer         string     `json:"answer,omitempty"`
	CodeSubmission string     `json:"code_submission,omitempty"`
	CodeLanguage   string     `json:"code_language,omitempty"`
	Score          *int       `json:"score,omitempty"` // 0-5, nil until answered
	Feedback       string     `json:"feedback,omitempty"`
	Strengths      []string   `json:"strengths,omitempty"`
	Improvements   []string   `json:"improvements,omitempty"`
	AnsweredAt     *time.Time `json:"answered_at,omitempty"`
}

// Answered reports whether the question already carries an evaluation.
func (q *InterviewQuestion) Answered() bool {
	return q.Score != nil
}

// CandidateProfile is opaque to the orchestrator beyond being handed to
// question generation for personalization.
type CandidateProfile struct {
	Name       string                 `json:"name,omitempty"`
	Email      string                 `json:"email,omitempty"`
	Phone      string                 `json:"phone,omitempty"`
	ResumeText string                 `json:"resume_text,omitempty"`
	ResumeData map[string]interface{} `json:"resume_data,omitempty"`
}

// InterviewConfig configures a session at creation time.
type InterviewConfig struct {
	Role                   string         `json:"role"`
	TemplateID             string         `json:"template_id,omitempty"`
	Topic                  string         `json:"topic,omitempty"`
	NumQuestions           int            `json:"num_questions"`
	DifficultyDistribution map[string]int `json:"difficulty_distribution,omitempty"`
	TimeLimitMinutes       int            `json:"time_limit_minutes,omitempty"`
	IncludesCoding         bool           `json:"includes_coding"`
	CodingLanguages        []string       `json:"coding_languages,omitempty"`
}

// InterviewSession is the aggregate root. The store owns the canonical copy;
// everything handed out is a deep copy and must be written back via Save.
type InterviewSession struct {
	SessionID string              `json:"session_id"`
	Status    Status              `json:"status"`
	Profile   CandidateProfile    `json:"profile"`
	Config    InterviewConfig     `json:"config"`
	Questions []InterviewQuestion `json:"questions"`

	// Cursor: index of the next unanswered question.
	// Invariant: 0 <= CurrentQuestionIndex <= len(Questions).
	CurrentQuestionIndex int `json:"current_question_index"`

	// Final outputs
	FinalScore           *int     `json:"final_score,omitempty"`
	Summary              string   `json:"summary,omitempty"`
	Strengths            []string `json:"strengths,omitempty"`
	Weaknesses           []string `json:"weaknesses,omitempty"`
	Recommendations      []string `json:"recommendations,omitempty"`
	HiringRecommendation string   `json:"hiring_recommendation,omitempty"`

	// Integrity tracking. TabSwitchCount mirrors the event log:
	// TabSwitchCount == count(events where type == tab_switch).
	TabSwitchCount int              `json:"tab_switch_count"`
	Events         []InterviewEvent `json:"events,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewSession builds a pending session with a fresh ID.
func NewSession(profile CandidateProfile, config InterviewConfig) *InterviewSession {
	return &InterviewSession{
		SessionID: uuid.New().String(),
		Status:    StatusPending,
		Profile:   profile,
		Config:    config,
		CreatedAt: time.Now().UTC(),
	}
}

// CurrentQuestion returns the question at the cursor, or nil once the
// session is complete.
func (s *InterviewSession) CurrentQuestion() *InterviewQuestion {
	if s.CurrentQuestionIndex < len(s.Questions) {
		return &s.Questions[s.CurrentQuestionIndex]
	}
	return nil
}

// IsComplete reports whether the cursor has reached the question count.
func (s *InterviewSession) IsComplete() bool {
	return s.CurrentQuestionIndex == len(s.Questions)
}

// Clone returns a deep copy so callers never share the store's canonical
// session across calls.
func (s *InterviewSession) Clone() *InterviewSession {
	out := *s
	out.Questions = make([]InterviewQuestion, len(s.Questions))
	for i := range s.Questions {
		out.Questions[i] = *cloneQuestion(&s.Questions[i])
	}
	out.Strengths = append([]string(nil), s.Strengths...)
	out.Weaknesses = append([]string(nil), s.Weaknesses...)
	out.Recommendations = append([]string(nil), s.Recommendations...)
	out.Events = make([]InterviewEvent, len(s.Events))
	for i, ev := range s.Events {
		out.Events[i] = *ev.Clone()
	}
	if s.FinalScore != nil {
		v := *s.FinalScore
		out.FinalScore = &v
	}
	if s.StartedAt != nil {
		t := *s.StartedAt
		out.StartedAt = &t
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		out.CompletedAt = &t
	}
	if s.Profile.ResumeData != nil {
		data := make(map[string]interface{}, len(s.Profile.ResumeData))
		for k, v := range s.Profile.ResumeData {
			data[k] = v
		}
		out.Profile.ResumeData = data
	}
	if s.Config.DifficultyDistribution != nil {
		dist := make(map[string]int, len(s.Config.DifficultyDistribution))
		for k, v := range s.Config.DifficultyDistribution {
			dist[k] = v
		}
		out.Config.DifficultyDistribution = dist
	}
	out.Config.CodingLanguages = append([]string(nil), s.Config.CodingLanguages...)
	return &out
}

func cloneQuestion(q *InterviewQuestion) *InterviewQuestion {
	out := *q
	out.ExpectedKeywords = append([]string(nil), q.ExpectedKeywords...)
	out.FollowUpQuestions = append([]string(nil), q.FollowUpQuestions...)
	out.Strengths = append([]string(nil), q.Strengths...)
	out.Improvements = append([]string(nil), q.Improvements...)
	if q.Score != nil {
		v := *q.Score
		out.Score = &v
	}
	if q.AnsweredAt != nil {
		t := *q.AnsweredAt
		out.AnsweredAt = &t
	}
	return &out
}

// InterviewEvent is an append-only integrity event tied to a session.
type InterviewEvent struct {
	ID        string                 `json:"id"`
	SessionID string                 `json:"session_id"`
	EventType EventType              `json:"event_type"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewEvent builds an event with a fresh ID and current timestamp.
func NewEvent(sessionID string, eventType EventType, metadata map[string]interface{}) *InterviewEvent {
	return &InterviewEvent{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Metadata:  metadata,
	}
}

func (e *InterviewEvent) Clone() *InterviewEvent {
	out := *e
	if e.Metadata != nil {
		md := make(map[string]interface{}, len(e.Metadata))
		for k, v := range e.Metadata {
			md[k] = v
		}
		out.Metadata = md
	}
	return &out
}
