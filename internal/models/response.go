package models

// session plus the question the candidate should answer next
type SessionResponse struct {
	Session         *InterviewSession  `json:"session"`
	CurrentQuestion *InterviewQuestion `json:"current_question,omitempty"`
}

type SubmitAnswerResponse struct {
	Score        int                `json:"score"`
	Feedback     string             `json:"feedback"`
	Strengths    []string           `json:"strengths"`
	Improvements []string           `json:"improvements"`
	NextQuestion *InterviewQuestion `json:"next_question"`
	IsComplete   bool               `json:"is_complete"`
}

type SkipQuestionResponse struct {
	Skipped      bool               `json:"skipped"`
	NextQuestion *InterviewQuestion `json:"next_question"`
	IsComplete   bool               `json:"is_complete"`
}

type RecordEventResponse struct {
	Recorded       bool      `json:"recorded"`
	EventType      EventType `json:"event_type"`
	TabSwitchCount int       `json:"tab_switch_count"`
	Warning        bool      `json:"warning"`
}

type ListSessionsResponse struct {
	Sessions []*InterviewSession `json:"sessions"`
	Count    int                 `json:"count"`
}

type ListEventsResponse struct {
	Events []*InterviewEvent `json:"events"`
	Count  int               `json:"count"`
}

type SummaryResponse struct {
	SessionID string `json:"session_id"`
	SummaryResult
}

type DeleteSessionResponse struct {
	Deleted   bool   `json:"deleted"`
	SessionID string `json:"session_id"`
}

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}
