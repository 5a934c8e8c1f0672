package models

// Difficulty level for interview questions
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// lifecycle status of an interview session
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// source category of an interview question
type QuestionSource string

const (
	SourceResumeBased QuestionSource = "resume_based"
	SourceRoleBased   QuestionSource = "role_based"
	SourceBehavioral  QuestionSource = "behavioral"
	SourceTechnical   QuestionSource = "technical"
	SourceCoding      QuestionSource = "coding"
)

func (s QuestionSource) Valid() bool {
	switch s {
	case SourceResumeBased, SourceRoleBased, SourceBehavioral, SourceTechnical, SourceCoding:
		return true
	}
	return false
}

// integrity event types recorded during an interview
type EventType string

const (
	EventTabSwitch       EventType = "tab_switch"
	EventFocusLost       EventType = "focus_lost"
	EventFocusGained     EventType = "focus_gained"
	EventCodeExecuted    EventType = "code_executed"
	EventQuestionSkipped EventType = "question_skipped"
	EventSessionPaused   EventType = "session_paused"
	EventSessionResumed  EventType = "session_resumed"
)

func (e EventType) Valid() bool {
	switch e {
	case EventTabSwitch, EventFocusLost, EventFocusGained, EventCodeExecuted,
		EventQuestionSkipped, EventSessionPaused, EventSessionResumed:
		return true
	}
	return false
}

func ValidStatusList() []string {
	return []string{"pending", "in_progress", "completed", "cancelled"}
}

func ValidEventTypeList() []string {
	return []string{
		"tab_switch", "focus_lost", "focus_gained", "code_executed",
		"question_skipped", "session_paused", "session_resumed",
	}
}
