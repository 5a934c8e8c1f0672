package models

// EvaluationResult is the structured outcome of scoring one answer.
type EvaluationResult struct {
	Score        int      `json:"score"` // 1-5
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// TestCaseResult is the outcome of running submitted code against one test case.
type TestCaseResult struct {
	TestNumber int    `json:"test_number"`
	Passed     bool   `json:"passed"`
	Input      string `json:"input"`
	Expected   string `json:"expected"`
	Actual     string `json:"actual"`
	Error      string `json:"error,omitempty"`
}

// CodeExecutionResult is produced per sandbox invocation. Transient: it is
// never persisted beyond being copied into the owning question's submission.
type CodeExecutionResult struct {
	Success         bool             `json:"success"`
	Stdout          string           `json:"stdout"`
	Stderr          string           `json:"stderr"`
	ExecutionTimeMs int64            `json:"execution_time_ms"`
	TestResults     []TestCaseResult `json:"test_results,omitempty"`
}

// TestCase is one stdin/expected-stdout pair for batch code runs.
type TestCase struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

// SummaryResult is the end-of-session verdict.
type SummaryResult struct {
	Summary              string   `json:"summary"`
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	Recommendations      []string `json:"recommendations"`
	HiringRecommendation string   `json:"hiring_recommendation"`
	FinalScore           int      `json:"final_score"`
}
