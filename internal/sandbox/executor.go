// Package sandbox runs candidate-submitted code under hard caps: code
// length, output length and a per-language wall-clock timeout. The static
// denylist screen is defense in depth, not a security boundary; the
// Executor interface exists so a hardened backend can be swapped in
// without touching the orchestrator.
package sandbox

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"careerprep/interview/internal/models"
)

const (
	MaxOutputLength = 10000
	MaxCodeLength   = 50000
)

// Executor runs untrusted code and always returns a structured result,
// never an error: violations and failures surface as Success=false.
type Executor interface {
	Execute(ctx context.Context, code, language, stdin string) models.CodeExecutionResult
	RunWithTests(ctx context.Context, code, language string, testCases []models.TestCase) models.CodeExecutionResult
	SupportedLanguages() []string
}

// LanguageSpec describes how one language is materialized and run.
type LanguageSpec struct {
	Extension string
	Command   []string
	Timeout   time.Duration
	Image     string // docker backend only
}

var languageSpecs = map[string]LanguageSpec{
	"python": {
		Extension: ".py",
		Command:   []string{"python3"},
		Timeout:   10 * time.Second,
		Image:     "python:3.11-slim",
	},
	"javascript": {
		Extension: ".js",
		Command:   []string{"node"},
		Timeout:   10 * time.Second,
		Image:     "node:20-slim",
	},
	"typescript": {
		Extension: ".ts",
		Command:   []string{"npx", "ts-node"},
		Timeout:   15 * time.Second,
		Image:     "node:20-slim",
	},
}

func supportedLanguageList() []string {
	languages := make([]string, 0, len(languageSpecs))
	for lang := range languageSpecs {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}

func unsupportedLanguageResult(language string) models.CodeExecutionResult {
	return models.CodeExecutionResult{
		Success: false,
		Stderr: fmt.Sprintf("Unsupported language: %s. Supported: %s",
			language, strings.Join(supportedLanguageList(), ", ")),
	}
}

func codeTooLongResult() models.CodeExecutionResult {
	return models.CodeExecutionResult{
		Success: false,
		Stderr:  fmt.Sprintf("Code too long. Maximum %d characters allowed.", MaxCodeLength),
	}
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// runWithTests executes once per test case, comparing trimmed stdout to
// the expected trimmed value. Overall success means every case passed.
func runWithTests(ctx context.Context, e Executor, code, language string, testCases []models.TestCase) models.CodeExecutionResult {
	allPassed := true
	var totalTime int64
	results := make([]models.TestCaseResult, 0, len(testCases))

	for i, tc := range testCases {
		result := e.Execute(ctx, code, language, tc.Input)
		totalTime += result.ExecutionTimeMs

		passed := result.Success && strings.TrimSpace(result.Stdout) == strings.TrimSpace(tc.Expected)
		allPassed = allPassed && passed

		caseResult := models.TestCaseResult{
			TestNumber: i + 1,
			Passed:     passed,
			Input:      tc.Input,
			Expected:   tc.Expected,
			Actual:     strings.TrimSpace(result.Stdout),
		}
		if !result.Success {
			caseResult.Error = result.Stderr
		}
		results = append(results, caseResult)
	}

	passedCount := 0
	for _, r := range results {
		if r.Passed {
			passedCount++
		}
	}

	out := models.CodeExecutionResult{
		Success:         allPassed,
		Stdout:          fmt.Sprintf("Passed %d/%d test cases", passedCount, len(testCases)),
		ExecutionTimeMs: totalTime,
		TestResults:     results,
	}
	if !allPassed {
		out.Stderr = "Some test cases failed"
	}
	return out
}
