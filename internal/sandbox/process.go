package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"careerprep/interview/internal/models"
)

// ProcessExecutor runs code as an interpreter child process with the
// denylist screen and a wall-clock timeout. The default backend.
type ProcessExecutor struct{}

func NewProcessExecutor() *ProcessExecutor { return &ProcessExecutor{} }

func (e *ProcessExecutor) SupportedLanguages() []string {
	return supportedLanguageList()
}

func (e *ProcessExecutor) Execute(ctx context.Context, code, language, stdin string) models.CodeExecutionResult {
	spec, ok := languageSpecs[language]
	if !ok {
		return unsupportedLanguageResult(language)
	}

	if len(code) > MaxCodeLength {
		return codeTooLongResult()
	}

	if msg := screenCode(code, language, stdin != ""); msg != "" {
		return models.CodeExecutionResult{Success: false, Stderr: msg}
	}

	tmpFile, err := os.CreateTemp("", "submission-*"+spec.Extension)
	if err != nil {
		return models.CodeExecutionResult{
			Success: false,
			Stderr:  fmt.Sprintf("Execution error: %v", err),
		}
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(code); err != nil {
		tmpFile.Close()
		return models.CodeExecutionResult{
			Success: false,
			Stderr:  fmt.Sprintf("Execution error: %v", err),
		}
	}
	tmpFile.Close()

	runCtx, cancel := context.WithTimeout(ctx, spec.Timeout)
	defer cancel()

	args := append(append([]string(nil), spec.Command[1:]...), tmpPath)
	cmd := exec.CommandContext(runCtx, spec.Command[0], args...)

	// Run the interpreter in its own process group so a timeout kills the
	// whole tree, not just the direct child.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start).Milliseconds()

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return models.CodeExecutionResult{
			Success:         false,
			Stderr:          fmt.Sprintf("Execution timed out after %d seconds", int(spec.Timeout.Seconds())),
			ExecutionTimeMs: spec.Timeout.Milliseconds(),
		}
	}

	return models.CodeExecutionResult{
		Success:         runErr == nil,
		Stdout:          truncate(stdout.String(), MaxOutputLength),
		Stderr:          truncate(stderr.String(), MaxOutputLength),
		ExecutionTimeMs: elapsed,
	}
}

func (e *ProcessExecutor) RunWithTests(ctx context.Context, code, language string, testCases []models.TestCase) models.CodeExecutionResult {
	return runWithTests(ctx, e, code, language, testCases)
}
