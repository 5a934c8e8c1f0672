package sandbox

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"careerprep/interview/internal/models"
)

func TestScreenCode(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		language   string
		allowInput bool
		wantBlock  bool
	}{
		{
			name:      "python subprocess import",
			code:      "import subprocess\nsubprocess.run(['ls'])",
			language:  "python",
			wantBlock: true,
		},
		{
			name:      "python os import case insensitive",
			code:      "IMPORT OS",
			language:  "python",
			wantBlock: true,
		},
		{
			name:      "python clean code",
			code:      "print(sum(range(10)))",
			language:  "python",
			wantBlock: false,
		},
		{
			name:       "python input allowed with stdin",
			code:       "x = input()\nprint(x)",
			language:   "python",
			allowInput: true,
			wantBlock:  false,
		},
		{
			name:      "python input blocked without stdin",
			code:      "x = input()",
			language:  "python",
			wantBlock: true,
		},
		{
			name:      "javascript child_process",
			code:      "const cp = require('child_process')",
			language:  "javascript",
			wantBlock: true,
		},
		{
			name:      "javascript clean code",
			code:      "console.log([1,2,3].map(x => x * 2))",
			language:  "javascript",
			wantBlock: false,
		},
		{
			name:      "typescript fs namespace import",
			code:      "import * as fs from 'fs'",
			language:  "typescript",
			wantBlock: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := screenCode(tt.code, tt.language, tt.allowInput)
			if tt.wantBlock && msg == "" {
				t.Error("screenCode() passed code that should be blocked")
			}
			if !tt.wantBlock && msg != "" {
				t.Errorf("screenCode() blocked benign code: %s", msg)
			}
			if tt.wantBlock && !strings.Contains(msg, "Security:") {
				t.Errorf("rejection message missing Security prefix: %q", msg)
			}
		})
	}
}

func TestExecuteRejectsWithoutSpawning(t *testing.T) {
	e := NewProcessExecutor()
	ctx := context.Background()

	t.Run("unsupported language", func(t *testing.T) {
		result := e.Execute(ctx, "puts 1", "ruby", "")
		if result.Success {
			t.Error("Success = true for unsupported language")
		}
		if !strings.Contains(result.Stderr, "Unsupported language") {
			t.Errorf("Stderr = %q", result.Stderr)
		}
	})

	t.Run("code too long", func(t *testing.T) {
		result := e.Execute(ctx, strings.Repeat("a", MaxCodeLength+1), "python", "")
		if result.Success {
			t.Error("Success = true for oversized code")
		}
		if !strings.Contains(result.Stderr, "Code too long") {
			t.Errorf("Stderr = %q", result.Stderr)
		}
	})

	t.Run("denylisted pattern", func(t *testing.T) {
		result := e.Execute(ctx, "import os\nos.system('id')", "python", "")
		if result.Success {
			t.Error("Success = true for denylisted code")
		}
		if !strings.Contains(result.Stderr, "Security:") {
			t.Errorf("Stderr = %q", result.Stderr)
		}
	})
}

func requirePython(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}
}

func TestExecutePython(t *testing.T) {
	requirePython(t)
	e := NewProcessExecutor()

	result := e.Execute(context.Background(), "print(2 + 2)", "python", "")
	if !result.Success {
		t.Fatalf("Success = false: %s", result.Stderr)
	}
	if strings.TrimSpace(result.Stdout) != "4" {
		t.Errorf("Stdout = %q, want 4", result.Stdout)
	}
}

func TestExecutePythonWithStdin(t *testing.T) {
	requirePython(t)
	e := NewProcessExecutor()

	result := e.Execute(context.Background(), "print(input().upper())", "python", "hello\n")
	if !result.Success {
		t.Fatalf("Success = false: %s", result.Stderr)
	}
	if strings.TrimSpace(result.Stdout) != "HELLO" {
		t.Errorf("Stdout = %q, want HELLO", result.Stdout)
	}
}

func TestExecutePythonRuntimeError(t *testing.T) {
	requirePython(t)
	e := NewProcessExecutor()

	result := e.Execute(context.Background(), "raise ValueError('boom')", "python", "")
	if result.Success {
		t.Error("Success = true for raising code")
	}
	if !strings.Contains(result.Stderr, "ValueError") {
		t.Errorf("Stderr = %q", result.Stderr)
	}
}

func TestExecuteTimeout(t *testing.T) {
	requirePython(t)
	if testing.Short() {
		t.Skip("timeout test sleeps past the python deadline")
	}
	e := NewProcessExecutor()

	start := time.Now()
	result := e.Execute(context.Background(), "while True:\n    pass", "python", "")
	elapsed := time.Since(start)

	if result.Success {
		t.Error("Success = true for looping code")
	}
	if !strings.Contains(result.Stderr, "timed out") {
		t.Errorf("Stderr = %q, want timeout message", result.Stderr)
	}
	spec := languageSpecs["python"]
	if result.ExecutionTimeMs != spec.Timeout.Milliseconds() {
		t.Errorf("ExecutionTimeMs = %d, want %d", result.ExecutionTimeMs, spec.Timeout.Milliseconds())
	}
	// The caller must get control back shortly after the deadline.
	if elapsed > spec.Timeout+5*time.Second {
		t.Errorf("Execute blocked for %s past a %s timeout", elapsed, spec.Timeout)
	}
}

func TestRunWithTests(t *testing.T) {
	requirePython(t)
	e := NewProcessExecutor()

	code := "print(int(input()) * 2)"
	cases := []models.TestCase{
		{Input: "2\n", Expected: "4"},
		{Input: "5\n", Expected: "10"},
		{Input: "3\n", Expected: "7"}, // wrong on purpose
	}

	result := e.RunWithTests(context.Background(), code, "python", cases)
	if result.Success {
		t.Error("Success = true with a failing test case")
	}
	if len(result.TestResults) != 3 {
		t.Fatalf("got %d test results, want 3", len(result.TestResults))
	}
	if !result.TestResults[0].Passed || !result.TestResults[1].Passed {
		t.Error("expected first two cases to pass")
	}
	if result.TestResults[2].Passed {
		t.Error("expected third case to fail")
	}
	if !strings.Contains(result.Stdout, "Passed 2/3") {
		t.Errorf("Stdout = %q, want pass summary", result.Stdout)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", MaxOutputLength+50)
	got := truncate(long, MaxOutputLength)
	if len(got) != MaxOutputLength {
		t.Errorf("len = %d, want %d", len(got), MaxOutputLength)
	}

	short := "hello"
	if truncate(short, MaxOutputLength) != short {
		t.Error("truncate modified short output")
	}
}

func TestDefaultDockerLimits(t *testing.T) {
	limits := DefaultDockerLimits()
	if limits.MemoryB != 256*1024*1024 {
		t.Errorf("MemoryB = %d", limits.MemoryB)
	}
	if limits.NanoCPUs != 500_000_000 {
		t.Errorf("NanoCPUs = %d", limits.NanoCPUs)
	}
}

func TestSupportedLanguages(t *testing.T) {
	languages := NewProcessExecutor().SupportedLanguages()
	want := map[string]bool{"python": true, "javascript": true, "typescript": true}
	if len(languages) != len(want) {
		t.Fatalf("got %d languages: %v", len(languages), languages)
	}
	for _, lang := range languages {
		if !want[lang] {
			t.Errorf("unexpected language %q", lang)
		}
	}
}
