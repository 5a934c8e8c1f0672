package sandbox

import (
	"fmt"
	"strings"
)

// Substring patterns associated with sandbox escape, matched as a heuristic
// lowercase substring scan; false positives are accepted.
var denyPatterns = map[string][]string{
	"python": {
		"import os",
		"import subprocess",
		"import sys",
		"__import__",
		"exec(",
		"eval(",
		"open(",
		"file(",
		"input(",
		"os.system",
		"os.popen",
		"subprocess.",
		"shutil.",
		"pathlib.",
	},
	"javascript": {
		"require('child_process')",
		"require('fs')",
		"require('os')",
		"require('path')",
		"process.exit",
		"process.env",
		"eval(",
		"Function(",
		"require('net')",
		"require('http')",
	},
	"typescript": {
		"require('child_process')",
		"require('fs')",
		"require('os')",
		"import * as fs",
		"import * as os",
		"import * as child_process",
		"process.exit",
		"eval(",
	},
}

// screenCode returns a non-empty rejection message when the code contains a
// denylisted pattern. Python's input( is exempt when the caller supplies
// stdin, since interactive reads are then legitimate.
func screenCode(code, language string, allowInput bool) string {
	patterns := denyPatterns[language]
	codeLower := strings.ToLower(code)

	for _, pattern := range patterns {
		if allowInput && language == "python" && pattern == "input(" {
			continue
		}
		if strings.Contains(codeLower, strings.ToLower(pattern)) {
			return fmt.Sprintf("Security: Potentially dangerous code pattern detected: '%s'", pattern)
		}
	}
	return ""
}
