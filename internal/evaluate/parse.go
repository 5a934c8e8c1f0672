package evaluate

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"careerprep/interview/internal/models"
)

var (
	boldScoreRe = regexp.MustCompile(`\*\*Score:\s*(\d+)\s*/\s*5\*\*`)
	bareScoreRe = regexp.MustCompile(`(\d+)\s*/\s*5`)
	sectionRe   = regexp.MustCompile(`\*\*([^*]+):\*\*`)
)

// ParseEvaluation extracts a structured result from a provider reply.
// JSON replies are tried first; otherwise the markdown evaluation format
// is scanned for the score line and bullet sections. Unparseable replies
// keep the neutral score with the raw text as feedback.
func ParseEvaluation(content string) models.EvaluationResult {
	if result, ok := parseEvaluationJSON(content); ok {
		return result
	}

	result := models.EvaluationResult{
		Score:    parseScore(content),
		Feedback: strings.TrimSpace(content),
	}

	if feedback := extractSection(content, "Feedback"); feedback != "" {
		result.Feedback = feedback
	}
	result.Strengths = extractBullets(content, "Strengths")
	result.Improvements = extractBullets(content, "Areas for Improvement")

	return result
}

type jsonEvaluation struct {
	Score        *int     `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

func parseEvaluationJSON(content string) (models.EvaluationResult, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return models.EvaluationResult{}, false
	}

	var parsed jsonEvaluation
	if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err != nil || parsed.Score == nil {
		return models.EvaluationResult{}, false
	}

	return models.EvaluationResult{
		Score:        clampScore(*parsed.Score),
		Feedback:     parsed.Feedback,
		Strengths:    parsed.Strengths,
		Improvements: parsed.Improvements,
	}, true
}

// parseScore finds the score with the bold form taking precedence over any
// bare X/5 occurrence, defaulting to 3.
func parseScore(content string) int {
	if m := boldScoreRe.FindStringSubmatch(content); m != nil {
		if score, err := strconv.Atoi(m[1]); err == nil {
			return clampScore(score)
		}
	}
	if m := bareScoreRe.FindStringSubmatch(content); m != nil {
		if score, err := strconv.Atoi(m[1]); err == nil {
			return clampScore(score)
		}
	}
	return 3
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 5 {
		return 5
	}
	return score
}

// extractSection returns the free text between **Name:** and the next
// bold section header.
func extractSection(content, name string) string {
	header := "**" + name + ":**"
	idx := strings.Index(content, header)
	if idx == -1 {
		return ""
	}
	rest := content[idx+len(header):]
	if next := sectionRe.FindStringIndex(rest); next != nil {
		rest = rest[:next[0]]
	}
	return strings.TrimSpace(rest)
}

// extractBullets collects the "- item" lines under a bold section header.
func extractBullets(content, name string) []string {
	section := extractSection(content, name)
	if section == "" {
		return nil
	}

	var items []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") {
			item := strings.TrimSpace(strings.TrimPrefix(line, "- "))
			if item != "" {
				items = append(items, item)
			}
		} else if strings.HasPrefix(line, "* ") {
			item := strings.TrimSpace(strings.TrimPrefix(line, "* "))
			if item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}
