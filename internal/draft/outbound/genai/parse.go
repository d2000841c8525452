package genai

import (
	"errors"
	"strings"

	"github.com/draftwise/draftwise/internal/draft/entity"
)

const (
	fallbackSubject = "Generated Email"
	fallbackBody    = "No content generated."
)

// errUnparsable marks a response whose subject or body came out empty; the
// caller treats it like any other failed attempt.
var errUnparsable = errors.New("failed to parse generated email content")

// parseGenerated splits the raw model output into a subject and body.
//
// The subject is taken from the first non-empty line containing "subject:"
// (case-insensitive) or starting with "subject"; everything after it becomes
// the body. Without such a line the first line serves as the subject and the
// rest as the body, with placeholders filling whichever side is empty.
func parseGenerated(text, prompt string) (entity.GeneratedContent, error) {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	subjectIdx := -1
	for i, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		if strings.Contains(lower, "subject:") || strings.HasPrefix(lower, "subject") {
			subjectIdx = i
			break
		}
	}

	var subject, body string
	if subjectIdx >= 0 {
		_, after, found := strings.Cut(lines[subjectIdx], ":")
		if found {
			subject = strings.TrimSpace(after)
		}
		if subject == "" {
			subject = fallbackSubject
		}
		body = strings.TrimSpace(strings.Join(lines[subjectIdx+1:], "\n"))
	} else {
		if len(lines) > 0 {
			subject = strings.TrimSpace(lines[0])
			body = strings.TrimSpace(strings.Join(lines[1:], "\n"))
		}
		if subject == "" {
			subject = fallbackSubject
		}
		if body == "" {
			body = fallbackBody
		}
	}

	if subject == "" || body == "" {
		return entity.GeneratedContent{}, errUnparsable
	}

	return entity.GeneratedContent{Subject: subject, Body: body, PromptUsed: prompt}, nil
}
