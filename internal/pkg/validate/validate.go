// Package validate holds format and strength checks for user-supplied
// strings, plus the sanitization applied to free text before storage.
package validate

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/taskhub/task-api/internal/core/domain"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email reports whether s looks like a standard email address.
func Email(s string) bool {
	return s != "" && emailPattern.MatchString(s)
}

// Password checks strength: at least 8 characters with one uppercase letter,
// one lowercase letter, and one digit. Returns a user-facing message on
// failure.
func Password(s string) error {
	if s == "" {
		return domain.NewValidationError("password is required")
	}
	if len(s) < 8 {
		return domain.NewValidationError("password must be at least 8 characters long")
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper {
		return domain.NewValidationError("password must contain at least one uppercase letter")
	}
	if !lower {
		return domain.NewValidationError("password must contain at least one lowercase letter")
	}
	if !digit {
		return domain.NewValidationError("password must contain at least one digit")
	}
	return nil
}

// Sanitize trims whitespace and escapes HTML entities. It guards against
// stored XSS on later render; SQL injection is handled separately by
// parameterized queries at the store layer.
func Sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// TaskStatus validates a status string against the task status enum,
// returning the canonical value. The error message lists the valid values.
func TaskStatus(s string) (domain.TaskStatus, error) {
	status := domain.TaskStatus(s)
	if !status.Valid() {
		return "", domain.NewValidationError(
			fmt.Sprintf("invalid status, must be one of: %s", domain.TaskStatusList()))
	}
	return status, nil
}

// TaskTitle checks the 1–200 character bound after sanitization.
func TaskTitle(s string) error {
	if s == "" {
		return domain.NewValidationError("task title is required")
	}
	if len(s) > domain.MaxTitleLength {
		return domain.NewValidationError(
			fmt.Sprintf("title must not exceed %d characters", domain.MaxTitleLength))
	}
	return nil
}
