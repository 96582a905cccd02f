// Package validation sanitizes and validates habit input before it reaches
// the store. Checks report their findings as a Result rather than an error
// so callers can decide whether to block submission.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/ritualhq/ritual/internal/models"
)

const (
	minNameLen        = 2
	maxNameLen        = 50
	maxDescriptionLen = 200
	maxInputLen       = 500
)

// Result carries the outcome of a validation pass.
type Result struct {
	Valid  bool
	Errors []string
}

func result(errors []string) Result {
	return Result{Valid: len(errors) == 0, Errors: errors}
}

// FormatReport returns a human-readable summary of the findings.
func (r Result) FormatReport() string {
	if r.Valid {
		return "No problems detected."
	}
	var b strings.Builder
	b.WriteString("Invalid input:\n")
	for _, e := range r.Errors {
		b.WriteString("- " + e + "\n")
	}
	return b.String()
}

// SanitizeText trims whitespace, strips angle brackets, and truncates
// oversized input. Applied before length checks and before storage.
// Lengths are measured in runes so multi-byte input is never cut mid-rune.
func SanitizeText(text string) string {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	if utf8.RuneCountInString(s) > maxInputLen {
		s = string([]rune(s)[:maxInputLen])
	}
	return s
}

// ValidateHabitName checks a habit name after sanitization.
func ValidateHabitName(name string) Result {
	var errs []string
	sanitized := SanitizeText(name)

	switch n := utf8.RuneCountInString(sanitized); {
	case n == 0:
		errs = append(errs, "habit name is required")
	case n < minNameLen:
		errs = append(errs, "habit name must be at least 2 characters")
	case n > maxNameLen:
		errs = append(errs, "habit name must be at most 50 characters")
	}

	return result(errs)
}

// ValidateHabitDescription checks an optional description.
func ValidateHabitDescription(description string) Result {
	var errs []string
	if description != "" && utf8.RuneCountInString(SanitizeText(description)) > maxDescriptionLen {
		errs = append(errs, "description must be at most 200 characters")
	}
	return result(errs)
}

// ValidateHabitForm checks a complete habit creation or edit form.
func ValidateHabitForm(input models.CreateHabitInput) Result {
	var errs []string

	errs = append(errs, ValidateHabitName(input.Name).Errors...)
	errs = append(errs, ValidateHabitDescription(input.Description).Errors...)

	if input.Frequency == models.FrequencyWeekly && len(input.TargetDays) == 0 {
		errs = append(errs, "weekly habits need at least one target day")
	}
	for _, d := range input.TargetDays {
		if d < 0 || d > 6 {
			errs = append(errs, "target days must be between 0 (Sunday) and 6 (Saturday)")
			break
		}
	}

	return result(errs)
}
