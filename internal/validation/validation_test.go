package validation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ritualhq/ritual/internal/models"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims whitespace", "  read  ", "read"},
		{"strips angle brackets", "<script>read</script>", "scriptread/script"},
		{"keeps normal text", "Morning run", "Morning run"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.in); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	long := strings.Repeat("a", 600)
	if got := SanitizeText(long); len(got) != 500 {
		t.Errorf("SanitizeText truncated to %d chars, want 500", len(got))
	}
}

func TestSanitizeTextTruncatesOnRuneBoundary(t *testing.T) {
	// A multi-byte rune at the truncation point must be dropped whole,
	// never sliced into a dangling lead byte.
	in := strings.Repeat("a", 499) + "éx"
	got := SanitizeText(in)
	if !utf8.ValidString(got) {
		t.Fatalf("SanitizeText produced invalid UTF-8: %q", got[len(got)-4:])
	}
	if n := utf8.RuneCountInString(got); n != 500 {
		t.Errorf("truncated to %d runes, want 500", n)
	}
	if !strings.HasSuffix(got, "é") {
		t.Errorf("truncation dropped the wrong rune, got suffix %q", got[len(got)-4:])
	}

	cjk := strings.Repeat("習", 600)
	got = SanitizeText(cjk)
	if !utf8.ValidString(got) {
		t.Fatal("SanitizeText produced invalid UTF-8 from CJK input")
	}
	if n := utf8.RuneCountInString(got); n != 500 {
		t.Errorf("CJK input truncated to %d runes, want 500", n)
	}
}

func TestValidateHabitName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid", "Read", true},
		{"minimum length", "Ab", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"too short", "a", false},
		{"too long", strings.Repeat("x", 51), false},
		{"valid after trim", "  Meditate  ", true},
		{"multi-byte within bounds", strings.Repeat("習", 20), true},
		{"multi-byte at limit", strings.Repeat("ü", 50), true},
		{"multi-byte too long", strings.Repeat("ü", 51), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateHabitName(tt.input)
			if res.Valid != tt.valid {
				t.Errorf("ValidateHabitName(%q).Valid = %v, want %v (errors: %v)",
					tt.input, res.Valid, tt.valid, res.Errors)
			}
		})
	}
}

func TestValidateHabitDescription(t *testing.T) {
	if res := ValidateHabitDescription(""); !res.Valid {
		t.Error("empty description should be valid")
	}
	if res := ValidateHabitDescription("short note"); !res.Valid {
		t.Error("short description should be valid")
	}
	if res := ValidateHabitDescription(strings.Repeat("x", 201)); res.Valid {
		t.Error("201-char description should be invalid")
	}
	if res := ValidateHabitDescription(strings.Repeat("é", 200)); !res.Valid {
		t.Error("200-rune multi-byte description should be valid")
	}
}

func TestValidateHabitForm(t *testing.T) {
	valid := models.CreateHabitInput{
		Name:      "Read",
		Frequency: models.FrequencyDaily,
	}
	if res := ValidateHabitForm(valid); !res.Valid {
		t.Errorf("expected valid form, got errors: %v", res.Errors)
	}

	weeklyNoDays := models.CreateHabitInput{
		Name:      "Gym",
		Frequency: models.FrequencyWeekly,
	}
	res := ValidateHabitForm(weeklyNoDays)
	if res.Valid {
		t.Error("weekly habit without target days should be invalid")
	}

	badDay := models.CreateHabitInput{
		Name:       "Gym",
		Frequency:  models.FrequencyWeekly,
		TargetDays: []int{7},
	}
	if res := ValidateHabitForm(badDay); res.Valid {
		t.Error("out-of-range target day should be invalid")
	}

	// Errors accumulate across fields.
	broken := models.CreateHabitInput{
		Name:        "",
		Description: strings.Repeat("x", 300),
		Frequency:   models.FrequencyWeekly,
	}
	res = ValidateHabitForm(broken)
	if len(res.Errors) < 3 {
		t.Errorf("expected 3 errors, got %v", res.Errors)
	}
}

func TestFormatReport(t *testing.T) {
	if got := (Result{Valid: true}).FormatReport(); got != "No problems detected." {
		t.Errorf("FormatReport() = %q", got)
	}
	r := Result{Errors: []string{"habit name is required"}}
	if !strings.Contains(r.FormatReport(), "habit name is required") {
		t.Error("report should include error text")
	}
}
