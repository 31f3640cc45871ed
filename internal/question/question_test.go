package question

import (
	"errors"
	"testing"
	"time"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"", DifficultyMixed, false},
		{"mixed", DifficultyMixed, false},
		{" Easy ", DifficultyEasy, false},
		{"MEDIUM", DifficultyMedium, false},
		{"hard", DifficultyHard, false},
		{"brutal", DifficultyMixed, true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrUnknownDifficulty) {
			t.Errorf("ParseDifficulty(%q) error = %v, want ErrUnknownDifficulty", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseResetPeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    ResetPeriod
		wantErr bool
	}{
		{"60d", Reset60Days, false},
		{"60 days", Reset60Days, false},
		{"90", Reset90Days, false},
		{"90 Days", Reset90Days, false},
		{"Never", ResetNever, false},
		{"none", ResetNone, false},
		{"", ResetNone, false},
		{"30d", ResetNone, true},
	}
	for _, tt := range tests {
		got, err := ParseResetPeriod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseResetPeriod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidResetPeriod) {
			t.Errorf("ParseResetPeriod(%q) error = %v, want ErrInvalidResetPeriod", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseResetPeriod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResetPeriodDuration(t *testing.T) {
	if d, ok := Reset60Days.Duration(); !ok || d != 60*24*time.Hour {
		t.Errorf("Reset60Days.Duration() = %v, %v", d, ok)
	}
	if d, ok := Reset90Days.Duration(); !ok || d != 90*24*time.Hour {
		t.Errorf("Reset90Days.Duration() = %v, %v", d, ok)
	}
	for _, p := range []ResetPeriod{ResetNone, ResetNever} {
		if _, ok := p.Duration(); ok {
			t.Errorf("%s.Duration() ok = true, want false", p)
		}
	}
	if ResetPeriod("weekly").Valid() {
		t.Error("weekly should not be valid")
	}
}

func TestParseType(t *testing.T) {
	tests := map[string]Type{
		"true_false":      TypeTrueFalse,
		"Numeric":         TypeNumeric,
		"multiple_choice": TypeMultipleChoice,
		"":                TypeMultipleChoice,
		"essay":           TypeMultipleChoice,
	}
	for in, want := range tests {
		if got := ParseType(in); got != want {
			t.Errorf("ParseType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizedText(t *testing.T) {
	q := Question{Text: "  Who Was Moses?\t"}
	if got := q.NormalizedText(); got != "who was moses?" {
		t.Errorf("NormalizedText() = %q", got)
	}
}
