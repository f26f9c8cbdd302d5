package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		name         string
		password     string
		wantScore    int
		wantFeedback []string
	}{
		{
			name:         "empty",
			password:     "",
			wantScore:    0,
			wantFeedback: []string{"Password is empty"},
		},
		{
			name:         "short lowercase",
			password:     "abc",
			wantScore:    5,
			wantFeedback: []string{"Add numbers or symbols", "Use at least 8 characters", "Add uppercase letters", "Add numbers", "Add special characters"},
		},
		{
			name:         "digits only",
			password:     "12345678",
			wantScore:    5,
			wantFeedback: []string{"Add letters and symbols", "Add uppercase letters", "Add lowercase letters", "Add special characters"},
		},
		{
			name:         "repeated characters",
			password:     "aaaBBB11",
			wantScore:    30,
			wantFeedback: []string{"Avoid repeated characters", "Add special characters"},
		},
		{
			name:         "all classes at 16",
			password:     "CorrectHorse123!",
			wantScore:    85,
			wantFeedback: []string{},
		},
		{
			name:         "all classes at 20",
			password:     "CorrectHorseBattery1!",
			wantScore:    95,
			wantFeedback: []string{},
		},
		{
			name:         "digits only penalty clamps at zero",
			password:     "1",
			wantScore:    0,
			wantFeedback: []string{"Add letters and symbols", "Use at least 8 characters", "Add uppercase letters", "Add lowercase letters", "Add special characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PasswordStrength(tt.password)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantFeedback, got.Feedback)
		})
	}
}

func TestPasswordStrength_GeneratedPasswordsScoreHigh(t *testing.T) {
	for range 20 {
		pw, err := GeneratePassword(24, DefaultGeneratorOptions())
		if err != nil {
			t.Fatalf("GeneratePassword error: %v", err)
		}
		// A 24-char pool of 88 may still miss a class or repeat a character.
		assert.GreaterOrEqual(t, PasswordStrength(pw).Score, 50)
	}
}
