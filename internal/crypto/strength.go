package crypto

import "unicode/utf8"

// Strength is a rough 0..100 rating of a password plus hints for the user.
type Strength struct {
	Score    int      `json:"score"`
	Feedback []string `json:"feedback"`
}

// PasswordStrength rates password by length tiers and character variety,
// with penalties for runs of a repeated character and single-class input.
func PasswordStrength(password string) Strength {
	if password == "" {
		return Strength{Score: 0, Feedback: []string{"Password is empty"}}
	}

	var (
		score    int
		feedback = make([]string, 0, 4)
		length   = utf8.RuneCountInString(password)
	)

	for _, tier := range []struct{ min, points int }{{8, 10}, {12, 15}, {16, 15}, {20, 10}} {
		if length >= tier.min {
			score += tier.points
		}
	}

	var lower, upper, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}
	if lower {
		score += 10
	}
	if upper {
		score += 10
	}
	if digit {
		score += 10
	}
	if other {
		score += 15
	}

	if hasRun(password, 3) {
		score -= 10
		feedback = append(feedback, "Avoid repeated characters")
	}
	if (lower || upper) && !digit && !other {
		score -= 5
		feedback = append(feedback, "Add numbers or symbols")
	}
	if digit && !lower && !upper && !other {
		score -= 15
		feedback = append(feedback, "Add letters and symbols")
	}

	if length < 8 {
		feedback = append(feedback, "Use at least 8 characters")
	}
	if !upper {
		feedback = append(feedback, "Add uppercase letters")
	}
	if !lower {
		feedback = append(feedback, "Add lowercase letters")
	}
	if !digit {
		feedback = append(feedback, "Add numbers")
	}
	if !other {
		feedback = append(feedback, "Add special characters")
	}

	return Strength{Score: max(0, min(100, score)), Feedback: feedback}
}

// hasRun reports whether s contains n or more identical consecutive runes.
func hasRun(s string, n int) bool {
	var (
		prev  rune = -1
		count int
	)
	for _, r := range s {
		if r == prev {
			count++
		} else {
			prev, count = r, 1
		}
		if count >= n {
			return true
		}
	}
	return false
}
