package validation

import (
	"regexp"
	"unicode/utf8"
)

var (
	lowerRegex  = regexp.MustCompile(`[a-z]`)
	upperRegex  = regexp.MustCompile(`[A-Z]`)
	digitRegex  = regexp.MustCompile(`\d`)
	symbolRegex = regexp.MustCompile(`[!@#$%^&*]`)
)

const MinPasswordLen = 8

var strengthLabels = [...]string{"", "약함", "보통", "강함", "매우 강함"}

// PasswordStrength scores a password from 0 to 4, one point each for
// length, mixed case, a digit and a symbol.
func PasswordStrength(password string) int {
	score := 0
	if utf8.RuneCountInString(password) >= MinPasswordLen {
		score++
	}
	if lowerRegex.MatchString(password) && upperRegex.MatchString(password) {
		score++
	}
	if digitRegex.MatchString(password) {
		score++
	}
	if symbolRegex.MatchString(password) {
		score++
	}
	return score
}

func StrengthLabel(score int) string {
	if score < 0 {
		score = 0
	}
	if score >= len(strengthLabels) {
		score = len(strengthLabels) - 1
	}
	return strengthLabels[score]
}
