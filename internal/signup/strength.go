package signup

import (
	"regexp"
	"unicode/utf8"
)

type Level int

const (
	LevelWeak Level = iota
	LevelFair
	LevelGood
	LevelStrong
)

func (l Level) String() string {
	switch l {
	case LevelWeak:
		return "weak"
	case LevelFair:
		return "fair"
	case LevelGood:
		return "good"
	}
	return "strong"
}

const (
	minStrongLength = 8
	pointsPerRule   = 25
)

var (
	reUpper      = regexp.MustCompile(`[A-Z]`)
	reLower      = regexp.MustCompile(`[a-z]`)
	reDigitOrSym = regexp.MustCompile(`[0-9!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
)

// Strength is the 0..100 score of a password and its band.
type Strength struct {
	Score int
	Level Level
}

// Evaluate awards 25 points for each of: at least eight characters, an
// ASCII upper-case letter, an ASCII lower-case letter, a digit or symbol.
func Evaluate(password string) Strength {
	score := 0
	if utf8.RuneCountInString(password) >= minStrongLength {
		score += pointsPerRule
	}
	for _, re := range []*regexp.Regexp{reUpper, reLower, reDigitOrSym} {
		if re.MatchString(password) {
			score += pointsPerRule
		}
	}
	return Strength{Score: score, Level: levelFor(score)}
}

func levelFor(score int) Level {
	switch {
	case score <= 25:
		return LevelWeak
	case score <= 50:
		return LevelFair
	case score <= 75:
		return LevelGood
	}
	return LevelStrong
}
