// Package strength scores candidate passwords for the strength meter shown
// on the registration form. The score is informational and never gates
// form validity.
package strength

import (
	"strings"
)

const MinLength = 8

// Tier is the display tier of a score.
type Tier int

const (
	VeryWeak Tier = iota
	Weak
	Medium
	Strong
	VeryStrong
)

var tierInfos = [...]struct {
	name       string
	label      string
	class      string
	percentage int
}{
	VeryWeak:   {"very weak", "Très faible", "strength-very-weak", 20},
	Weak:       {"weak", "Faible", "strength-weak", 40},
	Medium:     {"medium", "Moyen", "strength-medium", 60},
	Strong:     {"strong", "Fort", "strength-strong", 80},
	VeryStrong: {"very strong", "Très fort", "strength-very-strong", 100},
}

func (t Tier) String() string { return tierInfos[t].name }

// Label is the text shown under the meter.
func (t Tier) Label() string { return tierInfos[t].label }

// Class is the css class of the meter bar.
func (t Tier) Class() string { return tierInfos[t].class }

func (t Tier) Percentage() int { return tierInfos[t].percentage }

// Result is what the strength meter displays. Show is false for an empty
// candidate, in which case the meter is hidden entirely.
type Result struct {
	Show       bool   `json:"show"`
	Score      int    `json:"score"`
	Percentage int    `json:"percentage"`
	Tier       Tier   `json:"-"`
	Label      string `json:"label"`
	Class      string `json:"class"`
}

// length counts UTF-16 code units, the way browsers measure input length.
func length(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Score gives one point for each of: length of at least MinLength, a lower
// case letter, an upper case letter, a digit and any other character.
func Score(candidate string) int {
	var lower, upper, digit, symbol bool
	for _, r := range candidate {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}

	score := 0
	for _, ok := range []bool{length(candidate) >= MinLength, lower, upper, digit, symbol} {
		if ok {
			score++
		}
	}
	return score
}

// TierOf maps a score in [0, 5] to its tier. Scores 0 and 1 share the lowest
// tier; anything out of range is clamped.
func TierOf(score int) Tier {
	switch {
	case score <= 1:
		return VeryWeak
	case score >= 5:
		return VeryStrong
	default:
		return Tier(score - 1)
	}
}

// Evaluate scores candidate for display. Whitespace-only input counts as
// empty and hides the meter.
func Evaluate(candidate string) Result {
	if strings.TrimSpace(candidate) == "" {
		return Result{}
	}
	score := Score(candidate)
	tier := TierOf(score)
	return Result{
		Show:       true,
		Score:      score,
		Percentage: tier.Percentage(),
		Tier:       tier,
		Label:      tier.Label(),
		Class:      tier.Class(),
	}
}
