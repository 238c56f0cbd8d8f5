// Package fantasy holds the pure fantasy-game calculations that must stay
// deterministic between requests: a player's credit cost may not change
// while a contest is open.
package fantasy

import (
	"math"
	"strings"
)

const (
	MinCredits = 7.0
	MaxCredits = 11.0
)

// EstimateCredits maps a player's declared role and display name to a
// credit value in [7.0, 11.0] with one decimal place. The variance term is
// derived from the sum of the name's Unicode code points, so the same
// (role, name) pair always prices the same, including non-ASCII names.
func EstimateCredits(role, name string) float64 {
	base := 8.0

	switch strings.ToLower(strings.TrimSpace(role)) {
	case "batsman":
		base = 8.5
	case "bowler":
		base = 8.0
	case "batting allrounder", "bowling allrounder", "all-rounder", "allrounder":
		base = 9.0
	case "wicketkeeper", "wk-batsman":
		base = 8.5
	default:
		base = 8.0
	}

	variance := float64(codePointSum(name)%20)/10.0 - 1.0 // -1.0 .. +0.9

	credits := base + variance
	if credits < MinCredits {
		credits = MinCredits
	}
	if credits > MaxCredits {
		credits = MaxCredits
	}
	return math.Round(credits*10) / 10
}

func codePointSum(s string) int {
	sum := 0
	for _, r := range s {
		sum += int(r)
	}
	return sum
}
