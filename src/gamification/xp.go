// src/gamification/xp.go
package gamification

import "strings"

// xpPerLevel is the flat XP cost of each level.
const xpPerLevel = 100

// maxXPPerTransaction caps how much a single purchase can award.
const maxXPPerTransaction = 50

// XPFromTransaction computes the XP a transaction earns. Only outflows
// (positive amounts) award XP: one point per $10 spent capped at 50, plus a
// small bonus for selected categories.
func XPFromTransaction(amount float64, categories []string) int {
	if amount <= 0 {
		return 0
	}

	xp := int(amount * 0.1)
	if xp > maxXPPerTransaction {
		xp = maxXPPerTransaction
	}

	joined := strings.ToLower(strings.Join(categories, " "))
	switch {
	case strings.Contains(joined, "food"):
		xp += 5
	case strings.Contains(joined, "entertainment"):
		xp += 3
	case strings.Contains(joined, "transportation"):
		xp += 2
	}
	return xp
}

// LevelFromXP derives the user's level from accumulated XP.
func LevelFromXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/xpPerLevel + 1
}
