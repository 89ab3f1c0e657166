package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPFromTransaction(t *testing.T) {
	cases := []struct {
		name       string
		amount     float64
		categories []string
		want       int
	}{
		{"small purchase", 42.50, nil, 4},
		{"capped at 50", 1200, nil, 50},
		{"food bonus", 30, []string{"Food and Drink"}, 8},
		{"entertainment bonus", 30, []string{"Entertainment"}, 6},
		{"transportation bonus", 30, []string{"Transportation"}, 5},
		{"food wins over transport", 30, []string{"Food and Drink", "Transportation"}, 8},
		{"inflow earns nothing", -2500, []string{"Deposit"}, 0},
		{"zero earns nothing", 0, nil, 0},
		{"cap then bonus", 1200, []string{"Food and Drink"}, 55},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, XPFromTransaction(c.amount, c.categories))
		})
	}
}

func TestLevelFromXP(t *testing.T) {
	assert.Equal(t, 1, LevelFromXP(0))
	assert.Equal(t, 1, LevelFromXP(99))
	assert.Equal(t, 2, LevelFromXP(100))
	assert.Equal(t, 6, LevelFromXP(550))
	assert.Equal(t, 1, LevelFromXP(-10))
}
