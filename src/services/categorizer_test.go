package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	c := NewCategorizer()

	cases := []struct {
		merchant string
		want     string
	}{
		{"Starbucks", "🍔 Food & Dining"},
		{"McDonald's #4402", "🍔 Food & Dining"},
		{"Uber Trip 8821", "🚗 Transportation"},
		{"Shell Oil 57442", "🚗 Transportation"},
		{"AMAZON.COM*M12345", "🛍️ Shopping & Retail"},
		{"Netflix.com", "🎬 Entertainment"},
		{"Verizon Wireless", "💡 Bills & Utilities"},
		{"ACME Payroll Deposit", "💰 Income & Transfers"},
		{"Totally Unknown Vendor", CategoryUncategorized},
		{"", CategoryUncategorized},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, c.Categorize(tc.merchant), "merchant=%q", tc.merchant)
	}
}

func TestCategoriesListsFallback(t *testing.T) {
	c := NewCategorizer()
	categories := c.Categories()
	assert.Contains(t, categories, CategoryUncategorized)
	assert.Contains(t, categories, "🍔 Food & Dining")
}
