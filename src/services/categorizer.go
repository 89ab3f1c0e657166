// src/services/categorizer.go
package services

import (
	"regexp"
	"strings"
)

// CategoryUncategorized is the fallback when no rule matches.
const CategoryUncategorized = "📋 Other"

// categoryRule pairs a display category with the merchant keywords and
// patterns that map into it. Keyword hits score higher than pattern hits.
type categoryRule struct {
	Category string
	Keywords []string
	Patterns []*regexp.Regexp
}

// Categorizer assigns display categories to transactions based on merchant
// names. Rules are ordered; the highest-scoring match wins.
type Categorizer struct {
	rules []categoryRule
}

func NewCategorizer() *Categorizer {
	return &Categorizer{rules: []categoryRule{
		{
			Category: "🍔 Food & Dining",
			Keywords: []string{
				"starbucks", "mcdonald", "kfc", "restaurant", "food", "dining",
				"coffee", "pizza", "burger", "subway", "taco", "chipotle",
				"dunkin", "panera", "cafe", "bakery", "deli", "grill", "bar",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)restaurant|cafe|diner|grill|pizza|burger|sandwich|coffee`),
			},
		},
		{
			Category: "🚗 Transportation",
			Keywords: []string{
				"uber", "lyft", "taxi", "airline", "united", "delta",
				"gas", "fuel", "parking", "metro", "bus", "train",
				"shell", "exxon", "chevron", "toll",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)gas|fuel|parking|toll|uber|lyft|taxi`),
			},
		},
		{
			Category: "🛍️ Shopping & Retail",
			Keywords: []string{
				"amazon", "walmart", "target", "shop", "store", "retail",
				"costco", "home depot", "best buy", "nike", "ebay", "etsy",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)store|shop|retail|amazon|walmart|target`),
			},
		},
		{
			Category: "🎬 Entertainment",
			Keywords: []string{
				"netflix", "spotify", "movie", "theater", "game", "entertainment",
				"hulu", "disney", "hbo", "youtube", "steam", "cinema", "gym", "fitness",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)movie|theater|cinema|game|entertainment|netflix|spotify`),
			},
		},
		{
			Category: "💡 Bills & Utilities",
			Keywords: []string{
				"electric", "water", "internet", "phone", "cable", "utility",
				"verizon", "att", "tmobile", "comcast", "spectrum",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)electric|water|utility|internet|phone|cable`),
			},
		},
		{
			Category: "💰 Income & Transfers",
			Keywords: []string{
				"payroll", "deposit", "salary", "transfer", "venmo", "zelle", "paypal",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)payroll|deposit|salary|transfer`),
			},
		},
	}}
}

// Categorize maps a merchant name to a display category. Keyword matches
// count double; ties resolve to the earlier rule.
func (c *Categorizer) Categorize(merchant string) string {
	name := strings.ToLower(strings.TrimSpace(merchant))
	if name == "" {
		return CategoryUncategorized
	}

	best := CategoryUncategorized
	bestScore := 0
	for _, rule := range c.rules {
		score := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(name, kw) {
				score += 2
			}
		}
		for _, p := range rule.Patterns {
			if p.MatchString(name) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = rule.Category
		}
	}
	return best
}

// Categories lists all known display categories in rule order.
func (c *Categorizer) Categories() []string {
	out := make([]string, 0, len(c.rules)+1)
	for _, rule := range c.rules {
		out = append(out, rule.Category)
	}
	return append(out, CategoryUncategorized)
}
