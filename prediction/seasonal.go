package prediction

import (
	"strings"
	"time"
)

// season maps a calendar month to a price multiplier. Missing months are 1.0.
type season map[time.Month]float64

func (s season) set(factor float64, months ...time.Month) season {
	for _, m := range months {
		s[m] = factor
	}
	return s
}

func (s season) factor(m time.Month) float64 {
	if f, ok := s[m]; ok {
		return f
	}
	return 1.0
}

// seasonalRule applies to every category whose lower-cased name contains one
// of its keywords.
type seasonalRule struct {
	keywords []string
	months   season
}

// seasonalRules is evaluated in order, first match wins.
var seasonalRules = []seasonalRule{
	{
		keywords: []string{"wheat"},
		months: season{}.
			set(1.1, time.March, time.April, time.May, time.June).
			set(0.9, time.July, time.August, time.September),
	},
	{
		keywords: []string{"rice"},
		months: season{}.
			set(1.1, time.September, time.October, time.November).
			set(0.9, time.December, time.January, time.February),
	},
	{
		keywords: []string{"corn", "maize"},
		months: season{}.
			set(1.1, time.August, time.September, time.October).
			set(0.9, time.November, time.December, time.January),
	},
}

var defaultSeason = season{}.
	set(1.05, time.March, time.April, time.September, time.October).
	set(0.95, time.June, time.July, time.December, time.January)

// SeasonalFactor returns the multiplier applied to a category's price in the
// given month. Harvest months push prices up, post-harvest months down.
func SeasonalFactor(category string, month time.Month) float64 {
	return seasonFor(category).factor(month)
}

func seasonFor(category string) season {
	name := strings.ToLower(category)
	for _, rule := range seasonalRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.months
			}
		}
	}
	return defaultSeason
}
