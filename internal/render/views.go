package render

import (
	"github.com/octobees/job-market-dashboard/internal/charts"
	"github.com/octobees/job-market-dashboard/internal/search"
)

// Option is one entry of a select or radio group.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// ProfilePage is the body of the filter and results page.
type ProfilePage struct {
	OptionsError string
	Cities       []Option
	Departments  []Option
	Regions      []Option
	Skills       []Option
	Contracts    []Option
	Dates        []Option
	Error        string
	Result       *search.SearchResult
	Pager        search.Pager
}

// MapPage is the body of the geographic distribution page.
type MapPage struct {
	Zones      []Option
	Precisions []Option
	ZoneLabel  string
	Error      string
	Map        charts.BubbleMap
}

// SkillsPage is the body of the top skills page.
type SkillsPage struct {
	Error string
	Chart charts.BarChart
}

// PowerBIPage is the body of the embedded report page.
type PowerBIPage struct {
	EmbedURL string
}

// Options marks the values of choices present in selected. Selected values missing from
// choices are appended so they stay visible.
func Options(choices, selected []string) []Option {
	picked := make(map[string]bool, len(selected))
	for _, s := range selected {
		picked[s] = true
	}
	out := make([]Option, 0, len(choices)+len(selected))
	seen := make(map[string]bool, len(choices))
	for _, c := range choices {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, Option{Value: c, Label: c, Selected: picked[c]})
	}
	for _, s := range selected {
		if !seen[s] {
			seen[s] = true
			out = append(out, Option{Value: s, Label: s, Selected: true})
		}
	}
	return out
}
