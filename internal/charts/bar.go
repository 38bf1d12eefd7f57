package charts

import (
	"sort"

	"github.com/octobees/job-market-dashboard/internal/jobsapi"
)

// TopSkillsLimit is the number of skills shown on the bar chart.
const TopSkillsLimit = 20

const (
	barHeight  = 24
	barGap     = 6
	labelWidth = 180
	plotWidth  = 560
)

// Bar is one horizontal bar, in SVG user units.
type Bar struct {
	Label string
	Value int
	Y     int
	Width int
}

// BarChart is a horizontal bar chart ready for an SVG template.
type BarChart struct {
	Bars       []Bar
	Width      int
	Height     int
	LabelWidth int
	Max        int
}

// TopSkills sorts skills by offer count, highest first, and keeps the top limit.
func TopSkills(skills []jobsapi.SkillCount, limit int) BarChart {
	sorted := make([]jobsapi.SkillCount, len(skills))
	copy(sorted, skills)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offers > sorted[j].Offers
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	chart := BarChart{LabelWidth: labelWidth, Width: labelWidth + plotWidth + 60}
	for _, s := range sorted {
		if s.Offers > chart.Max {
			chart.Max = s.Offers
		}
	}
	for i, s := range sorted {
		width := 0
		if chart.Max > 0 && s.Offers > 0 {
			width = s.Offers * plotWidth / chart.Max
			if width < 1 {
				width = 1
			}
		}
		chart.Bars = append(chart.Bars, Bar{
			Label: s.Skill,
			Value: s.Offers,
			Y:     i * (barHeight + barGap),
			Width: width,
		})
	}
	chart.Height = len(chart.Bars)*(barHeight+barGap) + barGap
	return chart
}

// Empty reports whether there is anything to draw.
func (c BarChart) Empty() bool {
	return len(c.Bars) == 0
}

// BarHeight is the thickness of each bar.
func (c BarChart) BarHeight() int {
	return barHeight
}
