// Package drift computes how far the current project context has diverged
// from the context captured when a decision was made.
package drift

import (
	"fmt"
	"math"
	"strings"

	"github.com/decisio-app/decisio-backend/internal/evaluation/domain"
)

// Values holds the three context dimensions the scorer compares.
type Values struct {
	TeamSize       int
	ExpectedUsers  int
	TimelineMonths int
}

// Result is the outcome of one scoring pass.
type Result struct {
	Score       int
	Risk        domain.RiskLevel
	Explanation string
}

// band maps a percent-change threshold to a point contribution. Within a
// dimension, bands are ordered highest threshold first and at most one fires.
type band struct {
	threshold float64
	points    int
}

type dimension struct {
	label string
	bands []band
	value func(Values) int
}

// The table drives the whole scorer; tuning a threshold means editing a
// number here, not restructuring conditionals.
var dimensions = []dimension{
	{
		label: "Team size",
		bands: []band{{threshold: 50, points: 30}, {threshold: 25, points: 15}},
		value: func(v Values) int { return v.TeamSize },
	},
	{
		label: "Expected users",
		bands: []band{{threshold: 100, points: 35}, {threshold: 50, points: 20}, {threshold: 25, points: 10}},
		value: func(v Values) int { return v.ExpectedUsers },
	},
	{
		label: "Timeline",
		bands: []band{{threshold: 50, points: 35}, {threshold: 25, points: 20}},
		value: func(v Values) int { return v.TimelineMonths },
	},
}

// Score compares the current context against a snapshot. Pure function: no
// storage access, no side effects.
func Score(current, snapshot Values) Result {
	score := 0
	factors := make([]string, 0, len(dimensions))

	for _, d := range dimensions {
		pct := percentChange(d.value(current), d.value(snapshot))
		for _, b := range d.bands {
			if pct > b.threshold {
				score += b.points
				factors = append(factors, fmt.Sprintf("%s changed by %.1f%%", d.label, pct))
				break
			}
		}
	}

	// Safety ceiling: the contract is 0-100 even if the band table grows.
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	var explanation string
	if len(factors) > 0 {
		explanation = fmt.Sprintf("%s. Score: %d/100.", strings.Join(factors, ", "), score)
	} else {
		explanation = fmt.Sprintf("No significant drift detected. Score: %d/100.", score)
	}

	return Result{
		Score:       score,
		Risk:        classifyRisk(score),
		Explanation: explanation,
	}
}

// percentChange floors the denominator at 1. Snapshot values are positive by
// contract, but a degenerate row must not divide by zero.
func percentChange(current, snapshot int) float64 {
	return math.Abs(float64(current-snapshot)) / math.Max(float64(snapshot), 1) * 100
}

func classifyRisk(score int) domain.RiskLevel {
	switch {
	case score <= 30:
		return domain.RiskLow
	case score <= 70:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}
