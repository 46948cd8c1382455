package drift

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisio-app/decisio-backend/internal/evaluation/domain"
)

func TestScore_NoSignificantDrift(t *testing.T) {
	t.Run("identical contexts score zero", func(t *testing.T) {
		v := Values{TeamSize: 10, ExpectedUsers: 1000, TimelineMonths: 6}

		res := Score(v, v)
		assert.Equal(t, 0, res.Score)
		assert.Equal(t, domain.RiskLow, res.Risk)
		assert.Equal(t, "No significant drift detected. Score: 0/100.", res.Explanation)
	})

	t.Run("changes at or below 25 percent score zero", func(t *testing.T) {
		snapshot := Values{TeamSize: 8, ExpectedUsers: 400, TimelineMonths: 12}
		current := Values{TeamSize: 10, ExpectedUsers: 500, TimelineMonths: 15}

		// Every dimension moved exactly 25%: no band fires.
		res := Score(current, snapshot)
		assert.Equal(t, 0, res.Score)
		assert.Equal(t, domain.RiskLow, res.Risk)
		assert.Equal(t, "No significant drift detected. Score: 0/100.", res.Explanation)
	})

	t.Run("shrinking context drifts too", func(t *testing.T) {
		snapshot := Values{TeamSize: 20, ExpectedUsers: 1000, TimelineMonths: 6}
		current := Values{TeamSize: 8, ExpectedUsers: 1000, TimelineMonths: 6}

		// Team shrank by 60%: same band as growing by 60%.
		res := Score(current, snapshot)
		assert.Equal(t, 30, res.Score)
		assert.Contains(t, res.Explanation, "Team size changed by 60.0%")
	})
}

func TestScore_TeamSizeBands(t *testing.T) {
	t.Run("60 percent change hits only the top band", func(t *testing.T) {
		snapshot := Values{TeamSize: 10, ExpectedUsers: 1000, TimelineMonths: 6}
		current := Values{TeamSize: 16, ExpectedUsers: 1000, TimelineMonths: 6}

		res := Score(current, snapshot)
		assert.Equal(t, 30, res.Score, "top band must not stack with the lower one")
		assert.Equal(t, domain.RiskLow, res.Risk, "score 30 is still low risk")
		assert.Equal(t, "Team size changed by 60.0%. Score: 30/100.", res.Explanation)
	})

	t.Run("moderate change hits the lower band", func(t *testing.T) {
		snapshot := Values{TeamSize: 10, ExpectedUsers: 1000, TimelineMonths: 6}
		current := Values{TeamSize: 14, ExpectedUsers: 1000, TimelineMonths: 6}

		res := Score(current, snapshot)
		assert.Equal(t, 15, res.Score)
		assert.Equal(t, "Team size changed by 40.0%. Score: 15/100.", res.Explanation)
	})
}

func TestScore_ExpectedUsersBands(t *testing.T) {
	t.Run("more than doubled", func(t *testing.T) {
		snapshot := Values{TeamSize: 10, ExpectedUsers: 100, TimelineMonths: 12}
		current := Values{TeamSize: 10, ExpectedUsers: 250, TimelineMonths: 12}

		res := Score(current, snapshot)
		assert.Equal(t, 35, res.Score)
		assert.Equal(t, domain.RiskMedium, res.Risk)
		assert.Equal(t, "Expected users changed by 150.0%. Score: 35/100.", res.Explanation)
	})

	t.Run("between 50 and 100 percent", func(t *testing.T) {
		snapshot := Values{TeamSize: 10, ExpectedUsers: 100, TimelineMonths: 12}
		current := Values{TeamSize: 10, ExpectedUsers: 180, TimelineMonths: 12}

		res := Score(current, snapshot)
		assert.Equal(t, 20, res.Score)
	})

	t.Run("between 25 and 50 percent", func(t *testing.T) {
		snapshot := Values{TeamSize: 10, ExpectedUsers: 100, TimelineMonths: 12}
		current := Values{TeamSize: 10, ExpectedUsers: 140, TimelineMonths: 12}

		res := Score(current, snapshot)
		assert.Equal(t, 10, res.Score)
	})
}

func TestScore_TimelineBands(t *testing.T) {
	t.Run("timeline tripled caps at the top band", func(t *testing.T) {
		snapshot := Values{TeamSize: 5, ExpectedUsers: 50, TimelineMonths: 3}
		current := Values{TeamSize: 5, ExpectedUsers: 50, TimelineMonths: 9}

		res := Score(current, snapshot)
		assert.Equal(t, 35, res.Score)
		assert.Equal(t, domain.RiskMedium, res.Risk)
		assert.Equal(t, "Timeline changed by 200.0%. Score: 35/100.", res.Explanation)
	})

	t.Run("timeline slipped by a third", func(t *testing.T) {
		snapshot := Values{TeamSize: 5, ExpectedUsers: 50, TimelineMonths: 12}
		current := Values{TeamSize: 5, ExpectedUsers: 50, TimelineMonths: 16}

		res := Score(current, snapshot)
		assert.Equal(t, 20, res.Score)
	})
}

func TestScore_AllDimensionsBreached(t *testing.T) {
	snapshot := Values{TeamSize: 10, ExpectedUsers: 100, TimelineMonths: 6}
	current := Values{TeamSize: 20, ExpectedUsers: 300, TimelineMonths: 12}

	res := Score(current, snapshot)
	assert.Equal(t, 100, res.Score, "30+35+35 clamps to exactly 100")
	assert.Equal(t, domain.RiskHigh, res.Risk)

	// Fixed factor order: team, users, timeline.
	assert.Equal(t,
		"Team size changed by 100.0%, Expected users changed by 200.0%, Timeline changed by 100.0%. Score: 100/100.",
		res.Explanation)
}

func TestScore_ExplanationMentionsOnlyFiredDimensions(t *testing.T) {
	snapshot := Values{TeamSize: 10, ExpectedUsers: 1000, TimelineMonths: 6}
	current := Values{TeamSize: 16, ExpectedUsers: 1000, TimelineMonths: 6}

	res := Score(current, snapshot)
	assert.Contains(t, res.Explanation, "Team size")
	assert.NotContains(t, res.Explanation, "Expected users")
	assert.NotContains(t, res.Explanation, "Timeline")
}

func TestScore_PercentagesHaveOneDecimal(t *testing.T) {
	snapshot := Values{TeamSize: 3, ExpectedUsers: 1000, TimelineMonths: 6}
	current := Values{TeamSize: 5, ExpectedUsers: 1000, TimelineMonths: 6}

	// 2/3 = 66.666...% renders as 66.7%.
	res := Score(current, snapshot)
	assert.Equal(t, "Team size changed by 66.7%. Score: 30/100.", res.Explanation)
}

func TestScore_RangeAlwaysHolds(t *testing.T) {
	cases := []struct {
		current  Values
		snapshot Values
	}{
		{Values{1, 1, 1}, Values{1, 1, 1}},
		{Values{1000, 1000000, 120}, Values{1, 1, 1}},
		{Values{1, 1, 1}, Values{1000, 1000000, 120}},
		{Values{7, 350, 9}, Values{5, 100, 3}},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			res := Score(tc.current, tc.snapshot)
			assert.GreaterOrEqual(t, res.Score, 0)
			assert.LessOrEqual(t, res.Score, 100)
			assert.True(t, res.Risk.Valid())
			assert.True(t, strings.HasSuffix(res.Explanation, fmt.Sprintf("Score: %d/100.", res.Score)))
		})
	}
}

func TestClassifyRisk_Boundaries(t *testing.T) {
	cases := []struct {
		score int
		want  domain.RiskLevel
	}{
		{0, domain.RiskLow},
		{30, domain.RiskLow},
		{31, domain.RiskMedium},
		{70, domain.RiskMedium},
		{71, domain.RiskHigh},
		{100, domain.RiskHigh},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("score_%d", tc.score), func(t *testing.T) {
			assert.Equal(t, tc.want, classifyRisk(tc.score))
		})
	}
}

func TestPercentChange_FloorsDenominatorAtOne(t *testing.T) {
	require.Equal(t, 500.0, percentChange(5, 0))
	require.Equal(t, 100.0, percentChange(2, 1))
}
