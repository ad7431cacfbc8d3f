package analytics_test

import (
	"errors"
	"testing"
	"time"

	"recruiter-pipeline-backend/internal/analytics"
	"recruiter-pipeline-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyTimelineOnePointPerDate(t *testing.T) {
	day1 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 3, 23, 30, 0, 0, time.UTC)
	records := []domain.Application{
		{ID: "1", Status: domain.StatusApplied, CreatedAt: day2},
		{ID: "2", Status: domain.StatusOffer, CreatedAt: day1},
		{ID: "3", Status: domain.StatusApplied, CreatedAt: day1.Add(3 * time.Hour)},
		{ID: "4", Status: domain.StatusRejected, CreatedAt: day2.Add(time.Hour)},
	}

	groups, err := analytics.Aggregate(records, domain.AggregateSpec{GroupBy: domain.GroupByPeriod, Period: domain.PeriodDaily})
	require.NoError(t, err)
	points, err := analytics.Timeline(domain.PeriodDaily, groups)
	require.NoError(t, err)

	// day2 + 1h crosses midnight UTC
	require.Len(t, points, 3)
	assert.Equal(t, "2024-05-01", points[0].Key)
	assert.Equal(t, int64(2), points[0].TotalApplications)
	assert.Equal(t, domain.StatusTally{Applied: 1, Offer: 1}, points[0].StatusCounts)
	assert.Equal(t, "2024-05-03", points[1].Key)
	assert.Equal(t, "2024-05-04", points[2].Key)

	seen := map[string]bool{}
	for _, p := range points {
		assert.False(t, seen[p.Key], "duplicate key %s", p.Key)
		seen[p.Key] = true
	}
}

func TestMonthlyTimelineHasNoGaps(t *testing.T) {
	groups := []domain.Group{
		{Key: "2024-03", Count: 2},
		{Key: "2024-01", Count: 1},
	}

	points, err := analytics.Timeline(domain.PeriodMonthly, groups)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-01", points[0].Key)
	assert.Equal(t, 1, points[0].Month)
	assert.Equal(t, 2024, points[0].Year)
	assert.Equal(t, "2024-03", points[1].Key)
}

func TestTimelineRejectsBadKeys(t *testing.T) {
	_, err := analytics.Timeline(domain.PeriodWeekly, []domain.Group{{Key: "2024-13"}})
	assert.True(t, errors.Is(err, domain.ErrInvalidAggregation))

	_, err = analytics.Timeline(domain.PeriodMonthly, []domain.Group{{Key: "2024-01"}, {Key: "2024-01"}})
	assert.True(t, errors.Is(err, domain.ErrInvalidAggregation))
}

func TestLastN(t *testing.T) {
	points := []domain.TimelinePoint{{Key: "a"}, {Key: "b"}, {Key: "c"}}

	assert.Equal(t, []domain.TimelinePoint{{Key: "b"}, {Key: "c"}}, analytics.LastN(points, 2))
	assert.Len(t, analytics.LastN(points, 12), 3)
}
