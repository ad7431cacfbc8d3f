package analytics_test

import (
	"testing"
	"time"

	"recruiter-pipeline-backend/internal/analytics"
	"recruiter-pipeline-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFor(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 23, 30, 0, 0, time.UTC)

	daily := analytics.KeyFor(domain.PeriodDaily, ts)
	assert.Equal(t, "2024-03-05", daily.Key)
	assert.Equal(t, "2024-03-05", daily.Date)

	weekly := analytics.KeyFor(domain.PeriodWeekly, ts)
	assert.Equal(t, "2024-W10", weekly.Key)
	assert.Equal(t, 2024, weekly.Year)
	assert.Equal(t, 10, weekly.Week)

	monthly := analytics.KeyFor(domain.PeriodMonthly, ts)
	assert.Equal(t, "2024-03", monthly.Key)
	assert.Equal(t, 3, monthly.Month)
}

func TestKeyForUsesUTC(t *testing.T) {
	// 2024-03-06 01:00 in UTC+3 is still March 5th in UTC
	zone := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2024, time.March, 6, 1, 0, 0, 0, zone)

	assert.Equal(t, "2024-03-05", analytics.KeyFor(domain.PeriodDaily, ts).Key)
}

func TestKeyForISOWeekAcrossYearBoundary(t *testing.T) {
	// 2021-01-01 is a Friday and belongs to ISO week 53 of 2020
	ts := time.Date(2021, time.January, 1, 12, 0, 0, 0, time.UTC)

	key := analytics.KeyFor(domain.PeriodWeekly, ts)
	assert.Equal(t, "2020-W53", key.Key)
	assert.Equal(t, 2020, key.Year)
}

func TestParseKeyRoundTrip(t *testing.T) {
	ts := time.Date(2023, time.December, 31, 8, 0, 0, 0, time.UTC)

	for _, p := range []domain.Period{domain.PeriodDaily, domain.PeriodWeekly, domain.PeriodMonthly} {
		want := analytics.KeyFor(p, ts)
		got, err := analytics.ParseKey(p, want.Key)
		require.NoError(t, err, p)
		assert.Equal(t, want, got, p)
	}
}

func TestParseKeyRejectsGarbage(t *testing.T) {
	_, err := analytics.ParseKey(domain.PeriodDaily, "2024/01/01")
	assert.Error(t, err)

	_, err = analytics.ParseKey(domain.PeriodWeekly, "2024-W60")
	assert.Error(t, err)

	_, err = analytics.ParseKey("yearly", "2024")
	assert.Error(t, err)
}

func TestParsePeriod(t *testing.T) {
	p, ok := analytics.ParsePeriod("")
	assert.True(t, ok)
	assert.Equal(t, domain.PeriodMonthly, p)

	p, ok = analytics.ParsePeriod("weekly")
	assert.True(t, ok)
	assert.Equal(t, domain.PeriodWeekly, p)

	_, ok = analytics.ParsePeriod("hourly")
	assert.False(t, ok)
}
