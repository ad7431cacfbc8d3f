package analytics

import (
	"fmt"
	"time"

	"recruiter-pipeline-backend/internal/domain"
)

// Period keys are always derived in UTC so one deployment never mixes zones.
// Formats: daily "2006-01-02", weekly ISO "2006-W01", monthly "2006-01".
// All three sort chronologically as plain strings.

// PeriodKey is the decoded grouping key of one timeline bucket
type PeriodKey struct {
	Key   string
	Date  string
	Year  int
	Month int
	Week  int
}

// KeyFor derives the period key of t
func KeyFor(period domain.Period, t time.Time) PeriodKey {
	t = t.UTC()
	switch period {
	case domain.PeriodDaily:
		d := t.Format("2006-01-02")
		return PeriodKey{Key: d, Date: d, Year: t.Year(), Month: int(t.Month())}
	case domain.PeriodWeekly:
		year, week := t.ISOWeek()
		return PeriodKey{Key: fmt.Sprintf("%04d-W%02d", year, week), Year: year, Week: week}
	default:
		return PeriodKey{Key: t.Format("2006-01"), Year: t.Year(), Month: int(t.Month())}
	}
}

// ParseKey decodes a key produced by KeyFor (or the equivalent SQL expression)
func ParseKey(period domain.Period, key string) (PeriodKey, error) {
	switch period {
	case domain.PeriodDaily:
		t, err := time.Parse("2006-01-02", key)
		if err != nil {
			return PeriodKey{}, fmt.Errorf("parse daily key %q: %w", key, err)
		}
		return KeyFor(period, t), nil
	case domain.PeriodWeekly:
		var year, week int
		if _, err := fmt.Sscanf(key, "%04d-W%02d", &year, &week); err != nil {
			return PeriodKey{}, fmt.Errorf("parse weekly key %q: %w", key, err)
		}
		if week < 1 || week > 53 {
			return PeriodKey{}, fmt.Errorf("parse weekly key %q: week out of range", key)
		}
		return PeriodKey{Key: key, Year: year, Week: week}, nil
	case domain.PeriodMonthly:
		t, err := time.Parse("2006-01", key)
		if err != nil {
			return PeriodKey{}, fmt.Errorf("parse monthly key %q: %w", key, err)
		}
		return KeyFor(period, t), nil
	}
	return PeriodKey{}, fmt.Errorf("unknown period %q", period)
}

// ParsePeriod maps the query value to a Period, defaulting to monthly
func ParsePeriod(s string) (domain.Period, bool) {
	if s == "" {
		return domain.PeriodMonthly, true
	}
	p := domain.Period(s)
	return p, p.Valid()
}
