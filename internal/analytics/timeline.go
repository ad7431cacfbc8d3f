package analytics

import (
	"fmt"
	"sort"

	"recruiter-pipeline-backend/internal/domain"
)

// Timeline converts period-keyed groups into points ordered by key.
// Periods without records are absent; nothing is zero-filled.
func Timeline(period domain.Period, groups []domain.Group) ([]domain.TimelinePoint, error) {
	points := make([]domain.TimelinePoint, 0, len(groups))
	seen := make(map[string]bool, len(groups))
	for _, g := range groups {
		if seen[g.Key] {
			return nil, fmt.Errorf("%w: duplicate period key %q", domain.ErrInvalidAggregation, g.Key)
		}
		seen[g.Key] = true

		pk, err := ParseKey(period, g.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAggregation, err)
		}
		points = append(points, domain.TimelinePoint{
			Key:               pk.Key,
			Date:              pk.Date,
			Year:              pk.Year,
			Month:             pk.Month,
			Week:              pk.Week,
			TotalApplications: g.Count,
			StatusCounts:      g.ByStatus,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Key < points[j].Key })
	return points, nil
}

// LastN keeps the n most recent points, preserving ascending order
func LastN(points []domain.TimelinePoint, n int) []domain.TimelinePoint {
	if n <= 0 || len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}
