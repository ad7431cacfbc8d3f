package analytics

import (
	"sort"

	"recruiter-pipeline-backend/internal/domain"
)

// TopRoleLimit caps the dashboard role chart
const TopRoleLimit = 10

// TallyFromGroups folds status-keyed groups into a StatusTally
func TallyFromGroups(groups []domain.Group) domain.StatusTally {
	var t domain.StatusTally
	for _, g := range groups {
		t.Add(domain.Status(g.Key), g.Count)
	}
	return t
}

// StatusCounts lists the statuses that have at least one record, in funnel order
func StatusCounts(t domain.StatusTally) []domain.StatusCount {
	out := make([]domain.StatusCount, 0, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		if n := t.Get(s); n > 0 {
			out = append(out, domain.StatusCount{Name: s.Label(), Status: s, Count: n})
		}
	}
	return out
}

// TopRoles returns at most limit roles by count descending, ties by role ascending
func TopRoles(groups []domain.Group, limit int) []domain.RoleCount {
	sorted := make([]domain.Group, len(groups))
	copy(sorted, groups)
	sortByCountThenKey(sorted)

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]domain.RoleCount, 0, len(sorted))
	for _, g := range sorted {
		out = append(out, domain.RoleCount{Role: g.Key, Count: g.Count})
	}
	return out
}

// ExperienceStatsFrom reads the single ungrouped row; no rows means all zeros
func ExperienceStatsFrom(groups []domain.Group) domain.ExperienceStats {
	var stats domain.ExperienceStats
	var sum float64
	for _, g := range groups {
		if g.Count == 0 {
			continue
		}
		if stats.TotalCount == 0 || g.MinExperience < stats.Min {
			stats.Min = g.MinExperience
		}
		if stats.TotalCount == 0 || g.MaxExperience > stats.Max {
			stats.Max = g.MaxExperience
		}
		sum += g.SumExperience
		stats.TotalCount += g.Count
	}
	if stats.TotalCount > 0 {
		stats.Average = sum / float64(stats.TotalCount)
	}
	return stats
}

// Distribution turns bucket-keyed groups into ordered histogram bars. Empty buckets are omitted.
func Distribution(b Buckets, groups []domain.Group) []domain.ExperienceBucket {
	out := make([]domain.ExperienceBucket, 0, len(groups))
	for _, g := range groups {
		if g.Count == 0 {
			continue
		}
		bucket := b.Describe(g.Key)
		bucket.Count = g.Count
		bucket.Candidates = g.Candidates
		out = append(out, bucket)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return b.Order(out[i].Label) < b.Order(out[j].Label)
	})
	return out
}

// Conversion computes the funnel rates.
// OfferToHire is O/O and is reported as 100 when there are no offers.
func Conversion(t domain.StatusTally) domain.ConversionRates {
	rates := domain.ConversionRates{
		AppliedToInterview: domain.NewPercent(t.Interview, t.Applied),
		InterviewToOffer:   domain.NewPercent(t.Offer, t.Interview),
		OfferToHire:        100,
	}
	if t.Offer > 0 {
		rates.OfferToHire = domain.NewPercent(t.Offer, t.Offer)
	}
	return rates
}

// SummaryFrom builds the headline numbers. RejectionRate divides by the applied count.
func SummaryFrom(t domain.StatusTally, total int64) domain.Summary {
	return domain.Summary{
		TotalCandidates:      total,
		ActiveApplications:   t.Applied + t.Interview,
		SuccessfulPlacements: t.Offer,
		RejectionRate:        domain.NewPercent(t.Rejected, t.Applied),
	}
}

// Breakdown lists status rows by count descending, ties in funnel order
func Breakdown(groups []domain.Group) []domain.StatusBreakdown {
	out := make([]domain.StatusBreakdown, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.StatusBreakdown{
			Status:        domain.Status(g.Key),
			Count:         g.Count,
			AvgExperience: g.AvgExperience(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return funnelIndex(out[i].Status) < funnelIndex(out[j].Status)
	})
	return out
}

// RoleBreakdown builds per-role analytics sorted by total descending, ties by role ascending
func RoleBreakdown(groups []domain.Group) []domain.RoleAnalytics {
	sorted := make([]domain.Group, len(groups))
	copy(sorted, groups)
	sortByCountThenKey(sorted)

	out := make([]domain.RoleAnalytics, 0, len(sorted))
	for _, g := range sorted {
		out = append(out, domain.RoleAnalytics{
			Role:            g.Key,
			TotalCandidates: g.Count,
			AvgExperience:   g.AvgExperience(),
			StatusCounts:    g.ByStatus,
		})
	}
	return out
}

func sortByCountThenKey(groups []domain.Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
}

func funnelIndex(s domain.Status) int {
	for i, st := range domain.AllStatuses {
		if st == s {
			return i
		}
	}
	return len(domain.AllStatuses)
}
