package domain

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Percent is a rate rounded to one decimal place. It serialises as a JSON
// number that always carries the decimal ("20.0").
type Percent float64

// NewPercent rounds num/den*100 to one decimal; a zero denominator yields 0
func NewPercent(num, den int64) Percent {
	if den == 0 {
		return 0
	}
	return RoundPercent(float64(num) / float64(den) * 100)
}

// RoundPercent rounds v to one decimal place
func RoundPercent(v float64) Percent {
	return Percent(math.Round(v*10) / 10)
}

func (p Percent) String() string {
	return strconv.FormatFloat(float64(p), 'f', 1, 64)
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Percent) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("percent: %w", err)
	}
	*p = Percent(v)
	return nil
}

// StatusTally holds per-status counts
type StatusTally struct {
	Applied   int64 `json:"applied"`
	Interview int64 `json:"interview"`
	Offer     int64 `json:"offer"`
	Rejected  int64 `json:"rejected"`
}

// Add increments the counter for s by n. Unknown statuses are ignored.
func (t *StatusTally) Add(s Status, n int64) {
	switch s {
	case StatusApplied:
		t.Applied += n
	case StatusInterview:
		t.Interview += n
	case StatusOffer:
		t.Offer += n
	case StatusRejected:
		t.Rejected += n
	}
}

// Get returns the counter for s
func (t StatusTally) Get(s Status) int64 {
	switch s {
	case StatusApplied:
		return t.Applied
	case StatusInterview:
		return t.Interview
	case StatusOffer:
		return t.Offer
	case StatusRejected:
		return t.Rejected
	}
	return 0
}

// Total sums all four counters
func (t StatusTally) Total() int64 {
	return t.Applied + t.Interview + t.Offer + t.Rejected
}

type StatusCount struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Count  int64  `json:"count"`
}

type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

type ExperienceStats struct {
	Average    float64 `json:"average"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	TotalCount int64   `json:"totalCount"`
}

// ExperienceBucket is one histogram bar. Max is nil for the overflow bucket.
type ExperienceBucket struct {
	Label      string   `json:"label"`
	Min        float64  `json:"min"`
	Max        *float64 `json:"max,omitempty"`
	Count      int64    `json:"count"`
	Candidates []string `json:"candidates,omitempty"`
}

// StatusBreakdown is a funnel-chart row: how many records sit in a stage and their mean experience
type StatusBreakdown struct {
	Status        Status  `json:"status"`
	Count         int64   `json:"count"`
	AvgExperience float64 `json:"avgExperience"`
}

type ConversionRates struct {
	AppliedToInterview Percent `json:"appliedToInterview"`
	InterviewToOffer   Percent `json:"interviewToOffer"`
	OfferToHire        Percent `json:"offerToHire"`
}

type Summary struct {
	TotalCandidates      int64   `json:"totalCandidates"`
	ActiveApplications   int64   `json:"activeApplications"`
	SuccessfulPlacements int64   `json:"successfulPlacements"`
	RejectionRate        Percent `json:"rejectionRate"`
}

// Period selects the timeline granularity
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Valid reports whether p is a known granularity
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// TimelinePoint counts the records created in one period. StatusCounts reflect each
// record's current status, not its status at the time of the period.
type TimelinePoint struct {
	Key               string      `json:"key"`
	Date              string      `json:"date,omitempty"`
	Year              int         `json:"year"`
	Month             int         `json:"month,omitempty"`
	Week              int         `json:"week,omitempty"`
	TotalApplications int64       `json:"totalApplications"`
	StatusCounts      StatusTally `json:"statusCounts"`
}

// TimelineQuery parameterises computeTimeline
type TimelineQuery struct {
	Period    Period
	StartDate *time.Time
	EndDate   *time.Time
}

type TimelineResult struct {
	TimelineData []TimelinePoint `json:"timelineData"`
	Period       Period          `json:"period"`
}

type RoleAnalytics struct {
	Role            string      `json:"role"`
	TotalCandidates int64       `json:"totalCandidates"`
	AvgExperience   float64     `json:"avgExperience"`
	StatusCounts    StatusTally `json:"statusCounts"`
}

// DashboardPayload is everything the analytics page renders in one poll
type DashboardPayload struct {
	StatusCounts           []StatusCount       `json:"statusCounts"`
	RoleCounts             []RoleCount         `json:"roleCounts"`
	ExperienceStats        ExperienceStats     `json:"experienceStats"`
	ExperienceDistribution []ExperienceBucket  `json:"experienceDistribution"`
	MonthlyApplications    []TimelinePoint     `json:"monthlyApplications"`
	RecentApplications     []RecentApplication `json:"recentApplications"`
	StatusBreakdown        []StatusBreakdown   `json:"statusBreakdown"`
	ConversionRates        ConversionRates     `json:"conversionRates"`
	Summary                Summary             `json:"summary"`
	RefreshIntervalSeconds int                 `json:"refreshIntervalSeconds"`
	GeneratedAt            time.Time           `json:"generatedAt"`
}

// GroupBy selects the grouping key of an aggregate
type GroupBy string

const (
	GroupByNone             GroupBy = "none"
	GroupByStatus           GroupBy = "status"
	GroupByRole             GroupBy = "role"
	GroupByPeriod           GroupBy = "period"
	GroupByExperienceBucket GroupBy = "experience_bucket"
)

// AggregateSpec describes one grouped query over an owner's applications
type AggregateSpec struct {
	GroupBy      GroupBy
	Period       Period    // GroupByPeriod only
	Boundaries   []float64 // GroupByExperienceBucket only, strictly ascending
	DefaultLabel string    // overflow bucket label
	Filter       ApplicationFilter
	CollectNames bool
}

// Validate rejects specs no store can evaluate
func (s AggregateSpec) Validate() error {
	switch s.GroupBy {
	case GroupByNone, GroupByStatus, GroupByRole:
		return nil
	case GroupByPeriod:
		if !s.Period.Valid() {
			return fmt.Errorf("%w: unknown period %q", ErrInvalidAggregation, s.Period)
		}
		return nil
	case GroupByExperienceBucket:
		if len(s.Boundaries) < 2 {
			return fmt.Errorf("%w: need at least two boundaries", ErrInvalidAggregation)
		}
		for i := 1; i < len(s.Boundaries); i++ {
			if s.Boundaries[i] <= s.Boundaries[i-1] {
				return fmt.Errorf("%w: boundaries must be strictly ascending", ErrInvalidAggregation)
			}
		}
		if s.DefaultLabel == "" {
			return fmt.Errorf("%w: missing default bucket label", ErrInvalidAggregation)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown group key %q", ErrInvalidAggregation, s.GroupBy)
}

// Group is one row of an aggregate result
type Group struct {
	Key           string
	Count         int64
	SumExperience float64
	MinExperience float64
	MaxExperience float64
	ByStatus      StatusTally
	Candidates    []string
}

// AvgExperience is the mean years of experience of the group
func (g Group) AvgExperience() float64 {
	if g.Count == 0 {
		return 0
	}
	return g.SumExperience / float64(g.Count)
}

// AnalyticsUsecase defines the funnel and timeline engines
type AnalyticsUsecase interface {
	Dashboard(ctx context.Context, ownerID string) (*DashboardPayload, error)
	Timeline(ctx context.Context, ownerID string, q TimelineQuery) (*TimelineResult, error)
	RoleAnalytics(ctx context.Context, ownerID, roleFilter string) ([]RoleAnalytics, error)
	ExperienceDistribution(ctx context.Context, ownerID string) ([]ExperienceBucket, error)
}
