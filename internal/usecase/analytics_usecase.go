package usecase

import (
	"context"
	"time"

	"recruiter-pipeline-backend/internal/analytics"
	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/pkg/apperror"

	"golang.org/x/sync/errgroup"
)

const (
	recentActivityLimit = 5
	monthlyPointLimit   = 12
)

type analyticsUsecase struct {
	repo            domain.ApplicationRepository
	refreshInterval time.Duration
	now             func() time.Time
}

// NewAnalyticsUsecase creates the funnel and timeline engines.
// refreshInterval is advertised to polling clients in every dashboard payload.
func NewAnalyticsUsecase(repo domain.ApplicationRepository, refreshInterval time.Duration) domain.AnalyticsUsecase {
	return &analyticsUsecase{
		repo:            repo,
		refreshInterval: refreshInterval,
		now:             time.Now,
	}
}

// Dashboard runs the independent grouped queries concurrently and composes the payload.
// The first failure cancels the rest and is returned as is.
func (uc *analyticsUsecase) Dashboard(ctx context.Context, ownerID string) (*domain.DashboardPayload, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	var (
		total                                       int64
		byStatus, byRole, overall, buckets, monthly []domain.Group
		recent                                      []domain.Application
	)

	g, gctx := errgroup.WithContext(ctx)
	aggregate := func(dst *[]domain.Group, spec domain.AggregateSpec) {
		g.Go(func() error {
			groups, err := uc.repo.Aggregate(gctx, ownerID, spec)
			*dst = groups
			return err
		})
	}

	g.Go(func() error {
		n, err := uc.repo.Count(gctx, ownerID, domain.ApplicationFilter{})
		total = n
		return err
	})
	aggregate(&byStatus, domain.AggregateSpec{GroupBy: domain.GroupByStatus})
	aggregate(&byRole, domain.AggregateSpec{GroupBy: domain.GroupByRole})
	aggregate(&overall, domain.AggregateSpec{GroupBy: domain.GroupByNone})
	aggregate(&buckets, analytics.ExperienceBuckets.Spec(false))
	aggregate(&monthly, domain.AggregateSpec{GroupBy: domain.GroupByPeriod, Period: domain.PeriodMonthly})
	g.Go(func() error {
		apps, err := uc.repo.Find(gctx, ownerID, domain.ApplicationFilter{}, domain.DefaultSort, 0, recentActivityLimit)
		recent = apps
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, translateStoreError(err)
	}

	points, err := analytics.Timeline(domain.PeriodMonthly, monthly)
	if err != nil {
		return nil, translateStoreError(err)
	}

	tally := analytics.TallyFromGroups(byStatus)
	return &domain.DashboardPayload{
		StatusCounts:           analytics.StatusCounts(tally),
		RoleCounts:             analytics.TopRoles(byRole, analytics.TopRoleLimit),
		ExperienceStats:        analytics.ExperienceStatsFrom(overall),
		ExperienceDistribution: analytics.Distribution(analytics.ExperienceBuckets, buckets),
		MonthlyApplications:    analytics.LastN(points, monthlyPointLimit),
		RecentApplications:     recentSlice(recent),
		StatusBreakdown:        analytics.Breakdown(byStatus),
		ConversionRates:        analytics.Conversion(tally),
		Summary:                analytics.SummaryFrom(tally, total),
		RefreshIntervalSeconds: int(uc.refreshInterval / time.Second),
		GeneratedAt:            uc.now().UTC(),
	}, nil
}

// Timeline groups records by creation period. Status sub-counts reflect each
// record's current status, not its status during the period.
func (uc *analyticsUsecase) Timeline(ctx context.Context, ownerID string, q domain.TimelineQuery) (*domain.TimelineResult, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	period := q.Period
	if period == "" {
		period = domain.PeriodMonthly
	}
	if !period.Valid() {
		return nil, apperror.Validation([]string{"Period: must be one of: daily, weekly, monthly"})
	}
	if q.StartDate != nil && q.EndDate != nil && q.StartDate.After(*q.EndDate) {
		return nil, apperror.Validation([]string{"Start date: must not be after end date"})
	}

	groups, err := uc.repo.Aggregate(ctx, ownerID, domain.AggregateSpec{
		GroupBy: domain.GroupByPeriod,
		Period:  period,
		Filter:  domain.ApplicationFilter{CreatedFrom: q.StartDate, CreatedTo: q.EndDate},
	})
	if err != nil {
		return nil, translateStoreError(err)
	}

	points, err := analytics.Timeline(period, groups)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return &domain.TimelineResult{TimelineData: points, Period: period}, nil
}

// RoleAnalytics breaks the pipeline down per role; roleFilter is a case-insensitive substring
func (uc *analyticsUsecase) RoleAnalytics(ctx context.Context, ownerID, roleFilter string) ([]domain.RoleAnalytics, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	groups, err := uc.repo.Aggregate(ctx, ownerID, domain.AggregateSpec{
		GroupBy: domain.GroupByRole,
		Filter:  domain.ApplicationFilter{Role: roleFilter},
	})
	if err != nil {
		return nil, translateStoreError(err)
	}
	return analytics.RoleBreakdown(groups), nil
}

// ExperienceDistribution returns the non-empty experience buckets with candidate names
func (uc *analyticsUsecase) ExperienceDistribution(ctx context.Context, ownerID string) ([]domain.ExperienceBucket, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	groups, err := uc.repo.Aggregate(ctx, ownerID, analytics.ExperienceBuckets.Spec(true))
	if err != nil {
		return nil, translateStoreError(err)
	}
	return analytics.Distribution(analytics.ExperienceBuckets, groups), nil
}

func recentSlice(apps []domain.Application) []domain.RecentApplication {
	out := make([]domain.RecentApplication, 0, len(apps))
	for _, a := range apps {
		out = append(out, domain.RecentApplication{
			ID:            a.ID,
			CandidateName: a.CandidateName,
			Role:          a.Role,
			Status:        a.Status,
			CreatedAt:     a.CreatedAt,
		})
	}
	return out
}
