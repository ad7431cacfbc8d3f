package analytics

import (
	"sort"
	"strings"

	"recruiter-pipeline-backend/internal/domain"
)

// GroupBy partitions items by key. Keys are returned in first-seen order.
func GroupBy[T any, K comparable](items []T, key func(T) K) ([]K, map[K][]T) {
	var order []K
	groups := make(map[K][]T)
	for _, item := range items {
		k := key(item)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], item)
	}
	return order, groups
}

// Matches reports whether app satisfies every predicate of f
func Matches(app domain.Application, f domain.ApplicationFilter) bool {
	if f.Status != "" && app.Status != f.Status {
		return false
	}
	if f.Role != "" && !containsFold(app.Role, f.Role) {
		return false
	}
	if f.ExperienceMin != nil && app.YearsOfExperience < *f.ExperienceMin {
		return false
	}
	if f.Search != "" &&
		!containsFold(app.CandidateName, f.Search) &&
		!containsFold(app.Role, f.Search) &&
		!containsFold(app.Notes, f.Search) {
		return false
	}
	if f.CreatedFrom != nil && app.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && app.CreatedAt.After(*f.CreatedTo) {
		return false
	}
	return true
}

// Filter returns the records matching f
func Filter(apps []domain.Application, f domain.ApplicationFilter) []domain.Application {
	out := make([]domain.Application, 0, len(apps))
	for _, app := range apps {
		if Matches(app, f) {
			out = append(out, app)
		}
	}
	return out
}

// Aggregate evaluates spec over an in-memory record set. Groups come back
// ordered by key ascending; callers re-sort for presentation.
func Aggregate(apps []domain.Application, spec domain.AggregateSpec) ([]domain.Group, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	keyFn, err := keyFunc(spec)
	if err != nil {
		return nil, err
	}

	keys, grouped := GroupBy(Filter(apps, spec.Filter), keyFn)
	sort.Strings(keys)

	out := make([]domain.Group, 0, len(keys))
	for _, k := range keys {
		out = append(out, summarize(k, grouped[k], spec.CollectNames))
	}
	return out, nil
}

func keyFunc(spec domain.AggregateSpec) (func(domain.Application) string, error) {
	switch spec.GroupBy {
	case domain.GroupByNone:
		return func(domain.Application) string { return "" }, nil
	case domain.GroupByStatus:
		return func(a domain.Application) string { return string(a.Status) }, nil
	case domain.GroupByRole:
		return func(a domain.Application) string { return a.Role }, nil
	case domain.GroupByPeriod:
		return func(a domain.Application) string { return KeyFor(spec.Period, a.CreatedAt).Key }, nil
	case domain.GroupByExperienceBucket:
		b := Buckets{Boundaries: spec.Boundaries, DefaultLabel: spec.DefaultLabel}
		return func(a domain.Application) string { return b.Label(a.YearsOfExperience) }, nil
	}
	return nil, domain.ErrInvalidAggregation
}

func summarize(key string, apps []domain.Application, collectNames bool) domain.Group {
	g := domain.Group{Key: key}
	for i, a := range apps {
		g.Count++
		g.SumExperience += a.YearsOfExperience
		if i == 0 || a.YearsOfExperience < g.MinExperience {
			g.MinExperience = a.YearsOfExperience
		}
		if i == 0 || a.YearsOfExperience > g.MaxExperience {
			g.MaxExperience = a.YearsOfExperience
		}
		g.ByStatus.Add(a.Status, 1)
		if collectNames {
			g.Candidates = append(g.Candidates, a.CandidateName)
		}
	}
	return g
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
