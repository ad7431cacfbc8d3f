// Package memory is a process-local record store used for development and tests.
// It evaluates aggregates with the same analytics library the engines use.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"recruiter-pipeline-backend/internal/analytics"
	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/pkg/metrics"

	"github.com/google/uuid"
)

type applicationRepo struct {
	mu      sync.RWMutex
	records map[string]domain.Application
	now     func() time.Time
}

// Option configures the in-memory store
type Option func(*applicationRepo)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(r *applicationRepo) { r.now = now }
}

// NewApplicationRepository creates an empty in-memory application store
func NewApplicationRepository(opts ...Option) domain.ApplicationRepository {
	r := &applicationRepo{
		records: make(map[string]domain.Application),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) (err error) {
	defer observe("create", time.Now(), &err)
	if err := ctxErr(ctx, "create"); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if _, exists := r.records[app.ID]; exists {
		return &domain.StoreError{Op: "create", Err: fmt.Errorf("duplicate id %s", app.ID)}
	}
	now := r.now().UTC()
	if app.CreatedAt.IsZero() {
		app.CreatedAt = now
	}
	app.LastUpdated = app.CreatedAt
	if app.Status == "" {
		app.Status = domain.StatusApplied
	}
	r.records[app.ID] = *app
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, ownerID, id string) (app *domain.Application, err error) {
	defer observe("get", time.Now(), &err)
	if err := ctxErr(ctx, "get"); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (r *applicationRepo) Find(ctx context.Context, ownerID string, filter domain.ApplicationFilter, s domain.Sort, skip, limit int) (apps []domain.Application, err error) {
	defer observe("find", time.Now(), &err)
	if err := ctxErr(ctx, "find"); err != nil {
		return nil, err
	}

	matched := analytics.Filter(r.owned(ownerID), filter)
	sortApplications(matched, s)

	if skip >= len(matched) {
		return []domain.Application{}, nil
	}
	if skip > 0 {
		matched = matched[skip:]
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *applicationRepo) Count(ctx context.Context, ownerID string, filter domain.ApplicationFilter) (n int64, err error) {
	defer observe("count", time.Now(), &err)
	if err := ctxErr(ctx, "count"); err != nil {
		return 0, err
	}
	return int64(len(analytics.Filter(r.owned(ownerID), filter))), nil
}

func (r *applicationRepo) Aggregate(ctx context.Context, ownerID string, spec domain.AggregateSpec) (groups []domain.Group, err error) {
	defer observe("aggregate", time.Now(), &err)
	if err := ctxErr(ctx, "aggregate"); err != nil {
		return nil, err
	}
	return analytics.Aggregate(r.owned(ownerID), spec)
}

func (r *applicationRepo) Update(ctx context.Context, ownerID, id string, patch domain.ApplicationPatch) (app *domain.Application, err error) {
	defer observe("update", time.Now(), &err)
	if err := ctxErr(ctx, "update"); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	if patch.Apply(&rec) {
		rec.LastUpdated = r.touch(rec.LastUpdated)
	}
	r.records[id] = rec
	return &rec, nil
}

func (r *applicationRepo) SetStatus(ctx context.Context, ownerID, id string, status domain.Status) (app *domain.Application, err error) {
	defer observe("set_status", time.Now(), &err)
	if err := ctxErr(ctx, "set_status"); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	rec.Status = status
	rec.LastUpdated = r.touch(rec.LastUpdated)
	r.records[id] = rec
	return &rec, nil
}

func (r *applicationRepo) Delete(ctx context.Context, ownerID, id string) (err error) {
	defer observe("delete", time.Now(), &err)
	if err := ctxErr(ctx, "delete"); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *applicationRepo) Ping(ctx context.Context) error {
	return ctxErr(ctx, "ping")
}

// owned snapshots ownerID's records
func (r *applicationRepo) owned(ownerID string) []domain.Application {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Application, 0, len(r.records))
	for _, rec := range r.records {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out
}

// touch returns a timestamp strictly after prev
func (r *applicationRepo) touch(prev time.Time) time.Time {
	now := r.now().UTC()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

func sortApplications(apps []domain.Application, s domain.Sort) {
	less := lessFunc(s.Field)
	sort.SliceStable(apps, func(i, j int) bool {
		a, b := apps[i], apps[j]
		if s.Descending {
			a, b = b, a
		}
		if c := less(a, b); c != 0 {
			return c < 0
		}
		return apps[i].ID < apps[j].ID
	})
}

func lessFunc(f domain.SortField) func(a, b domain.Application) int {
	switch f {
	case domain.SortByLastUpdated:
		return func(a, b domain.Application) int { return a.LastUpdated.Compare(b.LastUpdated) }
	case domain.SortByCandidateName:
		return func(a, b domain.Application) int { return strings.Compare(a.CandidateName, b.CandidateName) }
	case domain.SortByRole:
		return func(a, b domain.Application) int { return strings.Compare(a.Role, b.Role) }
	case domain.SortByStatus:
		return func(a, b domain.Application) int { return strings.Compare(string(a.Status), string(b.Status)) }
	case domain.SortByYearsOfExperience:
		return func(a, b domain.Application) int {
			switch {
			case a.YearsOfExperience < b.YearsOfExperience:
				return -1
			case a.YearsOfExperience > b.YearsOfExperience:
				return 1
			}
			return 0
		}
	default:
		return func(a, b domain.Application) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
}

// ctxErr maps a finished context onto the store error taxonomy
func ctxErr(ctx context.Context, op string) error {
	err := ctx.Err()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return &domain.StoreError{Op: op, Err: fmt.Errorf("%w: %v", domain.ErrStoreTimeout, err)}
	default:
		return &domain.StoreError{Op: op, Err: err}
	}
}

func observe(op string, start time.Time, err *error) {
	result := "ok"
	switch {
	case *err == nil:
	case errors.Is(*err, domain.ErrNotFound):
		result = "not_found"
	case errors.Is(*err, domain.ErrStoreTimeout):
		result = "timeout"
	default:
		result = "error"
	}
	metrics.ObserveStore(op, result, start)
}
