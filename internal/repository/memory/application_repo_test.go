package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frozenClock always returns the same instant
func frozenClock() func() time.Time {
	t := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func seed(t *testing.T, repo domain.ApplicationRepository, owner, name string, status domain.Status) *domain.Application {
	t.Helper()
	app := &domain.Application{
		OwnerID:           owner,
		CandidateName:     name,
		Role:              "Backend Engineer",
		YearsOfExperience: 4,
		Status:            status,
	}
	require.NoError(t, repo.Create(context.Background(), app))
	return app
}

func TestCreateDefaultsStatusAndTimestamps(t *testing.T) {
	repo := memory.NewApplicationRepository(memory.WithClock(frozenClock()))
	app := seed(t, repo, "owner-a", "Ada", "")

	assert.NotEmpty(t, app.ID)
	assert.Equal(t, domain.StatusApplied, app.Status)
	assert.Equal(t, app.CreatedAt, app.LastUpdated)

	got, err := repo.GetByID(context.Background(), "owner-a", app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApplied, got.Status)
}

func TestOwnerIsolation(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewApplicationRepository()
	mine := seed(t, repo, "owner-a", "Ada", domain.StatusApplied)
	seed(t, repo, "owner-b", "Grace", domain.StatusOffer)

	_, err := repo.GetByID(ctx, "owner-b", mine.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.SetStatus(ctx, "owner-b", mine.ID, domain.StatusRejected)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "owner-b", mine.ID), domain.ErrNotFound)

	n, err := repo.Count(ctx, "owner-a", domain.ApplicationFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	groups, err := repo.Aggregate(ctx, "owner-a", domain.AggregateSpec{GroupBy: domain.GroupByStatus})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "applied", groups[0].Key)

	got, err := repo.GetByID(ctx, "owner-a", mine.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApplied, got.Status)
}

func TestSetStatusTimestampsStrictlyIncrease(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewApplicationRepository(memory.WithClock(frozenClock()))
	app := seed(t, repo, "owner-a", "Ada", domain.StatusApplied)

	prev := app.LastUpdated
	for _, s := range []domain.Status{domain.StatusInterview, domain.StatusInterview, domain.StatusOffer, domain.StatusApplied} {
		updated, err := repo.SetStatus(ctx, "owner-a", app.ID, s)
		require.NoError(t, err)
		assert.Equal(t, s, updated.Status)
		assert.True(t, updated.LastUpdated.After(prev), "lastUpdated must move forward")
		prev = updated.LastUpdated
	}
}

func TestUpdateTouchesLastUpdatedOnlyOnStatusChange(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewApplicationRepository(memory.WithClock(frozenClock()))
	app := seed(t, repo, "owner-a", "Ada", domain.StatusApplied)

	notes := "Phone screen booked"
	updated, err := repo.Update(ctx, "owner-a", app.ID, domain.ApplicationPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, "Ada", updated.CandidateName)
	assert.Equal(t, app.LastUpdated, updated.LastUpdated)

	same := domain.StatusApplied
	updated, err = repo.Update(ctx, "owner-a", app.ID, domain.ApplicationPatch{Status: &same})
	require.NoError(t, err)
	assert.Equal(t, app.LastUpdated, updated.LastUpdated)

	next := domain.StatusInterview
	updated, err = repo.Update(ctx, "owner-a", app.ID, domain.ApplicationPatch{Status: &next})
	require.NoError(t, err)
	assert.True(t, updated.LastUpdated.After(app.LastUpdated))
}

func TestFindFiltersSortsAndPages(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := memory.NewApplicationRepository()

	for i, name := range []string{"Cara", "Abe", "Bo", "Dee"} {
		app := &domain.Application{
			OwnerID:           "owner-a",
			CandidateName:     name,
			Role:              "Engineer",
			YearsOfExperience: float64(i),
			CreatedAt:         base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, app))
	}

	newest, err := repo.Find(ctx, "owner-a", domain.ApplicationFilter{}, domain.DefaultSort, 0, 2)
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, "Dee", newest[0].CandidateName)
	assert.Equal(t, "Bo", newest[1].CandidateName)

	byName, err := repo.Find(ctx, "owner-a", domain.ApplicationFilter{}, domain.Sort{Field: domain.SortByCandidateName}, 1, 10)
	require.NoError(t, err)
	require.Len(t, byName, 3)
	assert.Equal(t, "Bo", byName[0].CandidateName)

	two := 2.0
	senior, err := repo.Find(ctx, "owner-a", domain.ApplicationFilter{ExperienceMin: &two}, domain.DefaultSort, 0, 10)
	require.NoError(t, err)
	assert.Len(t, senior, 2)

	past, err := repo.Find(ctx, "owner-a", domain.ApplicationFilter{}, domain.DefaultSort, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestExpiredContextIsStoreTimeout(t *testing.T) {
	repo := memory.NewApplicationRepository()
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := repo.Count(ctx, "owner-a", domain.ApplicationFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreTimeout)

	var storeErr *domain.StoreError
	assert.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "count", storeErr.Op)
}

func TestConcurrentSetStatusIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewApplicationRepository()
	app := seed(t, repo, "owner-a", "Ada", domain.StatusApplied)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := domain.AllStatuses[i%len(domain.AllStatuses)]
			_, err := repo.SetStatus(ctx, "owner-a", app.ID, s)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, "owner-a", app.ID)
	require.NoError(t, err)
	assert.True(t, got.Status.Valid())
	assert.True(t, got.LastUpdated.After(app.LastUpdated))
}
