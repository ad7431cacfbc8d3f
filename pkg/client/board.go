package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"recruiter-pipeline-backend/internal/domain"
)

// boardPageSize is the largest page the list endpoint serves
const boardPageSize = 100

// ErrUnknownApplication is returned by Move for an id the board has not loaded
var ErrUnknownApplication = errors.New("application not on board")

// Pipeline is the slice of the API a Board needs
type Pipeline interface {
	ListApplications(ctx context.Context, p ListParams) (*domain.ApplicationList, error)
	SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Application, error)
}

// Board is the kanban view of one recruiter's applications.
// Moves are applied locally first; a failed move triggers a full reload
// instead of trying to undo the local change.
type Board struct {
	api Pipeline

	mu   sync.RWMutex
	apps []domain.Application
}

func NewBoard(api Pipeline) *Board {
	return &Board{api: api}
}

// Load replaces the local view with every application the server holds
func (b *Board) Load(ctx context.Context) error {
	var all []domain.Application
	for page := 1; ; page++ {
		list, err := b.api.ListApplications(ctx, ListParams{Page: page, Limit: boardPageSize})
		if err != nil {
			return fmt.Errorf("load board page %d: %w", page, err)
		}
		all = append(all, list.Applications...)
		if page >= list.Pagination.TotalPages || len(list.Applications) == 0 {
			break
		}
	}

	b.mu.Lock()
	b.apps = all
	b.mu.Unlock()
	return nil
}

// Move drops application id into column to. On success the server's copy replaces
// the local one; on failure the board is reloaded and the move error returned.
func (b *Board) Move(ctx context.Context, id string, to domain.Status) error {
	b.mu.Lock()
	idx := b.indexOf(id)
	if idx < 0 {
		b.mu.Unlock()
		return ErrUnknownApplication
	}
	b.apps[idx].Status = to
	b.mu.Unlock()

	updated, err := b.api.SetStatus(ctx, id, to)
	if err != nil {
		if reloadErr := b.Load(ctx); reloadErr != nil {
			return errors.Join(err, reloadErr)
		}
		return err
	}

	b.mu.Lock()
	if idx := b.indexOf(id); idx >= 0 {
		b.apps[idx] = *updated
	}
	b.mu.Unlock()
	return nil
}

func (b *Board) indexOf(id string) int {
	for i := range b.apps {
		if b.apps[i].ID == id {
			return i
		}
	}
	return -1
}

// Columns groups the local view by status. Every status has an entry, possibly empty.
func (b *Board) Columns() map[domain.Status][]domain.Application {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cols := make(map[domain.Status][]domain.Application, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		cols[s] = []domain.Application{}
	}
	for _, app := range b.apps {
		cols[app.Status] = append(cols[app.Status], app)
	}
	return cols
}

// Get returns the local copy of one application
func (b *Board) Get(id string) (domain.Application, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if idx := b.indexOf(id); idx >= 0 {
		return b.apps[idx], true
	}
	return domain.Application{}, false
}
