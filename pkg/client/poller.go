package client

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Poller runs fetch on a fixed interval and whenever Refresh is called.
// Explicit refreshes are throttled so a burst of edits costs one extra fetch.
type Poller struct {
	interval time.Duration
	fetch    func(ctx context.Context) error
	onError  func(error)
	refresh  chan struct{}
	limiter  *rate.Limiter
}

// NewPoller polls every interval. minRefreshGap bounds how often Refresh may fire.
func NewPoller(interval, minRefreshGap time.Duration, fetch func(ctx context.Context) error) *Poller {
	return &Poller{
		interval: interval,
		fetch:    fetch,
		onError:  func(error) {},
		refresh:  make(chan struct{}, 1),
		limiter:  rate.NewLimiter(rate.Every(minRefreshGap), 1),
	}
}

// OnError sets the callback for failed fetches; polling continues regardless
func (p *Poller) OnError(fn func(error)) {
	p.onError = fn
}

// Refresh requests an immediate fetch. It never blocks; pending requests coalesce.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Run fetches once, then loops until ctx is done
func (p *Poller) Run(ctx context.Context) error {
	p.tick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.tick(ctx)
		case <-p.refresh:
			if err := p.limiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// the deadline falls before the next allowed refresh; the ticker covers it
				continue
			}
			p.tick(ctx)
			ticker.Reset(p.interval)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if err := p.fetch(ctx); err != nil && ctx.Err() == nil {
		p.onError(err)
	}
}
