package jobs

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultRefreshInterval is the polling cadence used when the
	// environment does not override it.
	DefaultRefreshInterval = 30 * time.Second

	refreshMaxAttempts    = 3
	refreshInitialBackoff = 500 * time.Millisecond
)

// ViewsFetcher recomputes the partitioned console views from the store.
// Satisfied by queries.GetViewsQueryHandler.
type ViewsFetcher interface {
	Handle(ctx context.Context, query queries.GetViewsQuery) (services.Views, error)
}

// StatsFetcher recomputes the headline counters from the store.
// Satisfied by queries.GetStatsQueryHandler.
type StatsFetcher interface {
	Handle(ctx context.Context, query queries.GetStatsQuery) (services.Stats, error)
}

// ViewSnapshot is one materialized dashboard state: the unfiltered views and
// counters as of RefreshedAt. Stale is set when the last refresh cycle
// exhausted its retries and the snapshot no longer reflects the store.
type ViewSnapshot struct {
	Views       services.Views
	Stats       services.Stats
	RefreshedAt time.Time
	Stale       bool
}

// ViewRefreshJob keeps a materialized dashboard snapshot warm by re-pulling
// the store on a fixed interval and swapping the snapshot wholesale.
//
// A tick that starts while the previous fetch is still in flight is skipped
// rather than queued. Fetch failures are retried with doubling backoff up to
// a bounded attempt count; when the attempts run out the last good snapshot
// is kept and marked stale until a later cycle succeeds.
type ViewRefreshJob struct {
	views    ViewsFetcher
	stats    StatsFetcher
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger

	cancel   context.CancelFunc
	inFlight atomic.Bool

	mu       sync.RWMutex
	snapshot *ViewSnapshot
}

// NewViewRefreshJob creates the refresh job. A non-positive interval falls
// back to DefaultRefreshInterval.
func NewViewRefreshJob(
	views ViewsFetcher, stats StatsFetcher, interval time.Duration, logger *slog.Logger,
) *ViewRefreshJob {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	return &ViewRefreshJob{
		views:    views,
		stats:    stats,
		interval: interval,
		cron:     cron.New(),
		logger:   logger.With("component", "view_refresh_job"),
	}
}

// Start schedules the periodic refresh and kicks off an immediate first
// fetch so the snapshot is warm before the first tick.
func (j *ViewRefreshJob) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel

	if _, err := j.cron.AddFunc("@every "+j.interval.String(), func() {
		j.Refresh(ctx)
	}); err != nil {
		cancel()
		return err
	}

	go j.Refresh(ctx)

	j.cron.Start()
	j.logger.InfoContext(ctx, "View refresh job started", "interval", j.interval.String())
	return nil
}

// Stop halts the schedule and cancels any refresh cycle in flight,
// including one that is mid-backoff.
func (j *ViewRefreshJob) Stop() {
	if j.cancel != nil {
		j.cancel()
	}
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "View refresh job stopped")
}

// Snapshot returns the current dashboard snapshot. The second return value
// is false until the first successful refresh has completed.
func (j *ViewRefreshJob) Snapshot() (ViewSnapshot, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.snapshot == nil {
		return ViewSnapshot{}, false
	}
	return *j.snapshot, true
}

// Refresh runs one refresh cycle. Exposed so a mutation path can force an
// immediate re-pull instead of waiting out the interval.
func (j *ViewRefreshJob) Refresh(ctx context.Context) {
	// Skip the tick when the previous fetch is still running.
	if !j.inFlight.CompareAndSwap(false, true) {
		j.logger.DebugContext(ctx, "Refresh tick skipped, previous fetch still in flight")
		return
	}
	defer j.inFlight.Store(false)

	backoff := refreshInitialBackoff
	for attempt := 1; attempt <= refreshMaxAttempts; attempt++ {
		snapshot, err := j.fetch(ctx)
		if err == nil {
			j.swap(snapshot)
			return
		}

		j.logger.WarnContext(ctx, "Dashboard refresh failed",
			"attempt", attempt, "error", err)

		if attempt == refreshMaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	j.markStale()
	j.logger.ErrorContext(ctx, "Dashboard refresh exhausted retries, serving last good snapshot")
}

func (j *ViewRefreshJob) fetch(ctx context.Context) (ViewSnapshot, error) {
	viewsQuery, err := queries.NewGetViewsQuery("", nil, services.RangeAll, nil)
	if err != nil {
		return ViewSnapshot{}, err
	}
	statsQuery, err := queries.NewGetStatsQuery(nil)
	if err != nil {
		return ViewSnapshot{}, err
	}

	views, err := j.views.Handle(ctx, viewsQuery)
	if err != nil {
		return ViewSnapshot{}, err
	}
	stats, err := j.stats.Handle(ctx, statsQuery)
	if err != nil {
		return ViewSnapshot{}, err
	}

	return ViewSnapshot{
		Views:       views,
		Stats:       stats,
		RefreshedAt: time.Now().UTC(),
	}, nil
}

func (j *ViewRefreshJob) swap(snapshot ViewSnapshot) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.snapshot = &snapshot
}

// markStale flags the retained snapshot. A job that never fetched
// successfully has nothing to flag.
func (j *ViewRefreshJob) markStale() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.snapshot != nil {
		j.snapshot.Stale = true
	}
}
