// Package syncer decides what to fetch and persist, and when. The
// Coordinator bridges the in-memory timetable cache and the durable store:
// foreground fetches block and surface failures, background prefetches warm
// the cache best-effort, and slot mutations apply optimistically with a
// fire-and-forget persist per edit.
package syncer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/julianstephens/timegrid/internal/cache"
	"github.com/julianstephens/timegrid/internal/dateutil"
	"github.com/julianstephens/timegrid/internal/merge"
	"github.com/julianstephens/timegrid/internal/models"
	"github.com/julianstephens/timegrid/internal/storage"
)

// ToggleDebounce absorbs rapid repeated mode toggles: a toggle arriving
// within this window of the previous one is ignored.
const ToggleDebounce = 300 * time.Millisecond

// Direction of timetable paging.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Logger receives background-prefetch failures and other swallowed errors.
type Logger func(format string, args ...any)

type saveRequest struct {
	ctx        context.Context
	dateString string
	record     models.DailyRecord
}

// Coordinator orchestrates fetch batches, background prefetch, the debounced
// mode toggle, and per-mutation persists for one user.
type Coordinator struct {
	repo   storage.Provider
	cache  *cache.Cache
	userID string

	logf Logger
	now  func() time.Time

	mu           sync.Mutex
	slotsPerDay  int
	pivot        time.Time
	mode         models.DisplayMode
	lastToggle   time.Time
	lastErr      error
	lastPrefetch *PrefetchTask

	saves     chan saveRequest
	persists  sync.WaitGroup
	closeOnce sync.Once
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger replaces the logger used for swallowed background errors.
func WithLogger(logf Logger) Option {
	return func(co *Coordinator) { co.logf = logf }
}

// WithClock replaces the time source used by the toggle debounce.
func WithClock(now func() time.Time) Option {
	return func(co *Coordinator) { co.now = now }
}

// WithPivot sets the initial pivot date.
func WithPivot(pivot time.Time) Option {
	return func(co *Coordinator) { co.pivot = pivot }
}

func New(repo storage.Provider, c *cache.Cache, userID string, opts ...Option) *Coordinator {
	co := &Coordinator{
		repo:        repo,
		cache:       c,
		userID:      userID,
		logf:        log.Printf,
		now:         time.Now,
		slotsPerDay: models.DefaultSlotsPerDay,
		pivot:       time.Now(),
		mode:        models.DefaultDisplayMode,
		saves:       make(chan saveRequest, 16),
	}
	for _, opt := range opts {
		opt(co)
	}
	go co.saveLoop()
	return co
}

// Close stops the persist worker. Pending saves are drained first.
func (co *Coordinator) Close() {
	co.persists.Wait()
	co.closeOnce.Do(func() { close(co.saves) })
}

// Start loads the user's settings and display-mode preference, then performs
// the initial period load.
func (co *Coordinator) Start(ctx context.Context) error {
	count, ok, err := co.repo.FetchSlotsPerDay(ctx, co.userID)
	if err != nil {
		co.setErr(&FetchError{Scope: ScopeSingleDate, Err: err})
		return err
	}
	if !ok {
		count = models.DefaultSlotsPerDay
	}

	mode, hasMode, err := co.repo.FetchDisplayMode(ctx, co.userID)
	if err != nil {
		// A corrupt or missing preference falls back to the default mode.
		co.logf("failed to read display mode preference: %v", err)
	}
	if !hasMode {
		mode = models.DefaultDisplayMode
	}

	co.mu.Lock()
	co.slotsPerDay = models.ClampSlotsPerDay(count)
	co.mode = mode
	co.mu.Unlock()

	return co.LoadPeriod(ctx)
}

// LoadPeriod fetches the whole prefetch range for the current pivot in one
// batch, merges, and ingests. Synchronous; failures surface on the error
// slot and leave the cache unchanged.
func (co *Coordinator) LoadPeriod(ctx context.Context) error {
	co.mu.Lock()
	pivot, mode := co.pivot, co.mode
	co.mu.Unlock()

	return co.fetchAndIngest(ctx, dateutil.PrefetchRange(pivot, mode), true)
}

// Navigate advances or retreats the pivot by one visible period, then
// fetches in two phases: the uncached visible dates synchronously (failures
// surface), and the remaining prefetch range in a detached background task
// (failures are swallowed). The background phase does not block the caller
// and is launched regardless of the foreground outcome.
func (co *Coordinator) Navigate(ctx context.Context, dir Direction) error {
	co.mu.Lock()
	co.pivot = co.pivot.AddDate(0, 0, int(dir)*co.mode.DayCount())
	pivot, mode := co.pivot, co.mode
	co.mu.Unlock()

	var err error
	if missing := co.cache.MissingDates(dateutil.VisibleRange(pivot, mode)); len(missing) > 0 {
		err = co.fetchAndIngest(ctx, missing, true)
	}

	co.startPrefetch(ctx, pivot, mode)
	return err
}

// GoToToday repositions the pivot on today and fetches like Navigate.
func (co *Coordinator) GoToToday(ctx context.Context) error {
	co.mu.Lock()
	co.pivot = co.now()
	pivot, mode := co.pivot, co.mode
	co.mu.Unlock()

	var err error
	if missing := co.cache.MissingDates(dateutil.VisibleRange(pivot, mode)); len(missing) > 0 {
		err = co.fetchAndIngest(ctx, missing, true)
	}

	co.startPrefetch(ctx, pivot, mode)
	return err
}

// ToggleMode cycles week -> day -> three-day -> week. Toggles within
// ToggleDebounce of the previous one are ignored. The chosen mode is
// persisted as a durable preference; the prefetch range already covers mode
// switches, so only a best-effort warm-up runs afterwards. Returns the
// active mode and whether it changed.
func (co *Coordinator) ToggleMode(ctx context.Context) (models.DisplayMode, bool) {
	co.mu.Lock()
	now := co.now()
	if !co.lastToggle.IsZero() && now.Sub(co.lastToggle) < ToggleDebounce {
		mode := co.mode
		co.mu.Unlock()
		return mode, false
	}
	co.lastToggle = now
	co.mode = co.mode.Next()
	pivot, mode := co.pivot, co.mode
	co.mu.Unlock()

	if err := co.repo.SaveDisplayMode(ctx, co.userID, mode); err != nil {
		co.logf("failed to persist display mode: %v", err)
	}

	co.startPrefetch(ctx, pivot, mode)
	return mode, true
}

// ToggleCompletion flips one slot's completion state optimistically and
// schedules a persist. Uncached dates and unknown slots are silent no-ops.
func (co *Coordinator) ToggleCompletion(ctx context.Context, dateString, slotID string) {
	if _, ok := co.cache.MutateSlot(dateString, slotID, func(s *models.Slot) {
		s.IsCompleted = !s.IsCompleted
	}); ok {
		co.PersistSlotChange(ctx, dateString)
	}
}

// SetSubject assigns (or clears, with nil) a slot's subject.
func (co *Coordinator) SetSubject(ctx context.Context, dateString, slotID string, subjectID *string) {
	if _, ok := co.cache.MutateSlot(dateString, slotID, func(s *models.Slot) {
		s.SubjectID = subjectID
	}); ok {
		co.PersistSlotChange(ctx, dateString)
	}
}

// SetMinutes sets a slot's minutes. Negative values clamp to zero.
func (co *Coordinator) SetMinutes(ctx context.Context, dateString, slotID string, minutes int) {
	if minutes < 0 {
		minutes = 0
	}
	if _, ok := co.cache.MutateSlot(dateString, slotID, func(s *models.Slot) {
		s.Minutes = minutes
	}); ok {
		co.PersistSlotChange(ctx, dateString)
	}
}

// ReorderSlots moves slots within a date and schedules a persist.
func (co *Coordinator) ReorderSlots(ctx context.Context, dateString string, fromIndices []int, toIndex int) {
	if _, ok := co.cache.ReorderSlots(dateString, fromIndices, toIndex); ok {
		co.PersistSlotChange(ctx, dateString)
	}
}

// PersistSlotChange queues an asynchronous write of the current cached
// record for a date, after dropping unassigned slots. Each mutation queues
// its own write; writes for the same date are not coalesced and are issued
// in order, so the last one wins at the store. An uncached date is a no-op.
func (co *Coordinator) PersistSlotChange(ctx context.Context, dateString string) {
	record, ok := co.cache.Lookup(dateString)
	if !ok {
		return
	}

	co.persists.Add(1)
	co.saves <- saveRequest{
		ctx:        ctx,
		dateString: dateString,
		record:     merge.FilterForSave(record),
	}
}

// saveLoop issues queued persists one at a time, preserving issue order.
func (co *Coordinator) saveLoop() {
	for req := range co.saves {
		if err := co.repo.SaveDay(req.ctx, co.userID, req.record); err != nil {
			co.setErr(&SaveError{DateString: req.dateString, Err: err})
		}
		co.persists.Done()
	}
}

// SetSlotsPerDay clamps, persists, and applies a new slot count, then
// reloads the current period so cached records are re-merged against it.
func (co *Coordinator) SetSlotsPerDay(ctx context.Context, count int) error {
	clamped := models.ClampSlotsPerDay(count)

	if err := co.repo.SaveSlotsPerDay(ctx, co.userID, clamped); err != nil {
		co.setErr(&SaveError{DateString: "", Err: err})
		return err
	}

	co.mu.Lock()
	co.slotsPerDay = clamped
	co.mu.Unlock()

	return co.LoadPeriod(ctx)
}

// VisibleRecords returns the dense records for the current visible range,
// synchronously from cache. Dates absent from cache (for example after a
// failed fetch) render as empty days without being cached.
func (co *Coordinator) VisibleRecords() []models.DailyRecord {
	co.mu.Lock()
	pivot, mode, slotsPerDay := co.pivot, co.mode, co.slotsPerDay
	co.mu.Unlock()

	dates := dateutil.VisibleRange(pivot, mode)
	cached := co.cache.Get(dates)

	records := make([]models.DailyRecord, len(dates))
	for i, dateString := range dates {
		if cached[i] != nil {
			records[i] = *cached[i]
		} else {
			records[i] = merge.Merge(dateString, nil, slotsPerDay)
		}
	}
	return records
}

// Mode returns the active display mode.
func (co *Coordinator) Mode() models.DisplayMode {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.mode
}

// Pivot returns the current pivot date.
func (co *Coordinator) Pivot() time.Time {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.pivot
}

// SlotsPerDay returns the active slot count.
func (co *Coordinator) SlotsPerDay() int {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.slotsPerDay
}

// Err returns the current error descriptor, if any. Foreground fetch and
// persist failures land here for the UI to display.
func (co *Coordinator) Err() error {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.lastErr
}

// ClearErr resets the error slot after the UI has shown it.
func (co *Coordinator) ClearErr() {
	co.mu.Lock()
	defer co.mu.Unlock()
	co.lastErr = nil
}

// SetErr records an externally produced error descriptor (for example an
// auth failure) on the observable error slot.
func (co *Coordinator) SetErr(err error) {
	co.setErr(err)
}

// LastPrefetch returns a handle on the most recent background prefetch, or
// nil if none has started. Used to await or observe warm-up completion.
func (co *Coordinator) LastPrefetch() *PrefetchTask {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.lastPrefetch
}

// Wait blocks until all queued persists have been issued.
func (co *Coordinator) Wait() {
	co.persists.Wait()
}

func (co *Coordinator) setErr(err error) {
	co.mu.Lock()
	co.lastErr = err
	co.mu.Unlock()
}

// fetchAndIngest performs one all-or-nothing batch fetch, merges every
// requested date against the active slot count, and ingests the results. On
// failure nothing is ingested; when surface is set the failure lands on the
// error slot.
func (co *Coordinator) fetchAndIngest(ctx context.Context, dateStrings []string, surface bool) error {
	saved, err := co.repo.FetchMany(ctx, co.userID, dateStrings)
	if err != nil {
		if surface {
			co.setErr(&FetchError{Scope: ScopeBatch, Err: err})
		}
		return err
	}

	slotsPerDay := co.SlotsPerDay()
	records := make([]models.DailyRecord, 0, len(dateStrings))
	for _, dateString := range dateStrings {
		var savedRecord *models.DailyRecord
		if record, ok := saved[dateString]; ok {
			savedRecord = &record
		}
		records = append(records, merge.Merge(dateString, savedRecord, slotsPerDay))
	}

	co.cache.Ingest(records)
	return nil
}
