package viewmodel

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/ledger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/visibility"
)

type observer struct {
	id int
	fn func([]models.Group)
}

// Trackers is the main screen's state: which trackers are visible for the
// selected date, search and filter, and which of them are completed.
type Trackers struct {
	store  storage.Provider
	opts   options
	engine *visibility.Engine
	log    *log.Logger

	mu         sync.Mutex
	date       time.Time
	search     string
	filter     models.Filter
	trackers   []models.Tracker
	categories map[string]string
	ledger     *ledger.Ledger
	visible    []models.Group
	observers  []observer
	nextID     int

	unsubscribe func()
}

// NewTrackers builds the view model over store. When store is a
// *storage.Observed, every write through it triggers a reload.
func NewTrackers(store storage.Provider, opts ...Option) *Trackers {
	o := buildOptions("trackers", opts)
	t := &Trackers{
		store: store,
		opts:  o,
		engine: visibility.New(
			visibility.WithPinnedTitle(o.pinnedTitle),
			visibility.WithLanguage(o.lang),
		),
		log:        o.log,
		date:       o.today(),
		categories: map[string]string{},
		ledger:     newLedger(nil, o),
	}
	if observed, ok := store.(*storage.Observed); ok {
		t.unsubscribe = observed.Feed().Subscribe(func(c storage.Change) {
			if err := t.Load(); err != nil {
				t.log.Warn("reload after store change failed", "entity", c.Entity, "id", c.ID, "error", err)
			}
		})
	}
	return t
}

func newLedger(records []models.CompletionRecord, o options) *ledger.Ledger {
	return ledger.New(records, ledger.WithClock(o.now), ledger.WithLocation(o.loc))
}

// Close detaches the view model from the store's change feed.
func (t *Trackers) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}

// Load replaces the snapshot with the store's current contents.
func (t *Trackers) Load() error {
	trackers, err := t.store.GetAllTrackers()
	if err != nil {
		return err
	}
	categories, err := t.store.GetCategories()
	if err != nil {
		return err
	}
	records, err := t.store.GetCompletionRecords()
	if err != nil {
		return err
	}

	titles := make(map[string]string, len(categories))
	for _, c := range categories {
		titles[c.ID] = c.Title
	}

	t.mu.Lock()
	t.trackers = trackers
	t.categories = titles
	t.ledger = newLedger(records, t.opts)
	t.log.Debug("snapshot loaded", "trackers", len(trackers), "categories", len(categories), "records", t.ledger.Len())
	t.recomputeAndNotify()
	return nil
}

// recomputeAndNotify must be called with mu held; it releases it before
// running observers.
func (t *Trackers) recomputeAndNotify() {
	t.recompute()
	groups := t.visible
	observers := make([]observer, len(t.observers))
	copy(observers, t.observers)
	t.mu.Unlock()

	for _, o := range observers {
		o.fn(groups)
	}
}

func (t *Trackers) recompute() {
	q := visibility.Query{Date: t.date, Search: t.search, Filter: t.filter}
	categories := t.categories
	lookup := func(id string) (string, bool) {
		title, ok := categories[id]
		return title, ok
	}
	t.visible = t.engine.Compute(q, t.trackers, lookup, t.ledger.IsCompleted)
}

// OnChange registers fn to run after every recompute, in registration order.
// The returned function removes the registration.
func (t *Trackers) OnChange(fn func([]models.Group)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := t.nextID
	t.observers = append(t.observers, observer{id: id, fn: fn})
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for i, o := range t.observers {
			if o.id == id {
				t.observers = append(t.observers[:i:i], t.observers[i+1:]...)
				return
			}
		}
	}
}

func (t *Trackers) SetDate(date time.Time) {
	t.mu.Lock()
	t.date = date.In(t.opts.loc)
	t.recomputeAndNotify()
}

// SetSearch stores the search text lower-cased.
func (t *Trackers) SetSearch(search string) {
	t.mu.Lock()
	t.search = strings.ToLower(search)
	t.recomputeAndNotify()
}

// SetFilter changes the filter. Selecting FilterToday also moves the date
// to today.
func (t *Trackers) SetFilter(filter models.Filter) {
	t.mu.Lock()
	t.filter = filter
	if filter == models.FilterToday {
		t.date = t.opts.today()
	}
	t.recomputeAndNotify()
}

func (t *Trackers) Date() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.date
}

func (t *Trackers) Search() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.search
}

func (t *Trackers) Filter() models.Filter {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filter
}

// Visible returns the groups computed for the current date, search and filter.
func (t *Trackers) Visible() []models.Group {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// HasTrackersOnSelectedDate reports whether anything is scheduled on the
// selected date, ignoring search and filter. Used to pick the empty-state text.
func (t *Trackers) HasTrackersOnSelectedDate() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return visibility.HasTrackersOn(t.trackers, t.date)
}

func (t *Trackers) IsFilterActive() bool {
	return t.Filter().IsActive()
}

// All returns every tracker in the snapshot.
func (t *Trackers) All() []models.Tracker {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Tracker, len(t.trackers))
	copy(out, t.trackers)
	return out
}

// Tracker looks a tracker up by id in the snapshot.
func (t *Trackers) Tracker(id string) (models.Tracker, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.find(id)
}

func (t *Trackers) find(id string) (models.Tracker, bool) {
	for _, tr := range t.trackers {
		if tr.ID == id {
			return tr, true
		}
	}
	return models.Tracker{}, false
}

func (t *Trackers) CategoryTitle(id string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	title, ok := t.categories[id]
	return title, ok
}

func (t *Trackers) IsCompleted(trackerID string, date time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.IsCompleted(trackerID, date)
}

func (t *Trackers) TotalCompletions(trackerID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.TotalCompletions(trackerID)
}

// Records returns the ledger's records for trackerID, or all when empty.
func (t *Trackers) Records(trackerID string) []models.CompletionRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	all := t.ledger.Records()
	if trackerID == "" {
		return all
	}
	var out []models.CompletionRecord
	for _, r := range all {
		if r.TrackerID == trackerID {
			out = append(out, r)
		}
	}
	return out
}

// ToggleCompletion flips trackerID's completion on date and persists the
// result. Future dates are left untouched. If the store rejects the write
// the ledger is restored.
func (t *Trackers) ToggleCompletion(trackerID string, date time.Time) (ledger.Change, error) {
	t.mu.Lock()
	if _, ok := t.find(trackerID); !ok {
		t.mu.Unlock()
		return ledger.ChangeNone, apperrors.NotFound("tracker", trackerID)
	}
	change, rec := t.ledger.Toggle(trackerID, date)
	t.mu.Unlock()

	var err error
	switch change {
	case ledger.ChangeNone:
		t.log.Debug("ignored completion of a future day", "tracker", trackerID, "date", date)
		return change, nil
	case ledger.ChangeAdded:
		err = t.store.AddCompletionRecord(rec)
	case ledger.ChangeRemoved:
		err = t.store.DeleteCompletionRecord(rec.TrackerID, rec.Day)
	}

	t.mu.Lock()
	if err != nil {
		switch change {
		case ledger.ChangeAdded:
			t.ledger.Remove(rec.TrackerID, rec.Day)
		case ledger.ChangeRemoved:
			t.ledger.Add(rec)
		}
		t.log.Error("failed to persist completion", "tracker", trackerID, "day", rec.Day, "error", err)
	} else {
		t.log.Debug("completion toggled", "tracker", trackerID, "day", rec.Day, "change", change)
	}
	t.recomputeAndNotify()
	if err != nil {
		return ledger.ChangeNone, err
	}
	return change, nil
}

// TogglePin flips the pin flag of trackerID and persists the updated tracker.
func (t *Trackers) TogglePin(trackerID string) (models.Tracker, error) {
	t.mu.Lock()
	current, ok := t.find(trackerID)
	t.mu.Unlock()
	if !ok {
		return models.Tracker{}, apperrors.NotFound("tracker", trackerID)
	}

	updated := current.WithPinned(!current.IsPinned)
	if err := t.store.UpdateTracker(updated); err != nil {
		return models.Tracker{}, err
	}

	t.mu.Lock()
	t.replace(updated)
	t.recomputeAndNotify()
	return updated, nil
}

// SaveTracker adds tr, or replaces the stored tracker with the same id.
func (t *Trackers) SaveTracker(tr models.Tracker) error {
	t.mu.Lock()
	_, exists := t.find(tr.ID)
	t.mu.Unlock()

	var err error
	if exists {
		err = t.store.UpdateTracker(tr)
	} else {
		err = t.store.AddTracker(tr)
	}
	if err != nil {
		return fmt.Errorf("save tracker %q: %w", tr.Title, err)
	}

	t.mu.Lock()
	if !t.replace(tr) {
		t.trackers = append(t.trackers, tr)
	}
	t.recomputeAndNotify()
	return nil
}

// DeleteTracker removes trackerID and its completion records.
func (t *Trackers) DeleteTracker(trackerID string) error {
	if err := t.store.DeleteTracker(trackerID); err != nil {
		return err
	}

	t.mu.Lock()
	for i, tr := range t.trackers {
		if tr.ID == trackerID {
			t.trackers = append(t.trackers[:i:i], t.trackers[i+1:]...)
			break
		}
	}
	removed := t.ledger.RemoveTracker(trackerID)
	t.log.Debug("tracker deleted", "id", trackerID, "records", removed)
	t.recomputeAndNotify()
	return nil
}

// replace swaps in tr by id; must hold mu.
func (t *Trackers) replace(tr models.Tracker) bool {
	for i := range t.trackers {
		if t.trackers[i].ID == tr.ID {
			next := make([]models.Tracker, len(t.trackers))
			copy(next, t.trackers)
			next[i] = tr
			t.trackers = next
			return true
		}
	}
	return false
}
