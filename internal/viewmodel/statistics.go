package viewmodel

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/tracker/internal/ledger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

// TrackerStats is the per-tracker breakdown shown below the summary.
type TrackerStats struct {
	Tracker    models.Tracker
	Total      int
	BestStreak int
}

// Statistics computes the statistics screen from the store.
type Statistics struct {
	store storage.Provider
	opts  options
	log   *log.Logger

	mu         sync.Mutex
	summary    ledger.Summary
	perTracker []TrackerStats
	observers  []func(ledger.Summary)
}

func NewStatistics(store storage.Provider, opts ...Option) *Statistics {
	o := buildOptions("statistics", opts)
	return &Statistics{store: store, opts: o, log: o.log}
}

// Load recomputes every statistic and notifies observers.
func (s *Statistics) Load() error {
	trackers, err := s.store.GetAllTrackers()
	if err != nil {
		return err
	}
	records, err := s.store.GetCompletionRecords()
	if err != nil {
		return err
	}

	summary := ledger.Summarize(records, trackers, s.opts.today())

	l := ledger.New(records)
	per := make([]TrackerStats, 0, len(trackers))
	for _, t := range trackers {
		per = append(per, TrackerStats{
			Tracker:    t,
			Total:      l.TotalCompletions(t.ID),
			BestStreak: ledger.TrackerStreak(records, t.ID),
		})
	}
	sort.SliceStable(per, func(i, j int) bool {
		return per[i].Total > per[j].Total
	})

	s.mu.Lock()
	s.summary = summary
	s.perTracker = per
	observers := make([]func(ledger.Summary), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	s.log.Debug("statistics computed", "completed", summary.Completed, "best_streak", summary.BestStreak)
	for _, fn := range observers {
		fn(summary)
	}
	return nil
}

func (s *Statistics) Summary() ledger.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// PerTracker returns trackers ordered by completion count, highest first.
func (s *Statistics) PerTracker() []TrackerStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TrackerStats, len(s.perTracker))
	copy(out, s.perTracker)
	return out
}

// OnUpdate registers fn to run after each Load.
func (s *Statistics) OnUpdate(fn func(ledger.Summary)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}
