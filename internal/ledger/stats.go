package ledger

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/models"
)

// Summary is the aggregate shown on the statistics screen.
type Summary struct {
	BestStreak    int `json:"best_streak"`
	CurrentStreak int `json:"current_streak"`
	PerfectDays   int `json:"perfect_days"`
	Completed     int `json:"completed"`
	Average       int `json:"average"`
}

// IsEmpty reports whether nothing has been completed yet.
func (s Summary) IsEmpty() bool {
	return s.Completed == 0
}

// Summarize computes every statistic over records. today anchors CurrentStreak.
func Summarize(records []models.CompletionRecord, trackers []models.Tracker, today time.Time) Summary {
	records = dedupe(records)
	return Summary{
		BestStreak:    BestStreak(records),
		CurrentStreak: CurrentStreak(records, today),
		PerfectDays:   PerfectDays(records, trackers),
		Completed:     len(records),
		Average:       AveragePerActiveDay(records),
	}
}

func dedupe(records []models.CompletionRecord) []models.CompletionRecord {
	seen := make(map[key]struct{}, len(records))
	out := make([]models.CompletionRecord, 0, len(records))
	for _, r := range records {
		k := key{r.TrackerID, r.Day}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// activeDays returns the distinct parsable days present in records, ascending.
// Days are parsed in UTC so every step between them is exactly one date.
func activeDays(records []models.CompletionRecord) []time.Time {
	seen := make(map[string]struct{})
	var days []time.Time
	for _, r := range records {
		if _, ok := seen[r.Day]; ok {
			continue
		}
		seen[r.Day] = struct{}{}
		d, err := time.Parse(constants.DateFormat, r.Day)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func nextDay(d time.Time) time.Time {
	return d.AddDate(0, 0, 1)
}

// BestStreak is the longest run of consecutive calendar days with at least
// one completion, across all trackers.
func BestStreak(records []models.CompletionRecord) int {
	days := activeDays(records)
	if len(days) == 0 {
		return 0
	}
	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(nextDay(days[i-1])) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// CurrentStreak is the run of consecutive active days ending today, or
// yesterday when today has no completions yet.
func CurrentStreak(records []models.CompletionRecord, today time.Time) int {
	days := activeDays(records)
	if len(days) == 0 {
		return 0
	}
	active := make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		active[d] = struct{}{}
	}

	cursor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if _, ok := active[cursor]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
	}
	n := 0
	for {
		if _, ok := active[cursor]; !ok {
			return n
		}
		n++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

// TrackerStreak is the best streak of a single tracker.
func TrackerStreak(records []models.CompletionRecord, trackerID string) int {
	var own []models.CompletionRecord
	for _, r := range records {
		if r.TrackerID == trackerID {
			own = append(own, r)
		}
	}
	return BestStreak(own)
}

// PerfectDays counts days on which every tracker was completed. The current
// number of trackers is applied to past days as well, so days before a
// tracker existed can never be perfect once it is added.
func PerfectDays(records []models.CompletionRecord, trackers []models.Tracker) int {
	total := make(map[string]struct{}, len(trackers))
	for _, t := range trackers {
		total[t.ID] = struct{}{}
	}
	if len(total) == 0 || len(records) == 0 {
		return 0
	}

	perDay := make(map[string]map[string]struct{})
	for _, r := range records {
		set, ok := perDay[r.Day]
		if !ok {
			set = make(map[string]struct{})
			perDay[r.Day] = set
		}
		set[r.TrackerID] = struct{}{}
	}

	n := 0
	for _, set := range perDay {
		if len(set) >= len(total) {
			n++
		}
	}
	return n
}

// AveragePerActiveDay is the rounded number of completions per day that has
// at least one completion.
func AveragePerActiveDay(records []models.CompletionRecord) int {
	records = dedupe(records)
	if len(records) == 0 {
		return 0
	}
	days := make(map[string]struct{})
	for _, r := range records {
		days[r.Day] = struct{}{}
	}
	return int(math.Round(float64(len(records)) / float64(len(days))))
}

// TotalCompleted counts distinct (tracker, day) completions.
func TotalCompleted(records []models.CompletionRecord) int {
	return len(dedupe(records))
}
