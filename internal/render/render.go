// Package render turns view model state into terminal output.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/julianstephens/tracker/internal/backup"
	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/ledger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/viewmodel"
)

const (
	checkDone    = "✓"
	checkPending = "○"
	checkFuture  = "·"
	swatchGlyph  = "●"
)

var neutral = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Status is what the tracker list needs to know about one tracker.
type Status struct {
	Completed bool
	Future    bool
	Days      int
}

// Renderer formats output for one writer. Escape codes are only emitted when
// the writer is a color-capable terminal.
type Renderer struct {
	lg *lipgloss.Renderer
	st styles
}

func New(w io.Writer) *Renderer {
	lg := lipgloss.NewRenderer(w)
	return &Renderer{lg: lg, st: newStyles(lg)}
}

// Swatch draws a dot in c. Completed trackers get a faded dot.
func (r *Renderer) Swatch(c models.Color, faded bool) string {
	if c.IsZero() {
		return r.st.pending.Render(checkPending)
	}
	col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	if faded {
		col = col.BlendLab(neutral, 0.6).Clamped()
	}
	return r.lg.NewStyle().Foreground(lipgloss.Color(col.Hex())).Render(swatchGlyph)
}

// DayHeader names the selected day, marking today.
func (r *Renderer) DayHeader(date, today time.Time) string {
	label := date.Format("Monday, Jan 2 2006")
	switch {
	case models.DayOf(date) == models.DayOf(today):
		label += " (today)"
	case models.DayOf(date) == models.DayOf(today.AddDate(0, 0, -1)):
		label += " (yesterday)"
	case date.After(today):
		label += " (" + humanize.RelTime(today, date, "ago", "from now") + ")"
	}
	return r.st.header.Render(label)
}

// Groups lists each group's trackers under its title.
func (r *Renderer) Groups(groups []models.Group, status func(models.Tracker) Status) string {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		if g.Pinned {
			b.WriteString(r.st.pinned.Render("📌 " + g.Title))
		} else {
			b.WriteString(r.st.header.Render(g.Title))
		}
		b.WriteString("\n")
		for _, t := range g.Trackers {
			b.WriteString(r.trackerLine(t, status(t)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (r *Renderer) trackerLine(t models.Tracker, s Status) string {
	check := r.st.pending.Render(checkPending)
	switch {
	case s.Completed:
		check = r.st.done.Render(checkDone)
	case s.Future:
		check = r.st.muted.Render(checkFuture)
	}

	emoji := t.Emoji
	if emoji == "" {
		emoji = "  "
	}
	title := PadRight(Truncate(t.Title, constants.MaxTitleLength), constants.MaxTitleLength)
	days := r.st.muted.Render(DaysCount(s.Days))
	return fmt.Sprintf("  %s %s %s %s %s", check, emoji, title, r.Swatch(t.Color, s.Completed), days)
}

// EmptyState explains an empty tracker list. hasScheduled distinguishes a
// day with nothing scheduled from a search or filter that matched nothing.
func (r *Renderer) EmptyState(hasScheduled bool) string {
	if hasScheduled {
		return r.st.muted.Render("Nothing found")
	}
	return r.st.muted.Render("What shall we track?")
}

// Summary renders the statistics screen's headline numbers.
func (r *Renderer) Summary(s ledger.Summary) string {
	if s.IsEmpty() {
		return r.st.muted.Render("Nothing to analyze yet")
	}
	rows := []struct {
		label string
		value string
	}{
		{"Best streak", DaysCount(s.BestStreak)},
		{"Current streak", DaysCount(s.CurrentStreak)},
		{"Perfect days", humanize.Comma(int64(s.PerfectDays))},
		{"Trackers completed", humanize.Comma(int64(s.Completed))},
		{"Average per day", humanize.Comma(int64(s.Average))},
	}

	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "  %s %s\n", PadRight(row.label, 20), r.st.value.Render(row.value))
	}
	return b.String()
}

// TrackerStats renders the per-tracker breakdown.
func (r *Renderer) TrackerStats(per []viewmodel.TrackerStats) string {
	var b strings.Builder
	for _, s := range per {
		title := PadRight(Truncate(s.Tracker.Title, constants.MaxTitleLength), constants.MaxTitleLength)
		fmt.Fprintf(&b, "  %s %s %s  best %s\n",
			r.Swatch(s.Tracker.Color, false), title,
			PadRight(Count(s.Total, "time"), 10), DaysCount(s.BestStreak))
	}
	return b.String()
}

// Categories lists categories with their tracker counts, marking selected.
func (r *Renderer) Categories(list []models.Category, counts map[string]int, selected string) string {
	if len(list) == 0 {
		return r.st.muted.Render("No categories yet. Add one with 'category add'.") + "\n"
	}
	var b strings.Builder
	for _, c := range list {
		mark := " "
		if c.ID == selected {
			mark = r.st.done.Render(checkDone)
		}
		fmt.Fprintf(&b, "%s %s %s\n", mark, PadRight(c.Title, 24), r.st.muted.Render(Count(counts[c.ID], "tracker")))
	}
	return b.String()
}

// TrackerDetail renders one tracker with its history, most recent first.
func (r *Renderer) TrackerDetail(t models.Tracker, category string, records []models.CompletionRecord, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", t.Emoji, r.st.header.Render(t.Title))
	fmt.Fprintf(&b, "  ID:        %s\n", t.ID)
	fmt.Fprintf(&b, "  Category:  %s\n", category)
	fmt.Fprintf(&b, "  Kind:      %s\n", t.Kind())
	fmt.Fprintf(&b, "  Schedule:  %s\n", t.Schedule)
	fmt.Fprintf(&b, "  Color:     %s %s\n", r.Swatch(t.Color, false), t.Color)
	if t.IsPinned {
		fmt.Fprintf(&b, "  Pinned:    yes\n")
	}
	fmt.Fprintf(&b, "  Created:   %s\n", humanize.RelTime(t.CreatedAt, now, "ago", "from now"))
	fmt.Fprintf(&b, "  Completed: %s\n", DaysCount(len(records)))

	for i := len(records) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "    %s %s\n", r.st.done.Render(checkDone), records[i].Day)
	}
	return b.String()
}

// Backups lists backups newest first.
func (r *Renderer) Backups(list []backup.Info, dir string, keep int, now time.Time) string {
	var b strings.Builder
	if len(list) == 0 {
		b.WriteString("No backups found.\n")
		fmt.Fprintf(&b, "Backups are stored in: %s\n", dir)
		return b.String()
	}

	fmt.Fprintf(&b, "Available backups (%s, keeping most recent %d):\n\n", Count(len(list), "backup"), keep)
	for _, info := range list {
		fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
			info.Timestamp.Format("2006-01-02 15:04:05"),
			PadRight(info.Name(), 34),
			PadRight(humanize.Bytes(uint64(info.Size)), 8),
			r.st.muted.Render(humanize.RelTime(info.Timestamp, now, "ago", "from now")))
	}
	fmt.Fprintf(&b, "\nBackup directory: %s\n", dir)
	return b.String()
}

func (r *Renderer) Success(msg string) string {
	return r.st.done.Render(checkDone) + " " + msg
}

func (r *Renderer) Warning(msg string) string {
	return r.st.warning.Render("⚠️  " + msg)
}

func (r *Renderer) Danger(msg string) string {
	return r.st.danger.Render(msg)
}

// Doc wraps a block with the standard padding.
func (r *Renderer) Doc(s string) string {
	return r.st.doc.Render(s)
}
