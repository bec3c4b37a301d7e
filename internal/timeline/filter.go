package timeline

import (
	"strings"
	"time"
)

// TypeAll is the category sentinel that disables type filtering.
const TypeAll EventType = "all"

type Window string

const (
	WindowAll     Window = "all"
	Window1Month  Window = "1month"
	Window3Months Window = "3months"
	Window6Months Window = "6months"
	Window1Year   Window = "1year"
)

func ParseWindow(raw string) (Window, error) {
	if raw == "" {
		return WindowAll, nil
	}
	w := Window(raw)
	switch w {
	case WindowAll, Window1Month, Window3Months, Window6Months, Window1Year:
		return w, nil
	}
	return "", ErrInvalidWindow
}

// Cutoff returns the oldest calendar date the window keeps, counted from the
// UTC date of now. ok is false for WindowAll.
func (w Window) Cutoff(now time.Time) (time.Time, bool) {
	now = calendarDate(now)
	switch w {
	case Window1Month:
		return now.AddDate(0, -1, 0), true
	case Window3Months:
		return now.AddDate(0, -3, 0), true
	case Window6Months:
		return now.AddDate(0, -6, 0), true
	case Window1Year:
		return now.AddDate(-1, 0, 0), true
	}
	return time.Time{}, false
}

// ParseCategory accepts an event type or "all"; empty means "all".
func ParseCategory(raw string) (EventType, error) {
	if raw == "" || EventType(raw) == TypeAll {
		return TypeAll, nil
	}
	t := EventType(raw)
	if !t.IsValid() {
		return "", ErrInvalidEventType
	}
	return t, nil
}

// Criteria is the conjunction of a text search, a category and a time window.
// Zero-valued fields do not filter.
type Criteria struct {
	Search   string
	Category EventType
	Window   Window
}

type Predicate func(Event) bool

// Predicates returns the active predicates in the order search, category,
// window. They are independent, so any evaluation order keeps the same set.
func (c Criteria) Predicates(now time.Time) []Predicate {
	var preds []Predicate

	if term := strings.ToLower(strings.TrimSpace(c.Search)); term != "" {
		preds = append(preds, func(e Event) bool {
			return strings.Contains(strings.ToLower(e.Title), term) ||
				strings.Contains(strings.ToLower(e.Description), term)
		})
	}

	if c.Category != "" && c.Category != TypeAll {
		category := c.Category
		preds = append(preds, func(e Event) bool {
			return e.Type == category
		})
	}

	if cutoff, ok := c.Window.Cutoff(now); ok {
		preds = append(preds, func(e Event) bool {
			// No date, no place in a time window.
			return !e.Date.IsZero() && !e.Date.Before(cutoff)
		})
	}

	return preds
}

// Narrow keeps the events matching pred, preserving order.
func Narrow(events []Event, pred Predicate) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Apply filters events against c with "now" supplied by the caller, then
// re-sorts the survivors newest first. The input slice is not modified.
func Apply(events []Event, c Criteria, now time.Time) []Event {
	out := append(make([]Event, 0, len(events)), events...)
	for _, pred := range c.Predicates(now) {
		out = Narrow(out, pred)
	}
	SortByDateDesc(out)
	return out
}

// View is a filtered timeline ready for display.
type View struct {
	Events []Event    `json:"-"`
	Groups []DayGroup `json:"groups"`
	Count  int        `json:"count"`
	Total  int        `json:"total"`
}

// Build applies c to the aggregated events and groups the result by day.
func Build(events []Event, c Criteria, now time.Time) View {
	filtered := Apply(events, c, now)
	return View{
		Events: filtered,
		Groups: GroupByDay(filtered),
		Count:  len(filtered),
		Total:  len(events),
	}
}
