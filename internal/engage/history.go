package engage

import (
	"context"
	"sort"
	"time"

	"tuber/internal/vidtube"
)

// HistoryAPI is the slice of the VidTube client the history manager needs.
// Implemented by *vidtube.Client.
type HistoryAPI interface {
	AddHistory(ctx context.Context, videoID string) error
	History(ctx context.Context) ([]vidtube.HistoryItem, error)
	RemoveHistory(ctx context.Context, itemID string) error
	ClearHistory(ctx context.Context) error
}

// History wraps the watch-history endpoints. The backend owns the data;
// there is nothing optimistic here, only display grouping.
type History struct {
	api HistoryAPI
}

// NewHistory builds a history manager.
func NewHistory(api HistoryAPI) *History {
	return &History{api: api}
}

// Record adds a history entry for a watched video.
func (h *History) Record(ctx context.Context, videoID string) error {
	return h.api.AddHistory(ctx, videoID)
}

// Fetch returns the viewer's history grouped by calendar day, newest group
// first, items newest first within each group.
func (h *History) Fetch(ctx context.Context, now time.Time) ([]DayGroup, error) {
	items, err := h.api.History(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByDay(items, now), nil
}

// Remove deletes one history entry.
func (h *History) Remove(ctx context.Context, itemID string) error {
	return h.api.RemoveHistory(ctx, itemID)
}

// Clear deletes the whole history.
func (h *History) Clear(ctx context.Context) error {
	return h.api.ClearHistory(ctx)
}

// DayGroup is one calendar day of watch history.
type DayGroup struct {
	Day   time.Time // midnight, local
	Label string    // "Today", "Yesterday", or a formatted date
	Items []vidtube.HistoryItem
}

// GroupByDay buckets history items by local calendar day for display.
func GroupByDay(items []vidtube.HistoryItem, now time.Time) []DayGroup {
	buckets := make(map[time.Time][]vidtube.HistoryItem)
	for _, item := range items {
		watched := item.ParsedWatchedAt()
		if watched.IsZero() {
			continue
		}
		day := midnight(watched.Local())
		buckets[day] = append(buckets[day], item)
	}

	days := make([]time.Time, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	groups := make([]DayGroup, 0, len(days))
	for _, day := range days {
		entries := buckets[day]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].ParsedWatchedAt().After(entries[j].ParsedWatchedAt())
		})
		groups = append(groups, DayGroup{Day: day, Label: dayLabel(day, now), Items: entries})
	}
	return groups
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayLabel(day, now time.Time) string {
	today := midnight(now.Local())
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return day.Format("Monday, Jan 2, 2006")
	}
}
