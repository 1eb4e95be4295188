package engage

import (
	"context"
	"errors"
	"testing"
	"time"

	"tuber/internal/vidtube"
)

// fakeHistoryAPI records which endpoint each manager method reached.
type fakeHistoryAPI struct {
	added   []string
	removed []string
	cleared int
	err     error
}

func (f *fakeHistoryAPI) AddHistory(_ context.Context, videoID string) error {
	f.added = append(f.added, videoID)
	return f.err
}

func (f *fakeHistoryAPI) History(context.Context) ([]vidtube.HistoryItem, error) {
	return nil, f.err
}

func (f *fakeHistoryAPI) RemoveHistory(_ context.Context, itemID string) error {
	f.removed = append(f.removed, itemID)
	return f.err
}

func (f *fakeHistoryAPI) ClearHistory(context.Context) error {
	f.cleared++
	return f.err
}

func historyItem(id string, watched time.Time) vidtube.HistoryItem {
	return vidtube.HistoryItem{
		ID:        id,
		Video:     vidtube.Video{ID: "vid-" + id},
		WatchedAt: watched.Format(time.RFC3339),
	}
}

func TestHistory_RecordRemoveClear(t *testing.T) {
	api := &fakeHistoryAPI{}
	h := NewHistory(api)
	ctx := context.Background()

	if err := h.Record(ctx, "v1"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := h.Remove(ctx, "h1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := h.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if len(api.added) != 1 || api.added[0] != "v1" {
		t.Fatalf("added = %v, want [v1]", api.added)
	}
	if len(api.removed) != 1 || api.removed[0] != "h1" {
		t.Fatalf("removed = %v, want [h1]", api.removed)
	}
	if api.cleared != 1 {
		t.Fatalf("cleared = %d, want 1", api.cleared)
	}
}

func TestHistory_SurfacesAPIErrors(t *testing.T) {
	wantErr := errors.New("history unavailable")
	h := NewHistory(&fakeHistoryAPI{err: wantErr})
	ctx := context.Background()

	if err := h.Remove(ctx, "h1"); !errors.Is(err, wantErr) {
		t.Fatalf("Remove err = %v, want %v", err, wantErr)
	}
	if err := h.Clear(ctx); !errors.Is(err, wantErr) {
		t.Fatalf("Clear err = %v, want %v", err, wantErr)
	}
	if _, err := h.Fetch(ctx, time.Now()); !errors.Is(err, wantErr) {
		t.Fatalf("Fetch err = %v, want %v", err, wantErr)
	}
}

func TestGroupByDay_BucketsAndLabels(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	items := []vidtube.HistoryItem{
		historyItem("a", now.Add(-1*time.Hour)),
		historyItem("b", now.Add(-3*time.Hour)),
		historyItem("c", now.AddDate(0, 0, -1)),
		historyItem("d", now.AddDate(0, 0, -5)),
	}

	groups := GroupByDay(items, now)
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	if groups[0].Label != "Today" {
		t.Fatalf("groups[0].Label = %q, want Today", groups[0].Label)
	}
	if len(groups[0].Items) != 2 {
		t.Fatalf("today items = %d, want 2", len(groups[0].Items))
	}
	if groups[1].Label != "Yesterday" {
		t.Fatalf("groups[1].Label = %q, want Yesterday", groups[1].Label)
	}
	if groups[2].Label == "Today" || groups[2].Label == "Yesterday" {
		t.Fatalf("groups[2].Label = %q, want a formatted date", groups[2].Label)
	}
}

func TestGroupByDay_NewestFirstWithinGroup(t *testing.T) {
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.Local)
	items := []vidtube.HistoryItem{
		historyItem("older", now.Add(-5*time.Hour)),
		historyItem("newer", now.Add(-1*time.Hour)),
	}

	groups := GroupByDay(items, now)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if groups[0].Items[0].ID != "newer" {
		t.Fatalf("first item = %q, want newer", groups[0].Items[0].ID)
	}
}

func TestGroupByDay_SkipsUnparseableTimestamps(t *testing.T) {
	now := time.Now()
	items := []vidtube.HistoryItem{
		{ID: "bad", WatchedAt: "not-a-time"},
		historyItem("good", now),
	}

	groups := GroupByDay(items, now)
	if len(groups) != 1 || len(groups[0].Items) != 1 {
		t.Fatalf("groups = %#v, want single group with the parseable item", groups)
	}
}

func TestGroupByDay_FallsBackToCreatedAt(t *testing.T) {
	now := time.Now()
	item := vidtube.HistoryItem{ID: "x", CreatedAt: now.Format(time.RFC3339)}

	groups := GroupByDay([]vidtube.HistoryItem{item}, now)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1 (createdAt fallback)", len(groups))
	}
}
