package engage

import (
	"testing"

	"tuber/internal/vidtube"
)

func TestPager_RevealsInFixedIncrements(t *testing.T) {
	p := NewPager(5)
	p.SetTotal(12)

	if got := p.Visible(); got != 5 {
		t.Fatalf("Visible = %d, want 5", got)
	}
	if !p.HasMore() {
		t.Fatalf("HasMore = false, want true")
	}

	p.ShowMore()
	if got := p.Visible(); got != 10 {
		t.Fatalf("Visible = %d, want 10", got)
	}

	p.ShowMore()
	if got := p.Visible(); got != 12 {
		t.Fatalf("Visible = %d, want 12 (clamped to total)", got)
	}
	if p.HasMore() {
		t.Fatalf("HasMore = true, want false at total")
	}
}

func TestPager_VisibleClampsToSmallTotal(t *testing.T) {
	p := NewPager(5)
	p.SetTotal(2)
	if got := p.Visible(); got != 2 {
		t.Fatalf("Visible = %d, want 2", got)
	}
}

func TestPager_Reset(t *testing.T) {
	p := NewPager(3)
	p.SetTotal(9)
	p.ShowMore()
	p.Reset()
	if got := p.Visible(); got != 3 {
		t.Fatalf("Visible = %d after Reset, want 3", got)
	}
}

func TestReplyWindow_RevealsInFixedIncrements(t *testing.T) {
	w := NewReplyWindow(3)

	if got := w.Visible("c1", 8); got != 3 {
		t.Fatalf("Visible = %d, want 3 before any ShowMore", got)
	}
	if !w.HasMore("c1", 8) {
		t.Fatalf("HasMore = false, want true with 8 replies")
	}

	w.ShowMore("c1")
	if got := w.Visible("c1", 8); got != 6 {
		t.Fatalf("Visible = %d after one ShowMore, want 6", got)
	}
	w.ShowMore("c1")
	if got := w.Visible("c1", 8); got != 8 {
		t.Fatalf("Visible = %d, want clamp to total 8", got)
	}
	if w.HasMore("c1", 8) {
		t.Fatalf("HasMore = true with everything revealed")
	}
}

func TestReplyWindow_PerCommentIndependence(t *testing.T) {
	w := NewReplyWindow(2)
	w.ShowMore("a")

	if got := w.Visible("a", 10); got != 4 {
		t.Fatalf("Visible(a) = %d, want 4", got)
	}
	if got := w.Visible("b", 10); got != 2 {
		t.Fatalf("Visible(b) = %d, want untouched initial window 2", got)
	}
}

func TestReplyWindow_ShortListNeverOverflows(t *testing.T) {
	w := NewReplyWindow(0) // default increment

	if got := w.Visible("c", 1); got != 1 {
		t.Fatalf("Visible = %d, want 1 for a single reply", got)
	}
	if w.HasMore("c", 1) {
		t.Fatalf("HasMore = true for a fully visible list")
	}
}

func TestCountComments_IncludesReplies(t *testing.T) {
	comments := []vidtube.Comment{
		{ID: "c1", Replies: []vidtube.Comment{{ID: "r1"}, {ID: "r2"}}},
		{ID: "c2"},
	}
	if got := CountComments(comments); got != 4 {
		t.Fatalf("CountComments = %d, want 4", got)
	}
}
