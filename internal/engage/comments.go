package engage

import "tuber/internal/vidtube"

// Pager reveals list entries in fixed increments. It is purely a display
// concern: "show more" on comments and replies widens the window, nothing is
// fetched (the comment tree arrives whole, with no server cursor).
type Pager struct {
	step    int
	visible int
	total   int
}

// NewPager builds a pager that starts with one increment revealed.
func NewPager(step int) Pager {
	if step <= 0 {
		step = 5
	}
	return Pager{step: step, visible: step}
}

// SetTotal records the list length the pager is windowing.
func (p *Pager) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
}

// Visible returns how many entries to render.
func (p Pager) Visible() int {
	if p.visible > p.total {
		return p.total
	}
	return p.visible
}

// HasMore reports whether hidden entries remain.
func (p Pager) HasMore() bool {
	return p.visible < p.total
}

// ShowMore widens the window by one increment.
func (p *Pager) ShowMore() {
	p.visible += p.step
	if p.visible > p.total {
		p.visible = p.total
	}
}

// Reset collapses the window back to one increment.
func (p *Pager) Reset() {
	p.visible = p.step
}

// ReplyWindow tracks per-comment reveal windows for reply lists. Like Pager
// it only controls display; the whole tree is already loaded. Each comment's
// window starts at one increment and widens independently.
type ReplyWindow struct {
	step    int
	visible map[string]int
}

// NewReplyWindow builds a reply window with the given increment.
func NewReplyWindow(step int) *ReplyWindow {
	if step <= 0 {
		step = 3
	}
	return &ReplyWindow{step: step, visible: make(map[string]int)}
}

// Visible returns how many replies to render under a comment.
func (w *ReplyWindow) Visible(commentID string, total int) int {
	v, ok := w.visible[commentID]
	if !ok {
		v = w.step
	}
	if v > total {
		return total
	}
	return v
}

// HasMore reports whether hidden replies remain under a comment.
func (w *ReplyWindow) HasMore(commentID string, total int) bool {
	return w.Visible(commentID, total) < total
}

// ShowMore widens the window under one comment by one increment.
func (w *ReplyWindow) ShowMore(commentID string) {
	v, ok := w.visible[commentID]
	if !ok {
		v = w.step
	}
	w.visible[commentID] = v + w.step
}

// CountComments returns the total number of comments in a two-level tree,
// replies included, for the "N Comments" heading.
func CountComments(comments []vidtube.Comment) int {
	count := len(comments)
	for _, c := range comments {
		count += len(c.Replies)
	}
	return count
}
