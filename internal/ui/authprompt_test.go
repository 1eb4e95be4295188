package ui

import "testing"

func TestPromptFor_DistinctPerView(t *testing.T) {
	views := []View{ViewHistory, ViewLiked, ViewSubscriptions, ViewWatchLater, ViewPlaylists, ViewDashboard}

	seen := make(map[string]View)
	for _, view := range views {
		prompt := promptFor(view)
		if prompt.Title == "" || prompt.Description == "" {
			t.Fatalf("promptFor(%d) has empty title or description", view)
		}
		if prev, dup := seen[prompt.Title]; dup {
			t.Fatalf("views %d and %d share prompt title %q", prev, view, prompt.Title)
		}
		seen[prompt.Title] = view
	}
}

func TestPromptFor_UnknownViewGetsGenericPrompt(t *testing.T) {
	prompt := promptFor(ViewHome)
	if prompt.Title != "Sign in required" {
		t.Fatalf("Title = %q, want generic prompt", prompt.Title)
	}
}

func TestGated(t *testing.T) {
	for _, view := range []View{ViewSubscriptions, ViewHistory, ViewWatchLater, ViewPlaylists, ViewLiked, ViewDashboard} {
		if !gated(view) {
			t.Errorf("gated(%d) = false, want true", view)
		}
	}
	for _, view := range []View{ViewHome, ViewSearch, ViewWatch, ViewChannel, ViewLogin} {
		if gated(view) {
			t.Errorf("gated(%d) = true, want false", view)
		}
	}
}
