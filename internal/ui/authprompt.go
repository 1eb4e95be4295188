package ui

import (
	"strings"
)

// authPrompt is the page-specific pitch shown when a signed-out viewer opens
// an auth-gated view. Each page explains what it would show, not just that a
// login is required.
type authPrompt struct {
	Icon        string
	Title       string
	Description string
	Features    []string
}

// promptFor returns the prompt for an auth-gated view. Non-gated views get a
// generic prompt, though the UI never shows it for them.
func promptFor(view View) authPrompt {
	switch view {
	case ViewHistory:
		return authPrompt{
			Icon:        "⏱",
			Title:       "Keep track of what you watch",
			Description: "Watch history isn't viewable when signed out.",
			Features: []string{
				"Resume videos where you left off",
				"Revisit videos grouped by day",
				"Pause or clear history any time",
			},
		}
	case ViewLiked:
		return authPrompt{
			Icon:        "♥",
			Title:       "Enjoy your favorite videos",
			Description: "Sign in to access videos that you've liked.",
			Features: []string{
				"Every video you like lands here",
				"Likes sync across your devices",
			},
		}
	case ViewSubscriptions:
		return authPrompt{
			Icon:        "▤",
			Title:       "Don't miss new videos",
			Description: "Sign in to see updates from your favorite channels.",
			Features: []string{
				"Follow the creators you care about",
				"New uploads from subscribed channels",
			},
		}
	case ViewWatchLater:
		return authPrompt{
			Icon:        "⌚",
			Title:       "Save videos for later",
			Description: "Sign in to keep a list of videos to watch when you have time.",
			Features: []string{
				"One key saves any video",
				"Your list follows you everywhere",
			},
		}
	case ViewDashboard:
		return authPrompt{
			Icon:        "▲",
			Title:       "Manage your channel",
			Description: "Sign in to see stats and manage your uploads.",
			Features: []string{
				"Every video you've uploaded, drafts included",
				"Publish, unpublish, or delete uploads",
			},
		}
	case ViewPlaylists:
		return authPrompt{
			Icon:        "≡",
			Title:       "Collect videos into playlists",
			Description: "Sign in to create and manage playlists.",
			Features: []string{
				"Group videos by topic or mood",
				"Share public playlists with anyone",
			},
		}
	}
	return authPrompt{
		Icon:        "⊘",
		Title:       "Sign in required",
		Description: "Sign in to use this page.",
	}
}

// renderAuthPrompt renders the sign-in pitch for an auth-gated view.
func (m Model) renderAuthPrompt(view View) string {
	s := m.theme.Styles()
	prompt := promptFor(view)

	var b strings.Builder
	b.WriteString(s.Title.Render(prompt.Icon + "  " + prompt.Title))
	b.WriteString("\n\n")
	b.WriteString(s.MutedText.Render(prompt.Description))
	b.WriteString("\n\n")
	for _, feature := range prompt.Features {
		b.WriteString(s.Text.Render("  · " + feature))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.AccentText.Render("press i to sign in"))
	return s.Box.Render(b.String())
}
