// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/universeapp/universe-tui/internal/api"
	"github.com/universeapp/universe-tui/internal/config"
	"github.com/universeapp/universe-tui/internal/history"
	"github.com/universeapp/universe-tui/internal/model"
	"github.com/universeapp/universe-tui/internal/nav"
	"github.com/universeapp/universe-tui/internal/session"
	"github.com/universeapp/universe-tui/internal/ui/components"
)

// homeDataMsg carries the home feed and recent visits.
type homeDataMsg struct {
	token       string
	discussions []model.DiscussionSummary
	recents     []history.Visit
	err         error
}

// HomeView is the authenticated landing screen: recently viewed items plus
// the discussion feed for the user's university.
type HomeView struct {
	deps    Deps
	spinner components.Spinner
	token   string

	discussions []model.DiscussionSummary
	recents     []history.Visit
	selected    int
	loadErr     string
	loaded      bool
}

// NewHomeView creates the home view.
func NewHomeView(deps Deps) *HomeView {
	return &HomeView{
		deps:    deps,
		spinner: components.NewSpinner("Loading your feed"),
	}
}

// Init fires the feed load.
func (v *HomeView) Init() tea.Cmd {
	v.token = newToken()
	token := v.token
	client := v.deps.Client
	hist := v.deps.History

	var universityID string
	if s, ok := v.deps.Sessions.Current(); ok {
		universityID = s.UniversityID
	}

	return tea.Batch(v.spinner.Start(), func() tea.Msg {
		ctx := context.Background()

		discussions, err := client.ListDiscussions(ctx, api.DiscussionFilter{UniversityID: universityID})
		if err != nil {
			return homeDataMsg{token: token, err: err}
		}

		var recents []history.Visit
		if hist != nil {
			// History is best effort; a failure only hides the section.
			recents, _ = hist.Recent(ctx, 5)
		}

		return homeDataMsg{token: token, discussions: discussions, recents: recents}
	})
}

// Update handles feed data and list navigation.
func (v *HomeView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case homeDataMsg:
		if msg.token != v.token {
			return v, nil
		}
		v.spinner.Stop()
		v.loaded = true
		if msg.err != nil {
			v.loadErr = errorMessage(msg.err)
			return v, nil
		}
		v.discussions = msg.discussions
		v.recents = msg.recents
		v.selected = 0
		return v, nil

	case tea.WindowSizeMsg:
		v.deps.Width = msg.Width
		v.deps.Height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if v.selected < len(v.discussions)-1 {
				v.selected++
			}
		case "k", "up":
			if v.selected > 0 {
				v.selected--
			}
		case "enter":
			if v.selected < len(v.discussions) {
				d := v.discussions[v.selected]
				return v, navigate(NavigateMsg{
					To:           nav.RouteDiscussion,
					DiscussionID: d.ID,
					Ctx:          nav.FromHome(),
				})
			}
		case "e":
			return v, navigate(NavigateMsg{To: nav.RouteExplore})
		case "p":
			return v, navigate(NavigateMsg{To: nav.RouteProfile})
		case "r":
			return v, v.Init()
		}
	}

	var cmd tea.Cmd
	v.spinner, cmd = v.spinner.Update(msg)
	return v, cmd
}

// View renders the home screen.
func (v *HomeView) View() string {
	theme := v.deps.Theme
	width := contentWidth(v.deps)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Home"))
	sb.WriteString("\n\n")

	if !v.loaded {
		sb.WriteString(v.spinner.View())
		return sb.String()
	}
	if v.loadErr != "" {
		sb.WriteString(theme.FormError.Render(v.loadErr))
		sb.WriteString("\n")
		sb.WriteString(theme.Muted.Render("r retry · e explore"))
		return sb.String()
	}

	if len(v.recents) > 0 {
		sb.WriteString(theme.Label.Render("Jump back in"))
		sb.WriteString("\n")
		for _, r := range v.recents {
			line := fmt.Sprintf("  %s · %s", r.Title, r.Kind)
			sb.WriteString(theme.Muted.Render(line))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(v.discussions) == 0 {
		sb.WriteString(theme.Muted.Render("No discussions yet. Press e to explore classes."))
		return sb.String()
	}

	compact := config.Global().UI.CompactMode
	var cards []components.Card
	for i, d := range v.discussions {
		meta := d.Author
		if d.Class != "" {
			meta += " · " + d.Class
		}
		if d.ReplyCount > 0 {
			meta += fmt.Sprintf(" · %d replies", d.ReplyCount)
		}
		card := components.Card{
			Title:    d.Title,
			Meta:     meta,
			Selected: i == v.selected,
		}
		if !compact {
			card.Snippet = d.Body
		}
		cards = append(cards, card)
	}
	sb.WriteString(components.RenderCardList(theme, width, cards))
	sb.WriteString("\n")
	sb.WriteString(theme.Muted.Render("enter open · e explore · p profile · r refresh"))
	return sb.String()
}

// errorMessage maps a client error onto a user-facing string.
func errorMessage(err error) string {
	if apiErr, ok := api.APIError(err); ok {
		return apiErr.Message
	}
	return session.GenericNetworkError
}

// contentWidth returns the usable content width.
func contentWidth(deps Deps) int {
	w := deps.Width
	if w <= 0 {
		w = 80
	}
	if w > 100 {
		w = 100
	}
	return w
}
