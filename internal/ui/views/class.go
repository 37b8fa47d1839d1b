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
	"github.com/universeapp/universe-tui/internal/ui/components"
)

// classDataMsg carries the class and its discussions.
type classDataMsg struct {
	token       string
	class       model.Class
	discussions []model.DiscussionSummary
	err         error
}

// discussionCreatedMsg carries the outcome of posting a new discussion.
type discussionCreatedMsg struct {
	token string
	err   error
}

// ClassView shows one class: its metadata and discussion list. The back
// affordance resolves from the navigation context the user arrived with.
type ClassView struct {
	deps    Deps
	spinner components.Spinner
	token   string

	classID string
	ctx     nav.Context
	back    nav.Destination

	class       model.Class
	discussions []model.DiscussionSummary
	selected    int
	loadErr     string
	loaded      bool

	// Inline compose form for a new discussion.
	composing bool
	compose   components.Form
	busy      bool
}

// NewClassView creates a class view with the origin context attached by the
// navigating view.
func NewClassView(deps Deps, classID string, ctx nav.Context) *ClassView {
	return &ClassView{
		deps:    deps,
		classID: classID,
		ctx:     ctx,
		back:    nav.Resolve(ctx),
		spinner: components.NewSpinner("Loading class"),
	}
}

// Init fires the class load.
func (v *ClassView) Init() tea.Cmd {
	v.token = newToken()
	token := v.token
	client := v.deps.Client
	classID := v.classID

	return tea.Batch(v.spinner.Start(), func() tea.Msg {
		ctx := context.Background()

		class, err := client.GetClass(ctx, classID)
		if err != nil {
			return classDataMsg{token: token, err: err}
		}
		discussions, err := client.ListDiscussions(ctx, api.DiscussionFilter{ClassID: classID})
		if err != nil {
			return classDataMsg{token: token, err: err}
		}
		return classDataMsg{token: token, class: class, discussions: discussions}
	})
}

// Update handles class data, compose, and list navigation.
func (v *ClassView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case classDataMsg:
		if msg.token != v.token {
			return v, nil
		}
		v.spinner.Stop()
		v.loaded = true
		if msg.err != nil {
			v.loadErr = errorMessage(msg.err)
			return v, nil
		}
		v.loadErr = ""
		v.class = msg.class
		v.discussions = msg.discussions
		v.selected = 0
		return v, v.recordVisit()

	case discussionCreatedMsg:
		if msg.token != v.token {
			return v, nil
		}
		v.busy = false
		v.spinner.Stop()
		if msg.err != nil {
			v.compose.Err = errorMessage(msg.err)
			return v, nil
		}
		v.composing = false
		return v, v.Init()

	case tea.WindowSizeMsg:
		v.deps.Width = msg.Width
		v.deps.Height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.composing {
			return v.updateCompose(msg)
		}
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
					Ctx:          v.ctx,
				})
			}
		case "g":
			return v, navigate(NavigateMsg{
				To:      nav.RouteGroup,
				ClassID: v.classID,
			})
		case "n":
			v.startCompose()
			return v, nil
		case "b":
			return v, navigate(NavigateMsg{
				To:      v.back.Route,
				GroupID: v.back.GroupID,
				ClassID: v.classID,
				Replace: true,
			})
		case "r":
			return v, v.Init()
		}
	}

	var cmd tea.Cmd
	v.spinner, cmd = v.spinner.Update(msg)
	return v, cmd
}

// WantsEsc reports that esc should close the composer instead of popping
// the view.
func (v *ClassView) WantsEsc() bool {
	return v.composing
}

// startCompose opens the inline new-discussion form.
func (v *ClassView) startCompose() {
	if _, ok := v.deps.Sessions.Current(); !ok {
		v.loadErr = "Log in to start a discussion."
		return
	}
	v.composing = true
	v.compose = components.NewForm(
		components.NewField("Title", "What do you want to ask?"),
		components.NewField("Body", "Details (markdown supported)"),
	)
}

// updateCompose handles keys while the compose form is open.
func (v *ClassView) updateCompose(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.busy {
		return v, nil
	}
	switch msg.String() {
	case "esc":
		v.composing = false
		return v, nil
	case "tab", "down":
		return v, v.compose.Next()
	case "shift+tab", "up":
		return v, v.compose.Prev()
	case "enter":
		return v, v.submitCompose()
	}
	var cmd tea.Cmd
	v.compose, cmd = v.compose.Update(msg)
	return v, cmd
}

// submitCompose validates and posts the new discussion.
func (v *ClassView) submitCompose() tea.Cmd {
	v.compose.ClearErrors()

	current, ok := v.deps.Sessions.Current()
	if !ok {
		v.compose.Err = "Log in to start a discussion."
		return nil
	}

	title := v.compose.Fields[0].Value()
	body := v.compose.Fields[1].Value()
	if title == "" {
		v.compose.Fields[0].Err = "Title is required"
	}
	if body == "" {
		v.compose.Fields[1].Err = "Body is required"
	}
	if v.compose.HasFieldErrors() {
		return nil
	}

	v.busy = true
	token := v.token
	client := v.deps.Client
	req := api.CreateDiscussionRequest{
		Title:   title,
		Body:    body,
		UserID:  current.ID,
		ClassID: v.classID,
	}
	v.spinner.SetMessage("Posting")

	return tea.Batch(v.spinner.Start(), func() tea.Msg {
		_, err := client.CreateDiscussion(context.Background(), req)
		return discussionCreatedMsg{token: token, err: err}
	})
}

// recordVisit notes the class in the local history.
func (v *ClassView) recordVisit() tea.Cmd {
	hist := v.deps.History
	if hist == nil {
		return nil
	}
	visit := history.Visit{
		Kind:     history.KindClass,
		ItemID:   v.class.ID,
		Title:    v.class.Name,
		Subtitle: v.class.University,
	}
	return func() tea.Msg {
		// Best effort; history failures never surface.
		hist.Record(context.Background(), visit)
		return nil
	}
}

// View renders the class.
func (v *ClassView) View() string {
	theme := v.deps.Theme
	width := contentWidth(v.deps)

	var sb strings.Builder
	sb.WriteString(theme.BackLink.Render("← " + v.back.Label))
	sb.WriteString("\n\n")

	if !v.loaded {
		sb.WriteString(v.spinner.View())
		return sb.String()
	}
	if v.loadErr != "" && len(v.discussions) == 0 && v.class.ID == "" {
		sb.WriteString(theme.FormError.Render(v.loadErr))
		sb.WriteString("\n")
		sb.WriteString(theme.Muted.Render("r retry · b back"))
		return sb.String()
	}

	sb.WriteString(theme.Title.Render(v.class.Name))
	sb.WriteString("\n")
	sb.WriteString(theme.CardMeta.Render(v.class.University))
	if len(v.class.Tags) > 0 {
		var pills []string
		for _, tag := range v.class.Tags {
			pills = append(pills, theme.Tag.Render(tag))
		}
		sb.WriteString("  " + strings.Join(pills, " "))
	}
	sb.WriteString("\n\n")

	if v.composing {
		sb.WriteString(theme.Label.Render("New discussion"))
		sb.WriteString("\n")
		sb.WriteString(v.compose.Render(theme))
		sb.WriteString("\n\n")
		if v.busy {
			sb.WriteString(v.spinner.View())
		} else {
			sb.WriteString(theme.Muted.Render("enter post · esc cancel"))
		}
		return sb.String()
	}

	if v.loadErr != "" {
		sb.WriteString(theme.FormError.Render(v.loadErr))
		sb.WriteString("\n\n")
	}

	if len(v.discussions) == 0 {
		sb.WriteString(theme.Muted.Render("No discussions yet. Press n to start one."))
		sb.WriteString("\n")
	} else {
		compact := config.Global().UI.CompactMode
		var cards []components.Card
		for i, d := range v.discussions {
			meta := d.Author
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
	}

	sb.WriteString(theme.Muted.Render("enter open · n new · g group · b " + strings.ToLower(v.back.Label)))
	return sb.String()
}
