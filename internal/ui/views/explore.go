// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/universeapp/universe-tui/internal/api"
	"github.com/universeapp/universe-tui/internal/model"
	"github.com/universeapp/universe-tui/internal/nav"
	"github.com/universeapp/universe-tui/internal/ui/components"
)

// exploreDataMsg carries the class catalog, universities, and popular tags.
type exploreDataMsg struct {
	token   string
	classes []model.Class
	unis    []model.University
	tags    []model.Tag
	err     error
}

// classCreatedMsg carries the outcome of creating a class.
type classCreatedMsg struct {
	token string
	err   error
}

// ExploreView is the public class catalog: searchable, filterable by
// university and tag, and browsable without an account. Creating a class
// requires a login.
type ExploreView struct {
	deps    Deps
	spinner components.Spinner
	search  components.Field
	token   string

	classes  []model.Class
	unis     []model.University
	tags     []model.Tag
	uniIndex int // 0 = all, 1..n = unis[uniIndex-1]
	tagIndex int // 0 = all, 1..n = tags[tagIndex-1]
	selected int
	loadErr  string
	loaded   bool
	typing   bool

	// Inline new-class composer.
	composing bool
	compose   components.Form
	busy      bool
}

// NewExploreView creates the explore view.
func NewExploreView(deps Deps) *ExploreView {
	return &ExploreView{
		deps:    deps,
		spinner: components.NewSpinner("Loading classes"),
		search:  components.NewField("Search", "class name..."),
	}
}

// Init fires the catalog load.
func (v *ExploreView) Init() tea.Cmd {
	return v.load()
}

// load queries classes with the current search, university, and tag filter.
func (v *ExploreView) load() tea.Cmd {
	v.token = newToken()
	token := v.token
	client := v.deps.Client

	filter := api.ClassFilter{Search: v.search.Value()}
	if v.uniIndex > 0 && v.uniIndex <= len(v.unis) {
		filter.UniversityID = v.unis[v.uniIndex-1].ID
	}
	if v.tagIndex > 0 && v.tagIndex <= len(v.tags) {
		filter.TagID = v.tags[v.tagIndex-1].ID
	}
	needFilters := len(v.unis) == 0 && len(v.tags) == 0

	return tea.Batch(v.spinner.Start(), func() tea.Msg {
		ctx := context.Background()

		classes, err := client.ListClasses(ctx, filter)
		if err != nil {
			return exploreDataMsg{token: token, err: err}
		}

		var unis []model.University
		var tags []model.Tag
		if needFilters {
			// Filter rows are best effort; they just stay hidden on failure.
			unis, _ = client.ListUniversities(ctx, "")
			tags, _ = client.PopularTags(ctx)
		}

		return exploreDataMsg{token: token, classes: classes, unis: unis, tags: tags}
	})
}

// WantsEsc reports that esc should close the search box or composer instead
// of popping the view.
func (v *ExploreView) WantsEsc() bool {
	return v.typing || v.composing
}

// Update handles catalog data, search input, and list navigation.
func (v *ExploreView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case exploreDataMsg:
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
		v.classes = msg.classes
		if len(msg.unis) > 0 {
			v.unis = msg.unis
		}
		if len(msg.tags) > 0 {
			v.tags = msg.tags
		}
		v.selected = 0
		return v, nil

	case classCreatedMsg:
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
		return v, v.load()

	case tea.WindowSizeMsg:
		v.deps.Width = msg.Width
		v.deps.Height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.composing {
			return v.updateCompose(msg)
		}
		if v.typing {
			switch msg.String() {
			case "enter", "esc":
				v.typing = false
				v.search.Input.Blur()
				return v, v.load()
			}
			var cmd tea.Cmd
			v.search, cmd = v.search.Update(msg)
			return v, cmd
		}

		switch msg.String() {
		case "/":
			v.typing = true
			return v, v.search.Input.Focus()
		case "j", "down":
			if v.selected < len(v.classes)-1 {
				v.selected++
			}
		case "k", "up":
			if v.selected > 0 {
				v.selected--
			}
		case "u":
			v.uniIndex = (v.uniIndex + 1) % (len(v.unis) + 1)
			return v, v.load()
		case "t":
			v.tagIndex = (v.tagIndex + 1) % (len(v.tags) + 1)
			return v, v.load()
		case "n":
			v.startCompose()
			return v, nil
		case "enter":
			if v.selected < len(v.classes) {
				c := v.classes[v.selected]
				return v, navigate(NavigateMsg{
					To:      nav.RouteClass,
					ClassID: c.ID,
					Ctx:     nav.FromExplore(),
				})
			}
		case "r":
			return v, v.load()
		}
	}

	var cmd tea.Cmd
	v.spinner, cmd = v.spinner.Update(msg)
	return v, cmd
}

// startCompose opens the new-class form. Classes are scoped to the
// creator's university.
func (v *ExploreView) startCompose() {
	s, ok := v.deps.Sessions.Current()
	if !ok {
		v.loadErr = "Log in to add a class."
		return
	}
	if s.UniversityID == "" {
		v.loadErr = "Your session has no university; log in again to add classes."
		return
	}
	v.composing = true
	v.compose = components.NewForm(
		components.NewField("Class name", "e.g. Algorithms 101"),
	)
}

// updateCompose handles keys while the new-class form is open.
func (v *ExploreView) updateCompose(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.busy {
		return v, nil
	}
	switch msg.String() {
	case "esc":
		v.composing = false
		return v, nil
	case "enter":
		return v, v.submitCompose()
	}
	var cmd tea.Cmd
	v.compose, cmd = v.compose.Update(msg)
	return v, cmd
}

// submitCompose validates and creates the class.
func (v *ExploreView) submitCompose() tea.Cmd {
	v.compose.ClearErrors()

	s, ok := v.deps.Sessions.Current()
	if !ok {
		v.compose.Err = "Log in to add a class."
		return nil
	}

	name := v.compose.Fields[0].Value()
	if name == "" {
		v.compose.Fields[0].Err = "Class name is required"
		return nil
	}

	req := api.CreateClassRequest{Name: name, UniversityID: s.UniversityID}
	if v.tagIndex > 0 && v.tagIndex <= len(v.tags) {
		req.TagIDs = []string{v.tags[v.tagIndex-1].ID}
	}

	v.busy = true
	token := v.token
	client := v.deps.Client
	v.spinner.SetMessage("Creating class")

	return tea.Batch(v.spinner.Start(), func() tea.Msg {
		_, err := client.CreateClass(context.Background(), req)
		return classCreatedMsg{token: token, err: err}
	})
}

// View renders the catalog.
func (v *ExploreView) View() string {
	theme := v.deps.Theme
	width := contentWidth(v.deps)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Explore classes"))
	sb.WriteString("\n\n")

	if v.composing {
		sb.WriteString(theme.Label.Render("New class"))
		sb.WriteString("\n")
		sb.WriteString(v.compose.Render(theme))
		sb.WriteString("\n\n")
		if v.busy {
			sb.WriteString(v.spinner.View())
		} else {
			sb.WriteString(theme.Muted.Render("enter create · esc cancel"))
		}
		return sb.String()
	}

	sb.WriteString(v.search.Render(theme))
	sb.WriteString("\n")

	var filters []string
	if len(v.unis) > 0 {
		label := "all"
		if v.uniIndex > 0 {
			label = v.unis[v.uniIndex-1].Name
		}
		filters = append(filters, theme.Label.Render("University:")+" "+theme.Tag.Render(label))
	}
	if len(v.tags) > 0 {
		label := "all"
		if v.tagIndex > 0 {
			label = v.tags[v.tagIndex-1].Name
		}
		filters = append(filters, theme.Label.Render("Tag:")+" "+theme.Tag.Render(label))
	}
	if len(filters) > 0 {
		sb.WriteString(strings.Join(filters, "  "))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if !v.loaded || v.spinner.IsActive() {
		sb.WriteString(v.spinner.View())
		return sb.String()
	}
	if v.loadErr != "" {
		sb.WriteString(theme.FormError.Render(v.loadErr))
		sb.WriteString("\n")
		sb.WriteString(theme.Muted.Render("r retry"))
		return sb.String()
	}
	if len(v.classes) == 0 {
		sb.WriteString(theme.Muted.Render("No classes match. Press n to add one."))
		return sb.String()
	}

	var cards []components.Card
	for i, c := range v.classes {
		meta := c.University
		if c.DiscussionCount > 0 {
			meta += fmt.Sprintf(" · %d discussions", c.DiscussionCount)
		}
		cards = append(cards, components.Card{
			Title:    c.Name,
			Meta:     meta,
			Tags:     c.Tags,
			Selected: i == v.selected,
		})
	}
	sb.WriteString(components.RenderCardList(theme, width, cards))
	sb.WriteString("\n")
	sb.WriteString(theme.Muted.Render("enter open · / search · u university · t tag · n new · esc back"))
	return sb.String()
}
