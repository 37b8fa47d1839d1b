// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/universeapp/universe-tui/internal/model"
	"github.com/universeapp/universe-tui/internal/nav"
	"github.com/universeapp/universe-tui/internal/ui/components"
)

// groupDataMsg carries the resolved class group.
type groupDataMsg struct {
	token string
	group model.ClassGroup
	err   error
}

// GroupView shows a class group: the same course offered across
// universities. Entering a class from here attaches a group origin so the
// class view's back affordance returns here.
type GroupView struct {
	deps    Deps
	spinner components.Spinner
	token   string

	// classID seeds the group lookup; the backend resolves which group the
	// class belongs to.
	classID string

	group    model.ClassGroup
	label    string
	selected int
	loadErr  string
	loaded   bool
}

// NewGroupView creates a group view seeded by a member class.
func NewGroupView(deps Deps, classID string) *GroupView {
	return &GroupView{
		deps:    deps,
		classID: classID,
		spinner: components.NewSpinner("Loading group"),
	}
}

// Init fires the group load.
func (v *GroupView) Init() tea.Cmd {
	v.token = newToken()
	token := v.token
	client := v.deps.Client
	classID := v.classID

	return tea.Batch(v.spinner.Start(), func() tea.Msg {
		group, err := client.GroupByClass(context.Background(), classID)
		return groupDataMsg{token: token, group: group, err: err}
	})
}

// Update handles group data and list navigation.
func (v *GroupView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case groupDataMsg:
		if msg.token != v.token {
			return v, nil
		}
		v.spinner.Stop()
		v.loaded = true
		if msg.err != nil {
			v.loadErr = errorMessage(msg.err)
			return v, nil
		}
		v.group = msg.group
		v.label = groupLabel(msg.group)
		v.selected = 0
		return v, nil

	case tea.WindowSizeMsg:
		v.deps.Width = msg.Width
		v.deps.Height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if v.selected < len(v.group.Classes)-1 {
				v.selected++
			}
		case "k", "up":
			if v.selected > 0 {
				v.selected--
			}
		case "enter":
			if v.selected < len(v.group.Classes) {
				c := v.group.Classes[v.selected]
				return v, navigate(NavigateMsg{
					To:      nav.RouteClass,
					ClassID: c.ClassID,
					Ctx:     nav.FromGroup(v.group.GroupID, v.label),
				})
			}
		case "r":
			return v, v.Init()
		}
	}

	var cmd tea.Cmd
	v.spinner, cmd = v.spinner.Update(msg)
	return v, cmd
}

// View renders the group.
func (v *GroupView) View() string {
	theme := v.deps.Theme
	width := contentWidth(v.deps)

	var sb strings.Builder
	title := "Class group"
	if v.label != "" {
		title = v.label
	}
	sb.WriteString(theme.Title.Render(title))
	sb.WriteString("\n\n")

	if !v.loaded {
		sb.WriteString(v.spinner.View())
		return sb.String()
	}
	if v.loadErr != "" {
		sb.WriteString(theme.FormError.Render(v.loadErr))
		sb.WriteString("\n")
		sb.WriteString(theme.Muted.Render("r retry · esc back"))
		return sb.String()
	}

	var cards []components.Card
	for i, c := range v.group.Classes {
		cards = append(cards, components.Card{
			Title:    c.Name,
			Meta:     c.University,
			Tags:     c.Tags,
			Selected: i == v.selected,
		})
	}
	sb.WriteString(components.RenderCardList(theme, width, cards))
	sb.WriteString("\n")
	sb.WriteString(theme.Muted.Render("enter open class · esc back"))
	return sb.String()
}

// groupLabel derives a display label for the group from its first class.
func groupLabel(g model.ClassGroup) string {
	if len(g.Classes) > 0 {
		return g.Classes[0].Name
	}
	return "Class group"
}
