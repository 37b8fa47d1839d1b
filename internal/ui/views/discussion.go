// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/universeapp/universe-tui/internal/api"
	"github.com/universeapp/universe-tui/internal/history"
	"github.com/universeapp/universe-tui/internal/model"
	"github.com/universeapp/universe-tui/internal/ui/components"
)

// discussionDataMsg carries the discussion and its replies.
type discussionDataMsg struct {
	token      string
	discussion model.Discussion
	replies    []model.Reply
	err        error
}

// replyPostedMsg carries the outcome of posting a reply.
type replyPostedMsg struct {
	token string
	err   error
}

// DiscussionView shows a full discussion: the markdown body, the reply
// thread, and an inline reply composer.
type DiscussionView struct {
	deps    Deps
	spinner components.Spinner
	token   string

	discussionID string

	discussion model.Discussion
	replies    []model.Reply
	viewport   viewport.Model
	ready      bool
	loadErr    string
	loaded     bool

	replying bool
	reply    components.Field
	replyErr string
	busy     bool
}

// NewDiscussionView creates a discussion view.
func NewDiscussionView(deps Deps, discussionID string) *DiscussionView {
	return &DiscussionView{
		deps:         deps,
		discussionID: discussionID,
		spinner:      components.NewSpinner("Loading discussion"),
		reply:        components.NewField("Reply", "Write a reply (markdown supported)"),
	}
}

// Init fires the discussion load.
func (v *DiscussionView) Init() tea.Cmd {
	v.token = newToken()
	token := v.token
	client := v.deps.Client
	id := v.discussionID

	return tea.Batch(v.spinner.Start(), func() tea.Msg {
		ctx := context.Background()

		discussion, err := client.GetDiscussion(ctx, id)
		if err != nil {
			return discussionDataMsg{token: token, err: err}
		}
		replies, err := client.ListReplies(ctx, id)
		if err != nil {
			return discussionDataMsg{token: token, err: err}
		}
		return discussionDataMsg{token: token, discussion: discussion, replies: replies}
	})
}

// Update handles data, scrolling, and the reply composer.
func (v *DiscussionView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case discussionDataMsg:
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
		v.discussion = msg.discussion
		v.replies = msg.replies
		v.refreshViewport()
		return v, v.recordVisit()

	case replyPostedMsg:
		if msg.token != v.token {
			return v, nil
		}
		v.busy = false
		v.spinner.Stop()
		if msg.err != nil {
			v.replyErr = errorMessage(msg.err)
			return v, nil
		}
		v.replying = false
		v.reply.Input.SetValue("")
		return v, v.Init()

	case tea.WindowSizeMsg:
		v.deps.Width = msg.Width
		v.deps.Height = msg.Height
		v.refreshViewport()
		return v, nil

	case tea.KeyMsg:
		if v.replying {
			return v.updateReply(msg)
		}
		switch msg.String() {
		case "a":
			if _, ok := v.deps.Sessions.Current(); !ok {
				v.replyErr = "Log in to reply."
				return v, nil
			}
			v.replying = true
			v.replyErr = ""
			return v, v.reply.Input.Focus()
		case "r":
			return v, v.Init()
		}
	}

	var cmd tea.Cmd
	if v.ready {
		v.viewport, cmd = v.viewport.Update(msg)
		if cmd != nil {
			return v, cmd
		}
	}
	v.spinner, cmd = v.spinner.Update(msg)
	return v, cmd
}

// WantsEsc reports that esc should close the composer instead of popping
// the view.
func (v *DiscussionView) WantsEsc() bool {
	return v.replying
}

// updateReply handles keys while the reply composer is open.
func (v *DiscussionView) updateReply(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.busy {
		return v, nil
	}
	switch msg.String() {
	case "esc":
		v.replying = false
		v.reply.Input.Blur()
		return v, nil
	case "enter":
		return v, v.submitReply()
	}
	var cmd tea.Cmd
	v.reply, cmd = v.reply.Update(msg)
	return v, cmd
}

// submitReply validates and posts the reply.
func (v *DiscussionView) submitReply() tea.Cmd {
	current, ok := v.deps.Sessions.Current()
	if !ok {
		v.replyErr = "Log in to reply."
		return nil
	}
	body := v.reply.Value()
	if body == "" {
		v.replyErr = "Reply cannot be empty"
		return nil
	}

	v.busy = true
	v.replyErr = ""
	token := v.token
	client := v.deps.Client
	req := api.CreateReplyRequest{
		Body:         body,
		UserID:       current.ID,
		DiscussionID: v.discussionID,
	}
	v.spinner.SetMessage("Posting reply")

	return tea.Batch(v.spinner.Start(), func() tea.Msg {
		_, err := client.CreateReply(context.Background(), req)
		return replyPostedMsg{token: token, err: err}
	})
}

// recordVisit notes the discussion in the local history.
func (v *DiscussionView) recordVisit() tea.Cmd {
	hist := v.deps.History
	if hist == nil {
		return nil
	}
	visit := history.Visit{
		Kind:     history.KindDiscussion,
		ItemID:   v.discussion.ID,
		Title:    v.discussion.Title,
		Subtitle: v.discussion.Class,
	}
	return func() tea.Msg {
		hist.Record(context.Background(), visit)
		return nil
	}
}

// refreshViewport rebuilds the scrollable thread content.
func (v *DiscussionView) refreshViewport() {
	width := contentWidth(v.deps)
	height := v.deps.Height - 8
	if height < 5 {
		height = 5
	}

	if !v.ready {
		v.viewport = viewport.New(width, height)
		v.ready = true
	} else {
		v.viewport.Width = width
		v.viewport.Height = height
	}
	v.viewport.SetContent(v.renderThread(width))
}

// renderThread renders the body and replies.
func (v *DiscussionView) renderThread(width int) string {
	theme := v.deps.Theme

	md, err := components.NewMarkdownRenderer(width-2, v.deps.ThemeMode)
	renderBody := func(s string) string {
		if err != nil {
			return s
		}
		return md.Render(s)
	}

	var sb strings.Builder
	sb.WriteString(theme.CardMeta.Render(v.discussion.Author + " · " + v.discussion.Class))
	sb.WriteString("\n")
	sb.WriteString(renderBody(v.discussion.Body))
	sb.WriteString("\n")

	if len(v.replies) == 0 {
		sb.WriteString(theme.Muted.Render("No replies yet."))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, r := range v.replies {
		sb.WriteString(theme.Label.Render(r.Author))
		sb.WriteString("\n")
		sb.WriteString(renderReplyBody(r.Body, width))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderReplyBody renders a reply, giving fenced code blocks their own
// highlighted frame.
func renderReplyBody(body string, width int) string {
	segments := splitFences(body)
	var parts []string
	for _, seg := range segments {
		if seg.code {
			block := components.NewCodeBlock(seg.language, seg.text)
			block.MaxWidth = width
			parts = append(parts, block.Render())
		} else if text := strings.TrimSpace(seg.text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// fenceSegment is one run of a reply body: prose or fenced code.
type fenceSegment struct {
	text     string
	language string
	code     bool
}

// splitFences splits a body on ``` fences.
func splitFences(body string) []fenceSegment {
	var segments []fenceSegment
	lines := strings.Split(body, "\n")

	var buf []string
	var language string
	inFence := false

	flush := func(code bool, lang string) {
		if len(buf) == 0 {
			return
		}
		segments = append(segments, fenceSegment{
			text:     strings.Join(buf, "\n"),
			language: lang,
			code:     code,
		})
		buf = nil
	}

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inFence {
				flush(true, language)
				inFence = false
				language = ""
			} else {
				flush(false, "")
				inFence = true
				language = strings.TrimPrefix(strings.TrimSpace(line), "```")
			}
			continue
		}
		buf = append(buf, line)
	}
	// An unterminated fence renders as code anyway.
	flush(inFence, language)

	return segments
}

// View renders the discussion.
func (v *DiscussionView) View() string {
	theme := v.deps.Theme

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(v.discussion.Title))
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

	sb.WriteString(v.viewport.View())
	sb.WriteString("\n")

	if v.replying {
		sb.WriteString(v.reply.Render(theme))
		sb.WriteString("\n")
		if v.busy {
			sb.WriteString(v.spinner.View())
		} else {
			sb.WriteString(theme.Muted.Render("enter post · esc cancel"))
		}
		return sb.String()
	}

	if v.replyErr != "" {
		sb.WriteString(theme.FormError.Render(v.replyErr))
		sb.WriteString("\n")
	}
	sb.WriteString(theme.Muted.Render("a reply · r refresh · esc back"))
	return sb.String()
}
