package tui

import (
	"clementus360/taskai/types"
	"clementus360/taskai/viewmodel"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m model) View() string {
	var body string
	switch m.screen {
	case screenTasks:
		body = m.renderTasks()
	case screenChat:
		body = m.renderChat()
	default:
		body = m.renderLogin()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m model) renderHeader() string {
	var tabs []string
	who := ""
	if m.screen != screenLogin {
		for _, s := range []screenID{screenTasks, screenChat} {
			if s == m.screen {
				tabs = append(tabs, m.theme.tabActive.Render(s.String()))
			} else {
				tabs = append(tabs, m.theme.tabInactive.Render(s.String()))
			}
		}
		if label := m.deps.Monitor.Identity().Label(); label != "" {
			who = m.theme.muted.Render("signed in as " + label)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Center,
		m.theme.panelTitle.Render("✓ TaskAI"), "  ", strings.Join(tabs, " "), "  ", who)
	return m.theme.header.Render(line)
}

func (m model) renderLogin() string {
	var b strings.Builder
	heading := "Sign in"
	if m.registerMode {
		heading = "Create an account"
	}
	b.WriteString(m.theme.panelTitle.Render(heading) + "\n\n")
	b.WriteString(m.email.View() + "\n")
	b.WriteString(m.password.View() + "\n\n")

	if m.deps.Auth.Submitting() {
		b.WriteString(m.spinner.View() + " working...\n")
	}
	if msg := m.deps.Auth.Err(); msg != "" {
		b.WriteString(m.theme.errorStatus.Render(msg) + "\n")
	}
	if msg := m.deps.Auth.Notice(); msg != "" {
		b.WriteString(m.theme.notice.Render(msg) + "\n")
	}
	return m.theme.panel.Render(b.String())
}

func (m model) renderTasks() string {
	tasks := m.deps.Tasks
	stats := tasks.Stats()

	var b strings.Builder
	b.WriteString(m.theme.panelTitle.Render("Your tasks"))
	b.WriteString(m.theme.muted.Render(fmt.Sprintf("  %d/%d done · %d%%", stats.Completed, stats.Total, stats.Percent)))
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar(stats) + "\n\n")

	if m.creating {
		b.WriteString(m.title.View() + "\n")
		b.WriteString(m.description.View() + "\n\n")
	}

	if tasks.Loading() {
		b.WriteString(m.spinner.View() + " loading tasks...\n")
	}
	if msg := tasks.Err(); msg != "" {
		b.WriteString(m.theme.errorStatus.Render(msg) + "\n")
	}
	if msg := tasks.Notice(); msg != "" {
		b.WriteString(m.theme.notice.Render(msg) + "\n")
	}

	visible := tasks.Filter(m.filter)
	switch {
	case stats.Total == 0 && !tasks.Loading():
		b.WriteString(m.theme.muted.Render("No tasks yet. Press n to create one.") + "\n")
	case len(visible) == 0 && stats.Total > 0:
		b.WriteString(m.theme.muted.Render("No "+string(m.filter)+" tasks.") + "\n")
	}
	for i, t := range visible {
		b.WriteString(m.renderTaskLine(t, i == m.cursor) + "\n")
	}
	return m.theme.panel.Render(b.String())
}

func (m model) renderFilterBar(stats types.TaskStats) string {
	counts := map[viewmodel.Filter]int{
		viewmodel.FilterAll:       stats.Total,
		viewmodel.FilterActive:    stats.Active,
		viewmodel.FilterCompleted: stats.Completed,
	}
	parts := make([]string, 0, len(viewmodel.Filters))
	for _, f := range viewmodel.Filters {
		label := fmt.Sprintf("%s (%d)", capitalize(string(f)), counts[f])
		if f == m.filter {
			parts = append(parts, m.theme.tabActive.Render(label))
		} else {
			parts = append(parts, m.theme.tabInactive.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m model) renderTaskLine(t types.Task, selected bool) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	title := t.Title
	if t.Completed {
		title = m.theme.done.Render(title)
	}
	line := fmt.Sprintf("%s %s", box, title)
	if t.Description != "" {
		line += m.theme.muted.Render(" · " + truncate(t.Description, 60))
	}
	if !t.CreatedAt.IsZero() {
		line += m.theme.muted.Render(" · " + t.CreatedAt.Local().Format("Jan 2, 2006"))
	}
	if m.deps.Tasks.Busy(t.ID) {
		line += " " + m.spinner.View()
	}
	if selected {
		return m.theme.selected.Render("› " + line)
	}
	return "  " + line
}

func (m model) renderChat() string {
	var b strings.Builder
	b.WriteString(m.theme.panelTitle.Render("AI assistant") + "\n")
	b.WriteString(m.timeline.View() + "\n")
	if msg := m.deps.Chat.Err(); msg != "" {
		b.WriteString(m.theme.errorStatus.Render(msg) + "\n")
	}
	b.WriteString(m.input.View())
	return m.theme.panel.Render(b.String())
}

// renderTimeline refreshes the chat viewport content from the view model.
func (m *model) renderTimeline() {
	msgs := m.deps.Chat.Messages()
	var b strings.Builder
	if len(msgs) == 0 {
		b.WriteString(m.theme.muted.Render("Ask me to manage your tasks with natural language:") + "\n")
		for _, s := range m.deps.Suggestions {
			b.WriteString(m.theme.muted.Render("  • "+s) + "\n")
		}
	}
	for _, msg := range msgs {
		style, ok := m.theme.chatRole[string(msg.Role)]
		if !ok {
			style = m.theme.muted
		}
		name := "you"
		if msg.Role == types.RoleAssistant {
			name = "assistant"
		}
		b.WriteString(style.Render(name) + m.theme.muted.Render(" "+msg.Timestamp.Format("15:04")) + "\n")
		b.WriteString(wrapText(msg.Content, maxInt(20, m.timeline.Width-2)) + "\n\n")
	}
	if m.deps.Chat.Sending() {
		b.WriteString(m.spinner.View() + " thinking...\n")
	}
	m.timeline.SetContent(b.String())
	m.timeline.GotoBottom()
}

func (m model) renderFooter() string {
	var help string
	switch {
	case m.screen == screenLogin && m.registerMode:
		help = "enter sign up · tab switch field · ctrl+r sign in instead · esc quit"
	case m.screen == screenLogin:
		help = "enter sign in · tab switch field · ctrl+r create account · esc quit"
	case m.screen == screenTasks && m.creating:
		help = "enter create · tab switch field · esc cancel"
	case m.screen == screenTasks:
		help = "↑/↓ move · space toggle · n new · d delete · f filter · r refresh · c chat · ctrl+x logout · q quit"
	default:
		help = "enter send · ctrl+n clear · pgup/pgdown scroll · esc tasks · ctrl+x logout"
	}
	out := m.theme.footer.Render(help)
	if m.statusLine != "" {
		out = m.theme.status.Render(m.statusLine) + "\n" + out
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}

func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		line := ""
		for _, w := range words {
			if line != "" && len([]rune(line))+1+len([]rune(w)) > width {
				out = append(out, line)
				line = w
				continue
			}
			if line == "" {
				line = w
			} else {
				line += " " + w
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
