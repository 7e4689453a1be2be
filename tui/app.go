package tui

import (
	"clementus360/taskai/api"
	"clementus360/taskai/session"
	"clementus360/taskai/types"
	"clementus360/taskai/viewmodel"
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screenID int

const (
	screenLogin screenID = iota
	screenTasks
	screenChat
)

func (s screenID) String() string {
	switch s {
	case screenTasks:
		return "Tasks"
	case screenChat:
		return "AI Chat"
	default:
		return "Login"
	}
}

// Deps are the core components the UI drives.
type Deps struct {
	Monitor     *session.Monitor
	Auth        *viewmodel.AuthForm
	Tasks       *viewmodel.TaskCollection
	Chat        *viewmodel.ChatView
	Suggestions []string
}

type navigateMsg struct {
	to      screenID
	expired bool
}

type authDoneMsg struct {
	register bool
	signedIn bool
	err      error
}

type tasksDoneMsg struct {
	err error
}

type chatDoneMsg struct {
	err error
}

type model struct {
	ctx  context.Context
	deps Deps

	screen     screenID
	statusLine string
	width      int
	height     int

	// login
	registerMode bool
	email        textinput.Model
	password     textinput.Model
	loginFocus   int

	// tasks
	filter        viewmodel.Filter
	cursor        int
	creating      bool
	createFocus   int
	title         textinput.Model
	description   textinput.Model
	confirmDelete int64

	// chat
	input    textinput.Model
	timeline viewport.Model

	spinner spinner.Model
	theme   uiTheme
}

func New(ctx context.Context, deps Deps) tea.Model {
	return newModel(ctx, deps)
}

func newModel(ctx context.Context, deps Deps) model {
	if ctx == nil {
		ctx = context.Background()
	}

	email := textinput.New()
	email.Prompt = "Email    "
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Prompt = "Password "
	password.Placeholder = "••••••••"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	title := textinput.New()
	title.Prompt = "Title       "
	title.Placeholder = "What do you need to do?"
	title.CharLimit = 200

	description := textinput.New()
	description.Prompt = "Description "
	description.Placeholder = "Add more details (optional)"
	description.CharLimit = 2000

	input := textinput.New()
	input.Prompt = "❯ "
	input.Placeholder = "Ask me to manage your tasks..."
	input.CharLimit = 4000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d399"))

	timeline := viewport.New(0, 0)
	timeline.MouseWheelEnabled = true

	return model{
		ctx:           ctx,
		deps:          deps,
		screen:        screenLogin,
		email:         email,
		password:      password,
		filter:        viewmodel.FilterAll,
		title:         title,
		description:   description,
		confirmDelete: -1,
		input:         input,
		timeline:      timeline,
		spinner:       sp,
		theme:         newTheme(),
	}
}

func (m model) Init() tea.Cmd {
	// start on the tasks screen when a credential survived from last time
	if m.deps.Monitor.Authenticated() {
		return tea.Batch(m.spinner.Tick, func() tea.Msg { return navigateMsg{to: screenTasks} })
	}
	return tea.Batch(m.spinner.Tick, textinput.Blink)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.screen == screenChat {
			m.renderTimeline()
		}
	case navigateMsg:
		if msg.to == screenLogin && m.screen == screenLogin {
			break
		}
		cmds = append(cmds, m.navigate(msg.to))
		if msg.expired {
			m.statusLine = "session expired, please sign in again"
		}
	case authDoneMsg:
		m.password.SetValue("")
		if msg.err != nil {
			m.statusLine = "sign-in failed"
			break
		}
		if msg.register && !msg.signedIn {
			m.registerMode = false
			m.statusLine = "account created"
			break
		}
		m.email.SetValue("")
		cmds = append(cmds, m.navigate(screenTasks))
	case tasksDoneMsg:
		m.clampCursor()
		if msg.err != nil && api.Classify(msg.err) == api.OutcomeFailure {
			m.statusLine = "task action failed"
		}
	case chatDoneMsg:
		if m.screen == screenLogin {
			m.deps.Chat.Reset()
		}
		m.renderTimeline()
		if msg.err != nil && api.Classify(msg.err) == api.OutcomeFailure {
			m.statusLine = "message not sent"
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		switch m.screen {
		case screenLogin:
			cmd = m.updateLogin(msg)
		case screenTasks:
			cmd = m.updateTasks(msg)
		case screenChat:
			cmd = m.updateChat(msg)
		}
		cmds = append(cmds, cmd)
	default:
		if m.screen == screenChat {
			var cmd tea.Cmd
			m.timeline, cmd = m.timeline.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// navigate switches screens. Authenticated screens run the session guard
// first and fall back to login when there is no credential.
func (m *model) navigate(to screenID) tea.Cmd {
	if to != screenLogin && !m.deps.Monitor.Guard() {
		to = screenLogin
	}

	m.email.Blur()
	m.password.Blur()
	m.title.Blur()
	m.description.Blur()
	m.input.Blur()
	m.creating = false
	m.confirmDelete = -1
	m.screen = to

	switch to {
	case screenTasks:
		m.statusLine = ""
		return m.refreshCmd()
	case screenChat:
		m.statusLine = ""
		m.renderTimeline()
		return m.input.Focus()
	default:
		m.deps.Tasks.Reset()
		m.deps.Chat.Reset()
		m.loginFocus = 0
		return m.email.Focus()
	}
}

func (m *model) updateLogin(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = (m.loginFocus + 1) % 2
		if m.loginFocus == 0 {
			m.password.Blur()
			return m.email.Focus()
		}
		m.email.Blur()
		return m.password.Focus()
	case "ctrl+r":
		m.registerMode = !m.registerMode
		return nil
	case "esc":
		return tea.Quit
	case "enter":
		if m.deps.Auth.Submitting() {
			return nil
		}
		if m.loginFocus == 0 && m.password.Value() == "" {
			m.loginFocus = 1
			m.email.Blur()
			return m.password.Focus()
		}
		return m.submitAuthCmd()
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return cmd
}

func (m *model) submitAuthCmd() tea.Cmd {
	ctx, auth := m.ctx, m.deps.Auth
	email, password, register := m.email.Value(), m.password.Value(), m.registerMode
	return func() tea.Msg {
		if register {
			signedIn, err := auth.Register(ctx, email, password)
			return authDoneMsg{register: true, signedIn: signedIn, err: err}
		}
		err := auth.Login(ctx, email, password)
		return authDoneMsg{signedIn: err == nil, err: err}
	}
}

func (m *model) updateTasks(msg tea.KeyMsg) tea.Cmd {
	if m.creating {
		return m.updateCreate(msg)
	}

	tasks := m.deps.Tasks
	visible := tasks.Filter(m.filter)
	key := msg.String()

	if m.confirmDelete >= 0 {
		id := m.confirmDelete
		m.confirmDelete = -1
		if key == "y" || key == "Y" {
			return m.taskCmd(func(ctx context.Context) error { return tasks.Remove(ctx, id) })
		}
		m.statusLine = "delete cancelled"
		return nil
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case "f", "tab":
		m.filter = m.filter.Next()
		m.cursor = 0
	case "r":
		return m.refreshCmd()
	case "n":
		m.creating = true
		m.createFocus = 0
		tasks.ClearNotice()
		return m.title.Focus()
	case " ", "x", "enter":
		if task, ok := m.selected(visible); ok && !tasks.Busy(task.ID) {
			id := task.ID
			return m.taskCmd(func(ctx context.Context) error { return tasks.Toggle(ctx, id) })
		}
	case "d", "delete":
		if task, ok := m.selected(visible); ok && !tasks.Busy(task.ID) {
			m.confirmDelete = task.ID
			m.statusLine = "delete \"" + task.Title + "\"? (y/n)"
		}
	case "c":
		return m.navigate(screenChat)
	case "ctrl+x":
		m.deps.Monitor.Logout()
		return m.navigate(screenLogin)
	case "q", "esc":
		return tea.Quit
	}
	return nil
}

func (m *model) updateCreate(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.creating = false
		m.title.Blur()
		m.description.Blur()
		return nil
	case "tab", "shift+tab":
		m.createFocus = (m.createFocus + 1) % 2
		if m.createFocus == 0 {
			m.description.Blur()
			return m.title.Focus()
		}
		m.title.Blur()
		return m.description.Focus()
	case "enter":
		tasks := m.deps.Tasks
		title, description := m.title.Value(), m.description.Value()
		if strings.TrimSpace(title) != "" {
			m.creating = false
			m.title.SetValue("")
			m.description.SetValue("")
			m.title.Blur()
			m.description.Blur()
		}
		return m.taskCmd(func(ctx context.Context) error {
			return tasks.Create(ctx, title, description)
		})
	}

	var cmd tea.Cmd
	if m.createFocus == 0 {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.description, cmd = m.description.Update(msg)
	}
	return cmd
}

func (m *model) updateChat(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return m.navigate(screenTasks)
	case "ctrl+x":
		m.deps.Monitor.Logout()
		return m.navigate(screenLogin)
	case "ctrl+n":
		if m.deps.Chat.Reset() {
			m.renderTimeline()
		}
		return nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.timeline, cmd = m.timeline.Update(msg)
		return cmd
	case "enter":
		pending, err := m.deps.Chat.Begin(m.input.Value())
		if err != nil {
			if errors.Is(err, viewmodel.ErrSendInFlight) {
				m.statusLine = "still waiting for the last reply"
			}
			return nil
		}
		m.input.SetValue("")
		m.renderTimeline()
		ctx := m.ctx
		return func() tea.Msg {
			_, err := pending.Complete(ctx)
			return chatDoneMsg{err: err}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *model) refreshCmd() tea.Cmd {
	return m.taskCmd(m.deps.Tasks.Refresh)
}

func (m *model) taskCmd(run func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return tasksDoneMsg{err: run(ctx)}
	}
}

func (m *model) selected(visible []types.Task) (types.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(visible) {
		return types.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *model) clampCursor() {
	n := len(m.deps.Tasks.Filter(m.filter))
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) resize() {
	w := maxInt(20, m.width-4)
	m.input.Width = w - 4
	m.email.Width = w - 12
	m.password.Width = w - 12
	m.title.Width = w - 16
	m.description.Width = w - 16
	m.timeline.Width = w
	m.timeline.Height = maxInt(3, m.height-12)
	m.renderTimeline()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
