package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/labtable/internal/cli/formatter"
	"github.com/alexanderramin/labtable/internal/contract"
	"github.com/alexanderramin/labtable/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// gridLoadedMsg carries the result of one BuildWeekGrid call. seq ties it
// to the request that produced it.
type gridLoadedMsg struct {
	seq  int
	resp *contract.GridResponse
	err  error
}

type browserKeyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Today key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k browserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.Help, k.Quit}
}

func (k browserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today},
		{
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
			key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "page")),
		},
		{k.Help, k.Quit},
	}
}

func defaultBrowserKeys() browserKeyMap {
	return browserKeyMap{
		Prev:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous week")),
		Next:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next week")),
		Today: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "this week")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// gridBrowser pages through the weeks of a semester. Every week change
// issues a fresh BuildWeekGrid; only the response to the latest request is
// shown, earlier ones that arrive late are dropped.
type gridBrowser struct {
	ctx  context.Context
	grid service.GridService
	base contract.GridRequest

	seq     int
	week    int // requested week number, 0 until the first response
	loading bool
	resp    *contract.GridResponse
	err     error

	keys     browserKeyMap
	help     help.Model
	viewport viewport.Model
}

func newGridBrowser(ctx context.Context, grid service.GridService, req contract.GridRequest) *gridBrowser {
	return &gridBrowser{
		ctx:      ctx,
		grid:     grid,
		base:     req,
		week:     req.WeekNumber,
		keys:     defaultBrowserKeys(),
		help:     help.New(),
		viewport: viewport.New(120, 30),
	}
}

func (m *gridBrowser) Init() tea.Cmd {
	return m.load(m.base)
}

// load starts a request and makes it the only one whose answer is kept.
func (m *gridBrowser) load(req contract.GridRequest) tea.Cmd {
	m.seq++
	seq := m.seq
	m.loading = true
	grid, ctx := m.grid, m.ctx
	return func() tea.Msg {
		resp, err := grid.BuildWeekGrid(ctx, req)
		return gridLoadedMsg{seq: seq, resp: resp, err: err}
	}
}

func (m *gridBrowser) loadWeek(n int) tea.Cmd {
	m.week = n
	req := m.base
	req.WeekNumber = n
	req.WeekStart = nil
	return m.load(req)
}

func (m *gridBrowser) weekCount() int {
	if m.resp == nil {
		return 0
	}
	return len(m.resp.Weeks)
}

func (m *gridBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 1)
		return m, nil

	case gridLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.resp = msg.resp
		m.week = msg.resp.WeekNumber
		m.viewport.SetContent(m.renderBody())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			if m.week > 1 {
				return m, m.loadWeek(m.week - 1)
			}
			return m, nil
		case key.Matches(msg, m.keys.Next):
			if m.week < m.weekCount() {
				return m, m.loadWeek(m.week + 1)
			}
			return m, nil
		case key.Matches(msg, m.keys.Today):
			req := m.base
			req.WeekNumber = 0
			req.WeekStart = nil
			return m, m.load(req)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *gridBrowser) renderBody() string {
	body := formatter.RenderGrid(m.resp)
	if diag := formatter.RenderDiagnostics(m.resp.Grid.Diagnostics); diag != "" {
		body += "\n" + diag
	}
	return body
}

func (m *gridBrowser) View() string {
	var b strings.Builder
	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
	case m.loading:
		b.WriteString(formatter.Dim("Loading…"))
	}
	b.WriteString("\n")
	if m.resp != nil {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
