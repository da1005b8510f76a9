package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/tokenscope/internal/logging"
	"github.com/rshade/tokenscope/internal/page"
	"github.com/rshade/tokenscope/internal/query"
)

// DefaultConstrainedWidth is the width below which the layout is treated as
// constrained: pagination chrome is hidden and the tab bar gets more room.
const DefaultConstrainedWidth = 100

// chromeHeight is the number of lines above and below the table.
const chromeHeight = 12

// minTableHeight keeps the table usable in small terminals.
const minTableHeight = 3

// FetchedMsg carries a finished request back into Update.
type FetchedMsg struct {
	Response page.Response
}

// TokenPageOptions configures a TokenPageModel.
type TokenPageOptions struct {
	Route            page.Route
	Referrer         string
	Fetch            page.FetchFunc
	Templates        page.MetaTemplates
	ConstrainedWidth int
	Width            int
	Height           int
	Now              func() time.Time
}

// TokenPageModel is the Bubble Tea model for the token page. All page
// decisions are delegated to a page.Controller; the model turns its requests
// into commands and its state into a view.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type TokenPageModel struct {
	ctx     context.Context
	ctrl    *page.Controller
	fetch   page.FetchFunc
	pending []query.Request

	keys    KeyMap
	help    help.Model
	loading *LoadingState
	table   table.Model
	listing listingState
	now     func() time.Time

	width            int
	height           int
	constrainedWidth int

	backLink   string
	followBack bool
	title      string
	quitting   bool
}

// NewTokenPageModel creates the model and routes the controller to the
// initial route. The initial fetches are issued by Init.
func NewTokenPageModel(ctx context.Context, opts TokenPageOptions) TokenPageModel {
	if opts.ConstrainedWidth <= 0 {
		opts.ConstrainedWidth = DefaultConstrainedWidth
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Templates == (page.MetaTemplates{}) {
		opts.Templates = page.DefaultMetaTemplates
	}

	m := TokenPageModel{
		ctx:              ctx,
		ctrl:             page.NewController(opts.Templates),
		fetch:            opts.Fetch,
		keys:             DefaultKeyMap(),
		help:             help.New(),
		loading:          NewLoadingState(),
		now:              opts.Now,
		width:            opts.Width,
		height:           opts.Height,
		constrainedWidth: opts.ConstrainedWidth,
	}
	if link, ok := page.BackLink(opts.Referrer); ok {
		m.backLink = link
		m.keys.Back.SetEnabled(true)
	}
	m.pending = m.ctrl.SetRoute(opts.Route)
	m.title = m.ctrl.Meta().Title
	m.rebuildTable()
	return m
}

// Init issues the initial fetches and starts the spinner (Bubble Tea interface).
func (m TokenPageModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetchCmd(m.pending), tea.SetWindowTitle(m.title))
}

// Update handles messages (Bubble Tea interface).
func (m TokenPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuildTable()
		return m, nil

	case FetchedMsg:
		return m.handleFetched(msg)

	case spinner.TickMsg:
		return m, m.loading.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m TokenPageModel) handleFetched(msg FetchedMsg) (tea.Model, tea.Cmd) {
	log := logging.FromContext(m.ctx)
	resp := msg.Response
	if resp.Err != nil {
		log.Warn().
			Ctx(m.ctx).
			Err(resp.Err).
			Str("resource", string(resp.Request.Resource)).
			Msg("fetch failed")
	}

	reqs := m.ctrl.Apply(resp)
	m.rebuildTable()

	cmds := []tea.Cmd{m.fetchCmd(reqs)}
	if title := m.ctrl.Meta().Title; title != m.title {
		m.title = title
		cmds = append(cmds, tea.SetWindowTitle(title))
	}
	return m, tea.Batch(cmds...)
}

func (m TokenPageModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.followBack = true
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		return m.moveTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		return m.moveTab(-1)
	case key.Matches(msg, m.keys.JumpTab):
		return m.jumpTab(int(msg.Runes[0] - '1'))
	case key.Matches(msg, m.keys.NextPage):
		return m.afterNavigation(m.ctrl.NextPage())
	case key.Matches(msg, m.keys.PrevPage):
		return m.afterNavigation(m.ctrl.PrevPage())
	case key.Matches(msg, m.keys.Refetch):
		return m.afterNavigation(m.ctrl.Refetch())
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// moveTab selects the tab delta steps from the displayed one, wrapping.
func (m TokenPageModel) moveTab(delta int) (tea.Model, tea.Cmd) {
	tabs := m.ctrl.Tabs()
	if len(tabs) == 0 {
		return m, nil
	}
	current := 0
	displayed := m.ctrl.DisplayedTab()
	for i, tab := range tabs {
		if tab.ID == displayed {
			current = i
			break
		}
	}
	next := (current + delta + len(tabs)) % len(tabs)
	return m.jumpTab(next)
}

func (m TokenPageModel) jumpTab(index int) (tea.Model, tea.Cmd) {
	tabs := m.ctrl.Tabs()
	if index < 0 || index >= len(tabs) {
		return m, nil
	}
	return m.afterNavigation(m.ctrl.SelectTab(tabs[index].ID))
}

func (m TokenPageModel) afterNavigation(reqs []query.Request) (tea.Model, tea.Cmd) {
	m.rebuildTable()
	return m, m.fetchCmd(reqs)
}

// fetchCmd turns requests into concurrent commands.
func (m TokenPageModel) fetchCmd(reqs []query.Request) tea.Cmd {
	if len(reqs) == 0 || m.fetch == nil {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, req := range reqs {
		cmds = append(cmds, func() tea.Msg {
			return FetchedMsg{Response: m.fetch(m.ctx, req)}
		})
	}
	return tea.Batch(cmds...)
}

// Constrained reports whether the viewport is narrower than the constrained
// width.
func (m TokenPageModel) Constrained() bool {
	return m.width < m.constrainedWidth
}

// Controller exposes the page controller.
func (m TokenPageModel) Controller() *page.Controller {
	return m.ctrl
}

// FollowBack reports whether the user quit through the back link, and where
// it points.
func (m TokenPageModel) FollowBack() (string, bool) {
	return m.backLink, m.followBack
}

// rebuildTable recreates the table for the displayed tab.
func (m *TokenPageModel) rebuildTable() {
	l := listingTable(m.ctrl, m.now())
	m.listing = l.state

	height := m.height - chromeHeight
	if height < minTableHeight {
		height = minTableHeight
	}

	t := table.New(
		table.WithColumns(l.columns),
		table.WithRows(l.rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	m.table = t
}
