package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/fluentctl/internal/models"
	"github.com/desertthunder/fluentctl/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	TagListView ViewState = iota
	ListListView
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	prev     ViewState
	crm      services.Service
	width    int
	height   int
	tagList  list.Model
	listList list.Model
	selected *models.Taxonomy
	loaded   bool
	err      error
	help     help.Model
	keys     keyMap
}

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	enter  key.Binding
	back   key.Binding
	toggle key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "tags/lists"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.enter, k.toggle, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.toggle, k.quit},
	}
}

type taxonomiesFetchedMsg struct {
	tags  []models.Taxonomy
	lists []models.Taxonomy
	err   error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, crm services.Service) *Model {
	return &Model{
		ctx:  ctx,
		view: TagListView,
		crm:  crm,
		help: help.New(),
		keys: newKeyMap(),
	}
}

// Init initializes the TUI by fetching tags and lists from the CRM.
func (m *Model) Init() tea.Cmd {
	return m.fetchTaxonomies()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.loaded {
			m.tagList.SetSize(msg.Width-4, msg.Height-8)
			m.listList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case TagListView, ListListView:
			return m.handleBrowseKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case taxonomiesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.tagList = list.New(taxonomyItems(msg.tags), list.NewDefaultDelegate(), 0, 0)
		m.tagList.Title = fmt.Sprintf("Tags (%d)", len(msg.tags))
		m.listList = list.New(taxonomyItems(msg.lists), list.NewDefaultDelegate(), 0, 0)
		m.listList.Title = fmt.Sprintf("Lists (%d)", len(msg.lists))
		m.tagList.SetSize(m.width-4, m.height-8)
		m.listList.SetSize(m.width-4, m.height-8)
		m.loaded = true
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	if !m.loaded {
		return styles.help.Render("Loading tags and lists...")
	}

	switch m.view {
	case TagListView:
		return m.renderBrowse(m.tagList)
	case ListListView:
		return m.renderBrowse(m.listList)
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.view == TagListView {
			m.view = ListListView
		} else {
			m.view = TagListView
		}
		return m, nil
	case "enter":
		selected := m.activeList().SelectedItem()
		if selected != nil {
			if item, ok := selected.(taxonomyItem); ok {
				tax := item.taxonomy
				m.selected = &tax
				m.prev = m.view
				m.view = DetailView
			}
		}
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = m.prev
		m.selected = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) activeList() *list.Model {
	if m.view == ListListView {
		return &m.listList
	}
	return &m.tagList
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.view {
	case TagListView:
		m.tagList, cmd = m.tagList.Update(msg)
	case ListListView:
		m.listList, cmd = m.listList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchTaxonomies() tea.Cmd {
	return func() tea.Msg {
		tags, err := m.crm.Tags(m.ctx)
		if err != nil {
			return taxonomiesFetchedMsg{err: err}
		}
		lists, err := m.crm.Lists(m.ctx)
		if err != nil {
			return taxonomiesFetchedMsg{err: err}
		}
		return taxonomiesFetchedMsg{tags: tags, lists: lists}
	}
}

func (m *Model) renderBrowse(l list.Model) string {
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return fmt.Sprintf("%s\n\n%s", l.View(), helpView)
}

func (m *Model) renderDetail() string {
	kind := "Tag"
	if m.prev == ListListView {
		kind = "List"
	}

	title := styles.title.Render(fmt.Sprintf("%s: %s", kind, m.selected.Title))
	info := fmt.Sprintf(
		"\nID: %d\nSlug: %s\nCreated: %s\nUpdated: %s\n",
		m.selected.ID,
		m.selected.Slug,
		m.selected.CreatedAt,
		m.selected.UpdatedAt,
	)

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n%s", title, info, helpView)
}
