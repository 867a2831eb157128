// Package ui provides the Bubble Tea interface for Penderie.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joiefull/penderie/internal/detail"
	"github.com/joiefull/penderie/internal/favorites"
	"github.com/joiefull/penderie/internal/joiefull"
	"github.com/joiefull/penderie/internal/prefs"
	"github.com/joiefull/penderie/internal/state"
	"github.com/joiefull/penderie/internal/store"
)

// View represents the current active view.
type View int

const (
	ViewCatalog View = iota
	ViewDetail
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    joiefull.API
	Engine    *state.Engine
	Store     *store.Store
	Favorites *favorites.Index
	ThemeName string
	PrefsPath string
	OpenLink  string // optional deep link to preselect once ready
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    joiefull.API
	engine    *state.Engine
	store     *store.Store
	favs      *favorites.Index
	prefsPath string
	openLink  string

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Catalog state
	snap        state.Snapshot
	loading     bool
	selectedRow int

	// Detail state
	ctrl         *detail.Controller
	reviewInput  textinput.Model
	inputFocused bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Joiefull"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Placeholder = "Partagez ici vos impressions sur cette pièce"
	input.CharLimit = 0

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		engine:      opts.Engine,
		store:       opts.Store,
		favs:        opts.Favorites,
		prefsPath:   prefsPath,
		openLink:    opts.OpenLink,
		theme:       GetTheme(themeName),
		currentView: ViewCatalog,
		loading:     true,
		reviewInput: input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		loadCmd(m.ctx, m.engine),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reviewInput.Width = max(20, m.width-8)
		m.ready = true
		return m, nil

	case loadedMsg:
		return m.handleLoaded(state.Snapshot(msg))

	case submitDoneMsg:
		return m, nil
	}

	return m, nil
}

// handleLoaded applies a finished catalog load to the model.
func (m Model) handleLoaded(snap state.Snapshot) (tea.Model, tea.Cmd) {
	m.snap = snap
	m.loading = false
	m.clampSelection()

	// A refresh may have removed the item the detail view shows; drop the
	// stale selection silently.
	if m.ctrl != nil {
		if _, ok := m.snap.Item(m.ctrl.Item().ID); !ok {
			m.closeDetail()
		}
	}

	// Deep link handed over on the command line: select once, then forget.
	if m.openLink != "" && m.snap.Phase == state.PhaseReady {
		if item, ok := m.engine.ResolveLink(m.openLink); ok {
			m.selectItem(item.ID)
			m.openDetail(item)
		}
		m.openLink = ""
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// While the review input has focus, almost every key is text.
	if m.inputFocused {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "T":
		// Cycle theme
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case "r":
		m.loading = true
		return m, loadCmd(m.ctx, m.engine)
	}

	switch m.currentView {
	case ViewCatalog:
		return m.handleCatalogKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

// handleCatalogKey processes keyboard input for the catalog list.
func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.flatItems()
	if len(items) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.selectedRow < len(items)-1 {
			m.selectedRow++
		}
	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "g", "home":
		m.selectedRow = 0
	case "G", "end":
		m.selectedRow = len(items) - 1
	case "enter":
		m.openDetail(items[m.selectedRow])
	}
	return m, nil
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctrl == nil {
		m.currentView = ViewCatalog
		return m, nil
	}
	st := m.ctrl.State()

	switch msg.String() {
	case "esc":
		m.closeDetail()
		return m, nil

	case "f":
		m.ctrl.ToggleFavorite()
		return m, nil

	case "1", "2", "3", "4", "5":
		m.ctrl.SetRating(int(msg.String()[0] - '0'))
		return m, nil

	case "i", "tab":
		if !st.Submitted && !st.Submitting {
			m.inputFocused = true
			m.reviewInput.SetValue(st.Review)
			return m, m.reviewInput.Focus()
		}
		return m, nil

	case "s", "enter":
		if !st.Submitted && !st.Submitting {
			return m, submitCmd(m.ctx, m.ctrl)
		}
		return m, nil
	}
	return m, nil
}

// handleInputKey routes keys to the review text input.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.inputFocused = false
		m.reviewInput.Blur()
		m.ctrl.SetReview(m.reviewInput.Value())
		return m, nil

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.reviewInput, cmd = m.reviewInput.Update(msg)
	m.ctrl.SetReview(m.reviewInput.Value())
	return m, cmd
}

// openDetail builds the controller for one item and switches views.
func (m *Model) openDetail(item joiefull.Clothing) {
	m.ctrl = detail.NewController(item, m.store, m.favs, m.client)
	m.reviewInput.SetValue(m.ctrl.State().Review)
	m.currentView = ViewDetail
}

// closeDetail drops the controller and returns to the catalog. An in-flight
// submit on the dropped controller finishes on its own and is ignored.
func (m *Model) closeDetail() {
	m.ctrl = nil
	m.inputFocused = false
	m.reviewInput.Blur()
	m.currentView = ViewCatalog
}

// selectItem moves the list selection to the given id if present.
func (m *Model) selectItem(id int) {
	for i, item := range m.flatItems() {
		if item.ID == id {
			m.selectedRow = i
			return
		}
	}
}

func (m *Model) clampSelection() {
	if n := len(m.flatItems()); m.selectedRow >= n {
		m.selectedRow = max(0, n-1)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Chargement..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// Messages

type loadedMsg state.Snapshot

type submitDoneMsg struct{}

// Commands

func loadCmd(ctx context.Context, engine *state.Engine) tea.Cmd {
	return func() tea.Msg {
		engine.Load(ctx)
		return loadedMsg(engine.Snapshot())
	}
}

func submitCmd(ctx context.Context, ctrl *detail.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.Submit(ctx)
		return submitDoneMsg{}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
