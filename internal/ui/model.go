package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"recommendi/internal/api"
	"recommendi/internal/config"
	"recommendi/internal/domain"
	"recommendi/internal/fetcher"
	"recommendi/internal/history"
	"recommendi/internal/nav"
	"recommendi/internal/ui/input"
	"recommendi/internal/ui/state"
	"recommendi/internal/ui/views"
)

// Model is the Bubble Tea model tying the view state, the input handler,
// the fetch pipeline, and the navigation bridge together
type Model struct {
	config *config.Config
	state  *state.AppState
	log    zerolog.Logger

	inputHandler *input.Handler
	renderer     *views.Renderer
	fetches      *fetcher.Service
	paginator    *fetcher.Paginator
	bridge       *nav.Bridge
	store        history.Store
	client       *api.Client
	pagerOps     *PagerOps

	spinner spinner.Model

	requestTimeout  time.Duration
	creatingSession bool // a submit is waiting on its backend session
	showHelp        bool

	program *tea.Program
}

// NewModel assembles the UI model from its already-constructed parts
func NewModel(
	cfg *config.Config,
	client *api.Client,
	store history.Store,
	bridge *nav.Bridge,
	fetches *fetcher.Service,
	log zerolog.Logger,
) *Model {
	appState := state.NewAppState(cfg.DefaultCategory, cfg.UISettings.ShowSidebar)
	appState.History = store.List()

	m := &Model{
		config:         cfg,
		state:          appState,
		log:            log,
		inputHandler:   input.New(),
		renderer:       views.NewRenderer(),
		fetches:        fetches,
		paginator:      &fetcher.Paginator{},
		bridge:         bridge,
		store:          store,
		client:         client,
		pagerOps:       NewPagerOps(nil),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		requestTimeout: time.Duration(cfg.UISettings.RequestTimeout) * time.Second,
	}
	return m
}

// SetProgram installs the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pagerOps.SetProgram(p)
}

// Init loads the categories and resynchronizes from the root location
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCategoriesCmd(),
		m.applyEffect(m.bridge.Resync()),
		textinput.Blink,
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case categoriesLoadedMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("failed to load categories")
			m.state.StatusMessage = "Failed to load categories"
			return m, nil
		}
		m.state.SetCategories(msg.categories)
		m.refreshFormCopy()
		return m, nil

	case sessionCreatedMsg:
		return m.handleSessionCreated(msg)

	case fetchOutcomeMsg:
		return m.handleFetchOutcome(msg.outcome)

	case busEventMsg:
		return m.handleBusEvent(msg.event)

	case spinner.TickMsg:
		// The spinner only keeps ticking while something is loading
		if m.state.LoadingReplace || m.paginator.Busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case pagerClosedMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("detail pager failed")
			m.state.StatusMessage = "Failed to open pager"
		}
		return m, nil
	}

	// Blink ticks and other text input messages
	return m, m.inputHandler.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays swallow keys before the mode dispatch
	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.state.ShowDetail && m.inputHandler.CurrentMode() == input.ModeBrowse {
		return m.handleDetailKey(msg)
	}

	ctx := input.Context{
		SidebarFocused:    m.state.Focus == state.FocusSidebar && m.state.ShowSidebar,
		HistoryLen:        len(m.state.History),
		PaginationVisible: m.paginator.Visible() && !m.paginator.Busy(),
		TagCount:          m.selectedTagCount(),
	}

	actions, cmd := m.inputHandler.HandleKey(msg, ctx)

	cmds := []tea.Cmd{}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	for _, action := range actions {
		if actionCmd := m.processAction(action); actionCmd != nil {
			cmds = append(cmds, actionCmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item, ok := m.state.DetailResult()
	if !ok {
		m.state.ShowDetail = false
		return m, nil
	}

	switch key := msg.String(); key {
	case "esc", "q", "enter":
		m.state.ShowDetail = false
		m.state.DetailExpanded = false

	case "e":
		m.state.DetailExpanded = !m.state.DetailExpanded

	case "o":
		return m, func() tea.Msg {
			return pagerClosedMsg{err: m.pagerOps.ShowInPager(item)}
		}

	case "j", "down":
		if m.state.DetailIndex < len(m.state.Results)-1 {
			m.state.DetailIndex++
			m.state.DetailExpanded = false
		}

	case "k", "up":
		if m.state.DetailIndex > 0 {
			m.state.DetailIndex--
			m.state.DetailExpanded = false
		}

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key[0] - '1')
		if idx < len(item.Tags) {
			m.state.ShowDetail = false
			m.state.DetailExpanded = false
			return m, m.navigateToTag(item.Tags[idx])
		}

	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) processAction(action input.Action) tea.Cmd {
	switch a := action.(type) {
	case input.QuitAction:
		return tea.Quit

	case input.ChangeModeAction:
		// The handler already switched; focus follows the compose form
		if a.Mode == input.ModeCompose {
			m.state.Focus = state.FocusResults
		}

	case input.NavigateAction:
		m.moveCursor(a.Direction)

	case input.UpdateTextAction:
		m.state.Drafts[m.state.ActiveCategory] = a.Text

	case input.CategoryAction:
		m.cycleCategory(a.Delta)

	case input.SubmitAction:
		return m.submit(a.Message)

	case input.TagClickAction:
		if item, ok := m.state.SelectedResult(); ok && a.Index < len(item.Tags) {
			return m.navigateToTag(item.Tags[a.Index])
		}

	case input.OpenDetailAction:
		if _, ok := m.state.SelectedResult(); ok {
			m.state.ShowDetail = true
			m.state.DetailIndex = m.state.ResultCursor
			m.state.DetailExpanded = false
		}

	case input.LoadMoreAction:
		if m.navBlocked() || !m.paginator.TryActivate() {
			return nil
		}
		return m.applyEffect(m.bridge.LoadMore())

	case input.HistoryClickAction:
		if m.navBlocked() {
			return nil
		}
		if entry, ok := m.state.SelectedHistory(); ok {
			return m.applyEffect(m.bridge.HistoryClick(entry))
		}

	case input.ClearHistoryAction:
		// The confirm prompt takes over; nothing happens until it answers

	case input.ConfirmClearAction:
		cmd := m.applyEffect(m.bridge.ClearHistory())
		m.syncHistory()
		return cmd

	case input.BackAction:
		if m.navBlocked() {
			return nil
		}
		if effect, ok := m.bridge.Back(); ok {
			return m.applyEffect(effect)
		}

	case input.ForwardAction:
		if m.navBlocked() {
			return nil
		}
		if effect, ok := m.bridge.Forward(); ok {
			return m.applyEffect(effect)
		}

	case input.NewSessionAction:
		// A fresh session starts with a blank form, drafts included
		m.state.Drafts = make(map[string]string)
		return m.applyEffect(m.bridge.NewSession())

	case input.RefreshAction:
		if m.navBlocked() {
			return nil
		}
		return m.applyEffect(m.bridge.Resync())

	case input.ToggleFocusAction:
		if !m.state.ShowSidebar {
			return nil
		}
		if m.state.Focus == state.FocusResults {
			m.state.Focus = state.FocusSidebar
		} else {
			m.state.Focus = state.FocusResults
		}

	case input.ToggleSidebarAction:
		m.state.ShowSidebar = !m.state.ShowSidebar
		if !m.state.ShowSidebar {
			m.state.Focus = state.FocusResults
		}

	case input.ToggleHelpAction:
		m.showHelp = true
	}
	return nil
}

// submit starts a free-text search. The backend session must exist before
// the location or the history can change, so the round trip runs first and
// the submission completes in handleSessionCreated.
func (m *Model) submit(message string) tea.Cmd {
	trimmed, ok := nav.ValidateSubmit(message)
	if !ok {
		return nil
	}
	if m.creatingSession || m.fetches.InFlight() {
		return nil
	}

	m.creatingSession = true
	m.state.StatusMessage = ""
	return m.createSessionCmd(trimmed, m.state.ActiveCategory)
}

func (m *Model) handleSessionCreated(msg sessionCreatedMsg) (tea.Model, tea.Cmd) {
	m.creatingSession = false

	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("session creation failed")
		m.state.InfoMessage = fetcher.GenericErrorMessage
		m.state.LoadingReplace = false
		return m, nil
	}

	effect := m.bridge.CompleteSubmit(msg.message, msg.category, msg.sessionID)
	m.syncHistory()
	return m, m.applyEffect(effect)
}

func (m *Model) handleFetchOutcome(out fetcher.Outcome) (tea.Model, tea.Cmd) {
	m.fetches.Finish(out.Request)

	if fetcher.Stale(out, m.bridge.Location()) {
		// The location moved on while this fetch ran. Dropping the outcome
		// alone would strand the view mid-load, so refetch for the location
		// actually showing.
		m.log.Debug().Str("key", out.Request.Key).Msg("dropping stale fetch outcome")
		return m, m.applyEffect(m.bridge.Resync())
	}

	if out.Err != nil {
		if out.Request.Mode == fetcher.ModeReplace {
			m.state.ClearResults()
			m.state.InfoMessage = fetcher.GenericErrorMessage
			m.paginator.Hide()
		} else {
			// The loaded pages stay; the affordance comes back for a retry
			m.state.StatusMessage = fetcher.GenericErrorMessage
			m.paginator.SetHasNext(true)
		}
		return m, nil
	}

	switch out.Request.Mode {
	case fetcher.ModeReplace:
		m.state.LoadingReplace = false
		m.state.Results = out.Result.Recommendations
		m.state.SearchContext = out.Result.SearchContext
		m.state.InfoMessage = out.Message
		m.state.ResultCursor = 0
		if out.Message != "" {
			// An empty result set renders its message and nothing else,
			// whatever has_next claims
			m.paginator.Hide()
			return m, nil
		}
	case fetcher.ModeAppend:
		m.state.AppendResults(out.Result.Recommendations)
	}

	m.paginator.SetHasNext(out.Result.HasNext)
	m.state.ClampCursors()
	return m, nil
}

func (m *Model) handleBusEvent(event domain.DomainEvent) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case domain.HistoryChangedEvent, domain.HistoryClearedEvent:
		m.syncHistory()
	case domain.SyncFailedEvent:
		// Diagnostic only; the local history already has the entry
		m.log.Warn().Err(e.Err).Str("session_id", e.SessionID).Msg("session sync failed")
	case domain.ErrorEvent:
		m.state.StatusMessage = e.Message
	}
	return m, nil
}

// applyEffect executes a navigation effect: rehydrate the form, reset the
// view, and issue the admitted fetch
func (m *Model) applyEffect(e nav.Effect) tea.Cmd {
	if e.Rehydrate {
		m.rehydrate(e.State)
	}
	if e.ResetView {
		m.state.ClearResults()
		m.paginator.Hide()
	}

	if !e.Fetch {
		m.state.ClampCursors()
		return nil
	}

	req, ok := m.fetches.Begin(e.State, e.FetchMode)
	if !ok {
		if e.FetchMode == fetcher.ModeAppend {
			m.paginator.SetHasNext(true)
		}
		return nil
	}

	if e.FetchMode == fetcher.ModeReplace {
		m.state.ClearResults()
		m.state.LoadingReplace = true
		m.paginator.Hide()
	}
	m.state.ClampCursors()
	return tea.Batch(m.fetchCmd(req), m.spinner.Tick)
}

func (m *Model) navigateToTag(tag domain.Tag) tea.Cmd {
	if m.navBlocked() {
		return nil
	}
	return m.applyEffect(m.bridge.TagClick(tag, m.state.ActiveCategory))
}

// navBlocked reports whether navigation must wait: either a fetch is in
// flight, or a submit is still waiting on its backend session and will
// push a new location when it completes
func (m *Model) navBlocked() bool {
	return m.creatingSession || m.fetches.InFlight()
}

// rehydrate refills the form and category selector from a decoded location
func (m *Model) rehydrate(s domain.SearchState) {
	if s.Category != "" {
		m.state.ActiveCategory = s.Category
	}

	switch s.SearchType {
	case domain.SearchMessage:
		m.state.Drafts[m.state.ActiveCategory] = s.Query
		m.inputHandler.SetText(s.Query)
	case domain.SearchTag:
		// A tag search starts from a blank form
		m.state.Drafts[m.state.ActiveCategory] = ""
		m.inputHandler.SetText("")
		m.state.SearchContext = &domain.SearchContext{Type: "tag", Name: s.TagName}
	default:
		m.inputHandler.SetText(m.state.Drafts[m.state.ActiveCategory])
	}
	m.refreshFormCopy()
}

func (m *Model) cycleCategory(delta int) {
	if len(m.state.Categories) == 0 {
		return
	}

	// Save the draft of the category being left
	m.state.Drafts[m.state.ActiveCategory] = m.inputHandler.TextInput().Value()

	idx := m.state.CategoryIndex()
	if idx < 0 {
		idx = 0
	}
	idx = (idx + delta + len(m.state.Categories)) % len(m.state.Categories)
	m.state.ActiveCategory = m.state.Categories[idx].Value

	m.inputHandler.SetText(m.state.Drafts[m.state.ActiveCategory])
	m.refreshFormCopy()
}

func (m *Model) refreshFormCopy() {
	_, placeholder := m.state.ActiveCategoryMeta()
	m.inputHandler.SetPlaceholder(placeholder)
}

func (m *Model) moveCursor(direction string) {
	delta := 1
	if direction == "up" {
		delta = -1
	}

	if m.state.Focus == state.FocusSidebar && m.state.ShowSidebar {
		m.state.SidebarCursor += delta
	} else {
		m.state.ResultCursor += delta
	}
	m.state.ClampCursors()
}

func (m *Model) selectedTagCount() int {
	if item, ok := m.state.SelectedResult(); ok {
		return len(item.Tags)
	}
	return 0
}

func (m *Model) syncHistory() {
	m.state.History = m.store.List()
	m.state.ClampCursors()
}

// View renders the UI
func (m *Model) View() string {
	label, _ := m.state.ActiveCategoryMeta()

	return m.renderer.Render(views.ViewState{
		App:               m.state,
		Mode:              m.inputHandler.CurrentMode(),
		FormLabel:         label,
		FormView:          m.inputHandler.TextInput().View(),
		Location:          m.bridge.Location(),
		CanBack:           m.bridge.CanBack(),
		CanForward:        m.bridge.CanForward(),
		PaginationVisible: m.paginator.Visible(),
		PaginationBusy:    m.paginator.Busy(),
		Spinner:           m.spinner.View(),
		Placeholders:      m.config.UISettings.Placeholders,
		ShowHelp:          m.showHelp,
	})
}
