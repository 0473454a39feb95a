package state

import (
	"recommendi/internal/domain"
)

// Focus identifies which pane receives navigation keys
type Focus int

const (
	FocusResults Focus = iota
	FocusSidebar
)

// AppState contains all the application view state. Everything here is
// derived from the canonical location plus the persisted history list;
// nothing in it survives a resynchronization.
type AppState struct {
	// Category data
	Categories     []domain.Category // ordered, first is default-active
	ActiveCategory string
	Drafts         map[string]string // per-category saved form contents

	// Result data
	Results       []domain.Recommendation
	SearchContext *domain.SearchContext
	InfoMessage   string // empty-result or error copy shown in the results area

	// Loading state
	LoadingReplace bool // skeleton placeholders are showing

	// Session history sidebar
	History       []domain.HistoryEntry
	ShowSidebar   bool
	SidebarCursor int

	// Selection state
	Focus          Focus
	ResultCursor   int
	DetailIndex    int // result whose detail view is open
	ShowDetail     bool
	DetailExpanded bool // extra data shown in full

	// Layout
	Width  int
	Height int

	StatusMessage string
}

// NewAppState creates the initial application state
func NewAppState(defaultCategory string, showSidebar bool) *AppState {
	return &AppState{
		ActiveCategory: defaultCategory,
		Drafts:         make(map[string]string),
		ShowSidebar:    showSidebar,
	}
}

// SetCategories installs the loaded category list, activating the first
// entry unless the active category is already present in the list
func (s *AppState) SetCategories(categories []domain.Category) {
	s.Categories = categories
	if len(categories) == 0 {
		return
	}
	for _, c := range categories {
		if c.Value == s.ActiveCategory {
			return
		}
	}
	s.ActiveCategory = categories[0].Value
}

// ActiveCategoryMeta returns the form copy for the active category
func (s *AppState) ActiveCategoryMeta() (label, placeholder string) {
	for _, c := range s.Categories {
		if c.Value == s.ActiveCategory {
			return c.Label, c.Placeholder
		}
	}
	return "What's on your mind?", "Tell me what you're looking for..."
}

// CategoryIndex returns the position of the active category, or -1
func (s *AppState) CategoryIndex() int {
	for i, c := range s.Categories {
		if c.Value == s.ActiveCategory {
			return i
		}
	}
	return -1
}

// ClearResults empties the result view
func (s *AppState) ClearResults() {
	s.Results = nil
	s.SearchContext = nil
	s.InfoMessage = ""
	s.LoadingReplace = false
	s.ResultCursor = 0
	s.ShowDetail = false
	s.DetailExpanded = false
}

// AppendResults adds a page of results after the existing ones
func (s *AppState) AppendResults(items []domain.Recommendation) {
	s.Results = append(s.Results, items...)
}

// SelectedResult returns the result under the cursor
func (s *AppState) SelectedResult() (domain.Recommendation, bool) {
	if s.ResultCursor < 0 || s.ResultCursor >= len(s.Results) {
		return domain.Recommendation{}, false
	}
	return s.Results[s.ResultCursor], true
}

// DetailResult returns the result whose detail view is open
func (s *AppState) DetailResult() (domain.Recommendation, bool) {
	if s.DetailIndex < 0 || s.DetailIndex >= len(s.Results) {
		return domain.Recommendation{}, false
	}
	return s.Results[s.DetailIndex], true
}

// SelectedHistory returns the history entry under the sidebar cursor
func (s *AppState) SelectedHistory() (domain.HistoryEntry, bool) {
	if s.SidebarCursor < 0 || s.SidebarCursor >= len(s.History) {
		return domain.HistoryEntry{}, false
	}
	return s.History[s.SidebarCursor], true
}

// ClampCursors keeps the cursors inside their lists after mutations
func (s *AppState) ClampCursors() {
	if s.ResultCursor >= len(s.Results) {
		s.ResultCursor = len(s.Results) - 1
	}
	if s.ResultCursor < 0 {
		s.ResultCursor = 0
	}
	if s.SidebarCursor >= len(s.History) {
		s.SidebarCursor = len(s.History) - 1
	}
	if s.SidebarCursor < 0 {
		s.SidebarCursor = 0
	}
}
