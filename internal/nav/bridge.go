// Package nav converts user actions into canonical location mutations and
// re-synchronization effects. Every transition method mutates the location
// stack (and, where required, the history store) and returns an Effect for
// the caller to execute; the view is then always a pure function of the
// current location plus the persisted history list.
package nav

import (
	"strings"

	"github.com/rs/zerolog"

	"recommendi/internal/domain"
	"recommendi/internal/fetcher"
	"recommendi/internal/history"
	"recommendi/internal/urlstate"
)

// Effect tells the caller what to do after a transition
type Effect struct {
	State     domain.SearchState // decoded state of the new current location
	Fetch     bool               // issue a recommendation fetch
	FetchMode fetcher.Mode
	Rehydrate bool // refill form and category selector from State
	ResetView bool // clear results, pagination, and search context
}

// Bridge owns the location stack and drives the history store
type Bridge struct {
	stack *Stack
	store history.Store
	log   zerolog.Logger
}

// NewBridge creates a bridge over a fresh stack at the root location
func NewBridge(store history.Store, log zerolog.Logger) *Bridge {
	return &Bridge{stack: NewStack(), store: store, log: log}
}

// Location returns the current canonical location string
func (b *Bridge) Location() string {
	return b.stack.Current()
}

// State returns the decoded current location
func (b *Bridge) State() domain.SearchState {
	return urlstate.Decode(b.stack.Current())
}

// CanBack reports whether back navigation is possible
func (b *Bridge) CanBack() bool {
	return b.stack.CanBack()
}

// CanForward reports whether forward navigation is possible
func (b *Bridge) CanForward() bool {
	return b.stack.CanForward()
}

// ValidateSubmit trims the message and reports whether it is submittable
func ValidateSubmit(message string) (string, bool) {
	trimmed := strings.TrimSpace(message)
	return trimmed, trimmed != ""
}

// CompleteSubmit finishes a free-text submission once the backend session
// exists: it builds the page-1 message state, pushes its location, appends
// the search to the history store, and requests a replace fetch. Session
// creation happens before this call; if it failed, nothing here runs and
// neither the location nor the history changes.
func (b *Bridge) CompleteSubmit(message, category, sessionID string) Effect {
	state := domain.SearchState{
		SearchType: domain.SearchMessage,
		Query:      message,
		Category:   category,
		Page:       1,
		SessionID:  sessionID,
	}
	location := urlstate.Encode(state)
	b.stack.Push(location)

	entry := history.NewEntry(sessionID, message, location)
	if _, err := b.store.Add(entry); err != nil {
		// The search itself still proceeds; only the log entry is lost
		b.log.Error().Err(err).Msg("failed to record search in history")
	}

	return Effect{State: state, Fetch: true, FetchMode: fetcher.ModeReplace}
}

// TagClick navigates to a tag search. No backend round trip is needed
// first. When the tag belongs to a different category than the active one,
// the state switches to the tag's category.
func (b *Bridge) TagClick(tag domain.Tag, activeCategory string) Effect {
	category := activeCategory
	if tag.Category != "" && tag.Category != activeCategory {
		category = tag.Category
	}

	state := domain.SearchState{
		SearchType: domain.SearchTag,
		Query:      tag.ID,
		Category:   category,
		TagName:    tag.Name,
		Page:       1,
	}
	b.stack.Push(urlstate.Encode(state))

	return Effect{State: state, Fetch: true, FetchMode: fetcher.ModeReplace, Rehydrate: true}
}

// LoadMore advances to the next page of the current search and requests an
// append fetch. The caller guards it with the paginator.
func (b *Bridge) LoadMore() Effect {
	state := b.State()
	if state.SearchType == domain.SearchNone {
		return Effect{State: state}
	}

	state.Page++
	b.stack.Push(urlstate.Encode(state))
	return Effect{State: state, Fetch: true, FetchMode: fetcher.ModeAppend}
}

// HistoryClick replays a stored search: the entry's location is pushed
// verbatim, never re-derived, then the view resynchronizes from it.
func (b *Bridge) HistoryClick(entry domain.HistoryEntry) Effect {
	b.stack.Push(entry.URL)
	return b.Resync()
}

// ClearHistory erases the history after the caller has confirmed with the
// user. An empty history means no stored search can be reconstructed, so
// the view and the location reset to root.
func (b *Bridge) ClearHistory() Effect {
	if err := b.store.Clear(); err != nil {
		b.log.Error().Err(err).Msg("failed to clear history")
	}
	b.stack.Replace("")
	return Effect{State: b.State(), ResetView: true, Rehydrate: true}
}

// NewSession resets to a blank root view without touching the history
func (b *Bridge) NewSession() Effect {
	b.stack.Push("")
	return Effect{State: b.State(), ResetView: true, Rehydrate: true}
}

// Back handles backward navigation. If the history store was emptied since
// the location was recorded, the popped location is not trusted: the view
// forces a clean root reset instead.
func (b *Bridge) Back() (Effect, bool) {
	if b.store.Len() == 0 {
		b.stack.Replace("")
		return Effect{State: b.State(), ResetView: true, Rehydrate: true}, true
	}

	if _, ok := b.stack.Back(); !ok {
		return Effect{}, false
	}
	return b.Resync(), true
}

// Forward handles forward navigation, mirroring Back
func (b *Bridge) Forward() (Effect, bool) {
	if b.store.Len() == 0 {
		b.stack.Replace("")
		return Effect{State: b.State(), ResetView: true, Rehydrate: true}, true
	}

	if _, ok := b.stack.Forward(); !ok {
		return Effect{}, false
	}
	return b.Resync(), true
}

// Resync is the single idempotent entry point shared by startup, back/
// forward traversal, and history clicks: decode the current location,
// rehydrate the form and category selector from it, and fetch in replace
// mode. A replace fetch always restarts at page 1; a deeper page number in
// the location is normalized away before fetching.
func (b *Bridge) Resync() Effect {
	state := b.State()

	if state.SearchType != domain.SearchNone && state.Page > 1 {
		state.Page = 1
		b.stack.Replace(urlstate.Encode(state))
	}

	return Effect{
		State:     state,
		Fetch:     state.SearchType != domain.SearchNone,
		FetchMode: fetcher.ModeReplace,
		Rehydrate: true,
		ResetView: state.SearchType == domain.SearchNone,
	}
}
