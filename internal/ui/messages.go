package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"recommendi/internal/domain"
	"recommendi/internal/fetcher"
)

// categoriesLoadedMsg delivers the category list at startup
type categoriesLoadedMsg struct {
	categories []domain.Category
	err        error
}

// sessionCreatedMsg completes a free-text submission. The location and
// history mutations wait on it; when err is set neither happens.
type sessionCreatedMsg struct {
	message   string
	category  string
	sessionID string
	err       error
}

// fetchOutcomeMsg delivers the terminal outcome of one admitted fetch
type fetchOutcomeMsg struct {
	outcome fetcher.Outcome
}

// busEventMsg forwards a domain event from the event bus into the
// update loop
type busEventMsg struct {
	event domain.DomainEvent
}

// NewBusEventMsg wraps a domain event for delivery through Program.Send
func NewBusEventMsg(event domain.DomainEvent) tea.Msg {
	return busEventMsg{event: event}
}

// pagerClosedMsg reports that the detail pager returned the terminal
type pagerClosedMsg struct {
	err error
}
