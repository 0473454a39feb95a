package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"recommendi/internal/fetcher"
)

// loadCategoriesCmd fetches the category list once at startup
func (m *Model) loadCategoriesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.requestTimeout)
		defer cancel()

		categories, err := m.client.Categories(ctx)
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

// createSessionCmd asks the backend for a session id for a free-text
// submission. The submission completes only when the id arrives.
func (m *Model) createSessionCmd(message, category string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.requestTimeout)
		defer cancel()

		id, err := m.client.CreateSession(ctx, message)
		return sessionCreatedMsg{message: message, category: category, sessionID: id, err: err}
	}
}

// fetchCmd runs one admitted request off the update loop
func (m *Model) fetchCmd(req fetcher.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.requestTimeout)
		defer cancel()

		return fetchOutcomeMsg{outcome: m.fetches.Do(ctx, req)}
	}
}
