package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recommendi/internal/domain"
	"recommendi/internal/ui/input"
	"recommendi/internal/ui/state"
)

// Result-area clipping bounds, matching the card data contract
const (
	descriptionClip = 100
	contextClip     = 80
	cardTagLimit    = 3
	extraDataClip   = 200
)

// ViewState carries everything the renderer needs for one frame
type ViewState struct {
	App  *state.AppState
	Mode input.Mode

	FormLabel string
	FormView  string // rendered text input

	Location   string
	CanBack    bool
	CanForward bool

	PaginationVisible bool
	PaginationBusy    bool

	Spinner      string // current spinner frame for loading rows
	Placeholders int

	ShowHelp bool
}

// Renderer renders the full screen from a ViewState
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the complete frame
func (r *Renderer) Render(vs ViewState) string {
	app := vs.App

	if vs.ShowHelp {
		return r.renderHelp()
	}

	var main strings.Builder
	main.WriteString(titleStyle.Render("recommendi"))
	main.WriteString("\n\n")
	main.WriteString(r.renderCategories(app))
	main.WriteString("\n\n")
	main.WriteString(r.renderForm(vs))
	main.WriteString("\n")
	main.WriteString(r.renderSearchContext(app))
	main.WriteString("\n")

	if app.ShowDetail {
		main.WriteString(r.renderDetail(app))
	} else {
		main.WriteString(r.renderResults(vs))
		main.WriteString("\n")
		main.WriteString(r.renderPagination(vs))
	}

	content := main.String()
	if app.ShowSidebar {
		sidebar := r.renderSidebar(vs)
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, sidebar)
	}

	var b strings.Builder
	b.WriteString(content)
	b.WriteString("\n")
	if vs.Mode == input.ModeConfirmClear {
		b.WriteString(confirmStyle.Render("Clear all session history? This cannot be undone. (y/N)"))
		b.WriteString("\n")
	}
	b.WriteString(r.renderStatusBar(vs))
	return b.String()
}

func (r *Renderer) renderCategories(app *state.AppState) string {
	if len(app.Categories) == 0 {
		return categoryStyle.Render("loading categories...")
	}

	parts := make([]string, 0, len(app.Categories))
	for _, c := range app.Categories {
		if c.Value == app.ActiveCategory {
			parts = append(parts, categoryActiveStyle.Render(c.Name))
		} else {
			parts = append(parts, categoryStyle.Render(c.Name))
		}
	}
	return strings.Join(parts, " ")
}

func (r *Renderer) renderForm(vs ViewState) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(vs.FormLabel))
	b.WriteString("\n")
	b.WriteString(vs.FormView)
	return b.String()
}

func (r *Renderer) renderSearchContext(app *state.AppState) string {
	if app.LoadingReplace {
		return infoStyle.Render("Loading recommendations...")
	}
	if ctx := app.SearchContext; ctx != nil && ctx.Type == "tag" {
		return "Results for tag: " + contextPillStyle.Render(ctx.Name)
	}
	return ""
}

func (r *Renderer) renderResults(vs ViewState) string {
	app := vs.App

	if app.LoadingReplace {
		var b strings.Builder
		for i := 0; i < vs.Placeholders; i++ {
			b.WriteString(skeletonStyle.Render(vs.Spinner + " ░░░░░░░░░░░░░░░░░░░░░░░░"))
			b.WriteString("\n\n")
		}
		return b.String()
	}

	if app.InfoMessage != "" {
		return infoStyle.Render(app.InfoMessage) + "\n"
	}

	if len(app.Results) == 0 {
		return ""
	}

	var b strings.Builder
	for i, item := range app.Results {
		selected := app.Focus == state.FocusResults && i == app.ResultCursor
		b.WriteString(r.renderCard(item, selected))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) renderCard(item domain.Recommendation, selected bool) string {
	title := item.Title
	if title == "" {
		title = "Untitled"
	}
	if date := item.Date(); date != "" {
		title = fmt.Sprintf("%s (%s)", title, date)
	}

	var b strings.Builder
	b.WriteString(cardTitleStyle.Render(title))
	b.WriteString("\n")

	if item.Author != "" {
		b.WriteString(cardMetaStyle.Render("by " + item.Author))
		b.WriteString("\n")
	} else if item.Genre != "" {
		b.WriteString(cardMetaStyle.Render(item.Genre))
		b.WriteString("\n")
	}

	if item.Description != "" {
		b.WriteString(cardBodyStyle.Render(clip(item.Description, descriptionClip)))
		b.WriteString("\n")
	}
	if item.Context != "" {
		b.WriteString(cardContextStyle.Render("Why we chose it: " + clip(item.Context, contextClip)))
		b.WriteString("\n")
	}

	if len(item.Tags) > 0 {
		tags := item.Tags
		if len(tags) > cardTagLimit {
			tags = tags[:cardTagLimit]
		}
		parts := make([]string, 0, len(tags))
		for i, tag := range tags {
			parts = append(parts, tagStyle.Render(fmt.Sprintf("[%d:%s]", i+1, tag.Name)))
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n")
	}

	if selected {
		return cardSelectedStyle.Render(b.String())
	}
	return cardStyle.Render(b.String())
}

func (r *Renderer) renderPagination(vs ViewState) string {
	if !vs.PaginationVisible {
		return ""
	}
	if vs.PaginationBusy {
		return loadMoreBusyStyle.Render("Loading...")
	}
	return loadMoreStyle.Render("Load More (m)")
}

func (r *Renderer) renderSidebar(vs ViewState) string {
	app := vs.App

	var b strings.Builder
	b.WriteString(sidebarTitleStyle.Render("Session History"))
	b.WriteString("\n\n")

	if len(app.History) == 0 {
		b.WriteString(statusStyle.Render("no past searches"))
		b.WriteString("\n")
	}

	for i, entry := range app.History {
		line := entry.ClippedMessage
		switch {
		case app.Focus == state.FocusSidebar && i == app.SidebarCursor:
			line = historyCursorStyle.Render(line)
		case entry.URL == vs.Location:
			line = historyActiveStyle.Render("* " + line)
		default:
			line = historyStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(app.History) > 0 {
		b.WriteString(helpStyle.Render("X clear history"))
	} else {
		b.WriteString(helpStyle.Render(" "))
	}
	return sidebarStyle.Render(b.String())
}

func (r *Renderer) renderDetail(app *state.AppState) string {
	item, ok := app.DetailResult()
	if !ok {
		return ""
	}

	title := item.Title
	if date := item.Date(); date != "" {
		title = fmt.Sprintf("%s (%s)", title, date)
	}

	var b strings.Builder
	b.WriteString(cardTitleStyle.Render(title))
	b.WriteString("\n")
	if item.Author != "" {
		b.WriteString(cardMetaStyle.Render("by " + item.Author))
		b.WriteString("\n")
	} else if item.Genre != "" {
		b.WriteString(cardMetaStyle.Render("Genre: " + item.Genre))
		b.WriteString("\n")
	}

	b.WriteString(detailHeadingStyle.Render("Description"))
	b.WriteString("\n")
	b.WriteString(cardBodyStyle.Render(fallback(item.Description, "No description available.")))
	b.WriteString("\n")

	b.WriteString(detailHeadingStyle.Render("Context"))
	b.WriteString("\n")
	b.WriteString(cardBodyStyle.Render(fallback(item.Context, "No context available.")))
	b.WriteString("\n")

	if len(item.Tags) > 0 {
		b.WriteString(detailHeadingStyle.Render("Tags"))
		b.WriteString("\n")
		parts := make([]string, 0, len(item.Tags))
		for i, tag := range item.Tags {
			parts = append(parts, tagStyle.Render(fmt.Sprintf("[%d:%s]", i+1, tag.Name)))
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n")
	}

	b.WriteString(detailHeadingStyle.Render("Extra Data"))
	b.WriteString("\n")
	extra := fallback(item.ExtraData, "No extra data available.")
	if !app.DetailExpanded && len([]rune(extra)) > extraDataClip {
		b.WriteString(cardBodyStyle.Render(clip(extra, extraDataClip)))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("e show more"))
	} else {
		b.WriteString(cardBodyStyle.Render(extra))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("esc close • o open in pager • 1-9 search by tag"))

	return detailStyle.Render(b.String())
}

func (r *Renderer) renderStatusBar(vs ViewState) string {
	location := vs.Location
	if location == "" {
		location = "/"
	} else {
		location = "?" + location
	}

	arrows := ""
	if vs.CanBack {
		arrows += "‹"
	}
	if vs.CanForward {
		arrows += "›"
	}
	if arrows != "" {
		arrows = " " + arrows
	}

	bar := statusStyle.Render(location + arrows)
	if vs.App.StatusMessage != "" {
		bar += "  " + infoStyle.Render(vs.App.StatusMessage)
	}
	return bar + "\n" + helpStyle.Render("i compose • tab focus • [ back • ] forward • n new session • ? help • q quit")
}

func (r *Renderer) renderHelp() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("recommendi Help"))
	b.WriteString("\n\n")

	section := func(name string, rows [][2]string) {
		b.WriteString(labelStyle.Render(name))
		b.WriteString("\n")
		for _, row := range rows {
			b.WriteString(fmt.Sprintf("  %-14s %s\n", row[0], row[1]))
		}
		b.WriteString("\n")
	}

	section("Searching", [][2]string{
		{"i, /", "focus the message form"},
		{"enter", "submit the message"},
		{"h/l, ←/→", "switch category"},
		{"1-3", "search by a highlighted card's tag"},
		{"r", "re-run the current search"},
	})
	section("Results", [][2]string{
		{"j/k, ↓/↑", "move between cards"},
		{"enter", "open card detail"},
		{"m", "load more results"},
		{"o", "open detail in pager"},
	})
	section("Navigation", [][2]string{
		{"[, backspace", "back"},
		{"]", "forward"},
		{"n", "new session"},
	})
	section("Session history", [][2]string{
		{"tab", "focus the sidebar"},
		{"s", "toggle the sidebar"},
		{"enter", "replay the selected search"},
		{"X", "clear history (with confirmation)"},
	})
	b.WriteString(helpStyle.Render("? close help • q quit"))
	return b.String()
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func fallback(s, alt string) string {
	if s == "" {
		return alt
	}
	return s
}
