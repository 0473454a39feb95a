package input

// BrowseMode handles keys while navigating results and the sidebar
type BrowseMode struct{}

// NewBrowseMode creates the browse mode handler
func NewBrowseMode() *BrowseMode {
	return &BrowseMode{}
}

// HandleKey maps browse keys to actions
func (m *BrowseMode) HandleKey(key string, ctx Context) ([]Action, bool) {
	switch key {
	case "q", "ctrl+c":
		return []Action{QuitAction{}}, true

	case "i", "/":
		return []Action{ChangeModeAction{Mode: ModeCompose}}, true

	case "j", "down":
		return []Action{NavigateAction{Direction: "down"}}, true

	case "k", "up":
		return []Action{NavigateAction{Direction: "up"}}, true

	case "h", "left":
		return []Action{CategoryAction{Delta: -1}}, true

	case "l", "right":
		return []Action{CategoryAction{Delta: 1}}, true

	case "enter":
		if ctx.SidebarFocused {
			return []Action{HistoryClickAction{}}, true
		}
		return []Action{OpenDetailAction{}}, true

	case "m":
		if ctx.PaginationVisible {
			return []Action{LoadMoreAction{}}, true
		}
		return nil, true

	case "1", "2", "3":
		idx := int(key[0] - '1')
		if idx < ctx.TagCount {
			return []Action{TagClickAction{Index: idx}}, true
		}
		return nil, true

	case "[", "backspace":
		return []Action{BackAction{}}, true

	case "]":
		return []Action{ForwardAction{}}, true

	case "n":
		return []Action{NewSessionAction{}}, true

	case "r":
		return []Action{RefreshAction{}}, true

	case "tab":
		return []Action{ToggleFocusAction{}}, true

	case "s":
		return []Action{ToggleSidebarAction{}}, true

	case "X":
		// Clearing is disallowed while the history is empty
		if ctx.HistoryLen > 0 {
			return []Action{ClearHistoryAction{}, ChangeModeAction{Mode: ModeConfirmClear}}, true
		}
		return nil, true

	case "?":
		return []Action{ToggleHelpAction{}}, true
	}

	return nil, false
}
