package input

// Mode identifies the active input mode
type Mode int

const (
	ModeBrowse Mode = iota
	ModeCompose
	ModeConfirmClear
)

// Context carries the view facts a mode needs to map keys to actions
type Context struct {
	SidebarFocused    bool
	HistoryLen        int
	PaginationVisible bool
	TagCount          int // tags on the highlighted card
}

// Action is a discrete user intent produced by a mode handler
type Action interface {
	Type() string
}

// ModeHandler maps key presses to actions for one mode
type ModeHandler interface {
	// HandleKey returns the actions for a key and whether it was consumed
	HandleKey(key string, ctx Context) ([]Action, bool)
}

// Navigation within panes
type NavigateAction struct {
	Direction string // "up" or "down"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transitions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// SubmitAction submits the composed free-text message
type SubmitAction struct {
	Message string
}

func (a SubmitAction) Type() string { return "submit" }

// UpdateTextAction reflects the compose field contents after a keystroke
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// CategoryAction cycles the active category by Delta
type CategoryAction struct {
	Delta int
}

func (a CategoryAction) Type() string { return "category" }

// TagClickAction selects the Nth tag (0-based) of the highlighted card
type TagClickAction struct {
	Index int
}

func (a TagClickAction) Type() string { return "tag_click" }

type OpenDetailAction struct{}

func (a OpenDetailAction) Type() string { return "open_detail" }

type LoadMoreAction struct{}

func (a LoadMoreAction) Type() string { return "load_more" }

type HistoryClickAction struct{}

func (a HistoryClickAction) Type() string { return "history_click" }

// ClearHistoryAction asks for the confirm prompt; ConfirmClearAction is
// the affirmative answer
type ClearHistoryAction struct{}

func (a ClearHistoryAction) Type() string { return "clear_history" }

type ConfirmClearAction struct{}

func (a ConfirmClearAction) Type() string { return "confirm_clear" }

type BackAction struct{}

func (a BackAction) Type() string { return "back" }

type ForwardAction struct{}

func (a ForwardAction) Type() string { return "forward" }

type NewSessionAction struct{}

func (a NewSessionAction) Type() string { return "new_session" }

type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type ToggleFocusAction struct{}

func (a ToggleFocusAction) Type() string { return "toggle_focus" }

type ToggleSidebarAction struct{}

func (a ToggleSidebarAction) Type() string { return "toggle_sidebar" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
