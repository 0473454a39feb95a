package input

// ComposeMode handles keys while the free-text form is focused. Keys it
// does not consume fall through to the shared text input.
type ComposeMode struct{}

// NewComposeMode creates the compose mode handler
func NewComposeMode() *ComposeMode {
	return &ComposeMode{}
}

// HandleKey maps compose keys to actions
func (m *ComposeMode) HandleKey(key string, ctx Context) ([]Action, bool) {
	switch key {
	case "enter":
		// The handler fills in the message from the text input
		return []Action{SubmitAction{}}, true

	case "esc":
		return []Action{ChangeModeAction{Mode: ModeBrowse}}, true

	case "ctrl+n", "shift+down":
		return []Action{CategoryAction{Delta: 1}}, true

	case "ctrl+p", "shift+up":
		return []Action{CategoryAction{Delta: -1}}, true

	case "ctrl+c":
		return []Action{QuitAction{}}, true
	}

	return nil, false
}
