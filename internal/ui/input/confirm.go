package input

// ConfirmMode handles the blocking yes/no prompt before destructive
// operations (clearing the session history)
type ConfirmMode struct{}

// NewConfirmMode creates the confirm mode handler
func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

// HandleKey maps confirm keys to actions. Anything other than an explicit
// yes cancels.
func (m *ConfirmMode) HandleKey(key string, ctx Context) ([]Action, bool) {
	switch key {
	case "y", "Y":
		return []Action{ConfirmClearAction{}, ChangeModeAction{Mode: ModeBrowse}}, true
	case "ctrl+c":
		return []Action{QuitAction{}}, true
	default:
		return []Action{ChangeModeAction{Mode: ModeBrowse}}, true
	}
}
