package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler dispatches key presses to the active mode and owns the shared
// text input used by the compose form
type Handler struct {
	currentMode Mode
	modes       map[Mode]ModeHandler
	textInput   *textinput.Model
}

// New creates a handler with all modes registered, starting in compose
// mode with the form focused, as the page opens ready for typing
func New() *Handler {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Focus()

	h := &Handler{
		currentMode: ModeCompose,
		textInput:   &ti,
		modes: map[Mode]ModeHandler{
			ModeBrowse:       NewBrowseMode(),
			ModeCompose:      NewComposeMode(),
			ModeConfirmClear: NewConfirmMode(),
		},
	}
	return h
}

// HandleKey routes one key press through the active mode
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg.String(), ctx)

	var cmd tea.Cmd
	var out []Action

	for _, action := range actions {
		switch a := action.(type) {
		case ChangeModeAction:
			h.setMode(a.Mode)
			if h.currentMode == ModeCompose {
				cmd = textinput.Blink
			}
			out = append(out, a)
		case SubmitAction:
			// Fill in the composed message
			out = append(out, SubmitAction{Message: h.textInput.Value()})
		default:
			out = append(out, action)
		}
	}

	// Unconsumed keys in compose mode feed the text input
	if h.currentMode == ModeCompose && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		out = append(out, UpdateTextAction{Text: h.textInput.Value()})
	}

	return out, cmd
}

func (h *Handler) setMode(mode Mode) {
	h.currentMode = mode
	if mode == ModeCompose {
		h.textInput.Focus()
	} else {
		h.textInput.Blur()
	}
}

// CurrentMode returns the active input mode
func (h *Handler) CurrentMode() Mode {
	return h.currentMode
}

// ChangeMode switches the active input mode
func (h *Handler) ChangeMode(mode Mode) {
	h.setMode(mode)
}

// TextInput returns the shared compose field
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// SetText replaces the compose field contents (draft restore, rehydration)
func (h *Handler) SetText(text string) {
	h.textInput.SetValue(text)
	h.textInput.CursorEnd()
}

// SetPlaceholder updates the compose field's placeholder copy
func (h *Handler) SetPlaceholder(placeholder string) {
	h.textInput.Placeholder = placeholder
}

// Update handles non-keyboard messages for the text input (blink ticks)
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode != ModeCompose {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}
