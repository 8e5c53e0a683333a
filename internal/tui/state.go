package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/vs/internal/tui/layout"
)

// Mode is the input mode of the app.
type Mode int

const (
	ModeNormal Mode = iota
	ModeJump
)

// MessageType selects how the message line is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// JumpState holds state for the jump prompt.
type JumpState struct {
	Input textinput.Model // index or fuzzy text
}

// NewJumpState creates a new JumpState with initialized input.
func NewJumpState(cfg layout.LayoutConfig) JumpState {
	input := textinput.New()
	input.Placeholder = "index or text"
	input.Prompt = "/ "
	input.CharLimit = cfg.Input.JumpCharLimit
	input.Width = cfg.Input.JumpWidth
	return JumpState{Input: input}
}

// Reset clears the prompt for a new session.
func (j *JumpState) Reset() {
	j.Input.Reset()
	j.Input.Blur()
}
