package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/wizard/buffer"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.buf == nil {
		return m, nil
	}

	km := m.cfg.KeyMap
	b := m.buf
	switch {
	case key.Matches(msg, km.Left):
		b.Move(buffer.DirLeft)
	case key.Matches(msg, km.Right):
		b.Move(buffer.DirRight)
	case key.Matches(msg, km.Up):
		b.Move(buffer.DirUp)
	case key.Matches(msg, km.Down):
		b.Move(buffer.DirDown)
	case key.Matches(msg, km.Home):
		b.Move(buffer.DirHome)
	case key.Matches(msg, km.End):
		b.Move(buffer.DirEnd)

	case key.Matches(msg, km.Backspace):
		return m.mutate(msg, b.DeleteBackward)
	case key.Matches(msg, km.Delete):
		return m.mutate(msg, b.DeleteForward)
	case key.Matches(msg, km.Enter):
		return m.mutate(msg, b.InsertNewline)
	case key.Matches(msg, km.Tab):
		return m.mutate(msg, func() { b.InsertRune('\t') })
	case key.Matches(msg, km.Undo):
		return m.mutate(msg, func() { b.Undo() })
	case key.Matches(msg, km.Redo):
		return m.mutate(msg, func() { b.Redo() })

	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
		// Pastes arrive here too and are inserted literally.
		text := string(msg.Runes)
		return m.mutate(msg, func() { b.InsertText(text) })
	}
	return m, nil
}

// mutate applies edit unless the editor is read-only, in which case the host
// is told through ReadOnlyBlockedMsg.
func (m Model) mutate(msg tea.KeyMsg, edit func()) (Model, tea.Cmd) {
	if m.cfg.ReadOnly {
		k := msg.String()
		return m, func() tea.Msg { return ReadOnlyBlockedMsg{Key: k} }
	}
	edit()
	return m, nil
}
