package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/wizard/buffer"
)

// Model is a Bubble Tea component that renders and edits a buffer.
type Model struct {
	cfg Config
	buf *buffer.Buffer

	focused bool

	viewport viewport.Model
	xOffset  int

	mouseDragging bool

	lastBufVersion  uint64
	lastTextVersion uint64

	highlights [][]HighlightSpan
}

func New(cfg Config) Model {
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	m := Model{
		cfg:      cfg,
		buf:      buffer.New(cfg.Text, buffer.Options{HistoryLimit: cfg.HistoryLimit}),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.lastBufVersion = m.buf.Version()
	m.lastTextVersion = m.buf.TextVersion()
	m.refreshHighlights()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

func (m Model) Text() string { return m.buf.Text() }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	m.viewport.Width = maxInt(width, 0)
	m.viewport.Height = maxInt(height, 0)
	m.rebuildContent()
	if m.followCursor() {
		m.rebuildContent()
	}
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) ReadOnly() bool { return m.cfg.ReadOnly }

func (m Model) SetReadOnly(ro bool) Model {
	m.cfg.ReadOnly = ro
	return m
}

// SetText replaces the whole document (for example after a reload). The
// replacement goes through the same change path as typing.
func (m Model) SetText(text string) Model {
	m.buf.SetText(text)
	m.syncFromBuffer()
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.updateKey(msg)
		m.syncFromBuffer()
		return m, cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		m, cmd = m.updateMouse(msg)
		m.syncFromBuffer()
		return m, cmd
	default:
		m.syncFromBuffer()
		return m, nil
	}
}

func (m Model) View() string { return m.viewport.View() }

// syncFromBuffer reacts to buffer changes: a text change re-highlights the
// document and notifies OnChange; any change rebuilds the view.
func (m *Model) syncFromBuffer() {
	if m.buf == nil {
		return
	}
	ver := m.buf.Version()
	if ver == m.lastBufVersion {
		return
	}
	m.lastBufVersion = ver

	if tv := m.buf.TextVersion(); tv != m.lastTextVersion {
		m.lastTextVersion = tv
		m.refreshHighlights()
		if m.cfg.OnChange != nil {
			m.cfg.OnChange(buildChangeEvent(m.buf))
		}
	}

	m.rebuildContent()
	if m.followCursor() {
		m.rebuildContent()
	}
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

// followCursor scrolls the cursor into view. It reports whether the
// horizontal offset changed, which requires a re-render.
func (m *Model) followCursor() bool {
	if m.buf == nil {
		return false
	}
	cur := m.buf.Cursor()

	if h := m.viewport.Height; h > 0 {
		y := m.viewport.YOffset
		if cur.Row < y {
			m.viewport.SetYOffset(cur.Row)
		} else if cur.Row >= y+h {
			m.viewport.SetYOffset(cur.Row - h + 1)
		}
	}

	w := m.contentWidth()
	if w <= 0 {
		return false
	}
	prev := m.xOffset
	cell := cellOffset(m.buf.Line(cur.Row), cur.Col)
	if cell < m.xOffset {
		m.xOffset = cell
	} else if cell >= m.xOffset+w {
		m.xOffset = cell - w + 1
	}
	return m.xOffset != prev
}
