// Package app is the top-level Bubble Tea program: the editor, a status bar,
// a help overlay and the run confirmation prompt.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel/trace"

	"github.com/iw2rmb/wizard/editor"
	"github.com/iw2rmb/wizard/internal/config"
	"github.com/iw2rmb/wizard/internal/fetch"
	"github.com/iw2rmb/wizard/internal/log"
	"github.com/iw2rmb/wizard/internal/recent"
	"github.com/iw2rmb/wizard/internal/session"
	"github.com/iw2rmb/wizard/internal/theme"
	"github.com/iw2rmb/wizard/internal/watcher"
)

// Fetcher loads the start document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (fetch.Document, error)
}

// Recorder remembers saved documents.
type Recorder interface {
	Record(ctx context.Context, e recent.Entry) error
}

// Options wires the program's collaborators. Only Session is required.
type Options struct {
	Config  config.Config
	Session *session.Session
	// Text is the initial document, usually the result of Session.Load.
	Text string

	Fetcher  Fetcher
	Recorder Recorder
	Opener   session.Opener
	// Changes delivers watcher notifications for the session path.
	Changes <-chan struct{}
	Tracer  trace.Tracer
	KeyMap  *KeyMap
}

// passState is shared with the highlighter callback, which runs inside
// editor updates on a copy of the model.
type passState struct {
	stats theme.Stats
}

type Model struct {
	cfg      config.Config
	session  *session.Session
	fetcher  Fetcher
	recorder Recorder
	opener   session.Opener
	changes  <-chan struct{}
	keys     KeyMap

	pass   *passState
	editor editor.Model
	help   *helpView

	width, height int

	showHelp   bool
	confirming bool
	quitting   bool
	message    string
}

func New(opts Options) Model {
	sess := opts.Session
	if sess == nil {
		sess = session.New(opts.Config.File)
	}
	keys := DefaultKeyMap()
	if opts.KeyMap != nil {
		keys = *opts.KeyMap
	}

	pass := &passState{}
	hl := theme.NewHighlighter(
		theme.New(opts.Config.Theme),
		theme.WithTracer(opts.Tracer),
		theme.WithOnPass(func(s theme.Stats) { pass.stats = s }),
	)

	ed := editor.New(editor.Config{
		Text:         opts.Text,
		ShowLineNums: opts.Config.Editor.ShowLineNumbers,
		Style:        editor.DefaultStyle(),
		ReadOnly:     sess.ReadOnly,
		HistoryLimit: opts.Config.Editor.HistoryLimit,
		Highlighter:  hl,
		OnChange:     func(editor.ChangeEvent) { sess.MarkModified() },
	})

	return Model{
		cfg:      opts.Config,
		session:  sess,
		fetcher:  opts.Fetcher,
		recorder: opts.Recorder,
		opener:   opts.Opener,
		changes:  opts.Changes,
		keys:     keys,
		pass:     pass,
		editor:   ed,
		help:     newHelpView(opts.Config.Theme.Help),
	}
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.fetcher != nil && m.cfg.URL != "" && m.editor.Text() == "" {
		cmds = append(cmds, fetchCmd(m.fetcher, m.cfg.URL))
	}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Text returns the current document.
func (m Model) Text() string { return m.editor.Text() }

func (m Model) Session() *session.Session { return m.session }

// Stats returns the summary of the latest classification pass.
func (m Model) Stats() theme.Stats { return m.pass.stats }

// Message returns the status bar message.
func (m Model) Message() string { return m.message }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.editor = m.editor.SetSize(msg.Width, m.editorHeight())
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case editor.ReadOnlyBlockedMsg:
		m.message = "read-only: press ctrl+r to edit"
		log.Warn(log.CatUI, "edit blocked by read-only mode", "key", msg.Key)
		return m, nil

	case fetchedMsg:
		return m.applyFetched(msg), nil

	case fileChangedMsg:
		m = m.reload()
		return m, waitForChange(m.changes)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		if !m.session.Saved {
			log.Warn(log.CatFile, "quit with unsaved changes", "path", m.session.Path)
		}
		return m, tea.Quit
	}

	if m.confirming {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirming = false
			m.run()
		case key.Matches(msg, m.keys.Cancel):
			m.confirming = false
			m.session.CancelRun()
			m.message = "run canceled"
		}
		return m, nil
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Save):
		m.save()
		return m, nil
	case key.Matches(msg, m.keys.Run):
		m.confirming = true
		return m, nil
	case key.Matches(msg, m.keys.ToggleReadOnly):
		ro := m.session.ToggleReadOnly()
		m.editor = m.editor.SetReadOnly(ro)
		if ro {
			m.message = "read-only"
		} else {
			m.message = "editable"
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) save() {
	text := m.editor.Text()
	if err := m.session.Save(context.Background(), text); err != nil {
		m.message = "save failed: " + err.Error()
		return
	}
	m.message = "file saved"
	m.record(text)
}

func (m *Model) run() {
	text := m.editor.Text()
	if err := m.session.Run(context.Background(), text, m.opener); err != nil {
		m.message = "run failed: " + err.Error()
		return
	}
	m.message = "file run"
	m.record(text)
}

func (m *Model) record(text string) {
	if m.recorder == nil {
		return
	}
	err := m.recorder.Record(context.Background(), recent.Entry{
		Path:  m.session.Path,
		Bytes: len(text),
		Spans: m.pass.stats.Spans,
	})
	if err != nil {
		log.ErrorErr(log.CatRecent, "record save failed", err, "path", m.session.Path)
	}
}

// applyFetched fills an empty document with the fetched page. A failed fetch
// leaves the content unchanged.
func (m Model) applyFetched(msg fetchedMsg) Model {
	if msg.err != nil {
		m.message = "loading failed"
		return m
	}
	if strings.TrimSpace(m.editor.Text()) != "" {
		log.Debug(log.CatFetch, "document not empty, fetched page dropped", "url", msg.doc.URL)
		return m
	}
	m.editor = m.editor.SetText(msg.doc.Text)
	label := msg.doc.Title
	if label == "" {
		label = msg.doc.URL
	}
	m.message = "loaded " + label
	return m
}

// reload replaces the document with the file on disk unless there are
// unsaved edits.
func (m Model) reload() Model {
	if !m.session.Saved {
		m.message = "file changed on disk; unsaved edits kept"
		log.Warn(log.CatWatcher, "external change ignored, buffer modified", "path", m.session.Path)
		return m
	}
	if ok, err := m.session.Exists(); err == nil && !ok {
		// Moved or deleted: the buffer is now the only copy.
		m.session.MarkModified()
		m.message = "file removed from disk; buffer kept"
		log.Warn(log.CatWatcher, "file gone, reload skipped", "path", m.session.Path)
		return m
	}
	text, err := m.session.Load()
	if err != nil {
		m.message = "reload failed: " + err.Error()
		log.ErrorErr(log.CatWatcher, "reload failed", err, "path", m.session.Path)
		return m
	}
	before := m.editor.Text()
	if text == before {
		return m
	}
	sum := watcher.Diff(before, text)
	m.editor = m.editor.SetText(text)
	m.session.Saved = true
	m.message = fmt.Sprintf("reloaded %s", sum)
	log.Info(log.CatWatcher, "reloaded from disk", "path", m.session.Path, "diff", sum.String())
	return m
}

func (m Model) editorHeight() int {
	return max(m.height-1, 0)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.help.View(m.width)
	}
	bottom := m.statusView()
	if m.confirming {
		bottom = m.promptView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.editor.View(), bottom)
}
