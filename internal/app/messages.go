package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/wizard/internal/fetch"
)

// fetchedMsg carries the result of the start document fetch.
type fetchedMsg struct {
	doc fetch.Document
	err error
}

// fileChangedMsg signals that the open file changed on disk.
type fileChangedMsg struct{}

func fetchCmd(f Fetcher, url string) tea.Cmd {
	return func() tea.Msg {
		doc, err := f.Fetch(context.Background(), url)
		return fetchedMsg{doc: doc, err: err}
	}
}

// waitForChange blocks until the watcher fires. It is re-armed after every
// fileChangedMsg.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}
