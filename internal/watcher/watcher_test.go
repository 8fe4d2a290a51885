package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/wizard/internal/watcher"
)

func startWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{Path: path, DebounceDur: 50 * time.Millisecond})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>"), 0o644))

	onChange := startWatcher(t, path)

	// Rapid writes should coalesce into a single notification.
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("<p>%d", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	other := filepath.Join(dir, "other.html")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("b"), 0o644))

	onChange := startWatcher(t, path)

	require.NoError(t, os.WriteFile(other, []byte("changed"), 0o644))

	select {
	case <-onChange:
		t.Fatal("unexpected notification for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_DetectsCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")

	onChange := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("new"), 0o644))

	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected notification for created file")
	}
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing", "index.html")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.Error(t, err)
}

func TestWatcher_StopTwice(t *testing.T) {
	dir := t.TempDir()
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(dir, "index.html")))
	require.NoError(t, err)
	_, err = w.Start()
	require.NoError(t, err)

	require.NoError(t, w.Stop())
	require.NotPanics(t, func() { _ = w.Stop() })
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/tmp/index.html")
	require.Equal(t, "/tmp/index.html", cfg.Path)
	require.Equal(t, 100*time.Millisecond, cfg.DebounceDur)
}

func TestDiff(t *testing.T) {
	require.False(t, watcher.Diff("same", "same").Changed())

	s := watcher.Diff("<p>hello</p>", "<p>hello world</p>")
	require.Equal(t, watcher.Summary{Inserted: 6}, s)
	require.Equal(t, "+6/-0", s.String())

	s = watcher.Diff("<b>é</b>", "<b></b>")
	require.Equal(t, watcher.Summary{Deleted: 1}, s)

	s = watcher.Diff("", "<html>")
	require.Equal(t, watcher.Summary{Inserted: 6}, s)
}

