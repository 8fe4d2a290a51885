package session

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/iw2rmb/wizard/internal/tracing"
)

func newMemSession(t *testing.T, path string) (*Session, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return New(path, WithFs(fs)), fs
}

func TestNew(t *testing.T) {
	a := New("/tmp/a.html")
	b := New("/tmp/a.html", WithReadOnly(true))

	require.NotEqual(t, a.ID, b.ID)
	require.True(t, a.Saved)
	require.False(t, a.ReadOnly)
	require.True(t, b.ReadOnly)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s, _ := newMemSession(t, "/home/u/index.html")

	text, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, text)
	require.True(t, s.Saved)
}

func TestLoad_ReadsFile(t *testing.T) {
	s, fs := newMemSession(t, "/home/u/index.html")
	require.NoError(t, afero.WriteFile(fs, "/home/u/index.html", []byte("<p>hi</p>"), 0o644))

	text, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, "<p>hi</p>", text)
}

func TestExists(t *testing.T) {
	s, fs := newMemSession(t, "/docs/index.html")
	ok, err := s.Exists()
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, afero.WriteFile(fs, "/docs/index.html", []byte("<p>"), 0o644))
	ok, err = s.Exists()
	require.NoError(t, err)
	require.True(t, ok)

	_, err = New("").Exists()
	require.ErrorIs(t, err, ErrNoPath)
}

func TestSave_CreatesMissingFile(t *testing.T) {
	s, fs := newMemSession(t, "/home/u/site/index.html")
	s.MarkModified()

	require.NoError(t, s.Save(context.Background(), "<html>"))
	require.True(t, s.Saved)

	data, err := afero.ReadFile(fs, "/home/u/site/index.html")
	require.NoError(t, err)
	require.Equal(t, "<html>", string(data))
}

func TestSave_TruncatesExistingFile(t *testing.T) {
	s, fs := newMemSession(t, "/index.html")
	require.NoError(t, afero.WriteFile(fs, "/index.html", []byte("a much longer previous body"), 0o644))

	require.NoError(t, s.Save(context.Background(), "short"))

	data, err := afero.ReadFile(fs, "/index.html")
	require.NoError(t, err)
	require.Equal(t, "short", string(data))
}

func TestSave_NoPath(t *testing.T) {
	s, _ := newMemSession(t, "")
	s.MarkModified()

	err := s.Save(context.Background(), "x")
	require.ErrorIs(t, err, ErrNoPath)
	require.False(t, s.Saved)

	_, err = s.Load()
	require.ErrorIs(t, err, ErrNoPath)
}

func TestSave_ReadOnlyFs(t *testing.T) {
	base := afero.NewMemMapFs()
	s := New("/index.html", WithFs(afero.NewReadOnlyFs(base)))
	s.MarkModified()

	require.Error(t, s.Save(context.Background(), "x"))
	require.False(t, s.Saved)
}

func TestSave_RecordsSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	s := New("/index.html", WithFs(afero.NewMemMapFs()), WithTracer(tp.Tracer("test")))

	require.NoError(t, s.Save(context.Background(), "x"))

	ended := rec.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, tracing.SpanSave, ended[0].Name())
}

func TestToggleReadOnly(t *testing.T) {
	s, _ := newMemSession(t, "/index.html")

	require.True(t, s.ToggleReadOnly())
	require.True(t, s.ReadOnly)
	require.False(t, s.ToggleReadOnly())
}

func TestURL(t *testing.T) {
	s, _ := newMemSession(t, "/home/u/index.html")

	u, err := s.URL()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(u, "file:///"), u)
	require.True(t, strings.HasSuffix(u, "/index.html"), u)
}

func TestRun_SavesThenOpens(t *testing.T) {
	s, fs := newMemSession(t, "/home/u/index.html")
	s.MarkModified()

	var opened string
	opener := OpenerFunc(func(_ context.Context, url string) error {
		exists, err := afero.Exists(fs, "/home/u/index.html")
		require.NoError(t, err)
		require.True(t, exists, "file is saved before the browser opens")
		opened = url
		return nil
	})

	require.NoError(t, s.Run(context.Background(), "<b>", opener))
	require.True(t, s.Saved)
	require.True(t, strings.HasSuffix(opened, "/home/u/index.html"), opened)
}

func TestRun_OpenerError(t *testing.T) {
	s, _ := newMemSession(t, "/index.html")
	boom := errors.New("no browser")

	err := s.Run(context.Background(), "x", OpenerFunc(func(context.Context, string) error { return boom }))
	require.ErrorIs(t, err, boom)
	require.True(t, s.Saved, "the save still happened")
}

func TestRun_SaveErrorSkipsOpen(t *testing.T) {
	s, _ := newMemSession(t, "")
	called := false

	err := s.Run(context.Background(), "x", OpenerFunc(func(context.Context, string) error {
		called = true
		return nil
	}))
	require.ErrorIs(t, err, ErrNoPath)
	require.False(t, called)
}

func TestBrowserCommand(t *testing.T) {
	name, args := browserCommand("linux", "file:///a.html")
	require.Equal(t, "xdg-open", name)
	require.Equal(t, []string{"file:///a.html"}, args)

	name, _ = browserCommand("darwin", "file:///a.html")
	require.Equal(t, "open", name)

	name, args = browserCommand("windows", "file:///a.html")
	require.Equal(t, "rundll32", name)
	require.Len(t, args, 2)
}


func TestStartDetached_ReapsChild(t *testing.T) {
	// The test binary with no matching tests exits immediately.
	done, err := startDetached(exec.Command(os.Args[0], "-test.run=^$"))
	require.NoError(t, err)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("child was not reaped")
	}
}

func TestStartDetached_StartError(t *testing.T) {
	done, err := startDetached(exec.Command("/nonexistent/wizard-browser"))
	require.Error(t, err)
	require.Nil(t, done)
}
