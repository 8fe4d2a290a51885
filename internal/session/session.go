// Package session holds the state of the open document: where it lives, whether
// edits are allowed and whether the buffer matches what is on disk.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/iw2rmb/wizard/internal/log"
	"github.com/iw2rmb/wizard/internal/tracing"
)

// ErrNoPath is returned by file operations on a session without a path.
var ErrNoPath = errors.New("session has no path")

// Session is the editor-owned document state.
type Session struct {
	ID       uuid.UUID
	Path     string
	ReadOnly bool
	// Saved is true while the buffer matches the file.
	Saved bool

	fs     afero.Fs
	tracer trace.Tracer
}

// Option configures a Session.
type Option func(*Session)

// WithFs replaces the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Session) { s.fs = fs }
}

// WithTracer records saves as spans on tr.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Session) {
		if tr != nil {
			s.tracer = tr
		}
	}
}

// WithReadOnly sets the initial read-only flag.
func WithReadOnly(ro bool) Option {
	return func(s *Session) { s.ReadOnly = ro }
}

// New returns a session for path. A fresh session counts as saved.
func New(path string, opts ...Option) *Session {
	s := &Session{
		ID:     uuid.New(),
		Path:   path,
		Saved:  true,
		fs:     afero.NewOsFs(),
		tracer: noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the document. A missing file yields empty text.
func (s *Session) Load() (string, error) {
	if s.Path == "" {
		return "", ErrNoPath
	}
	data, err := afero.ReadFile(s.fs, s.Path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug(log.CatFile, "file not found, starting empty", "path", s.Path)
		s.Saved = true
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", s.Path, err)
	}
	s.Saved = true
	log.Info(log.CatFile, "file loaded", "path", s.Path, "bytes", len(data))
	return string(data), nil
}

// Exists reports whether the document is present on the filesystem.
func (s *Session) Exists() (bool, error) {
	if s.Path == "" {
		return false, ErrNoPath
	}
	return afero.Exists(s.fs, s.Path)
}

// Save writes text to the session path. An existing file is truncated; a
// missing one is created.
func (s *Session) Save(ctx context.Context, text string) error {
	_, span := s.tracer.Start(ctx, tracing.SpanSave, trace.WithAttributes(
		attribute.String(tracing.AttrSessionID, s.ID.String()),
		attribute.String(tracing.AttrPath, s.Path),
		attribute.Int(tracing.AttrTextBytes, len(text)),
	))
	defer span.End()

	if err := s.write(text); err != nil {
		span.SetStatus(codes.Error, "failed")
		span.SetAttributes(attribute.String(tracing.AttrErrorReason, err.Error()))
		log.ErrorErr(log.CatFile, "file save failed", err, "path", s.Path)
		return err
	}
	s.Saved = true
	log.Info(log.CatFile, "file saved", "path", s.Path, "bytes", len(text))
	return nil
}

func (s *Session) write(text string) error {
	if s.Path == "" {
		return ErrNoPath
	}
	f, err := s.fs.OpenFile(s.Path, os.O_WRONLY|os.O_TRUNC, 0)
	if errors.Is(err, os.ErrNotExist) {
		f, err = s.create()
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", s.Path, err)
	}
	if _, err := io.WriteString(f, text); err != nil {
		_ = f.Close()
		return fmt.Errorf("save %s: %w", s.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save %s: %w", s.Path, err)
	}
	return nil
}

func (s *Session) create() (afero.File, error) {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return s.fs.OpenFile(s.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

// MarkModified records that the buffer diverged from the file.
func (s *Session) MarkModified() {
	s.Saved = false
}

// ToggleReadOnly flips the read-only flag and returns the new value.
func (s *Session) ToggleReadOnly() bool {
	s.ReadOnly = !s.ReadOnly
	log.Debug(log.CatFile, "read-only toggled", "read_only", s.ReadOnly)
	return s.ReadOnly
}

// URL returns the file:// URL of the session path.
func (s *Session) URL() (string, error) {
	if s.Path == "" {
		return "", ErrNoPath
	}
	abs, err := filepath.Abs(s.Path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

// Run saves text and opens the document in the browser.
func (s *Session) Run(ctx context.Context, text string, opener Opener) error {
	if err := s.Save(ctx, text); err != nil {
		return err
	}
	u, err := s.URL()
	if err != nil {
		return err
	}
	if opener == nil {
		opener = BrowserOpener{}
	}
	if err := opener.Open(ctx, u); err != nil {
		log.ErrorErr(log.CatFile, "file run failed", err, "url", u)
		return fmt.Errorf("open %s: %w", u, err)
	}
	log.Info(log.CatFile, "file run", "url", u)
	return nil
}

// CancelRun records a declined run confirmation.
func (s *Session) CancelRun() {
	log.Warn(log.CatFile, "file run canceled", "path", s.Path)
}
