package session

import (
	"context"
	"os/exec"
	"runtime"
)

// Opener shows a URL to the user.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, url string) error

func (f OpenerFunc) Open(ctx context.Context, url string) error { return f(ctx, url) }

// BrowserOpener opens URLs with the platform's default handler.
type BrowserOpener struct{}

func (BrowserOpener) Open(ctx context.Context, url string) error {
	name, args := browserCommand(runtime.GOOS, url)
	_, err := startDetached(exec.CommandContext(ctx, name, args...)) // #nosec G204 -- fixed command, url is an argument
	return err
}

// startDetached starts cmd and reaps it in the background. The returned
// channel yields the exit result once.
func startDetached(cmd *exec.Cmd) (<-chan error, error) {
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	return done, nil
}

func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
