// Package fetch loads a start document from a remote URL.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/iw2rmb/wizard"
	"github.com/iw2rmb/wizard/internal/log"
	"github.com/iw2rmb/wizard/internal/tracing"
)

var (
	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("unexpected status")
	// ErrTooLarge is returned when the body exceeds the size cap.
	ErrTooLarge = errors.New("document too large")
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxBytes = 4 << 20
	DefaultCacheTTL = 5 * time.Minute
)

// Document is a fetched page.
type Document struct {
	URL       string
	Text      string
	Title     string
	FetchedAt time.Time
	// Cached is true when the result came from the in-memory cache.
	Cached bool
}

// Options configures a Client. Zero values select the defaults.
type Options struct {
	Timeout  time.Duration
	MaxBytes int64
	CacheTTL time.Duration
	// HTTPClient overrides the transport; Timeout still applies per request.
	HTTPClient *http.Client
	Tracer     trace.Tracer
}

// Client fetches documents and caches them by URL.
type Client struct {
	http     *http.Client
	timeout  time.Duration
	maxBytes int64
	cache    *gocache.Cache
	tracer   trace.Tracer
}

func NewClient(opt Options) *Client {
	if opt.Timeout <= 0 {
		opt.Timeout = DefaultTimeout
	}
	if opt.MaxBytes <= 0 {
		opt.MaxBytes = DefaultMaxBytes
	}
	if opt.CacheTTL <= 0 {
		opt.CacheTTL = DefaultCacheTTL
	}
	if opt.HTTPClient == nil {
		opt.HTTPClient = http.DefaultClient
	}
	if opt.Tracer == nil {
		opt.Tracer = noop.NewTracerProvider().Tracer("noop")
	}
	return &Client{
		http:     opt.HTTPClient,
		timeout:  opt.Timeout,
		maxBytes: opt.MaxBytes,
		cache:    gocache.New(opt.CacheTTL, 2*opt.CacheTTL),
		tracer:   opt.Tracer,
	}
}

// Fetch returns the document at url, from cache when fresh.
func (c *Client) Fetch(ctx context.Context, url string) (Document, error) {
	ctx, span := c.tracer.Start(ctx, tracing.SpanFetch, trace.WithAttributes(attribute.String(tracing.AttrURL, url)))
	defer span.End()

	if v, ok := c.cache.Get(url); ok {
		if doc, ok := v.(Document); ok {
			span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, true))
			log.Debug(log.CatFetch, "cache hit", "url", url)
			doc.Cached = true
			return doc, nil
		}
	}
	span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, false))

	doc, err := c.get(ctx, url)
	if err != nil {
		span.SetStatus(codes.Error, "failed")
		span.SetAttributes(attribute.String(tracing.AttrErrorReason, err.Error()))
		log.Warn(log.CatFetch, "file loading failed", "url", url, "error", err)
		return Document{}, err
	}
	c.cache.SetDefault(url, doc)
	log.Info(log.CatFetch, "file loaded from external source", "url", url, "bytes", len(doc.Text))
	return doc, nil
}

func (c *Client) get(ctx context.Context, url string) (Document, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Document{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	req.Header.Set("Accept", "text/html, */*;q=0.5")
	req.Header.Set("User-Agent", wizard.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Document{}, fmt.Errorf("fetch %s: %w: %s", url, ErrStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return Document{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	if int64(len(body)) > c.maxBytes {
		return Document{}, fmt.Errorf("fetch %s: %w (limit %d bytes)", url, ErrTooLarge, c.maxBytes)
	}

	text := string(body)
	return Document{
		URL:       url,
		Text:      text,
		Title:     Title(text),
		FetchedAt: time.Now(),
	}, nil
}

// Invalidate drops url from the cache.
func (c *Client) Invalidate(url string) {
	c.cache.Delete(url)
}

// Title returns the text of the first <title> element, whitespace collapsed.
func Title(doc string) string {
	z := html.NewTokenizer(strings.NewReader(doc))
	inTitle := false
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return collapse(b.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Title {
				inTitle = true
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if inTitle && atom.Lookup(name) == atom.Title {
				return collapse(b.String())
			}
		case html.TextToken:
			if inTitle {
				b.Write(z.Text())
			}
		}
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
