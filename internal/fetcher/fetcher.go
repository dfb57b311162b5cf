// Package fetcher loads pages for offline picking, either over HTTP with colly or from disk.
package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/jonesrussell/gopicker/internal/dom"
	"github.com/jonesrussell/gopicker/internal/logger"
)

// ErrUnexpectedStatus is returned for non-200 responses.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Defaults for Config.
const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	DefaultRequestTimeout = 30 * time.Second
)

// Config holds fetcher settings.
type Config struct {
	UserAgent      string        `mapstructure:"user_agent" yaml:"user_agent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
}

// Fetcher downloads and parses pages.
type Fetcher struct {
	cfg Config
	log logger.Interface
}

// New creates a Fetcher. Zero config values fall back to the defaults.
func New(cfg Config, log logger.Interface) *Fetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Fetcher{cfg: cfg, log: log.WithComponent("fetcher")}
}

// Load fetches source when it is an http(s) URL and reads it from disk otherwise.
func (f *Fetcher) Load(ctx context.Context, source string) (*dom.Document, error) {
	if IsURL(source) {
		return f.Fetch(ctx, source)
	}
	return LoadFile(source)
}

// IsURL reports whether source is an http or https URL.
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch downloads pageURL. The document URL is the final URL after redirects.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*dom.Document, error) {
	c := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.UserAgent(f.cfg.UserAgent),
		colly.ParseHTTPErrorResponse(),
		colly.DetectCharset(),
	)
	c.SetRequestTimeout(f.cfg.RequestTimeout)

	var (
		body     []byte
		status   int
		finalURL string
		fetchErr error
	)
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
		status = r.StatusCode
		finalURL = r.Request.URL.String()
	})
	c.OnError(func(r *colly.Response, err error) {
		status = r.StatusCode
		fetchErr = err
	})

	start := time.Now()
	if err := c.Visit(pageURL); err != nil && fetchErr == nil {
		fetchErr = err
	}
	c.Wait()

	if status != 0 && status != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}
	if fetchErr != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", fetchErr)
	}

	f.log.WithDuration(time.Since(start)).Debug("Fetched page", "url", finalURL, "bytes", len(body))

	doc, err := dom.Parse(bytes.NewReader(body), finalURL)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadFile parses a saved page. Its URL is the file:// URL of the absolute path.
func LoadFile(path string) (*dom.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return dom.Parse(file, FileURL(abs))
}

// FileURL returns the escaped file:// URL of an absolute path.
func FileURL(abs string) string {
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
