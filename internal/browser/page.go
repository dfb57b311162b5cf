// Package browser drives a Chrome tab with chromedp and exposes it as a picker host.
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/inspector"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/jonesrussell/gopicker/internal/dom"
	"github.com/jonesrussell/gopicker/internal/logger"
	"github.com/jonesrussell/gopicker/internal/picker"
)

// ErrPageClosed is returned by actions on a closed page.
var ErrPageClosed = errors.New("page closed")

// Defaults for Config.
const (
	DefaultWindowWidth  = 1366
	DefaultWindowHeight = 900
	DefaultTimeout      = 30 * time.Second

	actionTimeout = 10 * time.Second
	eventBuffer   = 64
)

// Config holds browser settings.
type Config struct {
	Headless     bool          `mapstructure:"headless" yaml:"headless"`
	ExecPath     string        `mapstructure:"exec_path" yaml:"exec_path"`
	WindowWidth  int           `mapstructure:"window_width" yaml:"window_width"`
	WindowHeight int           `mapstructure:"window_height" yaml:"window_height"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// Args are extra Chrome flags, "name" or "name=value".
	Args []string `mapstructure:"args" yaml:"args"`
}

// AllocatorOptions translates cfg into chromedp allocator options.
func AllocatorOptions(cfg Config) []chromedp.ExecAllocatorOption {
	width, height := cfg.WindowWidth, cfg.WindowHeight
	if width <= 0 {
		width = DefaultWindowWidth
	}
	if height <= 0 {
		height = DefaultWindowHeight
	}

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.WindowSize(width, height),
		chromedp.Flag("enable-automation", true),
	}
	if cfg.Headless {
		opts = append(opts, chromedp.Headless, chromedp.DisableGPU)
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	for _, arg := range cfg.Args {
		key, value, found := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if found {
			opts = append(opts, chromedp.Flag(key, value))
		} else {
			opts = append(opts, chromedp.Flag(key, true))
		}
	}
	return opts
}

// keyNames maps key names to the characters chromedp.KeyEvent understands.
var keyNames = map[string]string{
	"Escape": kb.Escape,
	"Enter":  kb.Enter,
	"Tab":    kb.Tab,
}

// Page is a Chrome tab. It implements picker.Host.
type Page struct {
	cfg Config
	log logger.Interface

	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc

	mu        sync.Mutex
	events    chan picker.Event
	closed    bool
	listeners int
}

var _ picker.Host = (*Page)(nil)

// Launch starts Chrome and opens a tab with the picker binding installed.
func Launch(ctx context.Context, cfg Config, log logger.Interface) (*Page, error) {
	if log == nil {
		log = logger.NewNoOp()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	log = log.WithComponent("browser")

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, AllocatorOptions(cfg)...)
	tabCtx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		}),
		chromedp.WithErrorf(func(format string, args ...any) {
			log.Warn(fmt.Sprintf(format, args...))
		}),
	)

	p := &Page{
		cfg:         cfg,
		log:         log,
		ctx:         tabCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		events:      make(chan picker.Event, eventBuffer),
	}

	chromedp.ListenTarget(tabCtx, p.onTargetEvent)

	err := chromedp.Run(tabCtx,
		runtime.AddBinding(bindingName),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(bootstrapScript).Do(ctx)
			return err
		}),
	)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	go func() {
		<-tabCtx.Done()
		p.closeEvents()
	}()

	log.Info("Browser started", "headless", cfg.Headless)
	return p, nil
}

// Navigate loads pageURL and waits for the body.
func (p *Page) Navigate(ctx context.Context, pageURL string) error {
	runCtx, cancel := p.actionContext(ctx, p.cfg.Timeout)
	defer cancel()

	start := time.Now()
	err := chromedp.Run(runCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(bootstrapScript, nil),
	)
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", pageURL, err)
	}
	p.log.WithDuration(time.Since(start)).Info("Page loaded", "url", pageURL)
	return nil
}

// Close shuts the tab and the browser down and closes the event stream.
func (p *Page) Close() {
	p.cancel()
	p.allocCancel()
	p.closeEvents()
}

// Events implements picker.ListenerTarget.
func (p *Page) Events() <-chan picker.Event {
	return p.events
}

// AddEventListener implements picker.ListenerTarget.
func (p *Page) AddEventListener(ctx context.Context, l picker.Listener) error {
	if err := p.eval(ctx, "add", nil, l); err != nil {
		return err
	}
	p.mu.Lock()
	p.listeners++
	p.mu.Unlock()
	return nil
}

// RemoveEventListener implements picker.ListenerTarget.
func (p *Page) RemoveEventListener(ctx context.Context, l picker.Listener) error {
	if err := p.eval(ctx, "remove", nil, l); err != nil {
		return err
	}
	p.mu.Lock()
	if p.listeners > 0 {
		p.listeners--
	}
	p.mu.Unlock()
	return nil
}

// Listening reports whether picker listeners are installed in the page.
func (p *Page) Listening() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.listeners > 0
}

// ClickSelector clicks the first visible element matching sel with real input events.
func (p *Page) ClickSelector(ctx context.Context, sel string) error {
	runCtx, cancel := p.actionContext(ctx, actionTimeout)
	defer cancel()
	if err := chromedp.Run(runCtx, chromedp.Click(sel, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed to click %q: %w", sel, err)
	}
	return nil
}

// PressKey sends a key press, e.g. "Escape".
func (p *Page) PressKey(ctx context.Context, key string) error {
	runCtx, cancel := p.actionContext(ctx, actionTimeout)
	defer cancel()
	if named, ok := keyNames[key]; ok {
		key = named
	}
	if err := chromedp.Run(runCtx, chromedp.KeyEvent(key)); err != nil {
		return fmt.Errorf("failed to press %q: %w", key, err)
	}
	return nil
}

// Location returns the current page URL.
func (p *Page) Location(ctx context.Context) (string, error) {
	runCtx, cancel := p.actionContext(ctx, actionTimeout)
	defer cancel()
	var location string
	if err := chromedp.Run(runCtx, chromedp.Location(&location)); err != nil {
		return "", fmt.Errorf("failed to read location: %w", err)
	}
	return location, nil
}

type hitResult struct {
	Path   []int  `json:"path"`
	Handle string `json:"handle"`
}

type snapshotResult struct {
	HTML string `json:"html"`
	URL  string `json:"url"`
}

// ElementFromPoint implements picker.HitTester. The hit is resolved on a fresh
// snapshot of the page so selectors are computed against the current DOM.
func (p *Page) ElementFromPoint(ctx context.Context, x, y float64) (*picker.Target, error) {
	var hit *hitResult
	if err := p.eval(ctx, "hit", &hit, x, y); err != nil {
		return nil, err
	}
	if hit == nil {
		return nil, nil
	}

	doc, err := p.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	node := doc.NodeAtPath(hit.Path)
	if node == nil {
		p.log.Warn("Hit element not found in snapshot", "path", hit.Path)
		return nil, nil
	}
	return &picker.Target{Doc: doc, Node: node, Handle: hit.Handle}, nil
}

// Snapshot parses the current page, without the overlay.
func (p *Page) Snapshot(ctx context.Context) (*dom.Document, error) {
	var snap *snapshotResult
	if err := p.eval(ctx, "snapshot", &snap); err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, fmt.Errorf("failed to snapshot page: %w", ErrPageClosed)
	}
	return dom.ParseString(snap.HTML, snap.URL)
}

// ShowOverlay implements picker.Overlay.
func (p *Page) ShowOverlay(ctx context.Context, message string) error {
	return p.eval(ctx, "overlay", nil, message)
}

// HideOverlay implements picker.Overlay.
func (p *Page) HideOverlay(ctx context.Context) error {
	return p.eval(ctx, "hideOverlay", nil)
}

// SetOutline implements picker.Outliner.
func (p *Page) SetOutline(ctx context.Context, t *picker.Target, style string) error {
	return p.eval(ctx, "outline", nil, t.Handle, style)
}

// RemoveOutline implements picker.Outliner.
func (p *Page) RemoveOutline(ctx context.Context, t *picker.Target) error {
	return p.eval(ctx, "unoutline", nil, t.Handle)
}

// eval calls a runtime method in the page and decodes its result into res.
func (p *Page) eval(ctx context.Context, method string, res any, args ...any) error {
	if p.ctx.Err() != nil {
		return ErrPageClosed
	}
	expr, err := call(method, args...)
	if err != nil {
		return err
	}

	runCtx, cancel := p.actionContext(ctx, actionTimeout)
	defer cancel()

	if err = chromedp.Run(runCtx, chromedp.Evaluate(expr, res)); err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}
	return nil
}

// actionContext derives a tab context that is also cancelled with ctx.
func (p *Page) actionContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithTimeout(p.ctx, timeout)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// onTargetEvent runs on chromedp's event goroutine and must not block.
func (p *Page) onTargetEvent(ev any) {
	switch e := ev.(type) {
	case *runtime.EventBindingCalled:
		if e.Name != bindingName {
			return
		}
		event, err := DecodeEvent(e.Payload)
		if err != nil {
			p.log.Warn("Invalid page event", "payload", e.Payload, "error", err)
			return
		}
		p.push(event)
	case *page.EventFrameNavigated:
		if e.Frame.ParentID != "" {
			return
		}
		if p.Listening() {
			p.log.Warn("Page navigated away while picking", "url", e.Frame.URL)
			p.closeEvents()
		}
	case *inspector.EventDetached:
		p.log.Warn("Browser tab detached", "reason", e.Reason)
		p.closeEvents()
	}
}

// DecodeEvent parses a binding payload.
func DecodeEvent(payload string) (picker.Event, error) {
	var ev picker.Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return picker.Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	if ev.Type == "" {
		return picker.Event{}, errors.New("event without type")
	}
	return ev, nil
}

func (p *Page) push(ev picker.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.events <- ev:
	default:
		p.log.Warn("Dropping page event, consumer is behind", "type", ev.Type)
	}
}

func (p *Page) closeEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.events)
}
