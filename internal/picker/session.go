// Package picker runs the two-step interactive pick: the user clicks an item in a
// listing, then a pagination control, and the session derives an extraction
// configuration from the two clicks.
package picker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonesrussell/gopicker/internal/logger"
	"github.com/jonesrussell/gopicker/internal/pagination"
	"github.com/jonesrussell/gopicker/internal/pattern"
	"github.com/jonesrussell/gopicker/internal/selector"
)

var (
	// ErrNotStarted is returned when events are handled before Start.
	ErrNotStarted = errors.New("picker session not started")
	// ErrSessionFinished is returned when a finished session is started again or
	// receives a pick or key after the terminal transition.
	ErrSessionFinished = errors.New("picker session already finished")
	// ErrEventStreamClosed is returned by Run when the page stops delivering events.
	ErrEventStreamClosed = errors.New("picker event stream closed")
)

// User facing messages.
const (
	MessageAlreadyRunning = "Picker already running. Press Esc to cancel."
	MessageCancelled      = "Picker cancelled."
	MessageStepItem       = "Picker ON.\nClicks will NOT navigate.\nClick an item name/link first.\n(Esc cancels / or skips pagination at step 2)"
	MessageStepPagination = "Item selected.\nNow click ANY pagination segment/link.\nIf there is NO pagination, press Esc."
)

// DefaultCancelKey is the key that cancels or skips a step.
const DefaultCancelKey = "Escape"

// Step is the position of a session in its lifecycle.
type Step int

const (
	// StepIdle is a session that has not started.
	StepIdle Step = iota
	// StepItem waits for the item click.
	StepItem
	// StepPagination waits for the pagination click.
	StepPagination
	// StepTerminal is a finished session.
	StepTerminal
)

func (s Step) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepItem:
		return "item"
	case StepPagination:
		return "pagination"
	case StepTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Step2Cancel is what the cancel key does while waiting for the pagination click.
type Step2Cancel string

const (
	// Step2Skip emits the configuration without pagination.
	Step2Skip Step2Cancel = "skip"
	// Step2Abort cancels the session like the first step does.
	Step2Abort Step2Cancel = "abort"
)

// Session is one run of the picker on a host. It is single use.
type Session struct {
	id        string
	host      Host
	presenter Presenter
	registry  *Registry
	guard     *EventGuard
	highlight *Highlighter
	log       logger.Interface

	builder         *selector.Builder
	rows            *selector.RowFinder
	classifier      *pagination.Classifier
	sections        *pagination.SectionDetector
	rowRecognizers  []pattern.Recognizer
	itemRecognizers []pattern.Recognizer

	cancelKey         string
	step2Cancel       Step2Cancel
	highlightStyle    string
	highlightDuration time.Duration

	step         Step
	lease        *Lease
	section      string
	rowSelector  string
	itemSelector string
	result       *Configuration
	teardownOnce sync.Once
}

// Option configures a Session.
type Option func(*Session)

// WithRegistry replaces DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(s *Session) { s.registry = r }
}

// WithLogger sets the session logger.
func WithLogger(log logger.Interface) Option {
	return func(s *Session) { s.log = log }
}

// WithBuilder sets the selector builder shared by every derivation.
func WithBuilder(b *selector.Builder) Option {
	return func(s *Session) { s.builder = b }
}

// WithRowFinder sets the repeating row search.
func WithRowFinder(f *selector.RowFinder) Option {
	return func(s *Session) { s.rows = f }
}

// WithClassifier sets the pagination classifier.
func WithClassifier(c *pagination.Classifier) Option {
	return func(s *Session) { s.classifier = c }
}

// WithSectionDetector sets the section detector.
func WithSectionDetector(d *pagination.SectionDetector) Option {
	return func(s *Session) { s.sections = d }
}

// WithRecognizers sets the known row and item patterns.
func WithRecognizers(rows, items []pattern.Recognizer) Option {
	return func(s *Session) {
		s.rowRecognizers = rows
		s.itemRecognizers = items
	}
}

// WithCancelKey sets the key that cancels a step.
func WithCancelKey(key string) Option {
	return func(s *Session) {
		if key != "" {
			s.cancelKey = key
		}
	}
}

// WithStep2Cancel sets the cancel behaviour of the pagination step.
func WithStep2Cancel(mode Step2Cancel) Option {
	return func(s *Session) {
		if mode != "" {
			s.step2Cancel = mode
		}
	}
}

// WithHighlight sets the flash outline style and duration.
func WithHighlight(style string, duration time.Duration) Option {
	return func(s *Session) {
		s.highlightStyle = style
		s.highlightDuration = duration
	}
}

// NewSession creates an idle session on host.
func NewSession(host Host, presenter Presenter, opts ...Option) *Session {
	s := &Session{
		id:              uuid.New().String(),
		host:            host,
		presenter:       presenter,
		registry:        DefaultRegistry,
		log:             logger.NewNoOp(),
		rowRecognizers:  pattern.DefaultRowRecognizers(),
		itemRecognizers: pattern.DefaultItemRecognizers(),
		cancelKey:       DefaultCancelKey,
		step2Cancel:     Step2Skip,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.builder == nil {
		s.builder = selector.NewBuilder()
	}
	if s.rows == nil {
		s.rows = selector.NewRowFinder(s.builder)
	}
	if s.classifier == nil {
		s.classifier = pagination.NewDefaultClassifier(s.builder, nil)
	}
	if s.sections == nil {
		s.sections = pagination.NewSectionDetector(nil, "")
	}

	s.log = s.log.WithComponent("picker").WithSessionID(s.id)
	s.guard = NewEventGuard(host)
	s.highlight = NewHighlighter(host, s.highlightStyle, s.highlightDuration, s.log)
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Step returns the current step.
func (s *Session) Step() Step {
	return s.step
}

// Result returns the emitted configuration, or nil if none was emitted.
func (s *Session) Result() *Configuration {
	return s.result
}

// Start takes the registry lease, installs the event guard and shows the first
// instructions. On ErrSessionActive the user is told and nothing changes.
func (s *Session) Start(ctx context.Context) error {
	switch s.step {
	case StepIdle:
	case StepTerminal:
		return ErrSessionFinished
	default:
		return fmt.Errorf("session %s: %w", s.id, ErrSessionActive)
	}

	lease, err := s.registry.Acquire(s.id)
	if err != nil {
		s.log.Warn("Picker already running", "error", err)
		s.presenter.Notify(ctx, MessageAlreadyRunning)
		return err
	}
	s.lease = lease

	if err = s.guard.Install(ctx); err != nil {
		s.Teardown(ctx)
		return fmt.Errorf("failed to install event guard: %w", err)
	}
	if err = s.host.ShowOverlay(ctx, MessageStepItem); err != nil {
		s.Teardown(ctx)
		return fmt.Errorf("failed to show overlay: %w", err)
	}

	s.step = StepItem
	s.log.Info("Picker started", "step", s.step.String())
	return nil
}

// HandlePick processes a click on t.
func (s *Session) HandlePick(ctx context.Context, t *Target) error {
	switch s.step {
	case StepIdle:
		return ErrNotStarted
	case StepTerminal:
		return ErrSessionFinished
	}
	if t == nil || t.Node == nil || t.Doc == nil {
		s.log.Debug("No element under pointer")
		return nil
	}

	if s.step == StepItem {
		return s.pickItem(ctx, t)
	}
	return s.pickPagination(ctx, t)
}

func (s *Session) pickItem(ctx context.Context, t *Target) error {
	s.highlight.Flash(ctx, t)

	s.section = s.sections.Detect(t.Doc)

	var rowSource, itemSource string
	s.rowSelector, rowSource = s.deriveRow(t.Doc, t.Node)
	s.itemSelector, itemSource = s.deriveItem(t.Doc, s.rowSelector, t.Node)

	s.log.Info("Item picked",
		"section", s.section,
		"row_selector", s.rowSelector,
		"row_source", rowSource,
		"item_selector", s.itemSelector,
		"item_source", itemSource,
	)

	if err := s.host.ShowOverlay(ctx, MessageStepPagination); err != nil {
		s.log.Warn("Failed to update overlay", "error", err)
	}
	s.step = StepPagination
	return nil
}

func (s *Session) pickPagination(ctx context.Context, t *Target) error {
	res, rule := s.classifier.Classify(pagination.Context{
		Doc:     t.Doc,
		Clicked: t.Node,
		Section: s.section,
	})
	s.log.Info("Pagination picked", "mode", string(res.Mode), "selector", res.Selector, "rule", rule)
	return s.emit(ctx, res)
}

// HandleCancelKey processes the cancel key.
func (s *Session) HandleCancelKey(ctx context.Context) error {
	switch s.step {
	case StepIdle:
		return ErrNotStarted
	case StepTerminal:
		return ErrSessionFinished
	case StepPagination:
		if s.step2Cancel == Step2Skip {
			s.log.Info("Pagination skipped")
			res, _ := s.classifier.Classify(pagination.Context{Section: s.section})
			return s.emit(ctx, res)
		}
		fallthrough
	case StepItem:
		s.Teardown(ctx)
		s.log.Info("Picker cancelled")
		s.presenter.Notify(ctx, MessageCancelled)
	}
	return nil
}

// emit builds the configuration, tears the session down and presents the result.
func (s *Session) emit(ctx context.Context, res pagination.Result) error {
	section := s.section
	cfg := Configuration{
		SectionName:  &section,
		RowSelector:  s.rowSelector,
		ItemSelector: s.itemSelector,
		Pagination:   res,
	}
	s.result = &cfg
	s.Teardown(ctx)

	if err := s.presenter.Present(ctx, cfg); err != nil {
		return fmt.Errorf("failed to present configuration: %w", err)
	}
	return nil
}

// Teardown reverts the highlight, removes the listeners, hides the overlay and releases
// the lease. Only the first call has an effect.
func (s *Session) Teardown(ctx context.Context) {
	s.teardownOnce.Do(func() {
		s.highlight.Release(ctx)
		if err := s.guard.Remove(ctx); err != nil {
			s.log.Warn("Failed to remove event listeners", "error", err)
		}
		if s.lease != nil {
			if err := s.host.HideOverlay(ctx); err != nil {
				s.log.Warn("Failed to hide overlay", "error", err)
			}
		}
		s.lease.Release()
		s.step = StepTerminal
		s.log.Debug("Picker torn down")
	})
}

// Run starts the session and consumes page events until it finishes. It returns the
// configuration, or nil when the user cancelled. Teardown always runs.
func (s *Session) Run(ctx context.Context) (*Configuration, error) {
	if err := s.Start(ctx); err != nil {
		return nil, err
	}
	defer s.Teardown(context.WithoutCancel(ctx))

	events := s.guard.Events()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil, ErrEventStreamClosed
			}
			if err := s.dispatch(ctx, ev); err != nil {
				return s.result, err
			}
			if s.step == StepTerminal {
				return s.result, nil
			}
		}
	}
}

func (s *Session) dispatch(ctx context.Context, ev Event) error {
	switch ev.Type {
	case EventPointerUp:
		t, err := s.host.ElementFromPoint(ctx, ev.X, ev.Y)
		if err != nil {
			s.log.Warn("Hit test failed", "x", ev.X, "y", ev.Y, "error", err)
			return nil
		}
		return s.HandlePick(ctx, t)
	case EventKeyDown:
		if ev.Key != s.cancelKey {
			return nil
		}
		return s.HandleCancelKey(ctx)
	default:
		return nil
	}
}
