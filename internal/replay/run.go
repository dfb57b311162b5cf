package replay

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonesrussell/gopicker/internal/dom"
	"github.com/jonesrussell/gopicker/internal/picker"
)

// Validate checks that every step is well formed.
func (s Script) Validate() error {
	for i, step := range s {
		switch step.Kind {
		case StepClick:
			if step.Selector == "" {
				return fmt.Errorf("%w: step %d: click without selector", ErrUnknownStep, i+1)
			}
			if err := dom.Validate(step.Selector); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		case StepKey:
			if step.Key == "" {
				return fmt.Errorf("%w: step %d: key press without key", ErrUnknownStep, i+1)
			}
		default:
			return fmt.Errorf("%w: step %d: %q", ErrUnknownStep, i+1, step.Kind)
		}
	}
	return nil
}

// Player performs scripted steps against the page a session listens on.
type Player interface {
	Play(ctx context.Context, script Script) error
}

// Run plays script on h while session consumes the resulting events.
func Run(ctx context.Context, h *Host, session *picker.Session, script Script) (*picker.Configuration, error) {
	return Drive(ctx, h, session, script)
}

// Drive plays script with player while session consumes the page events. A failed
// step stops the session and a finished session stops the remaining steps, so
// neither side waits on the other.
func Drive(
	ctx context.Context,
	player Player,
	session *picker.Session,
	script Script,
) (*picker.Configuration, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	played := make(chan error, 1)
	go func() {
		err := player.Play(ctx, script)
		if err != nil {
			cancel()
		}
		played <- err
	}()

	cfg, err := session.Run(ctx)
	cancel()
	playErr := <-played

	if playErr != nil && !errors.Is(playErr, context.Canceled) {
		return cfg, fmt.Errorf("scripted steps failed: %w", playErr)
	}
	return cfg, err
}
