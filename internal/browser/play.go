package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/gopicker/internal/replay"
)

const listenPollInterval = 50 * time.Millisecond

// Play performs script in the live page with real input events. Each step waits
// until the picker listeners are installed; once they are gone the remaining
// steps are skipped.
func (p *Page) Play(ctx context.Context, script replay.Script) error {
	if err := script.Validate(); err != nil {
		return err
	}

	seen := false
	for _, step := range script {
		listening, err := p.waitListening(ctx, seen)
		if err != nil {
			return err
		}
		if !listening {
			p.log.Debug("Picker finished, skipping remaining steps", "step", step.String())
			return nil
		}
		seen = true

		switch step.Kind {
		case replay.StepClick:
			err = p.ClickSelector(ctx, step.Selector)
		case replay.StepKey:
			err = p.PressKey(ctx, step.Key)
		default:
			err = fmt.Errorf("%w: %q", replay.ErrUnknownStep, step.Kind)
		}
		if err != nil {
			return err
		}
		p.log.Debug("Step performed", "step", step.String())
	}
	return nil
}

// waitListening blocks until listeners are installed. When retired is set a
// missing listener means the picker already tore down.
func (p *Page) waitListening(ctx context.Context, retired bool) (bool, error) {
	ticker := time.NewTicker(listenPollInterval)
	defer ticker.Stop()
	for {
		if p.Listening() {
			return true, nil
		}
		if retired {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
		}
	}
}
