package present

import (
	"context"
	"fmt"
	"io"

	"github.com/jonesrussell/gopicker/internal/logger"
	"github.com/jonesrussell/gopicker/internal/picker"
)

// Messages printed with the configuration.
const (
	MessageCopied   = "✅ Config copied to clipboard!\n\nPaste into your Scraper Builder:"
	MessageCopyThis = "Copy this JSON config:"
)

// ClipboardPresenter copies the configuration to the clipboard and echoes it to out.
// A missing clipboard is reported to the user, never as an error.
type ClipboardPresenter struct {
	out       io.Writer
	clipboard Clipboard
	log       logger.Interface
}

var _ picker.Presenter = (*ClipboardPresenter)(nil)

// NewClipboardPresenter creates a presenter. A nil clipboard always prints the
// copy-by-hand message.
func NewClipboardPresenter(out io.Writer, clipboard Clipboard, log logger.Interface) *ClipboardPresenter {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &ClipboardPresenter{out: out, clipboard: clipboard, log: log.WithComponent("present")}
}

// Present implements picker.Presenter.
func (p *ClipboardPresenter) Present(ctx context.Context, cfg picker.Configuration) error {
	payload, err := cfg.JSON()
	if err != nil {
		return err
	}

	message := MessageCopyThis
	if p.clipboard != nil {
		if clipErr := p.clipboard.Write(ctx, payload); clipErr != nil {
			p.log.Warn("Clipboard unavailable", "error", clipErr)
		} else {
			message = MessageCopied
		}
	}

	if _, err = fmt.Fprintf(p.out, "%s\n\n%s\n", message, payload); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	return nil
}

// Notify implements picker.Presenter.
func (p *ClipboardPresenter) Notify(_ context.Context, message string) {
	if _, err := fmt.Fprintln(p.out, message); err != nil {
		p.log.Warn("Failed to print notice", "error", err)
	}
}

// Multi fans a configuration out to several presenters. Notices go to the first one only.
type Multi []picker.Presenter

// Present implements picker.Presenter.
func (m Multi) Present(ctx context.Context, cfg picker.Configuration) error {
	for _, p := range m {
		if err := p.Present(ctx, cfg); err != nil {
			return err
		}
	}
	return nil
}

// Notify implements picker.Presenter.
func (m Multi) Notify(ctx context.Context, message string) {
	if len(m) > 0 {
		m[0].Notify(ctx, message)
	}
}
