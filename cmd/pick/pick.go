// Package pick implements the pick command: the picker in a live Chrome tab.
package pick

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonesrussell/gopicker/cmd/common"
	"github.com/jonesrussell/gopicker/internal/browser"
	"github.com/jonesrussell/gopicker/internal/picker"
	"github.com/jonesrussell/gopicker/internal/replay"
	"github.com/spf13/cobra"
)

// ErrHeadlessNeedsScript is returned for a headless run without scripted steps.
var ErrHeadlessNeedsScript = errors.New("headless mode needs --script, --click or --escape")

// Command returns the pick command.
func Command() *cobra.Command {
	var (
		flags    common.PickFlags
		headless bool
	)

	cmd := &cobra.Command{
		Use:   "pick [url]",
		Short: "Pick a listing item and its pagination control in a browser",
		Long: `Opens the page in Chrome and starts the picker. Click an item name or link,
then the pagination control. Escape cancels at the first step and skips
pagination at the second.

Example:
  # Interactive
  gopicker pick https://expo.example.com/Exhibitors/List

  # Scripted, headless, also writing a source entry
  gopicker pick https://expo.example.com/Exhibitors/List --headless \
    --click "li.exhibitor h3 a" --click "a.load-more" -o sources/expo.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("headless") {
				deps.Config.Browser.Headless = headless
			}
			return run(cmd.Context(), deps, &flags, args[0])
		},
	}

	flags.Register(cmd)
	cmd.Flags().BoolVar(&headless, "headless", false, "Run Chrome without a window (requires scripted steps)")

	return cmd
}

func run(ctx context.Context, deps common.CommandDeps, flags *common.PickFlags, pageURL string) error {
	log := deps.Logger.WithComponent("pick")

	if deps.Config.Browser.Headless && !flags.Scripted() {
		return ErrHeadlessNeedsScript
	}
	script, err := flags.Script()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "🌐 Opening %s...\n", pageURL)
	page, err := browser.Launch(ctx, deps.Config.Browser, log)
	if err != nil {
		return err
	}
	defer page.Close()

	if err = page.Navigate(ctx, pageURL); err != nil {
		return err
	}
	location, err := page.Location(ctx)
	if err != nil {
		return err
	}

	session := picker.NewSession(
		page,
		flags.Presenter(deps, os.Stdout, location),
		deps.Config.Picker.SessionOptions(log)...,
	)
	log = log.WithSessionID(session.ID())

	var result *picker.Configuration
	if len(script) > 0 {
		result, err = replay.Drive(ctx, page, session, script)
	} else {
		result, err = session.Run(ctx)
	}
	if err != nil {
		log.Error("Picker failed", "error", err)
		return err
	}

	flags.Report(os.Stderr, location, result)
	return nil
}
