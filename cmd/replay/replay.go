// Package replay implements the replay command: the picker against a fetched
// page with scripted clicks.
package replay

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jonesrussell/gopicker/cmd/common"
	"github.com/jonesrussell/gopicker/internal/fetcher"
	"github.com/jonesrussell/gopicker/internal/picker"
	"github.com/jonesrussell/gopicker/internal/replay"
	"github.com/spf13/cobra"
)

const eventBuffer = 16

// ErrNoSteps is returned when no scripted steps were given.
var ErrNoSteps = errors.New("replay needs --script, --click or --escape")

// Command returns the replay command.
func Command() *cobra.Command {
	var (
		flags    common.PickFlags
		pagePath string
	)

	cmd := &cobra.Command{
		Use:   "replay [url|file]",
		Short: "Run the picker offline against a page with scripted clicks",
		Long: `Fetches the page (or reads a saved HTML file) and replays clicks and key
presses against it without a browser.

Example:
  gopicker replay https://expo.example.com/Exhibitors/List \
    --click "li.exhibitor h3 a" --click "div.pages a"

  # A saved page, with the path it was served from
  gopicker replay page.html --path /Speakers/List --script steps.yaml -o out.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return err
			}
			return run(cmd.Context(), deps, &flags, args[0], pagePath)
		},
	}

	flags.Register(cmd)
	cmd.Flags().StringVar(&pagePath, "path", "", "Override the page path used for section detection")

	return cmd
}

func run(ctx context.Context, deps common.CommandDeps, flags *common.PickFlags, source, pagePath string) error {
	log := deps.Logger.WithComponent("replay")

	script, err := flags.Script()
	if err != nil {
		return err
	}
	if len(script) == 0 {
		return ErrNoSteps
	}

	fmt.Fprintf(os.Stderr, "🔍 Loading %s...\n", source)
	doc, err := fetcher.New(deps.Config.Fetcher, log).Load(ctx, source)
	if err != nil {
		return err
	}
	if pagePath != "" {
		doc = doc.WithPath(pagePath)
	}
	pageURL := doc.URL().String()

	host := replay.NewHost(doc, eventBuffer, log)
	session := picker.NewSession(
		host,
		flags.Presenter(deps, os.Stdout, pageURL),
		deps.Config.Picker.SessionOptions(log)...,
	)

	result, err := replay.Run(ctx, host, session, script)
	if err != nil {
		return err
	}

	flags.Report(os.Stderr, pageURL, result)
	return nil
}
