package common

import (
	"fmt"
	"io"

	"github.com/jonesrussell/gopicker/internal/picker"
	"github.com/jonesrussell/gopicker/internal/present"
	"github.com/jonesrussell/gopicker/internal/replay"
	"github.com/spf13/cobra"
)

// PickFlags are the flags shared by the pick and replay commands.
type PickFlags struct {
	OutputFile  string
	NoClipboard bool
	ScriptFile  string
	Clicks      []string
	Escape      bool
}

// Register adds the shared flags to cmd.
func (f *PickFlags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.OutputFile, "output", "o", "",
		"Also write the configuration to a file (.yaml/.yml writes a source entry, anything else JSON)")
	cmd.Flags().BoolVar(&f.NoClipboard, "no-clipboard", false, "Print the configuration without copying it")
	cmd.Flags().StringVar(&f.ScriptFile, "script", "", "YAML file with the clicks and key presses to perform")
	cmd.Flags().StringArrayVar(&f.Clicks, "click", nil, "Click the first element matching a selector (repeatable)")
	cmd.Flags().BoolVar(&f.Escape, "escape", false, "Press Escape after the scripted clicks")
}

// Scripted reports whether any scripted steps were requested.
func (f *PickFlags) Scripted() bool {
	return f.ScriptFile != "" || len(f.Clicks) > 0 || f.Escape
}

// Script builds the steps from the script file, then --click, then --escape.
func (f *PickFlags) Script() (replay.Script, error) {
	var script replay.Script
	if f.ScriptFile != "" {
		loaded, err := replay.LoadScript(f.ScriptFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load script: %w", err)
		}
		script = append(script, loaded...)
	}
	for _, sel := range f.Clicks {
		script = append(script, replay.Click(sel))
	}
	if f.Escape {
		script = append(script, replay.Escape())
	}
	return script, script.Validate()
}

// Presenter assembles the presenters for a run: the clipboard presenter on out and
// the optional file writer.
func (f *PickFlags) Presenter(deps CommandDeps, out io.Writer, pageURL string) picker.Presenter {
	var clipboard present.Clipboard
	if deps.Config.Picker.Clipboard && !f.NoClipboard {
		clipboard = present.NewSystemClipboard()
	}

	presenters := present.Multi{present.NewClipboardPresenter(out, clipboard, deps.Logger)}
	if f.OutputFile != "" {
		presenters = append(presenters, present.NewFileWriter(f.OutputFile, pageURL))
	}
	return presenters
}

// Report prints the summary for a finished run.
func (f *PickFlags) Report(w io.Writer, pageURL string, cfg *picker.Configuration) {
	if cfg == nil {
		return
	}
	fmt.Fprintln(w)
	present.RenderSummary(w, pageURL, *cfg)
	if f.OutputFile != "" {
		fmt.Fprintf(w, "\n✅ Configuration written to %s\n", f.OutputFile)
	}
}
