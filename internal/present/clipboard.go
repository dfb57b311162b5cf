// Package present delivers a finished configuration to the user: on the system
// clipboard, as a file artifact and as a summary table.
package present

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrClipboardUnsupported is returned when no clipboard tool is available.
var ErrClipboardUnsupported = errors.New("clipboard not supported")

// Clipboard writes text to a clipboard.
type Clipboard interface {
	Write(ctx context.Context, text string) error
}

// Command is a clipboard tool invocation that reads the text from stdin.
type Command struct {
	Name string
	Args []string
}

// SystemClipboard writes through the first clipboard tool found on PATH.
type SystemClipboard struct {
	commands []Command
	lookPath func(string) (string, error)
}

// NewSystemClipboard returns the clipboard for the current platform.
func NewSystemClipboard() *SystemClipboard {
	return NewCommandClipboard(PlatformCommands(runtime.GOOS)...)
}

// NewCommandClipboard tries commands in order.
func NewCommandClipboard(commands ...Command) *SystemClipboard {
	return &SystemClipboard{commands: commands, lookPath: exec.LookPath}
}

// PlatformCommands lists the clipboard tools tried on goos.
func PlatformCommands(goos string) []Command {
	switch goos {
	case "darwin":
		return []Command{{Name: "pbcopy"}}
	case "windows":
		return []Command{{Name: "clip.exe"}}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []Command{
			{Name: "wl-copy"},
			{Name: "xclip", Args: []string{"-selection", "clipboard"}},
			{Name: "xsel", Args: []string{"--clipboard", "--input"}},
			// WSL exposes the Windows clipboard.
			{Name: "clip.exe"},
		}
	default:
		return nil
	}
}

// Write implements Clipboard.
func (c *SystemClipboard) Write(ctx context.Context, text string) error {
	for _, command := range c.commands {
		path, err := c.lookPath(command.Name)
		if err != nil {
			continue
		}
		cmd := exec.CommandContext(ctx, path, command.Args...)
		cmd.Stdin = strings.NewReader(text)
		if err = cmd.Run(); err != nil {
			return fmt.Errorf("%s failed: %w", command.Name, err)
		}
		return nil
	}
	return fmt.Errorf("%w on %s", ErrClipboardUnsupported, runtime.GOOS)
}
