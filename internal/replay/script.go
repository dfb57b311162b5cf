// Package replay runs the picker against a static page and a scripted list of
// clicks and key presses.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownStep is returned for script steps that are neither a click nor a key press.
var ErrUnknownStep = errors.New("unknown script step")

// StepKind is the kind of a scripted interaction.
type StepKind string

const (
	// StepClick clicks the first element matching a selector.
	StepClick StepKind = "click"
	// StepKey presses a key.
	StepKey StepKind = "key"
)

// EscapeKey is the key name of the Escape key.
const EscapeKey = "Escape"

// Step is one scripted interaction.
type Step struct {
	Kind     StepKind
	Selector string
	Key      string
}

func (s Step) String() string {
	if s.Kind == StepKey {
		return "key " + s.Key
	}
	return "click " + s.Selector
}

// Click returns a click step on the first element matching selector.
func Click(selector string) Step {
	return Step{Kind: StepClick, Selector: selector}
}

// Key returns a key press step.
func Key(key string) Step {
	return Step{Kind: StepKey, Key: key}
}

// Escape returns an Escape key press.
func Escape() Step {
	return Key(EscapeKey)
}

// Script is an ordered list of steps.
type Script []Step

// scriptFile is the YAML form:
//
//	steps:
//	  - click: "li.card h3 a"
//	  - key: Escape
type scriptFile struct {
	Steps []struct {
		Click string `yaml:"click"`
		Key   string `yaml:"key"`
	} `yaml:"steps"`
}

// ParseScript reads a YAML script.
func ParseScript(r io.Reader) (Script, error) {
	var file scriptFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return Script{}, nil
		}
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	script := make(Script, 0, len(file.Steps))
	for i, s := range file.Steps {
		switch {
		case s.Click != "" && s.Key == "":
			script = append(script, Click(s.Click))
		case s.Key != "" && s.Click == "":
			script = append(script, Key(s.Key))
		default:
			return nil, fmt.Errorf("%w: step %d", ErrUnknownStep, i+1)
		}
	}
	return script, nil
}

// LoadScript reads a YAML script from path.
func LoadScript(path string) (Script, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer file.Close()
	return ParseScript(file)
}
