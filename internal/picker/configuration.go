package picker

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jonesrussell/gopicker/internal/pagination"
)

// Configuration is the extraction configuration produced by a session.
type Configuration struct {
	SectionName  *string           `json:"sectionName" yaml:"section_name"`
	RowSelector  string            `json:"rowSelector" yaml:"row_selector"`
	ItemSelector string            `json:"itemSelector" yaml:"item_selector"`
	Pagination   pagination.Result `json:"pagination" yaml:"pagination"`
}

// Section returns the section name or "".
func (c Configuration) Section() string {
	if c.SectionName == nil {
		return ""
	}
	return *c.SectionName
}

// JSON returns the canonical form: two-space indentation, HTML characters unescaped.
func (c Configuration) JSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("failed to encode configuration: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
