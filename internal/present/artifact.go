package present

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonesrussell/gopicker/internal/pagination"
	"github.com/jonesrussell/gopicker/internal/picker"
	"gopkg.in/yaml.v3"
)

// Source is the YAML form of a configuration: one scraper source entry.
type Source struct {
	Name         string            `yaml:"name"`
	URL          string            `yaml:"url"`
	SectionName  string            `yaml:"section_name,omitempty"`
	RowSelector  string            `yaml:"row_selector"`
	ItemSelector string            `yaml:"item_selector"`
	Pagination   pagination.Result `yaml:"pagination"`
}

// NewSource builds the source entry for a configuration picked on pageURL.
func NewSource(pageURL string, cfg picker.Configuration) (Source, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return Source{}, fmt.Errorf("failed to parse URL: %w", err)
	}
	return Source{
		Name:         SourceName(parsedURL.Hostname()),
		URL:          pageURL,
		SectionName:  cfg.Section(),
		RowSelector:  cfg.RowSelector,
		ItemSelector: cfg.ItemSelector,
		Pagination:   cfg.Pagination,
	}, nil
}

// EncodeYAML renders cfg as a one-element sources list.
func EncodeYAML(pageURL string, cfg picker.Configuration) ([]byte, error) {
	source, err := NewSource(pageURL, cfg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err = enc.Encode(map[string][]Source{"sources": {source}}); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err = enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// SourceName converts a hostname to a title case source name.
// Example: "www.example.com" -> "Example Com"
func SourceName(hostname string) string {
	hostname = strings.TrimPrefix(hostname, "www.")
	if hostname == "" {
		return "Local"
	}

	parts := strings.Split(hostname, ".")
	const minPartsForDomain = 2
	if len(parts) < minPartsForDomain {
		return capitalize(parts[0])
	}

	mainPart := parts[len(parts)-2]
	tld := parts[len(parts)-1]
	return capitalize(mainPart) + " " + capitalize(tld)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// FileWriter is a presenter that writes the configuration to a file. The format
// follows the extension: .yaml and .yml write a source entry, anything else JSON.
type FileWriter struct {
	path    string
	pageURL string
}

var _ picker.Presenter = (*FileWriter)(nil)

// NewFileWriter creates a FileWriter for path.
func NewFileWriter(path, pageURL string) *FileWriter {
	return &FileWriter{path: path, pageURL: pageURL}
}

// Path returns the output path.
func (w *FileWriter) Path() string {
	return w.path
}

// Present implements picker.Presenter.
func (w *FileWriter) Present(_ context.Context, cfg picker.Configuration) error {
	var (
		content []byte
		err     error
	)
	switch strings.ToLower(filepath.Ext(w.path)) {
	case ".yaml", ".yml":
		content, err = EncodeYAML(w.pageURL, cfg)
	default:
		var payload string
		payload, err = cfg.JSON()
		content = []byte(payload + "\n")
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(w.path); dir != "." && dir != "" {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err = os.WriteFile(w.path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// Notify implements picker.Presenter.
func (w *FileWriter) Notify(context.Context, string) {}
