package changelog

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// exportEntry is the YAML shape of one generated version entry.
type exportEntry struct {
	Version  string    `yaml:"version"`
	Date     string    `yaml:"date,omitempty"`
	Sections []Section `yaml:"sections"`
}

// ExportYAML writes a generated entry as YAML, for tooling that consumes
// the classification rather than the rendered markdown.
func ExportYAML(w io.Writer, rel Release, sections []Section) error {
	entry := exportEntry{
		Version:  rel.Version,
		Date:     rel.Date,
		Sections: sections,
	}
	if entry.Sections == nil {
		entry.Sections = []Section{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entry); err != nil {
		return fmt.Errorf("encoding changelog YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing changelog YAML: %w", err)
	}
	return nil
}
