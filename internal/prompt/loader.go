package prompt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"maic/internal/logging"
)

// Load reads and parses a prompts.yaml file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes prompts.yaml bytes into a File.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse prompts yaml: %w", err)
	}
	if f.Modes == nil {
		f.Modes = map[string]TemplateEntry{}
	}
	return &f, nil
}

// LoadOrDefault loads the prompts file at path, falling back to the
// embedded default template set when the file is missing or broken.
// The service must never find itself without templates; a bad edit to
// prompts.yaml degrades to defaults instead of taking composition down.
func LoadOrDefault(path string) *File {
	log := logging.Get(logging.CategoryPrompt)

	f, err := Load(path)
	if err != nil {
		log.Warn("prompts file unavailable (%v), using embedded defaults", err)
		return Defaults()
	}
	if len(f.Modes) == 0 {
		log.Warn("prompts file %s has no mode entries, using embedded defaults", path)
		return Defaults()
	}
	log.Info("loaded %d mode templates from %s (version %d)", len(f.Modes), path, f.Version)
	return f
}
