// Package prompts holds the system messages, user templates and sampling
// settings for the chat-style features.
package prompts

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFeature is returned for a feature the catalog has no prompt for.
var ErrUnknownFeature = errors.New("unknown feature")

// Feature identifies one chat-style endpoint.
type Feature string

const (
	Legal   Feature = "legal"
	Chat    Feature = "chat"
	CaseLaw Feature = "caselaw"
)

// Placeholder is replaced with the user's query when a template is rendered.
const Placeholder = "{{query}}"

// Prompt is everything sent to the model for one feature besides the query.
type Prompt struct {
	System      string
	Template    string
	Temperature float32
	MaxTokens   int
}

// Render returns the user message for query.
func (p Prompt) Render(query string) string {
	return strings.ReplaceAll(p.Template, Placeholder, query)
}

// Catalog maps each feature to its prompt. It is read-only after Load.
type Catalog map[Feature]Prompt

// Get returns the prompt for f.
func (c Catalog) Get(f Feature) (Prompt, error) {
	p, ok := c[f]
	if !ok {
		return Prompt{}, fmt.Errorf("%w: %q", ErrUnknownFeature, f)
	}
	return p, nil
}

// override mirrors Prompt with optional fields so a file can change one
// setting without restating the rest.
type override struct {
	System      *string  `yaml:"system"`
	Template    *string  `yaml:"template"`
	Temperature *float32 `yaml:"temperature"`
	MaxTokens   *int     `yaml:"max_tokens"`
}

type file struct {
	Prompts map[Feature]override `yaml:"prompts"`
}

// Load returns the built-in catalog with the overrides from the YAML file at
// path applied. An empty path yields the built-ins.
func Load(path string) (Catalog, error) {
	catalog := Default()
	if path == "" {
		return catalog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file %q: %w", path, err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse prompts file: %w", err)
	}

	for feature, o := range f.Prompts {
		p, err := catalog.Get(feature)
		if err != nil {
			return nil, fmt.Errorf("prompts file: %w", err)
		}
		if o.System != nil {
			p.System = *o.System
		}
		if o.Template != nil {
			if !strings.Contains(*o.Template, Placeholder) {
				return nil, fmt.Errorf("prompts file: %s template must contain %s", feature, Placeholder)
			}
			p.Template = *o.Template
		}
		if o.Temperature != nil {
			p.Temperature = *o.Temperature
		}
		if o.MaxTokens != nil {
			p.MaxTokens = *o.MaxTokens
		}
		catalog[feature] = p
	}
	return catalog, nil
}
