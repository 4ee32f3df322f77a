package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// TopicPrompt holds the search query, instruction template and output field
// descriptions for one recommendation topic.
type TopicPrompt struct {
	Query           string `yaml:"query"`
	Instruction     string `yaml:"instruction"`
	ListDescription string `yaml:"list_description"`
	NameDescription string `yaml:"name_description"`
	ItemDescription string `yaml:"item_description"`
}

// ItineraryPrompt holds the budget itinerary instruction template.
type ItineraryPrompt struct {
	Instruction string `yaml:"instruction"`
}

// Prompts is the top-level prompt configuration loaded from YAML.
type Prompts struct {
	Topics    map[string]TopicPrompt `yaml:"topics"`
	Itinerary ItineraryPrompt        `yaml:"itinerary"`
}

// DefaultPrompts returns the prompt set compiled into the binary.
func DefaultPrompts() (*Prompts, error) {
	return parsePrompts(defaultPrompts)
}

// LoadPrompts reads and parses a YAML prompt configuration file.
func LoadPrompts(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}
	return parsePrompts(data)
}

func parsePrompts(data []byte) (*Prompts, error) {
	var prompts Prompts
	if err := yaml.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompts YAML: %w", err)
	}
	if err := prompts.Validate(); err != nil {
		return nil, err
	}
	return &prompts, nil
}

// Validate checks that every template in the prompt set parses. A broken
// placeholder is a configuration bug and must surface at startup.
func (p *Prompts) Validate() error {
	if len(p.Topics) == 0 {
		return fmt.Errorf("prompts: no topics defined")
	}
	for name, topic := range p.Topics {
		if topic.Query == "" || topic.Instruction == "" {
			return fmt.Errorf("prompts: topic %q needs both query and instruction", name)
		}
		if _, err := parseTemplate(topic.Query); err != nil {
			return fmt.Errorf("prompts: topic %q query: %w", name, err)
		}
		if _, err := parseTemplate(topic.Instruction); err != nil {
			return fmt.Errorf("prompts: topic %q instruction: %w", name, err)
		}
	}
	if p.Itinerary.Instruction == "" {
		return fmt.Errorf("prompts: itinerary instruction is empty")
	}
	if _, err := parseTemplate(p.Itinerary.Instruction); err != nil {
		return fmt.Errorf("prompts: itinerary instruction: %w", err)
	}
	return nil
}

// RenderPrompt executes Go template interpolation on a prompt string.
// The data map provides values for template placeholders like {{.Destination}},
// {{.SearchResults}} and {{.FormatInstructions}}. Values are inserted verbatim.
func RenderPrompt(tmpl string, data map[string]interface{}) (string, error) {
	t, err := parseTemplate(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}

func parseTemplate(tmpl string) (*template.Template, error) {
	return template.New("prompt").Option("missingkey=error").Parse(tmpl)
}
