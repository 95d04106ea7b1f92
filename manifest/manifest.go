package manifest

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	APIVersion = "plume/v1"
	Kind       = "Generator"
)

// Document is one parsed manifest. Spec stays generic until DecodeSpec.
type Document struct {
	APIVersion string         `yaml:"apiVersion"`
	Kind       string         `yaml:"kind"`
	Name       string         `yaml:"name"`
	Metadata   map[string]any `yaml:"metadata,omitempty"`
	Spec       map[string]any `yaml:"spec"`

	// Path is the file the document was read from, empty for ParseBytes.
	Path string `yaml:"-"`
}

// Spec is the generator-specific part of a manifest.
type Spec struct {
	Arguments   []ArgumentSpec   `mapstructure:"arguments"`
	Options     []OptionSpec     `mapstructure:"options"`
	Templates   []TemplateSpec   `mapstructure:"templates"`
	Invocations []InvocationSpec `mapstructure:"invocations"`
}

type ArgumentSpec struct {
	Position int           `mapstructure:"position"`
	Name     string        `mapstructure:"name"`
	Required bool          `mapstructure:"required"`
	Default  any           `mapstructure:"default"`
	Desc     string        `mapstructure:"desc"`
	Validate *ValidateSpec `mapstructure:"validate"`
}

// ValidateSpec describes a declarative argument validator. Pattern and
// OneOf are checked against the value as given; Transform is applied to
// values that pass.
type ValidateSpec struct {
	Pattern   string   `mapstructure:"pattern"`
	OneOf     []string `mapstructure:"oneOf"`
	Message   string   `mapstructure:"message"`
	Transform string   `mapstructure:"transform"`
}

type OptionSpec struct {
	Name    string `mapstructure:"name"`
	Desc    string `mapstructure:"desc"`
	Default any    `mapstructure:"default"`
	Boolean bool   `mapstructure:"boolean"`
}

type TemplateSpec struct {
	Source      string `mapstructure:"source"`
	Destination string `mapstructure:"destination"`
}

// InvocationSpec names another generator to run. Args are passed as its
// positional values; with Inherit and no Args it receives the invoking
// generator's raw values.
type InvocationSpec struct {
	Generator string `mapstructure:"generator"`
	Args      []any  `mapstructure:"args"`
	Inherit   bool   `mapstructure:"inherit"`
}

// Parse reads and parses a manifest file.
func Parse(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	doc, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// ParseBytes parses a manifest from bytes.
func ParseBytes(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &doc, nil
}

// Description returns metadata.description, or "" when absent.
func (d *Document) Description() string {
	desc, _ := d.Metadata["description"].(string)
	return desc
}

// DecodeSpec decodes the generic spec map. Unknown keys are errors.
func (d *Document) DecodeSpec() (*Spec, error) {
	var spec Spec
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &spec,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(d.Spec); err != nil {
		return nil, fmt.Errorf("failed to decode spec: %w", err)
	}
	return &spec, nil
}
