package vocab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"varmatch/internal/match"
)

// File is the on-disk form of a vocabulary.
type File struct {
	Version  string        `yaml:"version"`
	Concepts []ConceptFile `yaml:"concepts"`
}

// ConceptFile is one concept entry in a vocabulary file.
type ConceptFile struct {
	Name     string        `yaml:"name"`
	Synonyms StringOrArray `yaml:"synonyms,omitempty"`
}

// StringOrArray is a string list that accepts a single scalar in YAML.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array of synonyms, got %v", node.Line, node.Kind)
	}
}

// LoadFile loads and parses a YAML vocabulary file from the given path.
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}

	v, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return v, nil
}

// Parse parses YAML data into a Vocabulary and validates it.
func Parse(data []byte) (*Vocabulary, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary YAML: %w", err)
	}

	applyDefaults(&f)

	if f.Version != "1" {
		return nil, fmt.Errorf("unsupported vocabulary version %q", f.Version)
	}

	v := fromFile(&f)
	if diags := Validate(v); diags.HasErrors() {
		return nil, diags.Error()
	}

	return v, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}
}

func fromFile(f *File) *Vocabulary {
	concepts := make([]match.Concept, 0, len(f.Concepts))
	for _, c := range f.Concepts {
		concepts = append(concepts, match.Concept{Name: c.Name, Synonyms: c.Synonyms})
	}

	return New(concepts)
}

// ToFile converts a Vocabulary to its on-disk form.
func ToFile(v *Vocabulary) *File {
	f := &File{Version: "1"}
	for _, c := range v.Concepts() {
		f.Concepts = append(f.Concepts, ConceptFile{Name: c.Name, Synonyms: c.Synonyms})
	}

	return f
}

// Marshal serializes a Vocabulary to YAML.
func Marshal(v *Vocabulary) ([]byte, error) {
	return yaml.Marshal(ToFile(v))
}
