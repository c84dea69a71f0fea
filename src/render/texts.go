package render

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed texts.yaml
var defaultTextsYAML []byte

// Texts holds the static bodies that are not derived from any fetch.
type Texts struct {
	Help          string `yaml:"help"`
	Info          string `yaml:"info"`
	Calendar      string `yaml:"calendar"`
	CalendarImage string `yaml:"calendar_image"`
}

// DefaultTexts returns the built-in texts.
func DefaultTexts() Texts {
	var t Texts
	if err := yaml.Unmarshal(defaultTextsYAML, &t); err != nil {
		panic(fmt.Sprintf("render: embedded texts: %v", err))
	}
	return t
}

// ParseTexts decodes YAML and fills any missing key from the defaults.
func ParseTexts(data []byte) (Texts, error) {
	var t Texts
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Texts{}, fmt.Errorf("parse texts: %w", err)
	}
	return t.withDefaults(DefaultTexts()), nil
}

// LoadTexts reads a YAML texts file. An empty path returns the defaults.
func LoadTexts(path string) (Texts, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultTexts(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Texts{}, fmt.Errorf("read texts %s: %w", path, err)
	}
	return ParseTexts(data)
}

func (t Texts) withDefaults(def Texts) Texts {
	if strings.TrimSpace(t.Help) == "" {
		t.Help = def.Help
	}
	if strings.TrimSpace(t.Info) == "" {
		t.Info = def.Info
	}
	if strings.TrimSpace(t.Calendar) == "" {
		t.Calendar = def.Calendar
	}
	if strings.TrimSpace(t.CalendarImage) == "" {
		t.CalendarImage = def.CalendarImage
	}
	return t
}
