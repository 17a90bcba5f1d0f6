// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel is the YAML structure of a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     YAMLSize          `yaml:"size"`
	Tiles    []YAMLPlacement   `yaml:"tiles,omitempty"`
	Features []YAMLPlacement   `yaml:"features,omitempty"`
	Items    []YAMLPlacement   `yaml:"items,omitempty"`
	Actors   []YAMLPlacement   `yaml:"actors"`
	Rules    YAMLRules         `yaml:"rules,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize carries grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPlacement places one kind at one cell, with optional per-instance
// metadata: a facing direction, a pairing identifier, and an initial
// open flag for doors.
type YAMLPlacement struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Kind string `yaml:"kind"`
	Dir  string `yaml:"dir,omitempty"`
	ID   int    `yaml:"id,omitempty"`
	Open bool   `yaml:"open,omitempty"`
}

// YAMLRules carries optional rule overrides for the level.
type YAMLRules struct {
	MineChain *bool `yaml:"mine_chain,omitempty"`
}

// Level is a parsed level, not yet validated against the entity catalog.
type Level struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Tiles    []YAMLPlacement
	Features []YAMLPlacement
	Items    []YAMLPlacement
	Actors   []YAMLPlacement
	Rules    YAMLRules
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	return Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Width:    yl.Size.W,
		Height:   yl.Size.H,
		Tiles:    yl.Tiles,
		Features: yl.Features,
		Items:    yl.Items,
		Actors:   yl.Actors,
		Rules:    yl.Rules,
		Metadata: yl.Metadata,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
