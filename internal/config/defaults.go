package config

import (
	_ "embed"
)

//go:embed defaults/blockway.yaml
var defaultBlockwayYAML []byte

// DefaultBlockwayConfig returns the default Blockway configuration.
func DefaultBlockwayConfig() BlockwayConfig {
	return BlockwayConfig{
		Rules: RulesConfig{
			MineChain:     true,
			MaxBeltPasses: 0,
		},
		Gameplay: GameplayConfig{
			UndoLimit:   0,
			AutoAdvance: false,
		},
		Display: DisplayConfig{
			FloorDots: true,
			ShowHUD:   true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBlockwayYAML
}
