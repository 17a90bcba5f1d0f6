// Package config provides YAML-based configuration loading for Blockway.
package config

// BlockwayConfig contains all configuration for the Blockway game.
type BlockwayConfig struct {
	Rules    RulesConfig    `yaml:"rules"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Display  DisplayConfig  `yaml:"display"`
}

// RulesConfig tunes the simulation rules. Individual levels may override
// rule values through their own rules block.
type RulesConfig struct {
	MineChain     bool `yaml:"mine_chain"`      // adjacent mines detonate together
	MaxBeltPasses int  `yaml:"max_belt_passes"` // 0 means bounded by grid area
}

// GameplayConfig tunes the play session around the simulation.
type GameplayConfig struct {
	UndoLimit   int  `yaml:"undo_limit"`   // 0 means unlimited
	AutoAdvance bool `yaml:"auto_advance"` // skip the win screen between levels
}

// DisplayConfig tunes the terminal presentation.
type DisplayConfig struct {
	FloorDots bool `yaml:"floor_dots"` // render empty floor as dots
	ShowHUD   bool `yaml:"show_hud"`
}
