package blockway

import (
	"sort"
	"sync"

	"github.com/vovakirdan/blockway/internal/games/blockway/levels"
)

// Built-in campaign levels, embedded so the game runs without any level
// directory. External levels (SetLevelsDir) are merged in by ID.
var builtinYAML = []string{
	`
id: "01-first-push"
name: "First Push"
size: {w: 8, h: 5}
tiles:
  - {x: 4, y: 1, kind: Wall}
  - {x: 4, y: 3, kind: Wall}
features:
  - {x: 6, y: 2, kind: Exit}
items:
  - {x: 2, y: 1, kind: Gem}
actors:
  - {x: 1, y: 2, kind: Player, dir: Right}
  - {x: 3, y: 2, kind: Crate}
`,
	`
id: "02-belt-ride"
name: "Belt Ride"
size: {w: 10, h: 6}
features:
  - {x: 3, y: 2, kind: Belt, dir: Right}
  - {x: 4, y: 2, kind: Belt, dir: Right}
  - {x: 5, y: 2, kind: Belt, dir: Right}
  - {x: 6, y: 2, kind: Belt, dir: Down}
  - {x: 6, y: 3, kind: Belt, dir: Down}
  - {x: 8, y: 4, kind: Exit}
items:
  - {x: 6, y: 4, kind: Gem}
actors:
  - {x: 1, y: 2, kind: Player, dir: Right}
`,
	`
id: "03-pressure"
name: "Pressure"
size: {w: 10, h: 7}
tiles:
  - {x: 5, y: 0, kind: Wall}
  - {x: 5, y: 1, kind: Wall}
  - {x: 5, y: 2, kind: Wall}
  - {x: 5, y: 4, kind: Wall}
  - {x: 5, y: 5, kind: Wall}
  - {x: 5, y: 6, kind: Wall}
features:
  - {x: 2, y: 5, kind: Button, id: 1}
  - {x: 5, y: 3, kind: Door, id: 1}
  - {x: 8, y: 3, kind: Exit}
items:
  - {x: 7, y: 1, kind: Gem}
actors:
  - {x: 1, y: 1, kind: Player, dir: Right}
  - {x: 2, y: 3, kind: Crate}
`,
	`
id: "04-minefield"
name: "Minefield"
size: {w: 11, h: 7}
features:
  - {x: 4, y: 2, kind: Mine}
  - {x: 5, y: 2, kind: Mine}
  - {x: 5, y: 3, kind: Mine}
  - {x: 7, y: 5, kind: Exit}
items:
  - {x: 9, y: 1, kind: Gem}
actors:
  - {x: 1, y: 3, kind: Player, dir: Right}
  - {x: 3, y: 2, kind: Crate}
  - {x: 9, y: 3, kind: Creature, dir: Up}
rules:
  mine_chain: true
`,
	`
id: "05-twin-wells"
name: "Twin Wells"
size: {w: 12, h: 8}
tiles:
  - {x: 6, y: 0, kind: Wall}
  - {x: 6, y: 1, kind: Wall}
  - {x: 6, y: 2, kind: Wall}
  - {x: 6, y: 3, kind: Wall}
  - {x: 6, y: 4, kind: Wall}
  - {x: 6, y: 5, kind: Wall}
  - {x: 6, y: 6, kind: Wall}
features:
  - {x: 2, y: 6, kind: Teleporter, id: 1}
  - {x: 9, y: 1, kind: Teleporter, id: 1}
  - {x: 8, y: 4, kind: Water}
  - {x: 9, y: 4, kind: Water}
  - {x: 10, y: 6, kind: Exit}
items:
  - {x: 10, y: 2, kind: Gem}
actors:
  - {x: 1, y: 1, kind: Player, dir: Down}
  - {x: 8, y: 2, kind: Crate}
  - {x: 9, y: 6, kind: Sentry, dir: Left}
`,
	`
id: "06-cold-lock"
name: "Cold Lock"
size: {w: 12, h: 7}
tiles:
  - {x: 6, y: 0, kind: Wall}
  - {x: 6, y: 1, kind: Wall}
  - {x: 6, y: 2, kind: Wall}
  - {x: 6, y: 4, kind: Wall}
  - {x: 6, y: 5, kind: Wall}
  - {x: 6, y: 6, kind: Wall}
features:
  - {x: 6, y: 3, kind: Gate}
  - {x: 4, y: 3, kind: Ice}
  - {x: 5, y: 3, kind: Ice}
  - {x: 9, y: 3, kind: Exit}
items:
  - {x: 8, y: 3, kind: Gem}
actors:
  - {x: 1, y: 3, kind: Player, dir: Right}
  - {x: 3, y: 3, kind: Key}
`,
}

var (
	builtinOnce sync.Once
	builtin     []levels.Level
)

// BuiltinLevels parses the embedded level set. Parsing failures panic: the
// embedded levels are part of the binary and validated by tests.
func BuiltinLevels() []levels.Level {
	builtinOnce.Do(func() {
		for _, src := range builtinYAML {
			lvl, err := levels.Parse([]byte(src), ".yaml")
			if err != nil {
				panic("blockway: bad built-in level: " + err.Error())
			}
			builtin = append(builtin, lvl)
		}
	})
	return builtin
}

// AvailableLevels returns built-in levels merged with any external levels
// directory set via SetLevelsDir, sorted by ID. An external level with the
// same ID overrides the built-in one.
func AvailableLevels() []levels.Level {
	byID := make(map[string]levels.Level)
	for _, l := range BuiltinLevels() {
		byID[l.ID] = l
	}
	if levelsDir != "" {
		if external, err := levels.NewLoader(levelsDir).LoadAll(); err == nil {
			for _, l := range external {
				byID[l.ID] = l
			}
		}
	}
	out := make([]levels.Level, 0, len(byID))
	for _, l := range byID {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LevelIDs returns the IDs of all available levels in order.
func LevelIDs() []string {
	all := AvailableLevels()
	ids := make([]string, len(all))
	for i, l := range all {
		ids[i] = l.ID
	}
	return ids
}

// LevelNames returns the display names of all available levels in order.
func LevelNames() []string {
	all := AvailableLevels()
	names := make([]string, len(all))
	for i, l := range all {
		names[i] = l.Name
	}
	return names
}
