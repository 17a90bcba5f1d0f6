// Package levels loads and validates Blockway level files. It depends on
// core but core does not depend on levels: the loader's output contract is a
// fully validated initial LevelState the rule engine can trust without
// re-validation at simulation time.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/blockway/internal/games/blockway/core"
	"github.com/vovakirdan/blockway/internal/games/blockway/levels/formats"
)

// Level is a validated level definition ready to instantiate.
type Level struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Rules    core.Rules
	Metadata map[string]string
	FilePath string

	parsed formats.Level
}

// NewState builds a fresh initial LevelState for a play session.
// Each call returns an independent state.
func (l *Level) NewState() *core.LevelState {
	grid := core.NewGrid(l.Width, l.Height)
	for _, p := range l.parsed.Tiles {
		k, _ := core.ParseKind(p.Kind)
		grid.SetTile(core.C(p.X, p.Y), k)
	}
	for _, p := range l.parsed.Features {
		k, _ := core.ParseKind(p.Kind)
		d, _ := core.ParseDir(p.Dir)
		grid.SetFeature(core.C(p.X, p.Y), core.Feature{Kind: k, Dir: d, ID: p.ID, Open: p.Open})
	}
	for _, p := range l.parsed.Items {
		k, _ := core.ParseKind(p.Kind)
		grid.SetItem(core.C(p.X, p.Y), k)
	}

	actors := make([]core.Actor, 0, len(l.parsed.Actors))
	for _, p := range l.parsed.Actors {
		k, _ := core.ParseKind(p.Kind)
		d, _ := core.ParseDir(p.Dir)
		actors = append(actors, core.Actor{Kind: k, Pos: core.C(p.X, p.Y), Dir: d})
	}
	return core.NewLevelState(grid, actors)
}

// NewController builds a TurnController over a fresh initial state using the
// level's rules.
func (l *Level) NewController() *core.TurnController {
	return core.NewTurnController(l.NewState(), l.Rules)
}

// RulesWithDefaults returns the level's rules layered over the given base:
// settings the level file leaves unset fall back to base.
func (l *Level) RulesWithDefaults(base core.Rules) core.Rules {
	rules := base
	if l.parsed.Rules.MineChain != nil {
		rules.MineChain = *l.parsed.Rules.MineChain
	}
	return rules
}

// Validate checks the parsed level against the loader's precondition
// contract: a finite bounded grid, no undefined kind references, no
// out-of-bounds placements, exactly one player, consistent teleporter
// pairing, and actor placements that satisfy the occupancy rules (no two
// actors on one cell, no actor inside a wall or a closed door or gate).
// All violations are core.ConfigErrors; the engine never has to detect
// malformed level data at simulation time.
func Validate(parsed formats.Level) error {
	if parsed.Width <= 0 || parsed.Height <= 0 {
		return core.ConfigError{Code: "BAD_SIZE",
			Message: fmt.Sprintf("grid size %dx%d is not positive", parsed.Width, parsed.Height)}
	}

	inBounds := func(p formats.YAMLPlacement) bool {
		return p.X >= 0 && p.X < parsed.Width && p.Y >= 0 && p.Y < parsed.Height
	}
	checkKind := func(p formats.YAMLPlacement, want func(core.Kind) bool, section string) (core.Kind, error) {
		k, ok := core.ParseKind(p.Kind)
		if !ok || !want(k) {
			return core.KindNone, core.ConfigError{Code: "UNKNOWN_KIND",
				Message: fmt.Sprintf("%s entry references undefined kind %q", section, p.Kind)}
		}
		if !inBounds(p) {
			return core.KindNone, core.ConfigError{Code: "OUT_OF_BOUNDS",
				Message: fmt.Sprintf("%s %s at (%d,%d) outside %dx%d grid", section, p.Kind, p.X, p.Y, parsed.Width, parsed.Height)}
		}
		return k, nil
	}

	for _, p := range parsed.Tiles {
		if _, err := checkKind(p, func(k core.Kind) bool { return k == core.KindFloor || k == core.KindWall }, "tile"); err != nil {
			return err
		}
	}

	teleporters := make(map[int]int)
	for _, p := range parsed.Features {
		k, err := checkKind(p, core.IsFeatureKind, "feature")
		if err != nil {
			return err
		}
		if k == core.KindBelt {
			if _, ok := core.ParseDir(p.Dir); !ok {
				return core.ConfigError{Code: "BAD_DIRECTION",
					Message: fmt.Sprintf("belt at (%d,%d) has invalid direction %q", p.X, p.Y, p.Dir)}
			}
		}
		if k == core.KindTeleporter {
			teleporters[p.ID]++
		}
	}
	for id, n := range teleporters {
		if n != 2 {
			return core.ConfigError{Code: "UNPAIRED_TELEPORTER",
				Message: fmt.Sprintf("teleporter id %d appears %d times, want exactly 2", id, n)}
		}
	}

	for _, p := range parsed.Items {
		if _, err := checkKind(p, func(k core.Kind) bool { return k == core.KindGem }, "item"); err != nil {
			return err
		}
	}

	// Later placements win, same as the state builder.
	walls := make(map[[2]int]bool)
	for _, p := range parsed.Tiles {
		k, _ := core.ParseKind(p.Kind)
		walls[[2]int{p.X, p.Y}] = k == core.KindWall
	}
	solid := make(map[[2]int]bool)
	for _, p := range parsed.Features {
		k, _ := core.ParseKind(p.Kind)
		solid[[2]int{p.X, p.Y}] = (k == core.KindDoor || k == core.KindGate) && !p.Open
	}

	players := 0
	occupied := make(map[[2]int]string)
	for _, p := range parsed.Actors {
		k, err := checkKind(p, core.IsActorKind, "actor")
		if err != nil {
			return err
		}
		if k == core.KindPlayer {
			players++
		}
		cell := [2]int{p.X, p.Y}
		if prev, ok := occupied[cell]; ok {
			return core.ConfigError{Code: "ACTOR_OVERLAP",
				Message: fmt.Sprintf("actors %s and %s overlap at (%d,%d)", prev, p.Kind, p.X, p.Y)}
		}
		occupied[cell] = p.Kind
		if walls[cell] || solid[cell] {
			return core.ConfigError{Code: "ACTOR_ON_WALL",
				Message: fmt.Sprintf("actor %s at (%d,%d) placed inside a solid cell", p.Kind, p.X, p.Y)}
		}
	}
	if players != 1 {
		return core.ConfigError{Code: "PLAYER_COUNT",
			Message: fmt.Sprintf("level has %d player actors, want exactly 1", players)}
	}

	return nil
}

// build converts a parsed and validated level into a Level.
func build(parsed formats.Level, path string) Level {
	rules := core.DefaultRules()
	if parsed.Rules.MineChain != nil {
		rules.MineChain = *parsed.Rules.MineChain
	}
	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Width:    parsed.Width,
		Height:   parsed.Height,
		Rules:    rules,
		Metadata: parsed.Metadata,
		FilePath: path,
		parsed:   parsed,
	}
}

// Parse parses and validates level data in the given format extension.
func Parse(data []byte, ext string) (Level, error) {
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, err
	}
	if err := Validate(parsed); err != nil {
		return Level{}, err
	}
	return build(parsed, ""), nil
}

// Loader loads levels from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a level loader rooted at the given directory.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files, sorted by ID for
// deterministic ordering. Files that fail to parse or validate are skipped.
func (l *Loader) LoadAll() ([]Level, error) {
	var out []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}
		level, err := l.LoadFile(path)
		if err != nil {
			return nil // skip invalid files
		}
		out = append(out, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	level, err := Parse(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("level file %s: %w", path, err)
	}
	level.FilePath = path
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range all {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(all))
	for i, lvl := range all {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
