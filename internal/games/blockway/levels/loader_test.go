package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/blockway/internal/games/blockway/core"
)

const validLevel = `
id: test-01
name: Test Level
size: {w: 6, h: 4}
tiles:
  - {x: 3, y: 1, kind: Wall}
features:
  - {x: 4, y: 2, kind: Belt, dir: Right}
  - {x: 5, y: 3, kind: Exit}
items:
  - {x: 2, y: 2, kind: Gem}
actors:
  - {x: 0, y: 0, kind: Player}
  - {x: 1, y: 0, kind: Crate}
metadata:
  author: tester
`

func TestParseValidLevel(t *testing.T) {
	level, err := Parse([]byte(validLevel), ".yaml")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if level.ID != "test-01" {
		t.Errorf("ID = %q, want test-01", level.ID)
	}
	if level.Name != "Test Level" {
		t.Errorf("Name = %q", level.Name)
	}
	if level.Width != 6 || level.Height != 4 {
		t.Errorf("size = %dx%d, want 6x4", level.Width, level.Height)
	}
	if level.Metadata["author"] != "tester" {
		t.Errorf("metadata author = %q", level.Metadata["author"])
	}
}

func TestParseUnsupportedExtension(t *testing.T) {
	if _, err := Parse([]byte(validLevel), ".json"); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantCode string
	}{
		{
			name: "zero size",
			yaml: `
id: bad
size: {w: 0, h: 5}
actors:
  - {x: 0, y: 0, kind: Player}
`,
			wantCode: "BAD_SIZE",
		},
		{
			name: "negative size",
			yaml: `
id: bad
size: {w: 4, h: -1}
actors:
  - {x: 0, y: 0, kind: Player}
`,
			wantCode: "BAD_SIZE",
		},
		{
			name: "unknown actor kind",
			yaml: `
id: bad
size: {w: 4, h: 4}
actors:
  - {x: 0, y: 0, kind: Player}
  - {x: 1, y: 0, kind: Dragon}
`,
			wantCode: "UNKNOWN_KIND",
		},
		{
			name: "feature kind in tile section",
			yaml: `
id: bad
size: {w: 4, h: 4}
tiles:
  - {x: 1, y: 1, kind: Belt}
actors:
  - {x: 0, y: 0, kind: Player}
`,
			wantCode: "UNKNOWN_KIND",
		},
		{
			name: "actor out of bounds",
			yaml: `
id: bad
size: {w: 4, h: 4}
actors:
  - {x: 0, y: 0, kind: Player}
  - {x: 4, y: 0, kind: Crate}
`,
			wantCode: "OUT_OF_BOUNDS",
		},
		{
			name: "belt without direction",
			yaml: `
id: bad
size: {w: 4, h: 4}
features:
  - {x: 1, y: 1, kind: Belt}
actors:
  - {x: 0, y: 0, kind: Player}
`,
			wantCode: "BAD_DIRECTION",
		},
		{
			name: "unpaired teleporter",
			yaml: `
id: bad
size: {w: 4, h: 4}
features:
  - {x: 1, y: 1, kind: Teleporter, id: 3}
actors:
  - {x: 0, y: 0, kind: Player}
`,
			wantCode: "UNPAIRED_TELEPORTER",
		},
		{
			name: "three teleporters on one id",
			yaml: `
id: bad
size: {w: 4, h: 4}
features:
  - {x: 1, y: 1, kind: Teleporter, id: 3}
  - {x: 2, y: 1, kind: Teleporter, id: 3}
  - {x: 3, y: 1, kind: Teleporter, id: 3}
actors:
  - {x: 0, y: 0, kind: Player}
`,
			wantCode: "UNPAIRED_TELEPORTER",
		},
		{
			name: "two crates on one cell",
			yaml: `
id: bad
size: {w: 4, h: 4}
actors:
  - {x: 0, y: 0, kind: Player}
  - {x: 1, y: 0, kind: Crate}
  - {x: 1, y: 0, kind: Crate}
`,
			wantCode: "ACTOR_OVERLAP",
		},
		{
			name: "actor inside a wall",
			yaml: `
id: bad
size: {w: 4, h: 4}
tiles:
  - {x: 2, y: 2, kind: Wall}
actors:
  - {x: 0, y: 0, kind: Player}
  - {x: 2, y: 2, kind: Crate}
`,
			wantCode: "ACTOR_ON_WALL",
		},
		{
			name: "actor on a closed door",
			yaml: `
id: bad
size: {w: 4, h: 4}
features:
  - {x: 1, y: 1, kind: Door}
  - {x: 2, y: 1, kind: Button, id: 1}
actors:
  - {x: 0, y: 0, kind: Player}
  - {x: 1, y: 1, kind: Ball}
`,
			wantCode: "ACTOR_ON_WALL",
		},
		{
			name: "no player",
			yaml: `
id: bad
size: {w: 4, h: 4}
actors:
  - {x: 1, y: 0, kind: Crate}
`,
			wantCode: "PLAYER_COUNT",
		},
		{
			name: "two players",
			yaml: `
id: bad
size: {w: 4, h: 4}
actors:
  - {x: 0, y: 0, kind: Player}
  - {x: 1, y: 0, kind: Player}
`,
			wantCode: "PLAYER_COUNT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), ".yaml")
			var cfgErr core.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", cfgErr.Code, tt.wantCode)
			}
		})
	}
}

func TestActorOnOpenFeatureAllowed(t *testing.T) {
	// An open door is walkable, so placing an actor there is legal. Ice
	// and an unoccupied closed gate must also pass validation.
	_, err := Parse([]byte(`
id: ok
size: {w: 5, h: 3}
features:
  - {x: 1, y: 1, kind: Door, open: true}
  - {x: 3, y: 1, kind: Gate}
  - {x: 2, y: 1, kind: Ice}
actors:
  - {x: 0, y: 0, kind: Player}
  - {x: 1, y: 1, kind: Crate}
  - {x: 2, y: 1, kind: Key}
`), ".yaml")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
}

func TestNewStateBuildsInitialState(t *testing.T) {
	level, err := Parse([]byte(validLevel), ".yaml")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	s := level.NewState()
	if s.Grid.W != 6 || s.Grid.H != 4 {
		t.Errorf("grid size = %dx%d, want 6x4", s.Grid.W, s.Grid.H)
	}
	if s.Grid.TileAt(core.C(3, 1)) != core.KindWall {
		t.Error("wall tile not placed")
	}
	if f, ok := s.Grid.FeatureAt(core.C(4, 2)); !ok || f.Kind != core.KindBelt || f.Dir != core.DirRight {
		t.Error("belt feature not placed")
	}
	if s.GemsAll != 1 {
		t.Errorf("GemsAll = %d, want 1", s.GemsAll)
	}
	player, ok := s.Player()
	if !ok || player.Pos != core.C(0, 0) {
		t.Fatal("player not placed at (0,0)")
	}

	// Independent states per call.
	other := level.NewState()
	s.MoveActor(player.ID, core.C(2, 0))
	if p, _ := other.Player(); p.Pos != core.C(0, 0) {
		t.Error("NewState() returned a shared state")
	}
}

func TestRulesWithDefaults(t *testing.T) {
	base := core.Rules{MineChain: false, MaxBeltPasses: 7}

	// No override in the file: base wins.
	plain, err := Parse([]byte(validLevel), ".yaml")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	got := plain.RulesWithDefaults(base)
	if got.MineChain || got.MaxBeltPasses != 7 {
		t.Errorf("rules = %+v, want base preserved", got)
	}

	// File override takes precedence.
	overridden, err := Parse([]byte(`
id: override
size: {w: 4, h: 4}
rules:
  mine_chain: true
actors:
  - {x: 0, y: 0, kind: Player}
`), ".yaml")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	got = overridden.RulesWithDefaults(base)
	if !got.MineChain {
		t.Error("mine_chain override not applied")
	}
	if got.MaxBeltPasses != 7 {
		t.Error("unset fields should keep base values")
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()

	second := `
id: b-level
name: Second
size: {w: 4, h: 4}
actors:
  - {x: 0, y: 0, kind: Player}
`
	first := `
id: a-level
name: First
size: {w: 4, h: 4}
actors:
  - {x: 0, y: 0, kind: Player}
`
	broken := `
id: broken
size: {w: 4, h: 4}
actors: []
`
	writeLevel(t, dir, "second.yaml", second)
	writeLevel(t, dir, "first.yml", first)
	writeLevel(t, dir, "broken.yaml", broken)
	writeLevel(t, dir, "notes.txt", "not a level")

	loader := NewLoader(dir)
	all, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("loaded %d levels, want 2", len(all))
	}
	if all[0].ID != "a-level" || all[1].ID != "b-level" {
		t.Errorf("order = [%s %s], want sorted by ID", all[0].ID, all[1].ID)
	}
	if all[0].FilePath == "" {
		t.Error("FilePath not recorded")
	}
}

func TestLoaderLoadByID(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "one.yaml", `
id: the-one
name: The One
size: {w: 4, h: 4}
actors:
  - {x: 0, y: 0, kind: Player}
`)

	loader := NewLoader(dir)
	level, err := loader.LoadByID("the-one")
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}
	if level.Name != "The One" {
		t.Errorf("Name = %q", level.Name)
	}

	if _, err := loader.LoadByID("missing"); err == nil {
		t.Error("expected an error for a missing ID")
	}
}

func writeLevel(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}
