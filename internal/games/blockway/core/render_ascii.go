package core

import "strings"

// Glyph returns the display rune for a cell, topmost layer first:
// actor, then item, then feature, then tile.
func Glyph(s *LevelState, c Coord) rune {
	if a, ok := s.ActorAt(c); ok {
		switch a.Kind {
		case KindPlayer:
			return '@'
		case KindCrate:
			return '$'
		case KindBall:
			return 'O'
		case KindKey:
			return 'K'
		case KindCreature:
			return 'M'
		case KindSentry:
			return 'S'
		}
	}
	if s.Grid.ItemAt(c) == KindGem {
		return '+'
	}
	if f, ok := s.Grid.FeatureAt(c); ok {
		switch f.Kind {
		case KindBelt:
			switch f.Dir {
			case DirUp:
				return '^'
			case DirRight:
				return '>'
			case DirDown:
				return 'v'
			default:
				return '<'
			}
		case KindMine:
			return '!'
		case KindTeleporter:
			return 'T'
		case KindButton:
			return '_'
		case KindDoor:
			if f.Open {
				return 'd'
			}
			return 'D'
		case KindWater:
			return '~'
		case KindExit:
			return 'E'
		case KindIce:
			return ':'
		case KindGate:
			if f.Open {
				return 'g'
			}
			return 'G'
		}
	}
	if s.Grid.TileAt(c) == KindWall {
		return '#'
	}
	return ' '
}

// RenderLines renders the state as one string per grid row. Used by the TUI
// adapter and the replay command for text output.
func RenderLines(s *LevelState) []string {
	lines := make([]string, s.Grid.H)
	var b strings.Builder
	for y := 0; y < s.Grid.H; y++ {
		b.Reset()
		b.Grow(s.Grid.W)
		for x := 0; x < s.Grid.W; x++ {
			b.WriteRune(Glyph(s, C(x, y)))
		}
		lines[y] = b.String()
	}
	return lines
}

// RenderString renders the state as a newline-joined block.
func RenderString(s *LevelState) string {
	return strings.Join(RenderLines(s), "\n")
}
