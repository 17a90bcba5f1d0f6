package core

// Feature is a placed instance of a feature-layer kind.
// Dir is meaningful for directional kinds (belts). ID links paired
// teleporters and button/door groups. Open applies to doors.
type Feature struct {
	Kind Kind
	Dir  Dir
	ID   int
	Open bool
}

// Grid owns the spatial layout of a level: the Floor/Wall layer, the feature
// layer, and the item layer. Cells are stored in row-major order, all queries
// O(1) via direct indexing. The grid never schedules its own changes; only
// the rule engine mutates it.
type Grid struct {
	W     int
	H     int
	tiles []Kind    // KindFloor or KindWall, length W*H
	feats []Feature // Kind == KindNone for empty cells
	items []Kind    // KindNone or KindGem
}

// NewGrid creates an all-floor grid of the given dimensions.
func NewGrid(w, h int) *Grid {
	g := &Grid{
		W:     w,
		H:     h,
		tiles: make([]Kind, w*h),
		feats: make([]Feature, w*h),
		items: make([]Kind, w*h),
	}
	for i := range g.tiles {
		g.tiles[i] = KindFloor
	}
	return g
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// TileAt returns the Floor/Wall layer occupant. Out of bounds reads as Wall
// so that the edge of the level behaves like a wall everywhere.
func (g *Grid) TileAt(c Coord) Kind {
	if !g.InBounds(c) {
		return KindWall
	}
	return g.tiles[g.index(c)]
}

// SetTile places a Floor/Wall layer occupant.
func (g *Grid) SetTile(c Coord, k Kind) {
	if g.InBounds(c) {
		g.tiles[g.index(c)] = k
	}
}

// FeatureAt returns the feature at the coordinate and whether one is present.
func (g *Grid) FeatureAt(c Coord) (Feature, bool) {
	if !g.InBounds(c) {
		return Feature{}, false
	}
	f := g.feats[g.index(c)]
	return f, f.Kind != KindNone
}

// SetFeature places a feature instance at the coordinate.
func (g *Grid) SetFeature(c Coord, f Feature) {
	if g.InBounds(c) {
		g.feats[g.index(c)] = f
	}
}

// RemoveFeature clears the feature layer at the coordinate.
func (g *Grid) RemoveFeature(c Coord) {
	if g.InBounds(c) {
		g.feats[g.index(c)] = Feature{}
	}
}

// ItemAt returns the item layer occupant, or KindNone.
func (g *Grid) ItemAt(c Coord) Kind {
	if !g.InBounds(c) {
		return KindNone
	}
	return g.items[g.index(c)]
}

// SetItem places an item at the coordinate.
func (g *Grid) SetItem(c Coord, k Kind) {
	if g.InBounds(c) {
		g.items[g.index(c)] = k
	}
}

// RemoveItem clears the item layer at the coordinate.
func (g *Grid) RemoveItem(c Coord) {
	if g.InBounds(c) {
		g.items[g.index(c)] = KindNone
	}
}

// IsBlocked returns true if the cell can never be entered this turn: outside
// the grid, a Wall, or a solid feature (a closed door or gate).
func (g *Grid) IsBlocked(c Coord) bool {
	if !g.InBounds(c) {
		return true
	}
	if g.tiles[g.index(c)] == KindWall {
		return true
	}
	f := g.feats[g.index(c)]
	if (f.Kind == KindDoor || f.Kind == KindGate) && !f.Open {
		return true
	}
	return false
}

// ItemCount returns the number of items remaining on the grid.
func (g *Grid) ItemCount() int {
	n := 0
	for _, k := range g.items {
		if k != KindNone {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	tiles := make([]Kind, len(g.tiles))
	copy(tiles, g.tiles)
	feats := make([]Feature, len(g.feats))
	copy(feats, g.feats)
	items := make([]Kind, len(g.items))
	copy(items, g.items)
	return &Grid{W: g.W, H: g.H, tiles: tiles, feats: feats, items: items}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i := range g.tiles {
		if g.tiles[i] != other.tiles[i] || g.feats[i] != other.feats[i] || g.items[i] != other.items[i] {
			return false
		}
	}
	return true
}
