package beach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RomanAkberov/spherical-voronoi/diagram"
	"github.com/RomanAkberov/spherical-voronoi/internal/arena"
	"github.com/RomanAkberov/spherical-voronoi/internal/sgeo"
)

// siteTable is a minimal SiteLookup backed by a slice, indexed by cell.
type siteTable []sgeo.Point

func (s siteTable) CellSite(c diagram.Cell) sgeo.Point { return s[int(c)] }

func TestInsertFirstArcIsSelfLinked(t *testing.T) {
	var b BeachLine
	sites := siteTable{sgeo.FromAngles(0.2, 0)}
	arc := b.Insert(diagram.Cell(0), sites)

	prev, next := b.Neighbors(arc)
	assert.Equal(t, arc, prev)
	assert.Equal(t, arc, next)
	assert.Equal(t, 1, b.Len())
}

func TestInsertSecondArcFormsTwoCycle(t *testing.T) {
	var b BeachLine
	sites := siteTable{sgeo.FromAngles(0.2, 0), sgeo.FromAngles(0.3, 2)}
	first := b.Insert(diagram.Cell(0), sites)
	second := b.Insert(diagram.Cell(1), sites)

	assert.Equal(t, 2, b.Len())
	prev, next := b.Neighbors(second)
	assert.Equal(t, first, prev)
	assert.Equal(t, first, next)
}

func TestCircleHandleDefaultsInvalid(t *testing.T) {
	var b BeachLine
	sites := siteTable{sgeo.FromAngles(0.2, 0)}
	arc := b.Insert(diagram.Cell(0), sites)
	assert.False(t, b.Circle(arc).Valid())

	b.AttachCircle(arc, arena.Handle(7))
	assert.Equal(t, arena.Handle(7), b.Circle(arc))

	b.DetachCircle(arc)
	assert.False(t, b.Circle(arc).Valid())
}

func TestStartDefaultsToNone(t *testing.T) {
	var b BeachLine
	sites := siteTable{sgeo.FromAngles(0.2, 0)}
	arc := b.Insert(diagram.Cell(0), sites)
	assert.Equal(t, StartNone, b.Start(arc).Kind)

	b.SetStart(arc, Start{Kind: StartVertex, Vertex: diagram.Vertex(3)})
	got := b.Start(arc)
	assert.Equal(t, StartVertex, got.Kind)
	assert.Equal(t, diagram.Vertex(3), got.Vertex)
}

func TestWalkVisitsEveryLiveArcOnce(t *testing.T) {
	var b BeachLine
	sites := siteTable{
		sgeo.FromAngles(0.2, 0),
		sgeo.FromAngles(0.3, 2),
	}
	b.Insert(diagram.Cell(0), sites)
	b.Insert(diagram.Cell(1), sites)

	seen := map[diagram.Cell]bool{}
	count := 0
	b.Walk(func(arc Arc) bool {
		seen[b.Cell(arc)] = true
		count++
		return true
	})
	assert.Equal(t, 2, count)
	assert.True(t, seen[diagram.Cell(0)])
	assert.True(t, seen[diagram.Cell(1)])
}

func TestRemoveLastArcEmptiesBeachLine(t *testing.T) {
	var b BeachLine
	sites := siteTable{sgeo.FromAngles(0.2, 0)}
	arc := b.Insert(diagram.Cell(0), sites)
	b.Remove(arc)
	require.Equal(t, 0, b.Len())
}

func TestClearResetsState(t *testing.T) {
	var b BeachLine
	sites := siteTable{sgeo.FromAngles(0.2, 0), sgeo.FromAngles(0.3, 2)}
	b.Insert(diagram.Cell(0), sites)
	b.Insert(diagram.Cell(1), sites)
	b.Clear()
	assert.Equal(t, 0, b.Len())
}
