package diagram

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RomanAkberov/spherical-voronoi/internal/sgeo"
)

func TestAddCellAndSite(t *testing.T) {
	d := New()
	site := sgeo.FromAngles(0.3, 0.1)
	c := d.AddCell(site)
	assert.Equal(t, Cell(0), c)
	assert.Equal(t, site, d.CellSite(c))
}

func TestAddVertexAndEdgeWiresIncidence(t *testing.T) {
	d := New()
	c0 := d.AddCell(sgeo.FromAngles(0.1, 0))
	c1 := d.AddCell(sgeo.FromAngles(0.2, 1))
	c2 := d.AddCell(sgeo.FromAngles(0.3, 2))

	v0 := d.AddVertex(r3.Vector{X: 0, Y: 0, Z: 1}, [3]Cell{c0, c1, c2})
	v1 := d.AddVertex(r3.Vector{X: 0, Y: 0, Z: -1}, [3]Cell{c0, c1, c2})
	e := d.AddEdge(v0, v1)

	assert.Equal(t, []Edge{e}, d.VertexEdges(v0))
	assert.Equal(t, []Edge{e}, d.VertexEdges(v1))
	assert.Equal(t, [2]Vertex{v0, v1}, d.EdgeVertices(e))
}

// buildTetrahedron wires up the standard tetrahedral incidence structure:
// 4 cells, 4 vertices (each omitting one cell), 6 edges (each shared by
// the two cells common to its endpoints) — the smallest structure that
// satisfies Finish's degree and cell-pair checks.
func buildTetrahedron(d *Diagram) (cells [4]Cell, vertices [4]Vertex, edges [6]Edge) {
	for i := range cells {
		cells[i] = d.AddCell(sgeo.FromAngles(float64(i)+0.1, float64(i)))
	}
	triples := [4][3]Cell{
		{cells[0], cells[1], cells[2]},
		{cells[0], cells[1], cells[3]},
		{cells[0], cells[2], cells[3]},
		{cells[1], cells[2], cells[3]},
	}
	for i, triple := range triples {
		vertices[i] = d.AddVertex(r3.Vector{X: float64(i)}, triple)
	}
	pairs := [6][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	for i, p := range pairs {
		edges[i] = d.AddEdge(vertices[p[0]], vertices[p[1]])
	}
	return cells, vertices, edges
}

func TestFinishResolvesEdgeCellsAndChecksDegree(t *testing.T) {
	d := New()
	cells, _, edges := buildTetrahedron(d)

	require.NotPanics(t, func() { d.Finish(3.0) })

	for _, e := range edges {
		cellPair := d.EdgeCells(e)
		assert.NotEqual(t, cellPair[0], cellPair[1])
	}
	for _, c := range cells {
		assert.Len(t, d.CellEdges(c), 3, "each tetrahedron cell borders 3 edges")
	}
}

func TestFinishPanicsOnBadVertexDegree(t *testing.T) {
	d := New()
	c0 := d.AddCell(sgeo.FromAngles(0.1, 0))
	c1 := d.AddCell(sgeo.FromAngles(1.5, 1))
	c2 := d.AddCell(sgeo.FromAngles(1.5, -1))
	c3 := d.AddCell(sgeo.FromAngles(2.5, 0))
	// v0 and v1 share exactly two cells, so the edge-cell-pair check
	// passes and the vertex-degree check is the one that fires.
	v0 := d.AddVertex(r3.Vector{X: 0, Y: 0, Z: 1}, [3]Cell{c0, c1, c2})
	v1 := d.AddVertex(r3.Vector{X: 0, Y: 0, Z: -1}, [3]Cell{c0, c1, c3})
	d.AddEdge(v0, v1) // only one edge: v0 and v1 each have degree 1, not 3.

	assert.Panics(t, func() { d.Finish(1.0) })
}

func TestResetKeepsCellsDropsGeometry(t *testing.T) {
	d := New()
	cells, _, _ := buildTetrahedron(d)

	d.Reset()

	assert.Len(t, d.Cells(), len(cells))
	assert.Empty(t, d.Vertices())
	assert.Empty(t, d.Edges())
	for _, c := range cells {
		assert.Empty(t, d.CellEdges(c))
	}
}

func TestCentroidFallsBackToSiteWhenNoVertices(t *testing.T) {
	d := New()
	site := sgeo.FromAngles(0.4, 0.2)
	c := d.AddCell(site)
	got := d.Centroid(c)
	assert.Equal(t, site, got)
}
