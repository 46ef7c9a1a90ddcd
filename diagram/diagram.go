// Package diagram is the graph store a spherical Voronoi build populates:
// cells (one per site), vertices (circumcenters), and edges connecting
// them, with the adjacency lookups spec.md §6 requires of a "Diagram"
// collaborator. It is written in the spirit of the teacher's dcel.DCEL
// (github.com/quasoft/dcel) — Face/Vertex/Edge handles owned by one
// top-level store — but flattened to the plain cell/vertex/edge contract
// the sweep core actually calls, since the teacher's half-edge pairs
// carry 2D integer coordinates and no notion of SetEdgeCells/VertexCells.
package diagram

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/RomanAkberov/spherical-voronoi/internal/sgeo"
)

// Cell, Vertex and Edge are opaque handles into a Diagram, valid only for
// the Diagram that produced them.
type Cell int32
type Vertex int32
type Edge int32

// Diagram owns the cells, vertices and edges produced by one sweep pass.
// Mutations happen in a deterministic order (cells in input order, then
// vertices and edges in sweep order), which is what makes Build
// reproducible for identical inputs (spec.md §5).
type Diagram struct {
	cellSites []sgeo.Point
	cellEdges [][]Edge

	vertexPositions []r3.Vector
	vertexCells     [][3]Cell
	vertexEdges     [][]Edge

	edgeVertices [][2]Vertex
	edgeCells    [][2]Cell
}

// New returns an empty Diagram.
func New() *Diagram {
	return &Diagram{}
}

// AddCell registers a new cell generated by site and returns its handle.
func (d *Diagram) AddCell(site sgeo.Point) Cell {
	d.cellSites = append(d.cellSites, site)
	d.cellEdges = append(d.cellEdges, nil)
	return Cell(len(d.cellSites) - 1)
}

// SetCellSite replaces c's generating site, used by Lloyd relaxation to
// move a cell to its previous pass's centroid before the next pass.
func (d *Diagram) SetCellSite(c Cell, site sgeo.Point) {
	d.cellSites[c] = site
}

// CellSite returns c's generating site.
func (d *Diagram) CellSite(c Cell) sgeo.Point {
	return d.cellSites[c]
}

// CellEdges returns the edges incident to c, recorded as edges are added.
func (d *Diagram) CellEdges(c Cell) []Edge {
	return d.cellEdges[c]
}

// AddVertex registers a new Voronoi vertex at position, incident to the
// three given cells, and returns its handle.
func (d *Diagram) AddVertex(position r3.Vector, cells [3]Cell) Vertex {
	d.vertexPositions = append(d.vertexPositions, position)
	d.vertexCells = append(d.vertexCells, cells)
	d.vertexEdges = append(d.vertexEdges, nil)
	return Vertex(len(d.vertexPositions) - 1)
}

// VertexPosition returns v's Cartesian position.
func (d *Diagram) VertexPosition(v Vertex) r3.Vector {
	return d.vertexPositions[v]
}

// VertexCells returns the three cells incident to v.
func (d *Diagram) VertexCells(v Vertex) [3]Cell {
	return d.vertexCells[v]
}

// VertexEdges returns the edges incident to v, recorded as edges are added.
func (d *Diagram) VertexEdges(v Vertex) []Edge {
	return d.vertexEdges[v]
}

// AddEdge registers an edge between two already-known vertices and
// returns its handle. Both endpoints' incidence lists are updated, and
// the edge is recorded against both endpoints' common cells once
// Finish resolves them.
func (d *Diagram) AddEdge(v0, v1 Vertex) Edge {
	e := Edge(len(d.edgeVertices))
	d.edgeVertices = append(d.edgeVertices, [2]Vertex{v0, v1})
	d.edgeCells = append(d.edgeCells, [2]Cell{-1, -1})
	d.vertexEdges[v0] = append(d.vertexEdges[v0], e)
	d.vertexEdges[v1] = append(d.vertexEdges[v1], e)
	return e
}

// SetEdgeCells records e's two incident cells.
func (d *Diagram) SetEdgeCells(e Edge, c0, c1 Cell) {
	d.edgeCells[e] = [2]Cell{c0, c1}
	d.cellEdges[c0] = append(d.cellEdges[c0], e)
	d.cellEdges[c1] = append(d.cellEdges[c1], e)
}

// EdgeVertices returns e's two endpoints.
func (d *Diagram) EdgeVertices(e Edge) [2]Vertex {
	return d.edgeVertices[e]
}

// EdgeCells returns e's two incident cells, valid only after Finish.
func (d *Diagram) EdgeCells(e Edge) [2]Cell {
	return d.edgeCells[e]
}

// Cells, Vertices and Edges return the live handles in creation order.
func (d *Diagram) Cells() []Cell {
	cells := make([]Cell, len(d.cellSites))
	for i := range cells {
		cells[i] = Cell(i)
	}
	return cells
}

func (d *Diagram) Vertices() []Vertex {
	vertices := make([]Vertex, len(d.vertexPositions))
	for i := range vertices {
		vertices[i] = Vertex(i)
	}
	return vertices
}

func (d *Diagram) Edges() []Edge {
	edges := make([]Edge, len(d.edgeVertices))
	for i := range edges {
		edges[i] = Edge(i)
	}
	return edges
}

// Centroid returns the mean, renormalized position of c's incident
// vertices — the Lloyd-relaxation replacement site for c. It scans
// vertex incidence directly rather than cellEdges, since cellEdges is
// only populated by Finish and relaxation needs a centroid after every
// pass, not only the last one.
func (d *Diagram) Centroid(c Cell) sgeo.Point {
	var points []sgeo.Point
	for v, cells := range d.vertexCells {
		if cells[0] == c || cells[1] == c || cells[2] == c {
			pos := d.vertexPositions[v]
			points = append(points, sgeo.FromCartesian(pos.X, pos.Y, pos.Z))
		}
	}
	if len(points) == 0 {
		return d.cellSites[c]
	}
	return sgeo.Centroid(points)
}

// CellArea returns c's spherical area in steradians, computed by fan-
// triangulating its boundary polygon from c's site and summing each
// triangle's spherical excess (sgeo.TriangleArea). Valid only after
// Finish has populated cellEdges; a cell with fewer than 3 boundary
// edges (the degenerate two-site case, which never closes a polygon)
// has zero area.
func (d *Diagram) CellArea(c Cell) float64 {
	polygon := d.cellPolygon(c)
	if len(polygon) < 3 {
		return 0
	}
	site := d.cellSites[c].Position
	var area float64
	for i, v := range polygon {
		next := polygon[(i+1)%len(polygon)]
		area += sgeo.TriangleArea(site, d.vertexPositions[v], d.vertexPositions[next])
	}
	return area
}

// cellPolygon walks c's incident edges into a single ordered vertex cycle.
// Each vertex has exactly two neighbors within the cell's boundary (spec.md
// §8's degree invariant), so the walk never has to choose among more than
// one unvisited neighbor.
func (d *Diagram) cellPolygon(c Cell) []Vertex {
	edges := d.cellEdges[c]
	if len(edges) < 3 {
		return nil
	}
	neighbors := make(map[Vertex][]Vertex, len(edges))
	for _, e := range edges {
		ev := d.edgeVertices[e]
		neighbors[ev[0]] = append(neighbors[ev[0]], ev[1])
		neighbors[ev[1]] = append(neighbors[ev[1]], ev[0])
	}
	start := d.edgeVertices[edges[0]][0]
	order := make([]Vertex, 1, len(edges))
	order[0] = start
	prev, current := Vertex(-1), start
	for len(order) < len(edges) {
		next := Vertex(-1)
		for _, n := range neighbors[current] {
			if n != prev {
				next = n
				break
			}
		}
		if next == -1 {
			break // malformed boundary; return what was walked so far.
		}
		order = append(order, next)
		prev, current = current, next
	}
	return order
}

// Reset clears vertices and edges but retains cells (and their current
// sites), as spec.md §4.1 requires between Lloyd relaxation passes.
func (d *Diagram) Reset() {
	d.vertexPositions = nil
	d.vertexCells = nil
	d.vertexEdges = nil
	d.edgeVertices = nil
	d.edgeCells = nil
	for i := range d.cellEdges {
		d.cellEdges[i] = nil
	}
}

// InvariantViolation is the panic value spec.md §7 calls for when Finish
// discovers a construction bug: an edge without exactly two common
// cells, or a vertex without exactly three incident edges. A vertex's
// cell triple is not checked for duplicates. It is not a user-facing
// error — it documents an algorithm defect.
type InvariantViolation struct {
	Kind      string
	Handle    any
	ScanTheta float64
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("svoronoi: invariant violation (%s) at handle %v, scan theta %g", e.Kind, e.Handle, e.ScanTheta)
}

// Finish resolves each edge's incident cell pair from the cells common
// to its two endpoints, then checks the vertex-degree invariants
// (spec.md §4.5, §8 invariants 3-4). scanTheta is passed only for
// diagnostic context in a panic.
func (d *Diagram) Finish(scanTheta float64) {
	for _, e := range d.Edges() {
		endpoints := d.edgeVertices[e]
		c0 := d.vertexCells[endpoints[0]]
		c1 := d.vertexCells[endpoints[1]]
		var common []Cell
		for _, a := range c0 {
			for _, b := range c1 {
				if a == b {
					common = append(common, a)
				}
			}
		}
		if len(common) != 2 {
			panic(&InvariantViolation{Kind: "edge cell pair", Handle: e, ScanTheta: scanTheta})
		}
		d.SetEdgeCells(e, common[0], common[1])
	}
	for _, v := range d.Vertices() {
		if len(d.vertexEdges[v]) != 3 {
			panic(&InvariantViolation{Kind: "vertex degree", Handle: v, ScanTheta: scanTheta})
		}
	}
}
