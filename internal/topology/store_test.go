package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphed/internal/spatial"
)

func storeWith(undirected bool, syms ...Symbol) *Store {
	s := NewStore(undirected)
	for i, sym := range syms {
		s.InsertVertex(NewVertex(sym, float64(i*100), 0, 25))
	}
	return s
}

func connect(s *Store, from, to Symbol, weight float64) *Edge {
	e := NewEdge(s.Vertex(from), s.Vertex(to), weight, 10)
	s.InsertEdge(e)
	return e
}

func symbols(edges []*Edge) []string {
	out := make([]string, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.String())
	}
	return out
}

func TestVertices(t *testing.T) {
	s := storeWith(true, "A", "B")
	assert.True(t, s.VertexExists("A"))
	assert.False(t, s.VertexExists("C"))
	assert.Equal(t, 2, s.Len())
	require.NotNil(t, s.Vertex("B"))
	assert.Equal(t, spatial.Point{X: 100, Y: 0}, s.Vertex("B").Position())
	assert.Nil(t, s.Vertex("C"))

	s.DeleteVertex("A")
	assert.False(t, s.VertexExists("A"))
	assert.Equal(t, 1, s.Len())
	s.DeleteVertex("A") // no-op
	assert.Equal(t, 1, s.Len())
}

func TestVertexBounds(t *testing.T) {
	v := NewVertex("A", 10, 10, 25)
	assert.Equal(t, spatial.Rect{Min: spatial.Point{X: -15, Y: -15}, Max: spatial.Point{X: 35, Y: 35}}, v.Bounds())

	v.MoveTo(100, 50)
	assert.Equal(t, spatial.Point{X: 100, Y: 50}, v.Position())
	assert.True(t, v.Bounds().Contains(125, 75))
	assert.False(t, v.Bounds().Contains(126, 50))
}

func TestUndirectedEdges(t *testing.T) {
	s := storeWith(true, "A", "B", "C")
	e := connect(s, "A", "B", 3)

	assert.True(t, s.EdgeExists("A", "B"))
	assert.True(t, s.EdgeExists("B", "A"))
	assert.Same(t, e, s.Edge("B", "A"))
	assert.Equal(t, 1, s.EdgeCount())
	assert.Equal(t, []Symbol{"B"}, s.Vertex("A").Neighbors())
	assert.Equal(t, []Symbol{"A"}, s.Vertex("B").Neighbors())

	var visited []*Edge
	s.ForEachEdge(func(e *Edge) { visited = append(visited, e) })
	assert.Equal(t, []*Edge{e}, visited, "shared edge must be visited once")

	s.DeleteEdge("B", "A")
	assert.False(t, s.EdgeExists("A", "B"))
	assert.False(t, s.EdgeExists("B", "A"))
	assert.Empty(t, s.Vertex("A").Neighbors())
	assert.Empty(t, s.Vertex("B").Neighbors())
	assert.Zero(t, s.EdgeCount())
}

func TestDirectedEdges(t *testing.T) {
	s := storeWith(false, "A", "B")
	ab := connect(s, "A", "B", 1)
	ba := connect(s, "B", "A", 2)

	assert.NotSame(t, ab, ba)
	assert.Equal(t, 2, s.EdgeCount())
	assert.Equal(t, []Symbol{"B"}, s.Vertex("A").Neighbors())

	s.DeleteEdge("A", "B")
	assert.False(t, s.EdgeExists("A", "B"))
	assert.True(t, s.EdgeExists("B", "A"))
	assert.Equal(t, []Symbol{"B"}, s.Vertex("A").Neighbors(), "B->A still joins the pair")

	s.DeleteEdge("B", "A")
	assert.Empty(t, s.Vertex("A").Neighbors())
	assert.Empty(t, s.Vertex("B").Neighbors())
}

func TestIncidentEdges(t *testing.T) {
	t.Run("undirected", func(t *testing.T) {
		s := storeWith(true, "A", "B", "C", "D")
		connect(s, "A", "B", 1)
		connect(s, "C", "A", 2)
		connect(s, "B", "C", 3)
		connect(s, "A", "D", 4)

		assert.Equal(t, []string{"A->B", "C->A", "A->D"}, symbols(s.IncidentEdges("A")))
		assert.Nil(t, s.IncidentEdges("Z"))
	})

	t.Run("directed both ways", func(t *testing.T) {
		s := storeWith(false, "A", "B")
		connect(s, "B", "A", 1)
		connect(s, "A", "B", 1)
		assert.Equal(t, []string{"A->B", "B->A"}, symbols(s.IncidentEdges("A")))
	})

	t.Run("self loop", func(t *testing.T) {
		s := storeWith(true, "A")
		connect(s, "A", "A", 1)
		assert.Equal(t, []string{"A->A"}, symbols(s.IncidentEdges("A")))
	})
}

func TestNeighborsMirrorIncidentEdges(t *testing.T) {
	s := storeWith(true, "A", "B", "C", "D")
	connect(s, "A", "B", 1)
	connect(s, "B", "C", 1)
	connect(s, "D", "B", 1)
	s.DeleteEdge("C", "B")

	s.ForEachVertex(func(v *Vertex) {
		want := map[Symbol]bool{}
		for _, e := range s.IncidentEdges(v.Symbol()) {
			want[e.Other(v.Symbol())] = true
		}
		got := map[Symbol]bool{}
		for _, n := range v.Neighbors() {
			got[n] = true
		}
		assert.Equal(t, want, got, "vertex %s", v)
	})
}

func TestEdgeGeometry(t *testing.T) {
	s := storeWith(true, "A", "B")
	e := connect(s, "A", "B", 1)

	assert.Equal(t, spatial.Point{X: 50, Y: 0}, e.Center())
	assert.True(t, e.Bounds().Contains(55, 5))
	assert.False(t, e.Bounds().Contains(56, 0))

	e.Reposition(spatial.Point{X: 0, Y: 0}, spatial.Point{X: 0, Y: 100})
	assert.Equal(t, spatial.Point{X: 0, Y: 50}, e.Center())
}

func TestForEachVertexOrder(t *testing.T) {
	s := storeWith(true, "C", "A", "B")
	s.DeleteVertex("A")
	s.InsertVertex(NewVertex("A", 0, 0, 1))

	var got []Symbol
	s.ForEachVertex(func(v *Vertex) { got = append(got, v.Symbol()) })
	assert.Equal(t, []Symbol{"C", "B", "A"}, got)
}

func TestTrackingEdgeBounds(t *testing.T) {
	te := &TrackingEdge{Start: spatial.Point{X: 10, Y: 40}, End: spatial.Point{X: 0, Y: 5}}
	assert.Equal(t, spatial.Rect{Min: spatial.Point{X: 0, Y: 5}, Max: spatial.Point{X: 10, Y: 40}}, te.Bounds())
}
