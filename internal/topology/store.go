// Package topology holds the vertices and edges of a diagram and keeps the
// adjacency between them consistent. It performs no cascading of its own:
// callers check existence before structural changes.
package topology

// Store keeps vertices keyed by symbol and edges keyed by their ordered
// endpoints. In undirected mode an edge is also registered under its reverse
// key, but it stays a single entity.
type Store struct {
	undirected bool
	vertices   map[Symbol]*Vertex
	order      []Symbol
	edges      map[EdgeKey]*Edge
	edgeOrder  []*Edge
}

// NewStore returns an empty store.
func NewStore(undirected bool) *Store {
	return &Store{
		undirected: undirected,
		vertices:   make(map[Symbol]*Vertex),
		edges:      make(map[EdgeKey]*Edge),
	}
}

// Undirected reports the mode fixed at construction.
func (s *Store) Undirected() bool { return s.undirected }

// Len returns the number of vertices.
func (s *Store) Len() int { return len(s.order) }

// EdgeCount returns the number of distinct edges.
func (s *Store) EdgeCount() int { return len(s.edgeOrder) }

func (s *Store) VertexExists(sym Symbol) bool {
	_, ok := s.vertices[sym]
	return ok
}

// InsertVertex adds v, replacing any vertex with the same symbol.
func (s *Store) InsertVertex(v *Vertex) {
	if _, ok := s.vertices[v.symbol]; !ok {
		s.order = append(s.order, v.symbol)
	}
	s.vertices[v.symbol] = v
}

// Vertex returns the vertex labeled sym, or nil.
func (s *Store) Vertex(sym Symbol) *Vertex {
	return s.vertices[sym]
}

// DeleteVertex drops the vertex. Incident edges must already be gone.
func (s *Store) DeleteVertex(sym Symbol) {
	if _, ok := s.vertices[sym]; !ok {
		return
	}
	delete(s.vertices, sym)
	if i := indexOf(s.order, sym); i >= 0 {
		s.order = append(s.order[:i], s.order[i+1:]...)
	}
}

// InsertEdge registers e under its key (and the reverse key when undirected)
// and records the adjacency on both endpoints. Both endpoints must exist.
func (s *Store) InsertEdge(e *Edge) {
	key := e.Key()
	if _, ok := s.edges[key]; !ok {
		s.edgeOrder = append(s.edgeOrder, e)
	}
	s.edges[key] = e
	if s.undirected {
		s.edges[key.Reverse()] = e
	}
	s.vertices[e.from].addNeighbor(e.to)
	s.vertices[e.to].addNeighbor(e.from)
}

// Edge returns the edge addressed by (from, to), or nil.
func (s *Store) Edge(from, to Symbol) *Edge {
	return s.edges[EdgeKey{from, to}]
}

func (s *Store) EdgeExists(from, to Symbol) bool {
	_, ok := s.edges[EdgeKey{from, to}]
	return ok
}

// DeleteEdge removes every key of the edge addressed by (from, to). The
// neighbor entries go only once no edge in either direction joins the pair.
func (s *Store) DeleteEdge(from, to Symbol) {
	e, ok := s.edges[EdgeKey{from, to}]
	if !ok {
		return
	}
	key := e.Key()
	delete(s.edges, key)
	if s.undirected {
		delete(s.edges, key.Reverse())
	}
	for i, other := range s.edgeOrder {
		if other == e {
			s.edgeOrder = append(s.edgeOrder[:i], s.edgeOrder[i+1:]...)
			break
		}
	}
	if s.EdgeExists(key.From, key.To) || s.EdgeExists(key.To, key.From) {
		return
	}
	if v := s.vertices[key.From]; v != nil {
		v.removeNeighbor(key.To)
	}
	if v := s.vertices[key.To]; v != nil {
		v.removeNeighbor(key.From)
	}
}

// IncidentEdges returns every edge touching sym, each once, following the
// vertex's neighbor order with outgoing edges before incoming ones.
func (s *Store) IncidentEdges(sym Symbol) []*Edge {
	v := s.vertices[sym]
	if v == nil {
		return nil
	}
	var out []*Edge
	for _, n := range v.neighbors {
		if e := s.Edge(sym, n); e != nil {
			out = append(out, e)
		}
		if e := s.Edge(n, sym); e != nil && (len(out) == 0 || out[len(out)-1] != e) {
			out = append(out, e)
		}
	}
	return out
}

// ForEachVertex calls fn for every vertex in insertion order.
func (s *Store) ForEachVertex(fn func(*Vertex)) {
	for _, sym := range s.order {
		fn(s.vertices[sym])
	}
}

// ForEachEdge calls fn once per edge in insertion order. A shared undirected
// edge is visited under its canonical key only.
func (s *Store) ForEachEdge(fn func(*Edge)) {
	for _, e := range s.edgeOrder {
		fn(e)
	}
}

// Vertices returns the vertices in insertion order.
func (s *Store) Vertices() []*Vertex {
	out := make([]*Vertex, 0, len(s.order))
	s.ForEachVertex(func(v *Vertex) { out = append(out, v) })
	return out
}

// Edges returns the edges in insertion order.
func (s *Store) Edges() []*Edge {
	return append([]*Edge(nil), s.edgeOrder...)
}
