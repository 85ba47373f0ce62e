package datastructure

import (
	"github.com/lintang-b-s/safewalk/pkg/geo"
	"github.com/lintang-b-s/safewalk/pkg/util"
)

// GeoNode is one routable intersection or way endpoint. Identity is the
// openstreetmap node id.
type GeoNode struct {
	ID  int64
	Lat float64
	Lon float64
}

func NewGeoNode(id int64, lat, lon float64) GeoNode {
	return GeoNode{ID: id, Lat: lat, Lon: lon}
}

// GraphEdge is one directed traversable street segment between two graph
// nodes. Geometry is ordered in traversal direction, from tail to head.
type GraphEdge struct {
	From     int64
	To       int64
	LengthM  float64
	Risk     float64
	WayID    int64
	Geometry []geo.Coordinate
}

func NewGraphEdge(from, to int64, lengthM float64, wayID int64, geometry []geo.Coordinate) GraphEdge {
	return GraphEdge{
		From:     from,
		To:       to,
		LengthM:  lengthM,
		WayID:    wayID,
		Geometry: geometry,
	}
}

// Graph owns the node set and per-node outgoing adjacency. It is built once
// at startup and read-only afterwards, so concurrent route queries share it
// without locking.
type Graph struct {
	nodes     map[int64]GeoNode
	adjacency map[int64][]GraphEdge
	numEdges  int
}

func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[int64]GeoNode),
		adjacency: make(map[int64][]GraphEdge),
	}
}

// AddNode inserts the node, deduplicating by id. Nodes shared between ways
// resolve to a single entry, which is what makes intersections connect.
func (g *Graph) AddNode(node GeoNode) {
	if _, ok := g.nodes[node.ID]; ok {
		return
	}
	g.nodes[node.ID] = node
}

// AddEdge appends a directed edge to the tail's adjacency. Both endpoints
// must already be present in the node set.
func (g *Graph) AddEdge(edge GraphEdge) error {
	if _, ok := g.nodes[edge.From]; !ok {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "edge tail %d not in node set", edge.From)
	}
	if _, ok := g.nodes[edge.To]; !ok {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "edge head %d not in node set", edge.To)
	}
	g.adjacency[edge.From] = append(g.adjacency[edge.From], edge)
	g.numEdges++
	return nil
}

func (g *Graph) Node(id int64) (GeoNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Neighbors returns the outgoing edges of the node in insertion order.
func (g *Graph) Neighbors(id int64) []GraphEdge {
	return g.adjacency[id]
}

func (g *Graph) NumberOfNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumberOfEdges() int {
	return g.numEdges
}

func (g *Graph) ForNodes(fn func(node GeoNode)) {
	for _, n := range g.nodes {
		fn(n)
	}
}

// ForEdges visits every edge. Pointers reference the graph's backing
// storage so the risk index can cache per-edge risk before the graph is
// published; no edge may be added or mutated after that.
func (g *Graph) ForEdges(fn func(edge *GraphEdge)) {
	for from := range g.adjacency {
		edges := g.adjacency[from]
		for i := range edges {
			fn(&edges[i])
		}
	}
}

// Extent returns the bounding rectangle of all graph nodes.
func (g *Graph) Extent() *geo.Extent {
	extent := geo.NewExtent()
	for _, n := range g.nodes {
		extent.Add(n.Lat, n.Lon)
	}
	return extent
}
