package spatialindex

import (
	"math"

	"github.com/lintang-b-s/safewalk/pkg"
	"github.com/lintang-b-s/safewalk/pkg/datastructure"
	"github.com/lintang-b-s/safewalk/pkg/geo"
	"github.com/lintang-b-s/safewalk/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree locates the graph node nearest to an arbitrary query coordinate.
// Candidate lookup goes through an r-tree box search with an expanding
// radius; ranking uses haversine distance, so the spatial index is purely an
// optimization over the exhaustive scan and never changes which node wins.
type Rtree struct {
	tr    *rtree.RTreeG[datastructure.GeoNode]
	graph *datastructure.Graph
	size  int
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.GeoNode]
	return &Rtree{
		tr: &tr,
	}
}

// Build indexes every graph node as a point.
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	rt.graph = graph
	graph.ForNodes(func(node datastructure.GeoNode) {
		rt.tr.Insert([2]float64{node.Lon, node.Lat}, [2]float64{node.Lon, node.Lat}, node)
		rt.size++
	})
	log.Info("R-tree spatial index built.", zap.Int("nodes", rt.size))
}

// NearestNode returns the graph node closest to the query coordinate, with
// ties broken by the lowest node id. Queries far outside the map extent
// still return the closest available node; only an empty graph fails.
func (rt *Rtree) NearestNode(qLat, qLon float64) (datastructure.GeoNode, error) {
	if rt.size == 0 {
		return datastructure.GeoNode{}, util.WrapErrorf(nil, util.ErrNoRoutableData,
			"nearest node query on empty graph")
	}

	for radius := pkg.DEFAULT_NEAREST_SEARCH_RADIUS_KM; radius <= pkg.MAX_NEAREST_SEARCH_RADIUS_KM; radius *= 2 {
		candidates := rt.searchWithinRadius(qLat, qLon, radius)
		if len(candidates) == 0 {
			continue
		}
		best, bestDist := rankCandidates(candidates, qLat, qLon)
		// the box corners sit at distance radius, so the box only spans
		// radius/sqrt(2) per axis. a closer node could still sit outside
		// it; only accept a winner inside the box's inscribed circle
		if bestDist <= radius/math.Sqrt2*1000.0 {
			return best, nil
		}
	}

	// sparse region fallback: exhaustive scan over all nodes
	candidates := make([]datastructure.GeoNode, 0, rt.size)
	rt.graph.ForNodes(func(node datastructure.GeoNode) {
		candidates = append(candidates, node)
	})
	best, _ := rankCandidates(candidates, qLat, qLon)
	return best, nil
}

// searchWithinRadius search all indexed nodes inside the bounding box with
// the given radius (in km) around the query point
func (rt *Rtree) searchWithinRadius(qLat, qLon, radius float64) []datastructure.GeoNode {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]datastructure.GeoNode, 0, 16)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data datastructure.GeoNode) bool {
			results = append(results, data)
			return true
		})
	return results
}

func rankCandidates(candidates []datastructure.GeoNode, qLat, qLon float64) (datastructure.GeoNode, float64) {
	best := candidates[0]
	bestDist := geo.CalculateHaversineDistanceInMeter(qLat, qLon, best.Lat, best.Lon)
	for _, cand := range candidates[1:] {
		dist := geo.CalculateHaversineDistanceInMeter(qLat, qLon, cand.Lat, cand.Lon)
		if dist < bestDist || (dist == bestDist && cand.ID < best.ID) {
			best = cand
			bestDist = dist
		}
	}
	return best, bestDist
}
