package routing

import (
	"github.com/lintang-b-s/safewalk/pkg/datastructure"
	"github.com/lintang-b-s/safewalk/pkg/geo"
	"github.com/lintang-b-s/safewalk/pkg/util"
	"go.uber.org/zap"
)

// SearchResult is one computed pedestrian route. AverageRisk is the
// length-weighted mean of the traversed edges' cached risks.
type SearchResult struct {
	Path          []datastructure.GraphEdge
	Coords        []geo.Coordinate
	TotalDistance float64
	AverageRisk   float64
	Found         bool
}

// AStar runs best-first search over the routable graph with the cost
// function cost(edge) = lengthM * (1 + alpha*risk). The heuristic is the
// plain great-circle distance to the destination. It must never be scaled
// by alpha: true edge cost is always >= geometric length, so the unscaled
// estimate stays a lower bound and the search stays optimal.
type AStar struct {
	graph *datastructure.Graph
	log   *zap.Logger
}

func NewAStar(graph *datastructure.Graph, log *zap.Logger) *AStar {
	return &AStar{graph: graph, log: log}
}

// Route finds the minimum-cost path between two graph nodes for the given
// safety weight alpha. alpha = 0 degenerates to pure shortest distance. A
// disconnected origin/destination pair yields Found == false, not an error;
// a broken cost invariant (negative edge cost) is an ErrInternalSearchFault.
func (a *AStar) Route(originID, destinationID int64, alpha float64) (SearchResult, error) {
	if alpha < 0 {
		return SearchResult{}, util.WrapErrorf(nil, util.ErrBadParamInput, "negative alpha %f", alpha)
	}
	origin, ok := a.graph.Node(originID)
	if !ok {
		return SearchResult{}, util.WrapErrorf(nil, util.ErrInternalSearchFault, "origin node %d not in graph", originID)
	}
	destination, ok := a.graph.Node(destinationID)
	if !ok {
		return SearchResult{}, util.WrapErrorf(nil, util.ErrInternalSearchFault, "destination node %d not in graph", destinationID)
	}

	if originID == destinationID {
		// zero-length path by convention: single coordinate, zero risk
		return SearchResult{
			Path:          []datastructure.GraphEdge{},
			Coords:        []geo.Coordinate{geo.NewCoordinate(origin.Lat, origin.Lon)},
			TotalDistance: 0,
			AverageRisk:   0,
			Found:         true,
		}, nil
	}

	heuristic := func(node datastructure.GeoNode) float64 {
		return geo.CalculateHaversineDistanceInMeter(node.Lat, node.Lon, destination.Lat, destination.Lon)
	}

	costSoFar := make(map[int64]float64)
	cameFrom := make(map[int64]datastructure.GraphEdge)
	frontierItems := make(map[int64]*datastructure.PriorityQueueNode[int64])

	pq := datastructure.NewFourAryHeap[int64]()
	pq.Insert(datastructure.NewPriorityQueueNode(heuristic(origin), 0, originID))
	costSoFar[originID] = 0

	for !pq.IsEmpty() {
		current, err := pq.ExtractMin()
		if err != nil {
			return SearchResult{}, util.WrapErrorf(err, util.ErrInternalSearchFault, "frontier corrupted")
		}
		currentID := current.GetItem()

		if currentID == destinationID {
			return a.reconstruct(originID, destinationID, cameFrom)
		}

		for _, edge := range a.graph.Neighbors(currentID) {
			edgeCost := edge.LengthM * (1.0 + alpha*edge.Risk)
			if edgeCost < 0 || edge.LengthM < 0 {
				return SearchResult{}, util.WrapErrorf(nil, util.ErrInternalSearchFault,
					"negative cost %f on edge %d->%d", edgeCost, edge.From, edge.To)
			}

			newCost := costSoFar[currentID] + edgeCost
			oldCost, visited := costSoFar[edge.To]
			if visited && newCost >= oldCost {
				continue
			}

			costSoFar[edge.To] = newCost
			cameFrom[edge.To] = edge

			neighbor, _ := a.graph.Node(edge.To)
			priority := newCost + heuristic(neighbor)

			if item, inFrontier := frontierItems[edge.To]; inFrontier && item.GetPos() >= 0 {
				if err := pq.DecreaseKey(item, priority, newCost); err != nil {
					return SearchResult{}, util.WrapErrorf(err, util.ErrInternalSearchFault, "frontier corrupted")
				}
			} else {
				item := datastructure.NewPriorityQueueNode(priority, newCost, edge.To)
				pq.Insert(item)
				frontierItems[edge.To] = item
			}
		}
	}

	// frontier exhausted, origin and destination live in disconnected
	// components
	return SearchResult{Found: false}, nil
}

func (a *AStar) reconstruct(originID, destinationID int64, cameFrom map[int64]datastructure.GraphEdge) (SearchResult, error) {
	edges := make([]datastructure.GraphEdge, 0)
	for at := destinationID; at != originID; {
		edge, ok := cameFrom[at]
		if !ok {
			return SearchResult{}, util.WrapErrorf(nil, util.ErrInternalSearchFault,
				"broken predecessor chain at node %d", at)
		}
		edges = append(edges, edge)
		at = edge.From
	}
	edges = util.ReverseG(edges)

	coords := make([]geo.Coordinate, 0, len(edges)+1)
	totalDistance := 0.0
	weightedRisk := 0.0
	for _, edge := range edges {
		for _, c := range edge.Geometry {
			// collapse duplicate junction coordinates between edges
			if len(coords) > 0 && coords[len(coords)-1] == c {
				continue
			}
			coords = append(coords, c)
		}
		totalDistance += edge.LengthM
		weightedRisk += edge.Risk * edge.LengthM
	}

	averageRisk := 0.0
	if totalDistance > 0 {
		averageRisk = weightedRisk / totalDistance
	}

	return SearchResult{
		Path:          edges,
		Coords:        coords,
		TotalDistance: totalDistance,
		AverageRisk:   averageRisk,
		Found:         true,
	}, nil
}
