package riskindex

import (
	"runtime"

	"github.com/lintang-b-s/safewalk/pkg/concurrent"
	"github.com/lintang-b-s/safewalk/pkg/datastructure"
	"github.com/lintang-b-s/safewalk/pkg/geo"
	"github.com/lintang-b-s/safewalk/pkg/util"
	"github.com/uber/h3-go/v4"
	"go.uber.org/zap"
)

// CellScorer is the pluggable population strategy: anything that can score a
// hex cell can feed the index (synthetic generator today, crime or lighting
// datasets later). The router never knows which strategy is active.
type CellScorer interface {
	// Score returns the risk in [0,1] for the given hex cell.
	Score(cell h3.Cell) float64
}

// RiskIndex maps any coordinate to a bounded risk value in [0,1] through a
// fixed-resolution hexagonal grid. Built once at startup, read-only after.
type RiskIndex struct {
	log        *zap.Logger
	resolution int
	baseline   float64
	cells      map[h3.Cell]float64
}

func New(resolution int, baseline float64, log *zap.Logger) *RiskIndex {
	return &RiskIndex{
		log:        log,
		resolution: resolution,
		baseline:   util.Clamp(baseline, 0.0, 1.0),
		cells:      make(map[h3.Cell]float64),
	}
}

func (ri *RiskIndex) Resolution() int {
	return ri.resolution
}

func (ri *RiskIndex) cellOf(lat, lon float64) h3.Cell {
	return h3.LatLngToCell(h3.NewLatLng(lat, lon), ri.resolution)
}

// RiskAt is defined for every coordinate: cells never scored return the
// baseline risk.
func (ri *RiskIndex) RiskAt(lat, lon float64) float64 {
	if risk, ok := ri.cells[ri.cellOf(lat, lon)]; ok {
		return risk
	}
	return ri.baseline
}

// PopulateFromGraph scores every distinct cell containing a graph node or
// an edge midpoint. A long edge's midpoint can land in a cell no node
// touches; EdgeRisk reads there, so skipping those cells would silently
// replace the scorer's signal with the baseline.
func (ri *RiskIndex) PopulateFromGraph(g *datastructure.Graph, scorer CellScorer) {
	score := func(cell h3.Cell) {
		if _, ok := ri.cells[cell]; ok {
			return
		}
		ri.cells[cell] = util.Clamp(scorer.Score(cell), 0.0, 1.0)
	}

	g.ForNodes(func(node datastructure.GeoNode) {
		score(ri.cellOf(node.Lat, node.Lon))
	})
	g.ForEdges(func(edge *datastructure.GraphEdge) {
		if midLat, midLon, ok := edgeMidpoint(edge); ok {
			score(ri.cellOf(midLat, midLon))
		}
	})

	ri.log.Info("risk index populated",
		zap.Int("cells", len(ri.cells)),
		zap.Int("resolution", ri.resolution),
		zap.Float64("baseline", ri.baseline))
}

// EdgeRisk returns the representative risk of an edge: the risk at the
// great-circle midpoint of its geometry.
func (ri *RiskIndex) EdgeRisk(edge *datastructure.GraphEdge) float64 {
	midLat, midLon, ok := edgeMidpoint(edge)
	if !ok {
		return ri.baseline
	}
	return ri.RiskAt(midLat, midLon)
}

func edgeMidpoint(edge *datastructure.GraphEdge) (float64, float64, bool) {
	if len(edge.Geometry) == 0 {
		return 0, 0, false
	}
	first := edge.Geometry[0]
	last := edge.Geometry[len(edge.Geometry)-1]
	midLat, midLon := geo.MidPoint(first.Lat, first.Lon, last.Lat, last.Lon)
	return midLat, midLon, true
}

// PrecomputeEdgeRisks caches the midpoint risk on every edge so the router
// never performs hex lookups inside its search loop.
func (ri *RiskIndex) PrecomputeEdgeRisks(g *datastructure.Graph) {
	edges := make([]*datastructure.GraphEdge, 0, g.NumberOfEdges())
	g.ForEdges(func(edge *datastructure.GraphEdge) {
		edges = append(edges, edge)
	})

	workers := concurrent.NewWorkerPool[*datastructure.GraphEdge, struct{}](runtime.NumCPU(), len(edges))
	for _, edge := range edges {
		workers.AddJob(edge)
	}
	workers.Close()
	workers.Start(func(edge *datastructure.GraphEdge) struct{} {
		edge.Risk = ri.EdgeRisk(edge)
		return struct{}{}
	})
	workers.Wait()

	ri.log.Info("edge risks precomputed", zap.Int("edges", len(edges)))
}
