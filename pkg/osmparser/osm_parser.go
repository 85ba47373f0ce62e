package osmparser

import (
	"context"
	"os"

	"github.com/lintang-b-s/safewalk/pkg/datastructure"
	"github.com/lintang-b-s/safewalk/pkg/geo"
	"github.com/lintang-b-s/safewalk/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

type NodeCoord struct {
	lat float64
	lon float64
}

func NewNodeCoord(lat, lon float64) NodeCoord {
	return NodeCoord{lat, lon}
}

func (nc NodeCoord) GetLat() float64 {
	return nc.lat
}

func (nc NodeCoord) GetLon() float64 {
	return nc.lon
}

// Way is one accepted pedestrian way, with node references in traversal
// order (already reversed for oneway=-1).
type Way struct {
	ID        int64
	NodeIDs   []int64
	Direction wayDirection
}

func NewWay(id int64, nodeIDs []int64, direction wayDirection) Way {
	return Way{ID: id, NodeIDs: nodeIDs, Direction: direction}
}

// Summary counts what the ingest kept and dropped. Data quality problems
// (a way referencing a node missing from the node stream) skip that way and
// bump WaysSkipped, they never abort the build.
type Summary struct {
	WaysScanned int
	WaysKept    int
	WaysSkipped int
	NodesKept   int
	EdgesBuilt  int
}

type OsmParser struct {
	log *zap.Logger
}

func NewOSMParser(log *zap.Logger) *OsmParser {
	return &OsmParser{log: log}
}

// Parse reads the pbf file and builds the routable pedestrian graph. The
// file is scanned twice: pass 1 collects accepted ways and marks the node
// ids they reference, pass 2 resolves coordinates for exactly those nodes.
// Building the full node table before resolving ways makes the result
// independent of element ordering inside the archive.
func (p *OsmParser) Parse(mapFile string) (*datastructure.Graph, Summary, error) {
	var summary Summary

	ways, wantedNodes, err := p.scanWays(mapFile, &summary)
	if err != nil {
		return nil, summary, err
	}

	nodeCoords, err := p.scanNodes(mapFile, wantedNodes)
	if err != nil {
		return nil, summary, err
	}

	graph := p.BuildGraph(nodeCoords, ways, &summary)

	p.log.Info("openstreetmap ingest finished",
		zap.Int("ways_scanned", summary.WaysScanned),
		zap.Int("ways_kept", summary.WaysKept),
		zap.Int("ways_skipped", summary.WaysSkipped),
		zap.Int("nodes_kept", summary.NodesKept),
		zap.Int("edges_built", summary.EdgesBuilt))

	if graph.NumberOfNodes() == 0 || graph.NumberOfEdges() == 0 {
		return nil, summary, util.WrapErrorf(nil, util.ErrNoRoutableData,
			"no routable pedestrian data in %s", mapFile)
	}

	return graph, summary, nil
}

func (p *OsmParser) scanWays(mapFile string, summary *Summary) ([]Way, map[int64]struct{}, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 1)
	defer scanner.Close()

	ways := make([]Way, 0)
	wantedNodes := make(map[int64]struct{})

	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		way := o.(*osm.Way)
		summary.WaysScanned++

		if len(way.Nodes) < 2 {
			continue
		}
		if !acceptPedestrianWay(way) {
			continue
		}

		if (summary.WaysScanned+1)%50000 == 0 {
			p.log.Sugar().Infof("scanning openstreetmap ways: %d...", summary.WaysScanned+1)
		}

		nodeIDs := make([]int64, 0, len(way.Nodes))
		for _, wn := range way.Nodes {
			nodeIDs = append(nodeIDs, int64(wn.ID))
			wantedNodes[int64(wn.ID)] = struct{}{}
		}

		direction := parseOnewayTag(way)
		if direction == BACKWARD_ONLY {
			nodeIDs = util.ReverseG(nodeIDs)
			direction = FORWARD_ONLY
		}

		ways = append(ways, NewWay(int64(way.ID), nodeIDs, direction))
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	return ways, wantedNodes, nil
}

func (p *OsmParser) scanNodes(mapFile string, wantedNodes map[int64]struct{}) (map[int64]NodeCoord, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 1)
	defer scanner.Close()

	nodeCoords := make(map[int64]NodeCoord, len(wantedNodes))

	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeNode {
			continue
		}
		node := o.(*osm.Node)
		if _, ok := wantedNodes[int64(node.ID)]; !ok {
			continue
		}
		nodeCoords[int64(node.ID)] = NewNodeCoord(node.Lat, node.Lon)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return nodeCoords, nil
}

// BuildGraph assembles the routable graph from resolved node coordinates and
// accepted ways. A way whose node list does not resolve entirely is dropped
// and counted, never fatal. Consecutive node pairs become directed edges;
// bidirectional ways yield a reverse edge sharing the reversed geometry and
// the same length.
func (p *OsmParser) BuildGraph(nodeCoords map[int64]NodeCoord, ways []Way, summary *Summary) *datastructure.Graph {
	graph := datastructure.NewGraph()

	for _, way := range ways {
		resolved := true
		for _, id := range way.NodeIDs {
			if _, ok := nodeCoords[id]; !ok {
				resolved = false
				break
			}
		}
		if !resolved {
			summary.WaysSkipped++
			p.log.Debug("skipping way with unresolved node reference", zap.Int64("way_id", way.ID))
			continue
		}
		summary.WaysKept++

		for i := 0; i < len(way.NodeIDs)-1; i++ {
			fromID, toID := way.NodeIDs[i], way.NodeIDs[i+1]
			fromCoord, toCoord := nodeCoords[fromID], nodeCoords[toID]

			graph.AddNode(datastructure.NewGeoNode(fromID, fromCoord.GetLat(), fromCoord.GetLon()))
			graph.AddNode(datastructure.NewGeoNode(toID, toCoord.GetLat(), toCoord.GetLon()))

			lengthM := geo.CalculateHaversineDistanceInMeter(fromCoord.GetLat(), fromCoord.GetLon(),
				toCoord.GetLat(), toCoord.GetLon())

			forwardGeom := []geo.Coordinate{
				geo.NewCoordinate(fromCoord.GetLat(), fromCoord.GetLon()),
				geo.NewCoordinate(toCoord.GetLat(), toCoord.GetLon()),
			}
			if err := graph.AddEdge(datastructure.NewGraphEdge(fromID, toID, lengthM, way.ID, forwardGeom)); err != nil {
				summary.WaysSkipped++
				continue
			}
			summary.EdgesBuilt++

			if way.Direction == BOTH_DIRECTION {
				if err := graph.AddEdge(datastructure.NewGraphEdge(toID, fromID, lengthM, way.ID,
					util.ReverseG(forwardGeom))); err != nil {
					continue
				}
				summary.EdgesBuilt++
			}
		}
	}

	summary.NodesKept = graph.NumberOfNodes()
	return graph
}
