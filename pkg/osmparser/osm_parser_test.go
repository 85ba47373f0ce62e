package osmparser

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func wayWithTags(tags map[string]string) *osm.Way {
	way := &osm.Way{ID: 1}
	for k, v := range tags {
		way.Tags = append(way.Tags, osm.Tag{Key: k, Value: v})
	}
	return way
}

func TestAcceptPedestrianWay(t *testing.T) {
	cases := []struct {
		name string
		tags map[string]string
		want bool
	}{
		{"footway", map[string]string{"highway": "footway"}, true},
		{"steps", map[string]string{"highway": "steps"}, true},
		{"residential", map[string]string{"highway": "residential"}, true},
		{"living street", map[string]string{"highway": "living_street"}, true},
		{"no highway tag", map[string]string{"building": "yes"}, false},
		{"plain primary", map[string]string{"highway": "primary"}, false},
		{"primary with foot access", map[string]string{"highway": "primary", "foot": "yes"}, true},
		{"primary with sidewalk", map[string]string{"highway": "primary", "sidewalk": "both"}, true},
		{"motorway with foot no", map[string]string{"highway": "motorway", "foot": "no"}, false},
		{"trunk with separate sidewalk", map[string]string{"highway": "trunk", "sidewalk": "separate"}, true},
		{"cycleway", map[string]string{"highway": "cycleway"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, acceptPedestrianWay(wayWithTags(tc.tags)))
		})
	}
}

func TestParseOnewayTag(t *testing.T) {
	require.Equal(t, BOTH_DIRECTION, parseOnewayTag(wayWithTags(map[string]string{"highway": "footway"})))
	require.Equal(t, BOTH_DIRECTION, parseOnewayTag(wayWithTags(map[string]string{"oneway": "no"})))
	require.Equal(t, FORWARD_ONLY, parseOnewayTag(wayWithTags(map[string]string{"oneway": "yes"})))
	require.Equal(t, FORWARD_ONLY, parseOnewayTag(wayWithTags(map[string]string{"oneway": "1"})))
	require.Equal(t, BACKWARD_ONLY, parseOnewayTag(wayWithTags(map[string]string{"oneway": "-1"})))
}

func TestBuildGraphBidirectional(t *testing.T) {
	parser := NewOSMParser(zap.NewNop())

	nodeCoords := map[int64]NodeCoord{
		1: NewNodeCoord(0, 0),
		2: NewNodeCoord(0, 0.001),
		3: NewNodeCoord(0.001, 0.001),
	}
	ways := []Way{NewWay(100, []int64{1, 2, 3}, BOTH_DIRECTION)}

	var summary Summary
	graph := parser.BuildGraph(nodeCoords, ways, &summary)

	require.Equal(t, 3, graph.NumberOfNodes())
	require.Equal(t, 4, graph.NumberOfEdges())
	require.Equal(t, 1, summary.WaysKept)
	require.Equal(t, 0, summary.WaysSkipped)
	require.Equal(t, 4, summary.EdgesBuilt)

	// reverse edge carries the same length, reversed geometry
	forward := graph.Neighbors(1)[0]
	var backward bool
	for _, e := range graph.Neighbors(2) {
		if e.To == 1 {
			backward = true
			require.Equal(t, forward.LengthM, e.LengthM)
			require.Equal(t, forward.Geometry[0], e.Geometry[len(e.Geometry)-1])
		}
	}
	require.True(t, backward)
}

func TestBuildGraphOnewayForward(t *testing.T) {
	parser := NewOSMParser(zap.NewNop())

	nodeCoords := map[int64]NodeCoord{
		1: NewNodeCoord(0, 0),
		2: NewNodeCoord(0, 0.001),
	}
	ways := []Way{NewWay(100, []int64{1, 2}, FORWARD_ONLY)}

	var summary Summary
	graph := parser.BuildGraph(nodeCoords, ways, &summary)

	require.Equal(t, 1, graph.NumberOfEdges())
	require.Len(t, graph.Neighbors(1), 1)
	require.Empty(t, graph.Neighbors(2))
}

func TestBuildGraphSkipsUnresolvedWay(t *testing.T) {
	parser := NewOSMParser(zap.NewNop())

	nodeCoords := map[int64]NodeCoord{
		1: NewNodeCoord(0, 0),
		2: NewNodeCoord(0, 0.001),
	}
	ways := []Way{
		NewWay(100, []int64{1, 2}, BOTH_DIRECTION),
		NewWay(101, []int64{2, 99}, BOTH_DIRECTION), // 99 never resolved
	}

	var summary Summary
	graph := parser.BuildGraph(nodeCoords, ways, &summary)

	require.Equal(t, 1, summary.WaysKept)
	require.Equal(t, 1, summary.WaysSkipped)
	require.Equal(t, 2, graph.NumberOfNodes())
	require.Equal(t, 2, graph.NumberOfEdges())
}
