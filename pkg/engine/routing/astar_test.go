package routing

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/safewalk/pkg/datastructure"
	"github.com/lintang-b-s/safewalk/pkg/geo"
	"github.com/lintang-b-s/safewalk/pkg/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func addNode(g *datastructure.Graph, id int64, lat, lon float64) {
	g.AddNode(datastructure.NewGeoNode(id, lat, lon))
}

// addStreet inserts a bidirectional edge pair with haversine length and the
// given cached risk.
func addStreet(t *testing.T, g *datastructure.Graph, from, to int64, wayID int64, risk float64) {
	t.Helper()
	a, ok := g.Node(from)
	require.True(t, ok)
	b, ok := g.Node(to)
	require.True(t, ok)

	lengthM := geo.CalculateHaversineDistanceInMeter(a.Lat, a.Lon, b.Lat, b.Lon)

	forward := datastructure.NewGraphEdge(from, to, lengthM, wayID, []geo.Coordinate{
		geo.NewCoordinate(a.Lat, a.Lon),
		geo.NewCoordinate(b.Lat, b.Lon),
	})
	forward.Risk = risk
	require.NoError(t, g.AddEdge(forward))

	backward := datastructure.NewGraphEdge(to, from, lengthM, wayID, []geo.Coordinate{
		geo.NewCoordinate(b.Lat, b.Lon),
		geo.NewCoordinate(a.Lat, a.Lon),
	})
	backward.Risk = risk
	require.NoError(t, g.AddEdge(backward))
}

// riskTradeoffGraph: origin 1 and destination 3 are connected by a short
// risky detour through 4 and a longer safe detour through 2.
func riskTradeoffGraph(t *testing.T) *datastructure.Graph {
	t.Helper()
	g := datastructure.NewGraph()
	addNode(g, 1, 0, 0)
	addNode(g, 2, 0, 0.0015)
	addNode(g, 3, 0.001, 0.001)
	addNode(g, 4, 0.0005, 0.0005)

	addStreet(t, g, 1, 4, 100, 1.0)
	addStreet(t, g, 4, 3, 101, 1.0)
	addStreet(t, g, 1, 2, 102, 0.0)
	addStreet(t, g, 2, 3, 103, 0.0)
	return g
}

func pathNodeSequence(result SearchResult, origin int64) []int64 {
	seq := []int64{origin}
	for _, e := range result.Path {
		seq = append(seq, e.To)
	}
	return seq
}

func TestRouteAlphaZeroTakesShortestDistance(t *testing.T) {
	g := riskTradeoffGraph(t)
	router := NewAStar(g, zap.NewNop())

	result, err := router.Route(1, 3, 0)
	require.NoError(t, err)
	require.True(t, result.Found)
	require.Equal(t, []int64{1, 4, 3}, pathNodeSequence(result, 1))
}

func TestRouteHighAlphaAvoidsRisk(t *testing.T) {
	g := riskTradeoffGraph(t)
	router := NewAStar(g, zap.NewNop())

	result, err := router.Route(1, 3, 10)
	require.NoError(t, err)
	require.True(t, result.Found)
	require.Equal(t, []int64{1, 2, 3}, pathNodeSequence(result, 1))
	require.Equal(t, 0.0, result.AverageRisk)
}

func TestRouteAverageRiskMonotoneInAlpha(t *testing.T) {
	g := riskTradeoffGraph(t)
	router := NewAStar(g, zap.NewNop())

	risky, err := router.Route(1, 3, 0)
	require.NoError(t, err)
	safe, err := router.Route(1, 3, 10)
	require.NoError(t, err)

	require.LessOrEqual(t, safe.AverageRisk, risky.AverageRisk)
	require.Greater(t, safe.TotalDistance, risky.TotalDistance)
}

func TestRouteAlphaZeroMatchesDijkstra(t *testing.T) {
	// 3x3 grid with uneven per-edge risks; with alpha=0 the risks are inert
	// and the result must equal plain shortest distance
	g := datastructure.NewGraph()
	var wayID int64 = 200
	for row := int64(0); row < 3; row++ {
		for col := int64(0); col < 3; col++ {
			addNode(g, row*3+col+1, float64(row)*0.001, float64(col)*0.001)
		}
	}
	for row := int64(0); row < 3; row++ {
		for col := int64(0); col < 3; col++ {
			id := row*3 + col + 1
			if col < 2 {
				addStreet(t, g, id, id+1, wayID, float64((id)%4)*0.25)
				wayID++
			}
			if row < 2 {
				addStreet(t, g, id, id+3, wayID, float64((id)%3)*0.3)
				wayID++
			}
		}
	}

	router := NewAStar(g, zap.NewNop())
	result, err := router.Route(1, 9, 0)
	require.NoError(t, err)
	require.True(t, result.Found)
	require.InDelta(t, dijkstraDistance(g, 1, 9), result.TotalDistance, 1e-6)
}

// dijkstraDistance is a reference shortest-distance implementation used only
// to cross-check the router.
func dijkstraDistance(g *datastructure.Graph, origin, destination int64) float64 {
	dist := map[int64]float64{origin: 0}
	done := map[int64]bool{}
	for {
		var current int64
		best := -1.0
		for id, d := range dist {
			if !done[id] && (best < 0 || d < best) {
				current, best = id, d
			}
		}
		if best < 0 {
			return -1
		}
		if current == destination {
			return best
		}
		done[current] = true
		for _, e := range g.Neighbors(current) {
			if d, ok := dist[e.To]; !ok || best+e.LengthM < d {
				dist[e.To] = best + e.LengthM
			}
		}
	}
}

func TestRouteSameNode(t *testing.T) {
	g := riskTradeoffGraph(t)
	router := NewAStar(g, zap.NewNop())

	result, err := router.Route(2, 2, 1)
	require.NoError(t, err)
	require.True(t, result.Found)
	require.Empty(t, result.Path)
	require.Len(t, result.Coords, 1)
	require.Equal(t, 0.0, result.TotalDistance)
	require.Equal(t, 0.0, result.AverageRisk)
}

func TestRouteDisconnectedIsNotAnError(t *testing.T) {
	g := datastructure.NewGraph()
	addNode(g, 1, 0, 0)
	addNode(g, 2, 0, 0.001)
	addNode(g, 3, 5, 5)
	addNode(g, 4, 5, 5.001)
	addStreet(t, g, 1, 2, 100, 0)
	addStreet(t, g, 3, 4, 101, 0)

	router := NewAStar(g, zap.NewNop())
	result, err := router.Route(1, 3, 1)
	require.NoError(t, err)
	require.False(t, result.Found)
}

func TestRouteIsIdempotent(t *testing.T) {
	g := riskTradeoffGraph(t)
	router := NewAStar(g, zap.NewNop())

	first, err := router.Route(1, 3, 2.5)
	require.NoError(t, err)
	second, err := router.Route(1, 3, 2.5)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRouteNegativeAlpha(t *testing.T) {
	router := NewAStar(riskTradeoffGraph(t), zap.NewNop())

	_, err := router.Route(1, 3, -0.5)
	require.Error(t, err)

	var typed *util.Error
	require.True(t, errors.As(err, &typed))
	require.ErrorIs(t, typed.Code(), util.ErrBadParamInput)
}

func TestRouteUnknownNode(t *testing.T) {
	router := NewAStar(riskTradeoffGraph(t), zap.NewNop())

	_, err := router.Route(999, 3, 1)
	require.Error(t, err)

	var typed *util.Error
	require.True(t, errors.As(err, &typed))
	require.ErrorIs(t, typed.Code(), util.ErrInternalSearchFault)
}

func TestRouteGeometryEndpointsAndAverage(t *testing.T) {
	g := riskTradeoffGraph(t)
	router := NewAStar(g, zap.NewNop())

	result, err := router.Route(1, 3, 0)
	require.NoError(t, err)
	require.True(t, result.Found)

	require.Equal(t, geo.NewCoordinate(0, 0), result.Coords[0])
	require.Equal(t, geo.NewCoordinate(0.001, 0.001), result.Coords[len(result.Coords)-1])
	// junction coordinates shared between consecutive edges appear once
	require.Len(t, result.Coords, 3)

	// both traversed edges carry risk 1.0, the length-weighted mean is 1.0
	require.InDelta(t, 1.0, result.AverageRisk, 1e-12)

	wantDist := 0.0
	for _, e := range result.Path {
		wantDist += e.LengthM
	}
	require.Equal(t, wantDist, result.TotalDistance)
}
