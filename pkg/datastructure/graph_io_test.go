package datastructure

import (
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/safewalk/pkg/geo"
	"github.com/stretchr/testify/require"
)

func TestGraphWriteReadRoundtrip(t *testing.T) {
	g := NewGraph()
	g.AddNode(NewGeoNode(10, -7.5575, 110.8316))
	g.AddNode(NewGeoNode(20, -7.5581, 110.8327))

	edge := NewGraphEdge(10, 20, 132.5, 900, []geo.Coordinate{
		geo.NewCoordinate(-7.5575, 110.8316),
		geo.NewCoordinate(-7.5581, 110.8327),
	})
	edge.Risk = 0.35
	require.NoError(t, g.AddEdge(edge))

	reverse := NewGraphEdge(20, 10, 132.5, 900, []geo.Coordinate{
		geo.NewCoordinate(-7.5581, 110.8327),
		geo.NewCoordinate(-7.5575, 110.8316),
	})
	require.NoError(t, g.AddEdge(reverse))

	file := filepath.Join(t.TempDir(), "test.graph")
	require.NoError(t, g.WriteGraph(file))

	loaded, err := ReadGraph(file)
	require.NoError(t, err)

	require.Equal(t, g.NumberOfNodes(), loaded.NumberOfNodes())
	require.Equal(t, g.NumberOfEdges(), loaded.NumberOfEdges())

	n, ok := loaded.Node(10)
	require.True(t, ok)
	require.Equal(t, -7.5575, n.Lat)
	require.Equal(t, 110.8316, n.Lon)

	require.Equal(t, g.Neighbors(10), loaded.Neighbors(10))
	require.Equal(t, g.Neighbors(20), loaded.Neighbors(20))
}

func TestReadGraphMissingFile(t *testing.T) {
	_, err := ReadGraph(filepath.Join(t.TempDir(), "nope.graph"))
	require.Error(t, err)
}
