package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateHaversineDistance(t *testing.T) {
	// jakarta -> surabaya, roughly 663 km
	dist := CalculateHaversineDistance(-6.2088, 106.8456, -7.2575, 112.7521)
	require.InDelta(t, 663.0, dist, 10.0)

	require.Equal(t, 0.0, CalculateHaversineDistance(1.5, 2.5, 1.5, 2.5))
}

func TestCalculateHaversineDistanceInMeter(t *testing.T) {
	// one degree of longitude at the equator is ~111.19 km
	dist := CalculateHaversineDistanceInMeter(0, 0, 0, 1)
	require.InDelta(t, 111190.0, dist, 200.0)
}

func TestMidPoint(t *testing.T) {
	lat, lon := MidPoint(0, 0, 0, 2)
	require.InDelta(t, 0.0, lat, 1e-9)
	require.InDelta(t, 1.0, lon, 1e-9)
}

func TestGetDestinationPoint(t *testing.T) {
	lat, lon := GetDestinationPoint(0, 0, 90, 111.19)
	require.InDelta(t, 0.0, lat, 1e-6)
	require.InDelta(t, 1.0, lon, 1e-2)
}

func TestExtent(t *testing.T) {
	extent := NewExtent()
	require.True(t, extent.IsEmpty())

	extent.Add(-1, -2)
	extent.Add(1, 2)
	require.False(t, extent.IsEmpty())

	lat, lon := extent.Center()
	require.InDelta(t, 0.0, lat, 1e-9)
	require.InDelta(t, 0.0, lon, 1e-9)

	loLat, loLon, hiLat, hiLon := extent.Bounds()
	require.InDelta(t, -1.0, loLat, 1e-9)
	require.InDelta(t, -2.0, loLon, 1e-9)
	require.InDelta(t, 1.0, hiLat, 1e-9)
	require.InDelta(t, 2.0, hiLon, 1e-9)
}
