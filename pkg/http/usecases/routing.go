package usecases

import (
	"github.com/lintang-b-s/safewalk/pkg/util"
	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"
)

// RoutePlan is the transport-facing result shape. Coordinates follow the
// geojson convention, [lon, lat], inverted from the [lat, lon] input order.
type RoutePlan struct {
	Coordinates   [][]float64
	Polyline      string
	TotalDistance float64
	AverageSafety float64
}

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	defaultAlpha float64
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialIndex SpatialIndex,
	defaultAlpha float64) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialIndex,
		defaultAlpha: defaultAlpha,
	}
}

// DefaultAlpha is the safety weight applied when a request omits alpha.
func (rs *RoutingService) DefaultAlpha() float64 {
	return rs.defaultAlpha
}

// ComputeRoute snaps both endpoints to their nearest graph nodes, runs the
// weighted search and assembles the response geometry.
func (rs *RoutingService) ComputeRoute(origLat, origLon, dstLat, dstLon, alpha float64) (RoutePlan, error) {
	origin, err := rs.spatialIndex.NearestNode(origLat, origLon)
	if err != nil {
		return RoutePlan{}, err
	}
	destination, err := rs.spatialIndex.NearestNode(dstLat, dstLon)
	if err != nil {
		return RoutePlan{}, err
	}

	result, err := rs.engine.Route(origin.ID, destination.ID, alpha)
	if err != nil {
		return RoutePlan{}, err
	}
	if !result.Found {
		return RoutePlan{}, util.WrapErrorf(nil, util.ErrNotFound,
			"no path found from %f,%f to %f,%f", origLat, origLon, dstLat, dstLon)
	}

	coordinates := make([][]float64, 0, len(result.Coords))
	polylineCoords := make([][]float64, 0, len(result.Coords))
	for _, c := range result.Coords {
		coordinates = append(coordinates, []float64{c.Lon, c.Lat})
		polylineCoords = append(polylineCoords, []float64{c.Lat, c.Lon})
	}

	return RoutePlan{
		Coordinates:   coordinates,
		Polyline:      string(polyline.EncodeCoords(polylineCoords)),
		TotalDistance: result.TotalDistance,
		AverageSafety: result.AverageRisk,
	}, nil
}
