package usecases

import (
	"github.com/lintang-b-s/safewalk/pkg/datastructure"
	"github.com/lintang-b-s/safewalk/pkg/engine/routing"
)

type RoutingEngine interface {
	Route(originID, destinationID int64, alpha float64) (routing.SearchResult, error)
}

type SpatialIndex interface {
	NearestNode(lat, lon float64) (datastructure.GeoNode, error)
}
