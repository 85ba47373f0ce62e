package controllers

import (
	"github.com/lintang-b-s/safewalk/pkg/http/usecases"
)

type RoutingService interface {
	ComputeRoute(origLat, origLon, dstLat, dstLon, alpha float64) (usecases.RoutePlan, error)
	DefaultAlpha() float64
}
