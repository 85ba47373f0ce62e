package controllers

// computeRouteRequest carries coordinates as [lat, lon] pairs. Alpha is the
// safety weight; nil means "use the configured default".
type computeRouteRequest struct {
	Origin      []float64 `json:"origin" validate:"required,len=2"`
	Destination []float64 `json:"destination" validate:"required,len=2"`
	Alpha       *float64  `json:"alpha" validate:"omitempty,gte=0"`
}

// geoJSONLineString coordinates are [lon, lat], per geojson convention.
type geoJSONLineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type computeRouteResponse struct {
	Geometry      geoJSONLineString `json:"geometry"`
	Polyline      string            `json:"polyline"`
	TotalDistance float64           `json:"total_distance"`
	AverageSafety float64           `json:"average_safety"`
}

func NewComputeRouteResponse(coordinates [][]float64, pathPolyline string, totalDistance, averageSafety float64) computeRouteResponse {
	return computeRouteResponse{
		Geometry: geoJSONLineString{
			Type:        "LineString",
			Coordinates: coordinates,
		},
		Polyline:      pathPolyline,
		TotalDistance: totalDistance,
		AverageSafety: averageSafety,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
