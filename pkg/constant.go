package pkg

const (
	INF_WEIGHT float64 = 1e15

	// hexagonal risk index
	DEFAULT_HEX_RESOLUTION = 9
	DEFAULT_BASELINE_RISK  = 0.0

	// safety weight applied when the request omits alpha
	DEFAULT_ALPHA = 1.0

	// nearest graph node search
	DEFAULT_NEAREST_SEARCH_RADIUS_KM = 0.5
	MAX_NEAREST_SEARCH_RADIUS_KM     = 64.0
)

const (
	DEBUG = false
)
