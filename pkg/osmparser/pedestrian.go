package osmparser

import (
	"github.com/paulmach/osm"
)

// highway classes a pedestrian can use unconditionally
var walkableHighway = map[string]struct{}{
	"footway":       {},
	"path":          {},
	"steps":         {},
	"pedestrian":    {},
	"living_street": {},
	"residential":   {},
	"tertiary":      {},
	"service":       {},
	"unclassified":  {},
}

// high speed roads, walkable only with explicit foot access or a sidewalk
var motorHighway = map[string]struct{}{
	"motorway":  {},
	"trunk":     {},
	"primary":   {},
	"secondary": {},
}

var footAccess = map[string]struct{}{
	"yes":        {},
	"designated": {},
	"permissive": {},
}

var sidewalkPresent = map[string]struct{}{
	"both":     {},
	"left":     {},
	"right":    {},
	"yes":      {},
	"separate": {},
}

// acceptPedestrianWay reports whether the way is traversable on foot.
func acceptPedestrianWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}

	if _, ok := walkableHighway[highway]; ok {
		return true
	}

	if _, ok := motorHighway[highway]; ok {
		if _, ok := footAccess[way.Tags.Find("foot")]; ok {
			return true
		}
		if _, ok := sidewalkPresent[way.Tags.Find("sidewalk")]; ok {
			return true
		}
	}

	return false
}

type wayDirection uint8

const (
	BOTH_DIRECTION wayDirection = iota
	FORWARD_ONLY
	BACKWARD_ONLY
)

// parseOnewayTag. an absent or explicit "no" oneway tag yields edges in both
// directions, "-1" reverses the node order.
func parseOnewayTag(way *osm.Way) wayDirection {
	switch way.Tags.Find("oneway") {
	case "yes", "1", "true":
		return FORWARD_ONLY
	case "-1", "reverse":
		return BACKWARD_ONLY
	default:
		return BOTH_DIRECTION
	}
}
