package geo

import (
	"github.com/golang/geo/s2"
)

// Extent accumulates the geographic bounding rectangle of the ingested map.
type Extent struct {
	rect s2.Rect
}

func NewExtent() *Extent {
	return &Extent{rect: s2.EmptyRect()}
}

func (e *Extent) Add(lat, lon float64) {
	e.rect = e.rect.AddPoint(s2.LatLngFromDegrees(lat, lon))
}

func (e *Extent) IsEmpty() bool {
	return e.rect.IsEmpty()
}

func (e *Extent) Center() (float64, float64) {
	center := e.rect.Center()
	return center.Lat.Degrees(), center.Lng.Degrees()
}

func (e *Extent) Bounds() (loLat, loLon, hiLat, hiLon float64) {
	lo, hi := e.rect.Lo(), e.rect.Hi()
	return lo.Lat.Degrees(), lo.Lng.Degrees(), hi.Lat.Degrees(), hi.Lng.Degrees()
}
