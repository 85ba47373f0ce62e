package riskindex

import (
	"github.com/lintang-b-s/safewalk/pkg/geo"
	"github.com/uber/h3-go/v4"
)

// Hotspot seeds one risky disk: the center cell gets Risk, the surrounding
// Rings of cells get RingRisk.
type Hotspot struct {
	Lat      float64
	Lon      float64
	Risk     float64
	Rings    int
	RingRisk float64
}

// SyntheticScorer is the default population strategy until real safety
// datasets are wired in: a risk gradient around configured hotspot centers.
type SyntheticScorer struct {
	baseline float64
	cells    map[h3.Cell]float64
}

func NewSyntheticScorer(resolution int, baseline float64, hotspots []Hotspot) *SyntheticScorer {
	cells := make(map[h3.Cell]float64)
	for _, hs := range hotspots {
		center := h3.LatLngToCell(h3.NewLatLng(hs.Lat, hs.Lon), resolution)
		for _, neighbor := range h3.GridDisk(center, hs.Rings) {
			if _, ok := cells[neighbor]; !ok {
				cells[neighbor] = hs.RingRisk
			}
		}
		cells[center] = hs.Risk
	}
	return &SyntheticScorer{baseline: baseline, cells: cells}
}

func (s *SyntheticScorer) Score(cell h3.Cell) float64 {
	if risk, ok := s.cells[cell]; ok {
		return risk
	}
	return s.baseline
}

// DefaultHotspots marks the center of the map extent as risky with a
// moderate two-ring gradient around it.
func DefaultHotspots(extent *geo.Extent) []Hotspot {
	if extent.IsEmpty() {
		return nil
	}
	centerLat, centerLon := extent.Center()
	return []Hotspot{
		{Lat: centerLat, Lon: centerLon, Risk: 0.9, Rings: 2, RingRisk: 0.4},
	}
}
