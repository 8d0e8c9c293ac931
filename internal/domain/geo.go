package domain

import (
	"fmt"
	"math"
)

// Point is a WGS84 position in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

const earthRadiusM = 6371000.0

// HaversineMeters returns the great-circle distance between two points.
func HaversineMeters(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	return 2 * earthRadiusM * math.Asin(math.Min(1, math.Sqrt(h)))
}

type CorridorType string

const (
	CorridorLineString      CorridorType = "LineString"
	CorridorMultiLineString CorridorType = "MultiLineString"
	CorridorPolygon         CorridorType = "Polygon"
)

// Corridor is the optional geometry attached to a route direction. POI lookups
// are clipped to distance <= buffer from it. Coordinates follow GeoJSON
// nesting: LineString uses Lines[0], MultiLineString and Polygon use all of
// Lines (for Polygon each entry is a ring).
type Corridor struct {
	Type  CorridorType `json:"type"`
	Lines [][]Point    `json:"lines"`
}

// Validate reports whether the corridor geometry is usable for spatial
// filtering. An invalid corridor is skipped, never fatal.
func (c *Corridor) Validate() error {
	if c == nil {
		return nil
	}
	switch c.Type {
	case CorridorLineString, CorridorMultiLineString, CorridorPolygon:
	default:
		return fmt.Errorf("unsupported corridor type %q", c.Type)
	}
	if len(c.Lines) == 0 {
		return fmt.Errorf("corridor %s has no coordinates", c.Type)
	}
	for i, line := range c.Lines {
		min := 2
		if c.Type == CorridorPolygon {
			min = 3
		}
		if len(line) < min {
			return fmt.Errorf("corridor %s part %d has %d points, need >= %d", c.Type, i, len(line), min)
		}
	}
	return nil
}

// DistanceMeters returns the great-circle distance from p to the corridor.
// Points inside a polygon corridor are at distance zero.
func (c *Corridor) DistanceMeters(p Point) float64 {
	if c.Type == CorridorPolygon && len(c.Lines) > 0 && pointInRing(p, c.Lines[0]) {
		return 0
	}
	best := math.Inf(1)
	for _, line := range c.Lines {
		for i := 0; i+1 < len(line); i++ {
			if d := pointToSegmentMeters(p, line[i], line[i+1]); d < best {
				best = d
			}
		}
		// Close polygon rings.
		if c.Type == CorridorPolygon && len(line) >= 2 {
			if d := pointToSegmentMeters(p, line[len(line)-1], line[0]); d < best {
				best = d
			}
		}
	}
	return best
}

// pointToSegmentMeters projects p onto segment a-b in a local equirectangular
// plane. Accurate to well under 1% at corridor scales (tens of km).
func pointToSegmentMeters(p, a, b Point) float64 {
	latRef := (a.Lat + b.Lat + p.Lat) / 3 * math.Pi / 180
	kx := math.Cos(latRef)

	ax, ay := a.Lng*kx, a.Lat
	bx, by := b.Lng*kx, b.Lat
	px, py := p.Lng*kx, p.Lat

	dx, dy := bx-ax, by-ay
	segLenSq := dx*dx + dy*dy
	t := 0.0
	if segLenSq > 0 {
		t = ((px-ax)*dx + (py-ay)*dy) / segLenSq
		t = math.Max(0, math.Min(1, t))
	}
	qx, qy := ax+t*dx, ay+t*dy
	return HaversineMeters(p, Point{Lat: qy, Lng: qx / kx})
}

// pointInRing is a standard ray-casting point-in-polygon test.
func pointInRing(p Point, ring []Point) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi.Lat > p.Lat) != (pj.Lat > p.Lat) &&
			p.Lng < (pj.Lng-pi.Lng)*(p.Lat-pi.Lat)/(pj.Lat-pi.Lat)+pi.Lng {
			inside = !inside
		}
	}
	return inside
}
