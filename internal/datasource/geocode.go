package datasource

import (
	"github.com/alexanderramin/itinera/internal/config"
	"github.com/alexanderramin/itinera/internal/domain"
)

// Geocoder resolves coordinates to a country code by bounding-box rules,
// checked in configuration order.
type Geocoder struct {
	boxes []config.CountryBox
}

func NewGeocoder(boxes []config.CountryBox) *Geocoder {
	return &Geocoder{boxes: boxes}
}

// Resolve returns the first matching country code, or CountryUnknown.
func (g *Geocoder) Resolve(p domain.Point) string {
	for _, b := range g.boxes {
		if p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lng >= b.MinLng && p.Lng <= b.MaxLng {
			return b.Code
		}
	}
	return CountryUnknown
}
