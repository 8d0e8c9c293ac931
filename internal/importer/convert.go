package importer

import (
	"github.com/google/uuid"

	"github.com/alexanderramin/itinera/internal/domain"
)

// Dataset is the validated, converted import payload ready for storage.
type Dataset struct {
	Places     []*domain.Place
	Directions []*domain.RouteDirection
}

// ConvertDatasetSchema turns a validated schema into domain entities. Call
// ValidateDatasetSchema first; conversion assumes a clean schema.
func ConvertDatasetSchema(schema *DatasetSchema) *Dataset {
	ds := &Dataset{
		Places:     make([]*domain.Place, 0, len(schema.Places)),
		Directions: make([]*domain.RouteDirection, 0, len(schema.Directions)),
	}
	for i := range schema.Places {
		ds.Places = append(ds.Places, convertPlace(&schema.Places[i]))
	}
	for i := range schema.Directions {
		ds.Directions = append(ds.Directions, convertDirection(&schema.Directions[i]))
	}
	return ds
}

func convertPlace(p *PlaceImport) *domain.Place {
	return &domain.Place{
		UUID:        p.UUID,
		Name:        p.Name,
		NameEN:      p.NameEN,
		CountryCode: p.CountryCode,
		Geo:         domain.Point{Lat: p.Lat, Lng: p.Lng},
		Metadata: domain.PlaceMetadata{
			CanonicalType: p.Type,
			RegionKey:     p.RegionKey,
			ElevationM:    p.ElevationM,
			Tags:          p.Tags,
			Rating:        p.Rating,
		},
	}
}

func convertDirection(d *DirectionImport) *domain.RouteDirection {
	out := &domain.RouteDirection{
		ID:          d.ID,
		UUID:        uuid.NewString(),
		CountryCode: d.CountryCode,
		Name:        d.Name,
		NameEN:      d.NameEN,
		Tags:        d.Tags,
		Regions:     d.Regions,
		EntryHubs:   d.EntryHubs,
		Seasonality: domain.Seasonality{
			BestMonths:  d.BestMonths,
			AvoidMonths: d.AvoidMonths,
		},
		SignaturePois: domain.SignaturePois{
			Types:    d.SignatureTypes,
			Examples: d.SignatureRefs,
		},
		BufferMeters:   d.BufferMeters,
		Status:         domain.DirectionActive,
		Version:        1,
		RolloutPercent: 100,
	}

	if d.DailyPace != "" {
		out.Skeleton.DailyPace = validPaces[d.DailyPace]
	}
	for _, rf := range d.RiskFactors {
		switch rf {
		case "altitude_sickness":
			out.RiskProfile.AltitudeSickness = true
		case "road_closure":
			out.RiskProfile.RoadClosure = true
		case "ferry_dependent":
			out.RiskProfile.FerryDependent = true
		case "weather_window":
			out.RiskProfile.WeatherWindow = true
		}
	}
	if d.Soft != nil {
		out.Soft = domain.SoftConstraints{
			MaxDailyAscentM: d.Soft.MaxDailyAscentM,
			MaxElevationM:   d.Soft.MaxElevationM,
			BufferTimeMin:   d.Soft.BufferTimeMin,
		}
	}
	if d.Corridor != nil {
		out.Corridor = convertCorridor(d.Corridor)
	}
	if d.Status != "" {
		out.Status = validStatuses[d.Status]
	}
	if d.RolloutPercent != nil {
		out.RolloutPercent = *d.RolloutPercent
	}
	if len(d.Persona) > 0 || len(d.Locale) > 0 {
		out.Audience = domain.AudienceFilter{Persona: d.Persona, Locale: d.Locale}
	}
	return out
}

func convertCorridor(c *CorridorImport) *domain.Corridor {
	lines := make([][]domain.Point, 0, len(c.Lines))
	for _, line := range c.Lines {
		pts := make([]domain.Point, 0, len(line))
		for _, pt := range line {
			pts = append(pts, domain.Point{Lat: pt[0], Lng: pt[1]})
		}
		lines = append(lines, pts)
	}
	return &domain.Corridor{Type: validCorridorTypes[c.Type], Lines: lines}
}
