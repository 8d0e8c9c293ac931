package importer

import "fmt"

// ValidateDatasetSchema checks the dataset for errors before conversion.
// Returns a slice of all validation errors found so a curator can fix the
// whole file in one pass.
func ValidateDatasetSchema(schema *DatasetSchema) []error {
	var errs []error

	placeUUIDs := make(map[string]bool)
	errs = append(errs, validatePlaces(schema.Places, placeUUIDs)...)
	errs = append(errs, validateDirections(schema.Directions, placeUUIDs)...)

	return errs
}

func validatePlaces(places []PlaceImport, placeUUIDs map[string]bool) []error {
	var errs []error

	for i, p := range places {
		prefix := fmt.Sprintf("places[%d]", i)
		if p.UUID == "" {
			errs = append(errs, fmt.Errorf("%s.uuid is required", prefix))
		} else if placeUUIDs[p.UUID] {
			errs = append(errs, fmt.Errorf("%s.uuid: duplicate %q", prefix, p.UUID))
		} else {
			placeUUIDs[p.UUID] = true
		}
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if p.CountryCode == "" {
			errs = append(errs, fmt.Errorf("%s.country_code is required", prefix))
		}
		if p.Type == "" {
			errs = append(errs, fmt.Errorf("%s.type is required", prefix))
		}
		if p.Lat < -90 || p.Lat > 90 {
			errs = append(errs, fmt.Errorf("%s.lat %g out of range", prefix, p.Lat))
		}
		if p.Lng < -180 || p.Lng > 180 {
			errs = append(errs, fmt.Errorf("%s.lng %g out of range", prefix, p.Lng))
		}
		if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
			errs = append(errs, fmt.Errorf("%s.rating %g out of range 0-5", prefix, *p.Rating))
		}
	}
	return errs
}

func validateDirections(directions []DirectionImport, placeUUIDs map[string]bool) []error {
	var errs []error

	ids := make(map[string]bool)
	for i, d := range directions {
		prefix := fmt.Sprintf("directions[%d]", i)
		if d.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if ids[d.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate %q", prefix, d.ID))
		} else {
			ids[d.ID] = true
		}
		if d.CountryCode == "" {
			errs = append(errs, fmt.Errorf("%s.country_code is required", prefix))
		}
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}

		errs = append(errs, validateMonths(prefix+".best_months", d.BestMonths)...)
		errs = append(errs, validateMonths(prefix+".avoid_months", d.AvoidMonths)...)
		best := make(map[int]bool, len(d.BestMonths))
		for _, m := range d.BestMonths {
			best[m] = true
		}
		for _, m := range d.AvoidMonths {
			if best[m] {
				errs = append(errs, fmt.Errorf("%s: month %d in both best and avoid sets", prefix, m))
			}
		}

		if d.DailyPace != "" {
			if _, ok := validPaces[d.DailyPace]; !ok {
				errs = append(errs, fmt.Errorf("%s.daily_pace: invalid value %q", prefix, d.DailyPace))
			}
		}
		for _, rf := range d.RiskFactors {
			if !validRiskFactors[rf] {
				errs = append(errs, fmt.Errorf("%s.risk_factors: unknown factor %q", prefix, rf))
			}
		}
		if d.Status != "" {
			if _, ok := validStatuses[d.Status]; !ok {
				errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, d.Status))
			}
		}
		if d.RolloutPercent != nil && (*d.RolloutPercent < 0 || *d.RolloutPercent > 100) {
			errs = append(errs, fmt.Errorf("%s.rollout_percent %d out of range", prefix, *d.RolloutPercent))
		}
		if d.BufferMeters < 0 {
			errs = append(errs, fmt.Errorf("%s.buffer_meters must not be negative", prefix))
		}

		for _, ref := range d.SignatureRefs {
			if !placeUUIDs[ref] {
				errs = append(errs, fmt.Errorf("%s.signature_refs: unknown place %q", prefix, ref))
			}
		}

		if d.Corridor != nil {
			errs = append(errs, validateCorridor(prefix+".corridor", d.Corridor)...)
		}
	}
	return errs
}

func validateMonths(prefix string, months []int) []error {
	var errs []error
	for _, m := range months {
		if m < 1 || m > 12 {
			errs = append(errs, fmt.Errorf("%s: month %d out of range", prefix, m))
		}
	}
	return errs
}

func validateCorridor(prefix string, c *CorridorImport) []error {
	var errs []error

	if _, ok := validCorridorTypes[c.Type]; !ok {
		errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, c.Type))
	}
	if len(c.Lines) == 0 {
		errs = append(errs, fmt.Errorf("%s.lines must not be empty", prefix))
	}
	for i, line := range c.Lines {
		if len(line) < 2 {
			errs = append(errs, fmt.Errorf("%s.lines[%d]: needs at least 2 points", prefix, i))
		}
		for j, pt := range line {
			if pt[0] < -90 || pt[0] > 90 || pt[1] < -180 || pt[1] > 180 {
				errs = append(errs, fmt.Errorf("%s.lines[%d][%d]: coordinates out of range", prefix, i, j))
			}
		}
	}
	return errs
}
