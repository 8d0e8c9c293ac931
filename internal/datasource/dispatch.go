package datasource

import (
	"context"
	"fmt"

	"github.com/alexanderramin/itinera/internal/contract"
)

// Weather dispatches a weather query to the serving adapter.
func (r *Registry) Weather(ctx context.Context, q Query) (WeatherReport, error) {
	a, err := r.adapterAt(KindWeather, q.Point)
	if err != nil {
		return WeatherReport{}, err
	}
	wa, ok := a.(WeatherAdapter)
	if !ok {
		return WeatherReport{}, kindMismatch(KindWeather, a)
	}
	return wa.Weather(ctx, q)
}

// RoadStatus dispatches a road status query to the serving adapter.
func (r *Registry) RoadStatus(ctx context.Context, q Query) (RoadStatus, error) {
	a, err := r.adapterAt(KindRoad, q.Point)
	if err != nil {
		return RoadStatus{}, err
	}
	ra, ok := a.(RoadAdapter)
	if !ok {
		return RoadStatus{}, kindMismatch(KindRoad, a)
	}
	return ra.RoadStatus(ctx, q)
}

// TransportSchedule dispatches a transit schedule query.
func (r *Registry) TransportSchedule(ctx context.Context, q Query) (Schedule, error) {
	a, err := r.adapterAt(KindTransport, q.Point)
	if err != nil {
		return Schedule{}, err
	}
	ta, ok := a.(TransportAdapter)
	if !ok {
		return Schedule{}, kindMismatch(KindTransport, a)
	}
	return ta.TransportSchedule(ctx, q)
}

// FerrySchedule dispatches a ferry schedule query.
func (r *Registry) FerrySchedule(ctx context.Context, q Query) (Schedule, error) {
	a, err := r.adapterAt(KindFerry, q.Point)
	if err != nil {
		return Schedule{}, err
	}
	fa, ok := a.(FerryAdapter)
	if !ok {
		return Schedule{}, kindMismatch(KindFerry, a)
	}
	return fa.FerrySchedule(ctx, q)
}

func kindMismatch(kind Kind, a Adapter) error {
	return &contract.PlanError{
		Code:    contract.ErrInternal,
		Message: fmt.Sprintf("adapter %s registered under %s does not implement it", a.Name(), kind),
	}
}
