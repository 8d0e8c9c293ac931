package datasource

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// SafetyAssessment combines road, weather, and advisory state for one
// location. Missing pieces degrade to their documented fallbacks rather than
// failing the assessment.
type SafetyAssessment struct {
	RoadOpen   bool
	Weather    WeatherReport
	Alerts     []string
	DegradedBy []string // sources that fell back
}

// SafetyService fans the three source queries out concurrently so the
// assessment latency is the slowest source, not the sum.
type SafetyService struct {
	registry *Registry
	timeout  time.Duration
	logger   *slog.Logger
}

func NewSafetyService(registry *Registry, timeout time.Duration, logger *slog.Logger) *SafetyService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SafetyService{registry: registry, timeout: timeout, logger: logger}
}

// Assess queries road status, weather, and advisories in parallel. A failed
// or timed-out source is logged and replaced by its fallback: open roads,
// empty weather, empty alerts.
func (s *SafetyService) Assess(ctx context.Context, q Query) SafetyAssessment {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out := SafetyAssessment{RoadOpen: true}
	var g errgroup.Group

	var road RoadStatus
	var roadErr error
	g.Go(func() error {
		road, roadErr = s.registry.RoadStatus(ctx, q)
		return nil
	})

	var weather WeatherReport
	var weatherErr error
	g.Go(func() error {
		weather, weatherErr = s.registry.Weather(ctx, q)
		return nil
	})

	var alerts []string
	var alertsErr error
	g.Go(func() error {
		alerts, alertsErr = s.fetchAlerts(ctx, q)
		return nil
	})

	// Goroutines never return errors; failures degrade below.
	_ = g.Wait()

	if roadErr != nil {
		s.logger.Warn("road status unavailable, assuming open", "error", roadErr)
		out.DegradedBy = append(out.DegradedBy, "road")
	} else {
		out.RoadOpen = road.Open
		out.Alerts = append(out.Alerts, road.Restrictions...)
	}
	if weatherErr != nil {
		s.logger.Warn("weather unavailable", "error", weatherErr)
		out.DegradedBy = append(out.DegradedBy, "weather")
	} else {
		out.Weather = weather
		out.Alerts = append(out.Alerts, weather.Advisories...)
	}
	if alertsErr != nil {
		s.logger.Warn("alerts unavailable, continuing without", "error", alertsErr)
		out.DegradedBy = append(out.DegradedBy, "alerts")
	} else {
		out.Alerts = append(out.Alerts, alerts...)
	}
	return out
}

// fetchAlerts derives advisories from the transport schedule notes. Ferry
// and rail disruptions surface here when the serving adapter reports them.
func (s *SafetyService) fetchAlerts(ctx context.Context, q Query) ([]string, error) {
	sched, err := s.registry.TransportSchedule(ctx, q)
	if err != nil {
		return nil, err
	}
	var alerts []string
	for _, e := range sched.Entries {
		if e.Notes != "" {
			alerts = append(alerts, e.Notes)
		}
	}
	return alerts, nil
}
