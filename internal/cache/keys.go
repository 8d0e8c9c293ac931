package cache

import (
	"fmt"
	"sort"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
)

type selectionKey struct {
	Country     string
	Month       int // 0 when unknown
	Preferences []string
	Pace        domain.UserPace
	Risk        domain.RiskTolerance
	Duration    int
}

// SelectionKey builds the stable selection cache key. Preferences are sorted
// so the key is order-insensitive.
func SelectionKey(req contract.SelectRequest) (string, error) {
	prefs := append([]string(nil), req.Intent.Preferences...)
	sort.Strings(prefs)
	month := 0
	if req.Month != nil {
		month = *req.Month
	}
	h, err := hashstructure.Hash(selectionKey{
		Country:     req.CountryCode,
		Month:       month,
		Preferences: prefs,
		Pace:        req.Intent.Pace,
		Risk:        req.Intent.RiskTolerance,
		Duration:    req.Intent.DurationDays,
	}, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("hash selection key: %w", err)
	}
	return fmt.Sprintf("sel:%x", h), nil
}

type poolKey struct {
	DirectionID  string
	BufferMeters float64
	Types        []string
	Examples     []string
	Weights      map[string]float64
}

// PoolKey builds the stable pool cache key from the direction fingerprint.
// The signature sets are sorted so storage order does not split the cache.
func PoolKey(d *domain.RouteDirection, bufferMeters float64) (string, error) {
	types := append([]string(nil), d.SignaturePois.Types...)
	examples := append([]string(nil), d.SignaturePois.Examples...)
	sort.Strings(types)
	sort.Strings(examples)
	h, err := hashstructure.Hash(poolKey{
		DirectionID:  d.ID,
		BufferMeters: bufferMeters,
		Types:        types,
		Examples:     examples,
		Weights:      d.SignaturePois.Weights,
	}, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("hash pool key: %w", err)
	}
	return fmt.Sprintf("pool:%x", h), nil
}
