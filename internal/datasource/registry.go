package datasource

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
)

// Registry holds the adapters per service kind and memoises which adapter
// serves each (kind, country) pair for the process lifetime. Registration
// happens at startup; dispatch is concurrent.
type Registry struct {
	geocoder *Geocoder

	mu       sync.RWMutex
	adapters map[Kind][]Adapter
	resolved map[resolveKey]Adapter
}

type resolveKey struct {
	kind    Kind
	country string
}

func NewRegistry(geocoder *Geocoder) *Registry {
	return &Registry{
		geocoder: geocoder,
		adapters: make(map[Kind][]Adapter),
		resolved: make(map[resolveKey]Adapter),
	}
}

// Register adds an adapter under a kind. Adapters are kept sorted by
// priority so resolution scans in precedence order.
func (r *Registry) Register(kind Kind, a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(r.adapters[kind], a)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Priority() < list[j].Priority() })
	r.adapters[kind] = list
	// New registrations invalidate earlier resolutions.
	for k := range r.resolved {
		if k.kind == kind {
			delete(r.resolved, k)
		}
	}
}

// ResolveCountry reverse-geocodes a point to a country code.
func (r *Registry) ResolveCountry(p domain.Point) string {
	return r.geocoder.Resolve(p)
}

// AdapterFor picks the serving adapter for a kind and country: the
// lowest-priority exact match, then the lowest-priority wildcard, then a
// NO_ADAPTER error.
func (r *Registry) AdapterFor(kind Kind, country string) (Adapter, error) {
	key := resolveKey{kind: kind, country: country}

	r.mu.RLock()
	if a, ok := r.resolved[key]; ok {
		r.mu.RUnlock()
		return a, nil
	}
	list := r.adapters[kind]
	r.mu.RUnlock()

	var firstWildcard Adapter
	var picked Adapter
	for _, a := range list {
		exact, wildcard := supports(a, country)
		if exact {
			picked = a
			break
		}
		if wildcard && firstWildcard == nil {
			firstWildcard = a
		}
	}
	if picked == nil {
		picked = firstWildcard
	}
	if picked == nil {
		return nil, &contract.PlanError{
			Code:    contract.ErrNoAdapter,
			Message: fmt.Sprintf("no %s adapter for country %s", kind, country),
		}
	}

	r.mu.Lock()
	r.resolved[key] = picked
	r.mu.Unlock()
	return picked, nil
}

func (r *Registry) adapterAt(kind Kind, p domain.Point) (Adapter, error) {
	return r.AdapterFor(kind, r.geocoder.Resolve(p))
}
