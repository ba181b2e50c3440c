package services

import (
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/store"
)

// StoreRanker is a domain service that orders candidate stores by their
// great-circle distance from a customer location.
//
// Business rules:
//   - Distance is the haversine distance in kilometers
//   - Candidates are sorted ascending by distance
//   - Ties are broken by store ID so results are deterministic and reproducible
//   - A limit truncates the result (limit 1 for first assignment, limit 5 for
//     the recommendation fallback)
type StoreRanker struct{}

// NewStoreRanker creates a new StoreRanker instance.
func NewStoreRanker() StoreRanker {
	return StoreRanker{}
}

// Rank computes distance-ordered candidates for the given stores.
//
// Parameters:
//   - origin: the customer's resolved address coordinates
//   - stores: the stores to rank (each must be valid)
//   - limit: maximum number of candidates to return; non-positive means all
//
// Returns candidates sorted ascending by distance, ties broken by store ID.
func (r StoreRanker) Rank(origin kernel.GeoPoint, stores []*store.Store, limit int) ([]store.Candidate, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]store.Candidate, 0, len(stores))
	for _, s := range stores {
		if err := s.Validate(); err != nil {
			return nil, err
		}

		distance, err := origin.DistanceKm(s.Location())
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, store.Candidate{
			StoreID:    s.ID(),
			DistanceKm: distance,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].DistanceKm != candidates[j].DistanceKm {
			return candidates[i].DistanceKm < candidates[j].DistanceKm
		}
		return candidates[i].StoreID.String() < candidates[j].StoreID.String()
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}
