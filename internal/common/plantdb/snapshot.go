package plantdb

import (
	"sort"

	"cladari-assistant/internal/models"
)

const recentLimit = 5

// BuildSnapshot aggregates a plant list into the per-call snapshot: total
// count, total purchase value, per-location counts and the most recent
// additions. Every plant lands in exactly one location bucket.
func BuildSnapshot(plants []models.Plant) *models.Snapshot {
	snap := &models.Snapshot{
		Count:     len(plants),
		Locations: make(map[string]int),
		Plants:    plants,
	}

	for i := range plants {
		snap.TotalValue += plants[i].PurchasePrice
		snap.Locations[plants[i].LocationName()]++
	}

	recent := make([]models.Plant, len(plants))
	copy(recent, plants)
	// createdAt is RFC3339, so string order is chronological order.
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt > recent[j].CreatedAt
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	snap.Recent = recent

	return snap
}
