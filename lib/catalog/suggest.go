package catalog

import (
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/mapper"

	"github.com/antzucaro/matchr"
)

const minSuggestSimilarity = 0.85

// SuggestID returns the id in entries closest to id by Jaro-Winkler
// similarity, for "did you mean" hints on unknown ids.
func SuggestID(entries []mapper.Entry, id string) (string, bool) {
	best := ""
	bestSim := minSuggestSimilarity
	for _, e := range entries {
		sim := matchr.JaroWinkler(id, e.ID, false)
		if sim > bestSim {
			best = e.ID
			bestSim = sim
		}
	}
	return best, best != ""
}
