// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package aggregator

import (
	"strings"
	"unicode"

	"github.com/JennePenne123/vibematch/internal/geo"
	"github.com/JennePenne123/vibematch/internal/metrics"
	"github.com/JennePenne123/vibematch/internal/models"
)

// dedupMerge combines a primary and secondary venue list. Two listings are
// the same place when their normalized names are equal, or they sit within
// the proximity threshold and their names are similar enough. On a match the
// secondary listing is merged into the primary record; unmatched secondary
// listings are appended.
func (a *Aggregator) dedupMerge(primary, secondary []models.VenueRecord) []models.VenueRecord {
	merged := make([]models.VenueRecord, len(primary))
	copy(merged, primary)

	for i := range secondary {
		s := &secondary[i]
		matched := false
		for j := range merged {
			if a.samePlace(&merged[j], s) {
				mergeVenues(&merged[j], s)
				metrics.VenuesDeduplicated.Inc()
				matched = true
				break
			}
		}
		if !matched {
			merged = append(merged, *s)
		}
	}

	return merged
}

// samePlace applies the deduplication rule.
func (a *Aggregator) samePlace(p, s *models.VenueRecord) bool {
	np, ns := normalizeName(p.Name), normalizeName(s.Name)
	if np != "" && np == ns {
		return true
	}

	distM := geo.DistanceM(p.Latitude, p.Longitude, s.Latitude, s.Longitude)
	return distM < a.cfg.DedupDistanceM && nameSimilarity(np, ns) > a.cfg.DedupSimilarity
}

// mergeVenues folds the secondary record into the primary: photo URLs are
// set-unioned, descriptive fields fill in only where the primary is empty,
// tags accumulate without duplication, and the secondary's provider ids are
// attached. The primary keeps its id and source.
func mergeVenues(p, s *models.VenueRecord) {
	p.Photos = unionStrings(p.Photos, s.Photos)
	p.Tags = unionStrings(p.Tags, s.Tags)

	if p.Description == "" {
		p.Description = s.Description
	}
	if p.Address == "" {
		p.Address = s.Address
	}
	if p.Hours == "" {
		p.Hours = s.Hours
	}
	if p.CuisineType == "" {
		p.CuisineType = s.CuisineType
	}
	if p.PriceRange == "" {
		p.PriceRange = s.PriceRange
	}
	if p.Rating == 0 {
		p.Rating = s.Rating
	}

	if len(s.ProviderIDs) > 0 {
		if p.ProviderIDs == nil {
			p.ProviderIDs = make(map[string]string, len(s.ProviderIDs))
		}
		for provider, id := range s.ProviderIDs {
			if _, exists := p.ProviderIDs[provider]; !exists {
				p.ProviderIDs[provider] = id
			}
		}
	}
}

// unionStrings appends entries from b that a does not already contain,
// preserving order.
func unionStrings(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]struct{}, len(a))
	for _, v := range a {
		seen[v] = struct{}{}
	}
	out := a
	for _, v := range b {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// normalizeName lowercases, strips punctuation, collapses whitespace, and
// drops leading articles, so "The Olive-Garden" and "olive garden" compare
// equal.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '\'' || r == '&':
			b.WriteByte(' ')
		}
	}
	fields := strings.Fields(b.String())
	if len(fields) > 1 && (fields[0] == "the" || fields[0] == "le" || fields[0] == "la") {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

// nameSimilarity is the Jaccard similarity of the two names' token sets,
// in [0, 1].
func nameSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	setA := tokenSet(a)
	setB := tokenSet(b)

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}
