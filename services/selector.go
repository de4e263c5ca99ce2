package services

import (
	"math/rand"
	"strings"

	"adventure-us/models"
)

// Selector picks one venue uniformly at random.
type Selector struct {
	intn func(n int) int
}

// NewSelector uses intn as its random source; nil means math/rand.Intn.
func NewSelector(intn func(n int) int) *Selector {
	if intn == nil {
		intn = rand.Intn
	}
	return &Selector{intn: intn}
}

// Select applies the category filter and draws one of the remaining records.
// It returns false when nothing is left to pick from.
func (s *Selector) Select(records []models.VenueRecord, filter string) (models.VenueRecord, bool) {
	candidates := FilterByCategory(records, filter)
	if len(candidates) == 0 {
		return models.VenueRecord{}, false
	}
	return candidates[s.intn(len(candidates))], true
}

// FilterByCategory keeps records whose category string contains filter,
// ignoring case. It is a substring test, so "bar" also matches "Barbecue".
// An empty filter keeps everything.
func FilterByCategory(records []models.VenueRecord, filter string) []models.VenueRecord {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return records
	}
	var out []models.VenueRecord
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Categories), filter) {
			out = append(out, rec)
		}
	}
	return out
}
