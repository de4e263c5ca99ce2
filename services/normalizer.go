package services

import (
	"strings"

	"github.com/tidwall/gjson"

	"adventure-us/models"
)

// Normalize reshapes raw search results into VenueRecords. Missing address
// becomes "", missing website/phone/menu become nil. Entries without a
// geocode are skipped rather than fabricated. Records are deduplicated by
// name; the first occurrence wins.
//
// Flat records (the JSON form of VenueRecord) are accepted too, so feeding
// normalized output back in yields the same records.
func Normalize(raw []models.RawVenue) []models.VenueRecord {
	records := make([]models.VenueRecord, 0, len(raw))
	for _, r := range raw {
		v := gjson.ParseBytes(r)

		lat := first(v, "geocodes.main.latitude", "latitude")
		lon := first(v, "geocodes.main.longitude", "longitude")
		if !isNumber(lat) || !isNumber(lon) {
			continue
		}

		records = append(records, models.VenueRecord{
			ID:         first(v, "fsq_id", "id").String(),
			Name:       v.Get("name").String(),
			Latitude:   lat.Float(),
			Longitude:  lon.Float(),
			Address:    first(v, "location.address", "address").String(),
			Categories: joinCategories(v.Get("categories")),
			Distance:   v.Get("distance").Float(),
			Website:    optional(v.Get("website")),
			Phone:      optional(first(v, "tel", "phone")),
			Menu:       optional(v.Get("menu")),
		})
	}
	return Dedupe(records)
}

// Dedupe drops records whose name was already seen, keeping input order.
func Dedupe(records []models.VenueRecord) []models.VenueRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.VenueRecord, 0, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.Name]; dup {
			continue
		}
		seen[rec.Name] = struct{}{}
		out = append(out, rec)
	}
	return out
}

func joinCategories(c gjson.Result) string {
	if c.Type == gjson.String {
		return c.String()
	}
	var names []string
	for _, cat := range c.Array() {
		if name := cat.Get("name").String(); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

func first(v gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if r := v.Get(p); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

func isNumber(r gjson.Result) bool {
	return r.Type == gjson.Number
}

func optional(r gjson.Result) *string {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	s := strings.TrimSpace(r.String())
	if s == "" {
		return nil
	}
	return &s
}
