package models

import (
	"fmt"
	"strconv"
	"strings"
)

// RawVenue is one element of the places-search "results" array, kept as the
// bytes the service returned.
type RawVenue []byte

// VenueRecord is the normalized form of a RawVenue.
type VenueRecord struct {
	ID         string  `json:"id" bson:"_id"`
	Name       string  `json:"name" bson:"name"`
	Latitude   float64 `json:"latitude" bson:"latitude"`
	Longitude  float64 `json:"longitude" bson:"longitude"`
	Address    string  `json:"address" bson:"address"`
	Categories string  `json:"categories" bson:"categories"` // names joined with ", " in service order
	Distance   float64 `json:"distance" bson:"distance"`     // meters
	Website    *string `json:"website" bson:"website"`
	Phone      *string `json:"phone" bson:"phone"`
	Menu       *string `json:"menu" bson:"menu"`
}

// Coordinate is a WGS84 point.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String renders the coordinate as "lat,lon", the form the search service expects.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// Valid reports whether the coordinate lies within WGS84 bounds.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// ParseCoordinate parses a "lat,lon" string.
func ParseCoordinate(s string) (Coordinate, error) {
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return Coordinate{}, fmt.Errorf("coordinate %q: expected \"lat,lon\"", s)
	}
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("coordinate %q: %w", s, err)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("coordinate %q: %w", s, err)
	}
	c := Coordinate{Latitude: la, Longitude: lo}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("coordinate %q out of range", s)
	}
	return c, nil
}

// MetersPerMile is the conversion the radius input uses.
const MetersPerMile = 1609

const (
	MinRadiusMiles = 1
	MaxRadiusMiles = 50
)

// SearchQuery is one of ByCoordinateRadius or ByPlaceName.
type SearchQuery interface {
	// Key identifies the query by its exact argument values.
	Key() string
	// Category returns the category id constraint, 0 when absent.
	Category() int
	isSearchQuery()
}

// ByCoordinateRadius searches around a resolved coordinate.
type ByCoordinateRadius struct {
	Coordinate   Coordinate
	RadiusMeters int
	CategoryID   int
}

// ByPlaceName lets the search service resolve a free-text place itself. There
// is no radius in this mode.
type ByPlaceName struct {
	Place      string
	CategoryID int
}

func (q ByCoordinateRadius) Key() string {
	return fmt.Sprintf("ll|%s|%d|%d", q.Coordinate, q.RadiusMeters, q.CategoryID)
}

func (q ByCoordinateRadius) Category() int { return q.CategoryID }

func (ByCoordinateRadius) isSearchQuery() {}

func (q ByPlaceName) Key() string {
	return fmt.Sprintf("near|%s|%d", q.Place, q.CategoryID)
}

func (q ByPlaceName) Category() int { return q.CategoryID }

func (ByPlaceName) isSearchQuery() {}
