package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinate_String(t *testing.T) {
	assert.Equal(t, "40.7128,-74.006", Coordinate{Latitude: 40.7128, Longitude: -74.006}.String())
}

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate("40.5, -75.25")
	require.NoError(t, err)
	assert.Equal(t, Coordinate{Latitude: 40.5, Longitude: -75.25}, c)

	for _, bad := range []string{"", "40.5", "a,b", "91,0", "0,181"} {
		_, err := ParseCoordinate(bad)
		assert.Error(t, err, bad)
	}
}

func TestSearchQuery_Key(t *testing.T) {
	ll := ByCoordinateRadius{Coordinate: Coordinate{Latitude: 1, Longitude: 2}, RadiusMeters: 8045}
	near := ByPlaceName{Place: "Austin, TX", CategoryID: 13026}

	assert.Equal(t, "ll|1,2|8045|0", ll.Key())
	assert.Equal(t, "near|Austin, TX|13026", near.Key())
	assert.Equal(t, 13026, near.Category())
	assert.NotEqual(t, ll.Key(), ByCoordinateRadius{Coordinate: ll.Coordinate, RadiusMeters: 1609}.Key())
}
