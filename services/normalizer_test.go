package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"adventure-us/models"
)

func rawResults(t *testing.T, body string) []models.RawVenue {
	t.Helper()
	results := gjson.Get(body, "results")
	require.True(t, results.IsArray())
	var out []models.RawVenue
	for _, r := range results.Array() {
		out = append(out, models.RawVenue(r.Raw))
	}
	return out
}

func strPtr(s string) *string { return &s }

func TestNormalize_JoesDiner(t *testing.T) {
	raw := rawResults(t, `{"results":[{"fsq_id":"A1","name":"Joe's Diner","geocodes":{"main":{"latitude":40.0,"longitude":-75.0}},"location":{"address":"1 Main St"},"categories":[{"name":"Diner"}],"distance":120}]}`)

	records := Normalize(raw)
	require.Len(t, records, 1)
	assert.Equal(t, models.VenueRecord{
		ID:         "A1",
		Name:       "Joe's Diner",
		Latitude:   40.0,
		Longitude:  -75.0,
		Address:    "1 Main St",
		Categories: "Diner",
		Distance:   120,
	}, records[0])
	assert.Nil(t, records[0].Website)
	assert.Nil(t, records[0].Phone)
	assert.Nil(t, records[0].Menu)

	out, err := json.Marshal(records[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"A1","name":"Joe's Diner","latitude":40,"longitude":-75,"address":"1 Main St","categories":"Diner","distance":120,"website":null,"phone":null,"menu":null}`, string(out))
}

func TestNormalize_OptionalFieldsAndCategoryOrder(t *testing.T) {
	raw := rawResults(t, `{"results":[{
		"fsq_id":"B2","name":"Smoke Pit",
		"geocodes":{"main":{"latitude":30.1,"longitude":-97.2}},
		"location":{"locality":"Austin"},
		"categories":[{"id":13026,"name":"BBQ Joint"},{"id":13068,"name":"American Restaurant"}],
		"distance":800,
		"website":"https://smoke.example",
		"tel":"(512) 555-0100",
		"menu":"  "
	}]}`)

	records := Normalize(raw)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "", rec.Address)
	assert.Equal(t, "BBQ Joint, American Restaurant", rec.Categories)
	assert.Equal(t, strPtr("https://smoke.example"), rec.Website)
	assert.Equal(t, strPtr("(512) 555-0100"), rec.Phone)
	assert.Nil(t, rec.Menu)
}

func TestNormalize_DuplicateNamesKeepFirst(t *testing.T) {
	raw := rawResults(t, `{"results":[
		{"fsq_id":"A1","name":"Joe's Diner","geocodes":{"main":{"latitude":40.0,"longitude":-75.0}},"location":{"address":"1 Main St"},"categories":[{"name":"Diner"}],"distance":120},
		{"fsq_id":"C3","name":"Pasta Place","geocodes":{"main":{"latitude":40.1,"longitude":-75.1}},"location":{},"categories":[{"name":"Italian Restaurant"}],"distance":300},
		{"fsq_id":"A2","name":"Joe's Diner","geocodes":{"main":{"latitude":41.0,"longitude":-76.0}},"location":{"address":"9 Elm St"},"categories":[{"name":"Diner"}],"distance":900}
	]}`)

	records := Normalize(raw)
	require.Len(t, records, 2)
	assert.Equal(t, "A1", records[0].ID)
	assert.Equal(t, "1 Main St", records[0].Address)
	assert.Equal(t, "Pasta Place", records[1].Name)
}

func TestNormalize_SkipsMissingGeocode(t *testing.T) {
	raw := []models.RawVenue{
		models.RawVenue(`{"fsq_id":"X","name":"Ghost","location":{},"categories":[],"distance":1}`),
		models.RawVenue(`{"fsq_id":"Y","name":"Real","geocodes":{"main":{"latitude":1,"longitude":2}},"location":{},"categories":[],"distance":1}`),
	}
	records := Normalize(raw)
	require.Len(t, records, 1)
	assert.Equal(t, "Real", records[0].Name)
}

func TestNormalize_Properties(t *testing.T) {
	names := []string{"A", "B", "A", "C", "B", "A", "D"}
	var raw []models.RawVenue
	for i, n := range names {
		raw = append(raw, models.RawVenue(fmt.Sprintf(
			`{"fsq_id":"id%d","name":%q,"geocodes":{"main":{"latitude":%d,"longitude":%d}},"location":{"address":"%d Road"},"categories":[{"name":"Cafe"}],"distance":%d}`,
			i, n, i, -i, i, i*10)))
	}

	records := Normalize(raw)
	assert.LessOrEqual(t, len(records), len(raw))

	seen := map[string]bool{}
	for _, r := range records {
		assert.False(t, seen[r.Name], "duplicate name %s", r.Name)
		seen[r.Name] = true
	}
	assert.Len(t, records, 4)

	// Feeding normalized records back as raw input changes nothing.
	var again []models.RawVenue
	for _, r := range records {
		b, err := json.Marshal(r)
		require.NoError(t, err)
		again = append(again, b)
	}
	assert.Equal(t, records, Normalize(again))
	assert.Equal(t, records, Dedupe(records))
}

func TestNormalize_Empty(t *testing.T) {
	assert.Empty(t, Normalize(nil))
}
