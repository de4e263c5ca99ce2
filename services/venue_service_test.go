package services

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adventure-us/cache"
	"adventure-us/logger"
	"adventure-us/models"
	"adventure-us/utils/errors"
)

type fakeGeocoder struct {
	coord models.Coordinate
	err   error
	calls []string
}

func (f *fakeGeocoder) Resolve(_ context.Context, place string) (models.Coordinate, error) {
	f.calls = append(f.calls, place)
	return f.coord, f.err
}

type fakeSearcher struct {
	venues  []models.RawVenue
	err     error
	queries []models.SearchQuery
}

func (f *fakeSearcher) Search(_ context.Context, q models.SearchQuery) ([]models.RawVenue, error) {
	f.queries = append(f.queries, q)
	return f.venues, f.err
}

var austin = models.Coordinate{Latitude: 30.2672, Longitude: -97.7431}

func sampleRaw() []models.RawVenue {
	return []models.RawVenue{
		models.RawVenue(`{"fsq_id":"A1","name":"Smoke Pit","geocodes":{"main":{"latitude":30.26,"longitude":-97.74}},"location":{"address":"1 Pit Rd"},"categories":[{"id":13026,"name":"BBQ Joint"}],"distance":120}`),
		models.RawVenue(`{"fsq_id":"B2","name":"Slice","geocodes":{"main":{"latitude":30.27,"longitude":-97.75}},"location":{"address":"2 Pie St"},"categories":[{"id":13064,"name":"Pizzeria"}],"distance":340,"website":"https://slice.example"}`),
	}
}

func newTestService(g Geocoder, s VenueSearcher, opts ...VenueServiceOption) *VenueService {
	opts = append([]VenueServiceOption{WithServiceLogger(logger.Nop())}, opts...)
	return NewVenueService(g, s, opts...)
}

func TestVenueService_FindRandom_Coordinate(t *testing.T) {
	g := &fakeGeocoder{coord: austin}
	s := &fakeSearcher{venues: sampleRaw()}
	svc := newTestService(g, s, WithSelector(NewSelector(func(int) int { return 1 })))

	d, err := svc.FindRandom(context.Background(), Request{Location: "Austin, TX", RadiusMiles: 3, CategoryID: 13064})
	require.NoError(t, err)

	assert.Equal(t, []string{"Austin, TX"}, g.calls)
	require.Len(t, s.queries, 1)
	assert.Equal(t, models.ByCoordinateRadius{Coordinate: austin, RadiusMeters: 3 * 1609, CategoryID: 13064}, s.queries[0])

	assert.Equal(t, 2, d.Candidates)
	assert.Equal(t, "Slice", d.Venue.Name)
	assert.Equal(t, &austin, d.Coordinate)
	assert.Equal(t, "https://slice.example", d.Display.Summary.Website)
}

func TestVenueService_DefaultRadius(t *testing.T) {
	s := &fakeSearcher{venues: sampleRaw()}
	svc := newTestService(&fakeGeocoder{coord: austin}, s)

	_, err := svc.FindRandom(context.Background(), Request{Location: "Austin"})
	require.NoError(t, err)
	assert.Equal(t, 5*models.MetersPerMile, s.queries[0].(models.ByCoordinateRadius).RadiusMeters)

	svc = newTestService(&fakeGeocoder{coord: austin}, s, WithDefaultRadius(10))
	_, err = svc.FindRandom(context.Background(), Request{Location: "Austin"})
	require.NoError(t, err)
	assert.Equal(t, 10*models.MetersPerMile, s.queries[1].(models.ByCoordinateRadius).RadiusMeters)
}

func TestVenueService_PlaceModeSkipsGeocoding(t *testing.T) {
	g := &fakeGeocoder{coord: austin}
	s := &fakeSearcher{venues: sampleRaw()}
	svc := newTestService(g, s)

	d, err := svc.FindRandom(context.Background(), Request{Location: "Austin, TX", Mode: ModePlace, RadiusMiles: 20})
	require.NoError(t, err)
	assert.Empty(t, g.calls)
	assert.Equal(t, models.ByPlaceName{Place: "Austin, TX"}, s.queries[0])
	assert.Nil(t, d.Coordinate)
}

func TestVenueService_CategoryFilter(t *testing.T) {
	svc := newTestService(&fakeGeocoder{coord: austin}, &fakeSearcher{venues: sampleRaw()})

	for i := 0; i < 20; i++ {
		d, err := svc.FindRandom(context.Background(), Request{Location: "Austin", Category: "bbq"})
		require.NoError(t, err)
		assert.Equal(t, "Smoke Pit", d.Venue.Name)
	}

	_, err := svc.FindRandom(context.Background(), Request{Location: "Austin", Category: "Sushi"})
	assert.True(t, stderrors.Is(err, errors.ErrNoMatchingVenue), "got %v", err)
}

func TestVenueService_Errors(t *testing.T) {
	tests := []struct {
		name     string
		geocoder *fakeGeocoder
		searcher *fakeSearcher
		req      Request
		wantErr  *errors.APIError
	}{
		{
			name:     "unresolvable location",
			geocoder: &fakeGeocoder{err: errors.ErrInvalidLocation},
			searcher: &fakeSearcher{},
			req:      Request{Location: "Nowhere"},
			wantErr:  errors.ErrInvalidLocation,
		},
		{
			name:     "empty location",
			geocoder: &fakeGeocoder{coord: austin},
			searcher: &fakeSearcher{},
			req:      Request{Location: ""},
			wantErr:  errors.ErrInvalidLocation,
		},
		{
			name:     "blank location",
			geocoder: &fakeGeocoder{coord: austin},
			searcher: &fakeSearcher{},
			req:      Request{Location: "   "},
			wantErr:  errors.ErrInvalidLocation,
		},
		{
			name:     "radius too large",
			geocoder: &fakeGeocoder{coord: austin},
			searcher: &fakeSearcher{},
			req:      Request{Location: "Austin", RadiusMiles: 51},
			wantErr:  errors.ErrInvalidInput,
		},
		{
			name:     "unknown mode",
			geocoder: &fakeGeocoder{coord: austin},
			searcher: &fakeSearcher{},
			req:      Request{Location: "Austin", Mode: "teleport"},
			wantErr:  errors.ErrInvalidInput,
		},
		{
			name:     "search service down",
			geocoder: &fakeGeocoder{coord: austin},
			searcher: &fakeSearcher{err: errors.ErrServiceUnavailable},
			req:      Request{Location: "Austin"},
			wantErr:  errors.ErrServiceUnavailable,
		},
		{
			name:     "no venues",
			geocoder: &fakeGeocoder{coord: austin},
			searcher: &fakeSearcher{venues: []models.RawVenue{}},
			req:      Request{Location: "Austin"},
			wantErr:  errors.ErrNoVenuesFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.geocoder, tt.searcher)
			d, err := svc.FindRandom(context.Background(), tt.req)
			assert.Nil(t, d)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestVenueService_GeocodeFailureStopsBeforeSearch(t *testing.T) {
	s := &fakeSearcher{venues: sampleRaw()}
	svc := newTestService(&fakeGeocoder{err: errors.ErrInvalidLocation}, s)

	_, err := svc.FindRandom(context.Background(), Request{Location: "Nowhere"})
	require.Error(t, err)
	assert.Empty(t, s.queries)
}

func TestVenueService_Memoization(t *testing.T) {
	g := &fakeGeocoder{coord: austin}
	s := &fakeSearcher{venues: sampleRaw()}
	memo := cache.NewMemo(cache.NewMemoryStore(16), logger.Nop())
	svc := newTestService(g, s, WithMemo(memo))
	ctx := context.Background()

	_, err := svc.FindRandom(ctx, Request{Location: "Austin", RadiusMiles: 5})
	require.NoError(t, err)
	assert.Equal(t, cache.Stats{Hits: 0, Misses: 2}, memo.Stats())

	_, err = svc.FindRandom(ctx, Request{Location: "Austin", RadiusMiles: 5})
	require.NoError(t, err)
	assert.Equal(t, cache.Stats{Hits: 2, Misses: 2}, memo.Stats())
	assert.Len(t, g.calls, 1)
	assert.Len(t, s.queries, 1)

	// different radius: geocode hit, search miss
	records, _, err := svc.ListVenues(ctx, Request{Location: "Austin", RadiusMiles: 6})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, cache.Stats{Hits: 3, Misses: 3}, memo.Stats())
	assert.Len(t, s.queries, 2)
}

func TestVenueService_ErrorsAreNotMemoized(t *testing.T) {
	g := &fakeGeocoder{err: errors.ErrInvalidLocation}
	memo := cache.NewMemo(cache.NewMemoryStore(16), logger.Nop())
	svc := newTestService(g, &fakeSearcher{venues: sampleRaw()}, WithMemo(memo))

	_, err := svc.Geocode(context.Background(), "Nowhere")
	require.Error(t, err)

	g.err = nil
	g.coord = austin
	coord, err := svc.Geocode(context.Background(), "Nowhere")
	require.NoError(t, err)
	assert.Equal(t, austin, coord)
	assert.Len(t, g.calls, 2)
}
