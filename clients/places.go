package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"adventure-us/models"
	"adventure-us/utils/errors"
)

const (
	// DefaultPlacesURL is the Foursquare places search endpoint.
	DefaultPlacesURL = "https://api.foursquare.com/v3/places/search"

	// MaxResults is the most venues one search returns.
	MaxResults = 50

	searchFields = "fsq_id,name,geocodes,location,categories,distance,website,tel,menu"
)

// requiredFields must be present on every result; a result set missing any of
// them usually means the place name was too ambiguous.
var requiredFields = []string{"fsq_id", "name", "geocodes.main", "location", "categories", "distance"}

// PlacesClient searches for food venues that are open now.
type PlacesClient struct {
	base
}

// NewPlacesClient creates a places search client. apiKey is sent verbatim in
// the Authorization header.
func NewPlacesClient(apiKey string, opts ...Option) *PlacesClient {
	return &PlacesClient{base: newBase(DefaultPlacesURL, apiKey, opts)}
}

// Search runs one search and returns the raw results, nearest first.
func (c *PlacesClient) Search(ctx context.Context, q models.SearchQuery) ([]models.RawVenue, error) {
	params, err := searchParams(q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.ErrInvalidInput.WithDetails("%v", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.token)

	status, body, err := c.do(ctx, req, "places")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError("places", status, body)
	}

	results := gjson.GetBytes(body, "results")
	if !results.IsArray() {
		return nil, errors.ErrInvalidLocation.WithDetails("search response has no results field")
	}

	items := results.Array()
	venues := make([]models.RawVenue, 0, len(items))
	for i, item := range items {
		for _, field := range requiredFields {
			if !item.Get(field).Exists() {
				return nil, errors.ErrInvalidLocation.WithDetails("result %d is missing %s", i, field)
			}
		}
		venues = append(venues, models.RawVenue(item.Raw))
	}

	c.logger.WithContext(ctx).Info("venue search completed",
		zap.String("query", q.Key()),
		zap.Int("results", len(venues)),
	)
	return venues, nil
}

func searchParams(q models.SearchQuery) (url.Values, error) {
	params := url.Values{}
	params.Set("query", "food")
	params.Set("open_now", "true")
	params.Set("sort", "DISTANCE")
	params.Set("fields", searchFields)
	params.Set("limit", strconv.Itoa(MaxResults))

	switch q := q.(type) {
	case models.ByCoordinateRadius:
		params.Set("ll", q.Coordinate.String())
		params.Set("radius", strconv.Itoa(q.RadiusMeters))
	case models.ByPlaceName:
		params.Set("near", q.Place)
	default:
		return nil, errors.ErrInvalidInput.WithDetails("unsupported search query %T", q)
	}

	if id := q.Category(); id > 0 {
		params.Set("categories", strconv.Itoa(id))
	}
	return params, nil
}
