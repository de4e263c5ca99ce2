package clients

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"adventure-us/models"
	"adventure-us/utils/errors"
)

// DefaultGeocodingURL is the Mapbox forward geocoding endpoint.
const DefaultGeocodingURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// GeocodingClient resolves free-text place names to coordinates.
type GeocodingClient struct {
	base
}

// NewGeocodingClient creates a geocoding client using accessToken.
func NewGeocodingClient(accessToken string, opts ...Option) *GeocodingClient {
	return &GeocodingClient{base: newBase(DefaultGeocodingURL, accessToken, opts)}
}

// Resolve returns the center of the first feature matching placeName.
// A non-200 status or an empty feature list yields ErrInvalidLocation;
// callers must not retry.
func (c *GeocodingClient) Resolve(ctx context.Context, placeName string) (models.Coordinate, error) {
	placeName = strings.TrimSpace(placeName)
	if placeName == "" {
		return models.Coordinate{}, errors.ErrInvalidLocation.WithDetails("empty place name")
	}

	params := url.Values{}
	params.Set("access_token", c.token)
	params.Set("limit", "1")
	reqURL := strings.TrimRight(c.baseURL, "/") + "/" + url.PathEscape(placeName) + ".json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.Coordinate{}, errors.ErrInvalidLocation.WithDetails("%v", err)
	}

	status, body, err := c.do(ctx, req, "geocoding")
	if err != nil {
		return models.Coordinate{}, err
	}
	if status != http.StatusOK {
		return models.Coordinate{}, errors.ErrInvalidLocation.WithDetails("geocoding returned status %d for %q", status, placeName)
	}

	center := gjson.GetBytes(body, "features.0.center")
	if !center.IsArray() || len(center.Array()) < 2 {
		return models.Coordinate{}, errors.ErrInvalidLocation.WithDetails("no match for %q", placeName)
	}
	point := center.Array()
	coord := models.Coordinate{Latitude: point[1].Float(), Longitude: point[0].Float()}
	if !coord.Valid() {
		return models.Coordinate{}, errors.ErrInvalidLocation.WithDetails("out of range center for %q", placeName)
	}

	c.logger.WithContext(ctx).Debug("resolved place",
		zap.String("place", placeName),
		zap.Float64("lat", coord.Latitude),
		zap.Float64("lon", coord.Longitude),
	)
	return coord, nil
}
