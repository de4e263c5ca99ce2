package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"adventure-us/cache"
	"adventure-us/logger"
	"adventure-us/models"
	"adventure-us/utils/errors"
)

// Geocoder resolves place names to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, placeName string) (models.Coordinate, error)
}

// VenueSearcher queries the places-search service.
type VenueSearcher interface {
	Search(ctx context.Context, q models.SearchQuery) ([]models.RawVenue, error)
}

// SearchMode selects how the location is sent to the search service.
type SearchMode string

const (
	// ModeCoordinate geocodes the location first and searches within a radius.
	ModeCoordinate SearchMode = "coordinate"
	// ModePlace hands the place name to the search service; no radius.
	ModePlace SearchMode = "place"
)

// DefaultRadiusMiles applies when a coordinate search omits the radius.
const DefaultRadiusMiles = 5

// Request is one "find a venue" action.
type Request struct {
	Location    string     `json:"location" validate:"required,max=200"`
	RadiusMiles int        `json:"radius" validate:"omitempty,min=1,max=50"`
	Mode        SearchMode `json:"mode" validate:"omitempty,oneof=coordinate place"`
	CategoryID  int        `json:"category_id" validate:"min=0"`
	Category    string     `json:"category" validate:"max=100"`
}

// Discovery is the outcome of FindRandom.
type Discovery struct {
	Coordinate *models.Coordinate    `json:"coordinate,omitempty"`
	Candidates int                   `json:"candidates"`
	Venue      models.VenueRecord    `json:"venue"`
	Display    models.DisplayPayload `json:"display"`
}

// VenueService runs the discovery pipeline: geocode, search, normalize,
// select, present. Geocoding finishes before the search starts and no call
// is retried.
type VenueService struct {
	geocoder      Geocoder
	searcher      VenueSearcher
	selector      *Selector
	memo          *cache.Memo
	validate      *validator.Validate
	defaultRadius int
	logger        *logger.Logger
}

// VenueServiceOption configures a VenueService.
type VenueServiceOption func(*VenueService)

// WithSelector replaces the random selector.
func WithSelector(s *Selector) VenueServiceOption {
	return func(v *VenueService) { v.selector = s }
}

// WithMemo memoizes geocoding and search calls.
func WithMemo(m *cache.Memo) VenueServiceOption {
	return func(v *VenueService) { v.memo = m }
}

// WithDefaultRadius overrides DefaultRadiusMiles.
func WithDefaultRadius(miles int) VenueServiceOption {
	return func(v *VenueService) { v.defaultRadius = miles }
}

// WithServiceLogger sets the logger.
func WithServiceLogger(l *logger.Logger) VenueServiceOption {
	return func(v *VenueService) { v.logger = l }
}

func NewVenueService(geocoder Geocoder, searcher VenueSearcher, opts ...VenueServiceOption) *VenueService {
	s := &VenueService{
		geocoder:      geocoder,
		searcher:      searcher,
		selector:      NewSelector(nil),
		validate:      validator.New(),
		defaultRadius: DefaultRadiusMiles,
		logger:        logger.L(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Geocode resolves place, memoized by its exact text.
func (s *VenueService) Geocode(ctx context.Context, place string) (models.Coordinate, error) {
	return cache.Do(ctx, s.memo, "geocode|"+place, func(ctx context.Context) (models.Coordinate, error) {
		return s.geocoder.Resolve(ctx, place)
	})
}

// ListVenues returns the normalized venues for req without picking one.
func (s *VenueService) ListVenues(ctx context.Context, req Request) ([]models.VenueRecord, *models.Coordinate, error) {
	if err := s.check(req); err != nil {
		return nil, nil, err
	}

	q, coord, err := s.query(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	raw, err := cache.Do(ctx, s.memo, "search|"+q.Key(), func(ctx context.Context) ([]models.RawVenue, error) {
		return s.searcher.Search(ctx, q)
	})
	if err != nil {
		return nil, nil, err
	}
	return Normalize(raw), coord, nil
}

// FindRandom runs one full pipeline pass and returns a single venue.
func (s *VenueService) FindRandom(ctx context.Context, req Request) (*Discovery, error) {
	records, coord, err := s.ListVenues(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.ErrNoVenuesFound
	}

	venue, ok := s.selector.Select(records, req.Category)
	if !ok {
		return nil, errors.ErrNoMatchingVenue.WithDetails("no venue in category %q", req.Category)
	}

	s.logger.WithContext(ctx).Info("venue selected",
		zap.String("location", req.Location),
		zap.String("category", req.Category),
		zap.Int("candidates", len(records)),
		zap.String("venue_id", venue.ID),
	)
	return &Discovery{
		Coordinate: coord,
		Candidates: len(records),
		Venue:      venue,
		Display:    Present(venue),
	}, nil
}

func (s *VenueService) check(req Request) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Field() == "Location" {
				return errors.ErrInvalidLocation.WithDetails("location is %s", fe.Tag())
			}
		}
		return errors.ErrInvalidInput.WithDetails("%s failed %s", fieldErrs[0].Field(), fieldErrs[0].Tag())
	}
	return errors.ErrInvalidInput.WithDetails("%v", err)
}

// query builds the SearchQuery, geocoding first in coordinate mode.
func (s *VenueService) query(ctx context.Context, req Request) (models.SearchQuery, *models.Coordinate, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, nil, errors.ErrInvalidLocation.WithDetails("location is required")
	}

	if req.Mode == ModePlace {
		return models.ByPlaceName{Place: location, CategoryID: req.CategoryID}, nil, nil
	}

	radius := req.RadiusMiles
	if radius == 0 {
		radius = s.defaultRadius
	}
	coord, err := s.Geocode(ctx, location)
	if err != nil {
		return nil, nil, err
	}
	return models.ByCoordinateRadius{
		Coordinate:   coord,
		RadiusMeters: radius * models.MetersPerMile,
		CategoryID:   req.CategoryID,
	}, &coord, nil
}
