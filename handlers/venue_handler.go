package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"adventure-us/middleware"
	"adventure-us/models"
	"adventure-us/services"
	"adventure-us/utils/errors"
)

type VenueHandler struct {
	venueService    *services.VenueService
	categoryService *services.CategoryService
}

type RandomVenueResponse struct {
	Venue      models.VenueRecord    `json:"venue"`
	Display    models.DisplayPayload `json:"display"`
	Candidates int                   `json:"candidates"`
	Coordinate *models.Coordinate    `json:"coordinate,omitempty"`
}

type VenuesResponse struct {
	Venues     []models.VenueRecord `json:"venues"`
	Count      int                  `json:"count"`
	Coordinate *models.Coordinate   `json:"coordinate,omitempty"`
}

type GeocodeResponse struct {
	Place     string  `json:"place"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewVenueHandler(venueService *services.VenueService, categoryService *services.CategoryService) *VenueHandler {
	return &VenueHandler{venueService: venueService, categoryService: categoryService}
}

// FindRandomVenue handles GET /venues/random
func (h *VenueHandler) FindRandomVenue(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	d, err := h.venueService.FindRandom(r.Context(), req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, RandomVenueResponse{
		Venue:      d.Venue,
		Display:    d.Display,
		Candidates: d.Candidates,
		Coordinate: d.Coordinate,
	})
}

// ListVenues handles GET /venues
func (h *VenueHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	venues, coord, err := h.venueService.ListVenues(r.Context(), req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if category := req.Category; category != "" {
		venues = services.FilterByCategory(venues, category)
	}
	if venues == nil {
		venues = []models.VenueRecord{}
	}

	middleware.WriteJSON(w, VenuesResponse{
		Venues:     venues,
		Count:      len(venues),
		Coordinate: coord,
	})
}

// Geocode handles GET /geocode
func (h *VenueHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	place := strings.TrimSpace(r.URL.Query().Get("place"))
	coord, err := h.venueService.Geocode(r.Context(), place)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, GeocodeResponse{Place: place, Latitude: coord.Latitude, Longitude: coord.Longitude})
}

func (h *VenueHandler) parseRequest(r *http.Request) (services.Request, error) {
	q := r.URL.Query()
	req := services.Request{
		Location: q.Get("location"),
		Mode:     services.SearchMode(q.Get("mode")),
		Category: q.Get("category"),
	}

	if v := q.Get("radius"); v != "" {
		radius, err := strconv.Atoi(v)
		if err != nil {
			return req, errors.ErrInvalidInput.WithDetails("radius must be a whole number of miles")
		}
		req.RadiusMiles = radius
	}

	if ref := q.Get("category_id"); ref != "" {
		c, err := h.categoryService.Resolve(r.Context(), ref)
		if err != nil {
			return req, err
		}
		req.CategoryID = c.ID
	}
	return req, nil
}
