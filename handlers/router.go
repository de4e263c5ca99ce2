package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"adventure-us/logger"
	"adventure-us/middleware"
)

// RouterConfig collects what NewRouter wires together.
type RouterConfig struct {
	Venues         *VenueHandler
	Categories     *CategoryHandler
	Cache          *CacheHandler
	AllowedOrigins []string
	JWTSecret      string
	Logger         *logger.Logger
}

func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestMiddleware(cfg.Logger))
	r.Use(middleware.ErrorMiddleware(cfg.Logger))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, map[string]string{"status": "ok"})
	}).Methods("GET")

	// Catalog routes
	r.HandleFunc("/categories", cfg.Categories.ListCategories).Methods("GET", "OPTIONS")

	// Venue routes, behind the optional auth gate
	venueRouter := r.NewRoute().Subrouter()
	venueRouter.Use(middleware.JWTMiddleware(cfg.JWTSecret))
	venueRouter.HandleFunc("/venues/random", cfg.Venues.FindRandomVenue).Methods("GET", "OPTIONS")
	venueRouter.HandleFunc("/venues", cfg.Venues.ListVenues).Methods("GET", "OPTIONS")
	venueRouter.HandleFunc("/geocode", cfg.Venues.Geocode).Methods("GET", "OPTIONS")

	// Memo routes
	r.HandleFunc("/cache/stats", cfg.Cache.Stats).Methods("GET")
	r.HandleFunc("/cache", cfg.Cache.Reset).Methods("DELETE", "OPTIONS")

	return r
}
