package services

import (
	"fmt"
	"strings"

	"adventure-us/models"
)

const (
	MapStyle    = "mapbox://styles/mapbox/satellite-streets-v11"
	MapZoom     = 16
	MapPitch    = 25
	Unavailable = "Unavailable"

	// Wikimedia icon, CC BY-SA 3.0.
	IconURL  = "https://upload.wikimedia.org/wikipedia/commons/c/c4/Projet_bi%C3%A8re_logo_v2.png"
	iconSize = 242
)

// Present builds the info card and the single-point map payload for rec.
func Present(rec models.VenueRecord) models.DisplayPayload {
	summary := models.Summary{
		Name:    rec.Name,
		Address: rec.Address,
		Website: orUnavailable(rec.Website),
		Phone:   deref(rec.Phone),
		Menu:    orUnavailable(rec.Menu),
	}
	summary.Text = summaryText(summary)

	return models.DisplayPayload{
		Summary: summary,
		Map: models.MapPayload{
			MapStyle: MapStyle,
			InitialViewState: models.ViewState{
				Latitude:  rec.Latitude,
				Longitude: rec.Longitude,
				Zoom:      MapZoom,
				Pitch:     MapPitch,
			},
			Layers: []models.Layer{{
				Type: "IconLayer",
				Data: []models.IconPoint{{
					Name:      rec.Name,
					Address:   rec.Address,
					Latitude:  rec.Latitude,
					Longitude: rec.Longitude,
					IconData: models.Icon{
						URL:     IconURL,
						Width:   iconSize,
						Height:  iconSize,
						AnchorY: iconSize,
					},
				}},
				GetPosition: []string{"longitude", "latitude"},
				GetIcon:     "icon_data",
				GetSize:     4,
				SizeScale:   15,
				Pickable:    true,
			}},
			Tooltip: models.Tooltip{Text: "{name}\nAddress: {address}"},
		},
	}
}

func summaryText(s models.Summary) string {
	var b strings.Builder
	fmt.Fprintln(&b, s.Name)
	fmt.Fprintf(&b, "Address: %s\n", s.Address)
	fmt.Fprintf(&b, "Website: %s\n", s.Website)
	fmt.Fprintf(&b, "Phone number: %s\n", s.Phone)
	fmt.Fprintf(&b, "Menu: %s", s.Menu)
	return b.String()
}

func orUnavailable(s *string) string {
	if s == nil || *s == "" {
		return Unavailable
	}
	return *s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
