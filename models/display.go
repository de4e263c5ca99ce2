package models

// DisplayPayload is what the UI layer needs to render one venue: an info card
// and a single-point map.
type DisplayPayload struct {
	Summary Summary    `json:"summary"`
	Map     MapPayload `json:"map"`
}

type Summary struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Website string `json:"website"`
	Phone   string `json:"phone"`
	Menu    string `json:"menu"`
	Text    string `json:"text"`
}

type MapPayload struct {
	MapStyle         string    `json:"map_style"`
	InitialViewState ViewState `json:"initial_view_state"`
	Layers           []Layer   `json:"layers"`
	Tooltip          Tooltip   `json:"tooltip"`
}

type ViewState struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      float64 `json:"zoom"`
	Pitch     float64 `json:"pitch"`
}

type Layer struct {
	Type        string      `json:"type"`
	Data        []IconPoint `json:"data"`
	GetPosition []string    `json:"get_position"`
	GetIcon     string      `json:"get_icon"`
	GetSize     float64     `json:"get_size"`
	SizeScale   float64     `json:"size_scale"`
	Pickable    bool        `json:"pickable"`
}

type IconPoint struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IconData  Icon    `json:"icon_data"`
}

type Icon struct {
	URL     string `json:"url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	AnchorY int    `json:"anchorY"`
}

type Tooltip struct {
	Text string `json:"text"`
}
