package models

type BusModel struct {
	Name            string   `json:"name"`
	Curvature       float64  `json:"curvature"`
	GeoLength       float64  `json:"geoLength"`
	IsRoundTrip     bool     `json:"isRoundTrip"`
	RouteLength     int      `json:"routeLength"`
	StopCount       int      `json:"stopCount"`
	UniqueStopCount int      `json:"uniqueStopCount"`
	StopNames       []string `json:"stopNames"`
}

type StopModel struct {
	Name     string   `json:"name"`
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	BusNames []string `json:"busNames"`
}

type NearbyStopModel struct {
	StopModel
	Distance float64 `json:"distance"`
}

type ShapeModel struct {
	BusName string `json:"busName"`
	Length  int    `json:"length"`
	Points  string `json:"points"`
}

type ItineraryItemModel struct {
	Type      string  `json:"type"`
	StopName  string  `json:"stopName,omitempty"`
	BusName   string  `json:"busName,omitempty"`
	SpanCount int     `json:"spanCount,omitempty"`
	Time      float64 `json:"time"`
}

type ItineraryModel struct {
	From      string               `json:"from"`
	To        string               `json:"to"`
	TotalTime float64              `json:"totalTime"`
	Items     []ItineraryItemModel `json:"items"`
}
