// Package requests reads batch documents of catalogue commands and queries,
// applies the commands to a catalogue and answers the queries.
//
// Two formats are supported: the JSON document with base_requests,
// routing_settings and stat_requests, and the line-oriented text format.
package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/AkhmadOnline/transport-catalogue/internal/router"
)

const (
	TypeStop  = "Stop"
	TypeBus   = "Bus"
	TypeRoute = "Route"
	TypeMap   = "Map"
)

var ErrUnknownRequestType = errors.New("unknown request type")

// Document is a complete JSON batch.
type Document struct {
	BaseRequests    []BaseRequest    `json:"base_requests"`
	RenderSettings  json.RawMessage  `json:"render_settings,omitempty"`
	RoutingSettings *router.Settings `json:"routing_settings,omitempty"`
	StatRequests    []StatRequest    `json:"stat_requests"`
}

// BaseRequest adds a stop (with its outgoing road distances) or a bus.
type BaseRequest struct {
	Type          string         `json:"type"`
	Name          string         `json:"name"`
	Latitude      float64        `json:"latitude,omitempty"`
	Longitude     float64        `json:"longitude,omitempty"`
	RoadDistances map[string]int `json:"road_distances,omitempty"`
	Stops         []string       `json:"stops,omitempty"`
	IsRoundtrip   bool           `json:"is_roundtrip,omitempty"`
}

type StatRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// DecodeDocument reads one JSON document from r.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON document: %w", err)
	}
	return &doc, nil
}

// Settings returns the routing settings of the document, or the defaults when
// the document has none.
func (d *Document) Settings() router.Settings {
	if d.RoutingSettings == nil {
		return router.DefaultSettings()
	}
	return *d.RoutingSettings
}
