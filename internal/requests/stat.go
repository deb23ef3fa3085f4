package requests

import (
	"context"
	"fmt"

	"github.com/AkhmadOnline/transport-catalogue/internal/router"
	"github.com/AkhmadOnline/transport-catalogue/internal/transit"
)

const (
	notFoundMessage       = "not found"
	mapUnsupportedMessage = "map rendering is not supported"
	unknownTypeMessage    = "unknown request type"
)

type errorResponse struct {
	RequestID    int    `json:"request_id"`
	ErrorMessage string `json:"error_message"`
}

type busResponse struct {
	Curvature       float64 `json:"curvature"`
	RequestID       int     `json:"request_id"`
	RouteLength     int     `json:"route_length"`
	StopCount       int     `json:"stop_count"`
	UniqueStopCount int     `json:"unique_stop_count"`
}

type stopResponse struct {
	Buses     []string `json:"buses"`
	RequestID int      `json:"request_id"`
}

type routeItem struct {
	Type      string  `json:"type"`
	StopName  string  `json:"stop_name,omitempty"`
	Bus       string  `json:"bus,omitempty"`
	SpanCount int     `json:"span_count,omitempty"`
	Time      float64 `json:"time"`
}

type routeResponse struct {
	Items     []routeItem `json:"items"`
	RequestID int         `json:"request_id"`
	TotalTime float64     `json:"total_time"`
}

// Answer produces one response per stat request, in request order. The only
// error is a cancelled ctx.
func Answer(ctx context.Context, service *transit.Service, stats []StatRequest) ([]any, error) {
	responses := make([]any, 0, len(stats))
	for _, req := range stats {
		response, err := answerOne(ctx, service, req)
		if err != nil {
			return nil, fmt.Errorf("stat request %d: %w", req.ID, err)
		}
		responses = append(responses, response)
	}
	return responses, nil
}

func answerOne(ctx context.Context, service *transit.Service, req StatRequest) (any, error) {
	switch req.Type {
	case TypeBus:
		stat, ok := service.GetBusStat(req.Name)
		if !ok {
			return notFound(req.ID), nil
		}
		return busResponse{
			Curvature:       stat.Curvature,
			RequestID:       req.ID,
			RouteLength:     stat.RouteLength,
			StopCount:       stat.StopCount,
			UniqueStopCount: stat.UniqueStopCount,
		}, nil

	case TypeStop:
		buses, ok := service.GetStopInfo(req.Name)
		if !ok {
			return notFound(req.ID), nil
		}
		return stopResponse{Buses: buses, RequestID: req.ID}, nil

	case TypeRoute:
		route, ok, err := service.BuildRoute(ctx, req.From, req.To)
		if err != nil {
			return nil, err
		}
		if !ok {
			return notFound(req.ID), nil
		}
		return newRouteResponse(req.ID, route), nil

	case TypeMap:
		return errorResponse{RequestID: req.ID, ErrorMessage: mapUnsupportedMessage}, nil

	default:
		return errorResponse{RequestID: req.ID, ErrorMessage: unknownTypeMessage}, nil
	}
}

func notFound(id int) errorResponse {
	return errorResponse{RequestID: id, ErrorMessage: notFoundMessage}
}

func newRouteResponse(id int, route router.Route) routeResponse {
	items := make([]routeItem, 0, len(route.Items))
	for _, item := range route.Items {
		switch item.Type {
		case router.ItemWait:
			items = append(items, routeItem{Type: string(item.Type), StopName: item.StopName, Time: item.Time})
		case router.ItemBus:
			items = append(items, routeItem{Type: string(item.Type), Bus: item.BusName, SpanCount: item.SpanCount, Time: item.Time})
		}
	}
	return routeResponse{Items: items, RequestID: id, TotalTime: route.TotalTime}
}
