package router

// ItemType tells a wait segment from a ride segment.
type ItemType string

const (
	ItemWait ItemType = "Wait"
	ItemBus  ItemType = "Bus"
)

// Item is one segment of an itinerary. StopName is set for waits; BusName and
// SpanCount are set for rides. Time is in minutes.
type Item struct {
	Type      ItemType
	StopName  string
	BusName   string
	Time      float64
	SpanCount int
}

type Route struct {
	TotalTime float64
	Items     []Item
}

func (r Route) clone() Route {
	items := make([]Item, len(r.Items))
	copy(items, r.Items)
	return Route{TotalTime: r.TotalTime, Items: items}
}
