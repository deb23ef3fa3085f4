package models

// ReferencesModel carries the stops and buses an entry or list mentions by
// name, so clients can resolve them without another round trip.
type ReferencesModel struct {
	Buses []BusReference  `json:"buses"`
	Stops []StopReference `json:"stops"`
}

type BusReference struct {
	Name        string `json:"name"`
	IsRoundTrip bool   `json:"isRoundTrip"`
}

type StopReference struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Buses: []BusReference{},
		Stops: []StopReference{},
	}
}

// AddStop appends a stop reference once.
func (r *ReferencesModel) AddStop(ref StopReference) {
	for _, s := range r.Stops {
		if s.Name == ref.Name {
			return
		}
	}
	r.Stops = append(r.Stops, ref)
}

// AddBus appends a bus reference once.
func (r *ReferencesModel) AddBus(ref BusReference) {
	for _, b := range r.Buses {
		if b.Name == ref.Name {
			return
		}
	}
	r.Buses = append(r.Buses, ref)
}
