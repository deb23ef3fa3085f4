package router

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Settings are the routing constants fixed at graph construction time.
type Settings struct {
	// BusWaitTime is the dwell time at every stop, in minutes.
	BusWaitTime int `json:"bus_wait_time" yaml:"bus_wait_time" validate:"gte=0,lte=1000"`
	// BusVelocity is the speed of every bus, in km/h.
	BusVelocity float64 `json:"bus_velocity" yaml:"bus_velocity" validate:"gt=0,lte=1000"`
}

// DefaultSettings mirrors the values used when no routing settings are supplied.
func DefaultSettings() Settings {
	return Settings{BusWaitTime: 6, BusVelocity: 40}
}

func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid routing settings: %w", err)
	}
	return nil
}

// metersPerMinute converts BusVelocity from km/h.
func (s Settings) metersPerMinute() float64 {
	return s.BusVelocity * 1000 / 60
}
