package models

import "strings"

// SensorStatus describes the state reported alongside a reading.
type SensorStatus string

const (
	SensorActive      SensorStatus = "active"
	SensorInactive    SensorStatus = "inactive"
	SensorDetected    SensorStatus = "detected"
	SensorNotDetected SensorStatus = "not_detected"
)

// Well-known sensor ids.
const (
	SensorTemperature = "temperature"
	SensorHumidity    = "humidity"
	SensorMotion      = "motion"
)

// PlaceholderValue is what the remote service reports for a sensor it has not heard from.
const PlaceholderValue = "--"

// Sensor is a read-only reading. Value is either a number or a string.
type Sensor struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Value  any          `json:"value"`
	Unit   string       `json:"unit,omitempty"`
	Status SensorStatus `json:"status"`
}

// Live reports whether the reading carries a real value rather than a placeholder.
func (s Sensor) Live() bool {
	if s.Status == SensorInactive {
		return false
	}
	switch v := s.Value.(type) {
	case nil:
		return false
	case string:
		v = strings.TrimSpace(v)
		return v != "" && v != PlaceholderValue
	default:
		return true
	}
}
