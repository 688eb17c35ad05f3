package dto

import (
	"time"

	"homehub/internal/domain"
)

// SensorReadingRequest is the body of both ingestion routes. Temperature and
// pressure are pointers so a missing field can be told apart from zero.
type SensorReadingRequest struct {
	Temperature     *float64 `json:"temperature"`
	Pressure        *float64 `json:"pressure"`
	TemperatureUnit string   `json:"temperature_unit,omitempty"`
	PressureUnit    string   `json:"pressure_unit,omitempty"`
	Timestamp       string   `json:"timestamp,omitempty"`
}

// Reading is a validated sample ready for the store. A zero Timestamp means
// the server clock is used.
type Reading struct {
	Temperature     float64
	Pressure        float64
	TemperatureUnit string
	PressureUnit    string
	Timestamp       time.Time
}

// Reading validates the body and fills unit defaults.
func (r SensorReadingRequest) Reading() (Reading, error) {
	if r.Temperature == nil || r.Pressure == nil {
		return Reading{}, domain.ErrInvalidInput
	}
	out := Reading{
		Temperature:     *r.Temperature,
		Pressure:        *r.Pressure,
		TemperatureUnit: r.TemperatureUnit,
		PressureUnit:    r.PressureUnit,
	}
	if out.TemperatureUnit == "" {
		out.TemperatureUnit = domain.DefaultTemperatureUnit
	}
	if out.PressureUnit == "" {
		out.PressureUnit = domain.DefaultPressureUnit
	}
	if r.Timestamp != "" {
		ts, err := ParseTime(r.Timestamp)
		if err != nil {
			return Reading{}, err
		}
		out.Timestamp = ts
	}
	return out, nil
}

type SensorReading struct {
	Timestamp       string  `json:"timestamp"`
	Temperature     float64 `json:"temperature"`
	Pressure        float64 `json:"pressure"`
	TemperatureUnit string  `json:"temperature_unit"`
	PressureUnit    string  `json:"pressure_unit"`
}

func NewSensorReadings(in []domain.SensorReading) []SensorReading {
	out := make([]SensorReading, 0, len(in))
	for _, r := range in {
		out = append(out, SensorReading{
			Timestamp:       FormatTime(r.Timestamp),
			Temperature:     r.Temperature,
			Pressure:        r.Pressure,
			TemperatureUnit: r.TemperatureUnit,
			PressureUnit:    r.PressureUnit,
		})
	}
	return out
}
