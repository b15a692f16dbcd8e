package weather

import "time"

// Snapshot is one normalized point-in-time weather reading for a city. It is
// produced fresh on every fetch and never persisted.
type Snapshot struct {
	City        string
	Country     string
	Temperature float64
	FeelsLike   float64
	TempMin     float64
	TempMax     float64
	Pressure    int      // hPa
	Humidity    int      // percent
	Visibility  *int     // meters; nil when the provider omits it
	WindSpeed   float64  // m/s
	WindDeg     int      // meteorological degrees
	WindGust    *float64 // m/s; nil when the provider omits it
	Clouds      int      // percent
	Description string
	Icon        string
	IconImage   []byte
	Sunrise     string // HH:MM:SS wall clock, UTC
	Sunset      string // HH:MM:SS wall clock, UTC
	UTCOffset   int    // seconds east of UTC
}

// ForecastEntry is a one-day summary aggregated from the provider's
// 3-hour samples. Description and icon come from the 12:00:00 sample for the
// day and stay empty when that sample is missing.
type ForecastEntry struct {
	Date        time.Time // midnight UTC of the target day
	TempMin     float64
	TempMax     float64
	Description string
	Icon        string
	IconImage   []byte

	// NoData marks a target date the provider returned no samples for.
	// Temperatures are zero and carry no meaning when it is set.
	NoData bool
}
