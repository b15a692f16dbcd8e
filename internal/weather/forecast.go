package weather

import (
	"context"
	"encoding/json"
	"time"
)

// forecastDays is how many future days a fetch summarizes, starting tomorrow.
const forecastDays = 3

const sampleTimeLayout = "2006-01-02 15:04:05"

type forecastResponse struct {
	List []forecastSample `json:"list"`
}

type forecastSample struct {
	DtTxt string `json:"dt_txt"`
	Main  struct {
		TempMin float64 `json:"temp_min"`
		TempMax float64 `json:"temp_max"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// FetchForecast fetches the provider's 5-day/3-hour forecast and aggregates
// it into exactly forecastDays entries for tomorrow onward, relative to the
// current UTC date. Each entry's icon is resolved to image bytes via the icon
// CDN; a CDN failure fails the entire fetch.
func (c *Client) FetchForecast(ctx context.Context, cityID int64) ([]ForecastEntry, error) {
	body, err := c.get(ctx, c.endpoint("/forecast", cityID))
	if err != nil {
		return nil, err
	}

	var fc forecastResponse
	if err := json.Unmarshal(body, &fc); err != nil {
		return nil, &DataShapeError{Err: err}
	}

	entries := aggregateForecast(fc.List, targetDates(time.Now().UTC()))

	for i := range entries {
		if entries[i].Icon == "" {
			continue
		}
		img, err := c.fetchIcon(ctx, entries[i].Icon)
		if err != nil {
			return nil, err
		}
		entries[i].IconImage = img
	}
	return entries, nil
}

// targetDates returns the forecastDays calendar dates following now's date.
func targetDates(now time.Time) []time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, forecastDays)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, i+1)
	}
	return dates
}

// aggregateForecast folds 3-hour samples into one entry per target date:
// the minimum of all temp_min values, the maximum of all temp_max values,
// and description/icon taken from the 12:00:00 sample only. A date with no
// samples yields an entry with NoData set.
func aggregateForecast(samples []forecastSample, dates []time.Time) []ForecastEntry {
	entries := make([]ForecastEntry, len(dates))
	for i, date := range dates {
		entry := ForecastEntry{Date: date, NoData: true}

		for _, s := range samples {
			ts, err := time.ParseInLocation(sampleTimeLayout, s.DtTxt, time.UTC)
			if err != nil {
				continue
			}
			y, m, d := ts.Date()
			if y != date.Year() || m != date.Month() || d != date.Day() {
				continue
			}

			if entry.NoData {
				entry.NoData = false
				entry.TempMin = s.Main.TempMin
				entry.TempMax = s.Main.TempMax
			} else {
				if s.Main.TempMin < entry.TempMin {
					entry.TempMin = s.Main.TempMin
				}
				if s.Main.TempMax > entry.TempMax {
					entry.TempMax = s.Main.TempMax
				}
			}

			if ts.Hour() == 12 && ts.Minute() == 0 && ts.Second() == 0 && len(s.Weather) > 0 {
				entry.Description = s.Weather[0].Description
				entry.Icon = s.Weather[0].Icon
			}
		}

		entries[i] = entry
	}
	return entries
}
