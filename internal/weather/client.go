package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5"
	defaultIconURL = "https://openweathermap.org/img/wn"
)

// Client handles OpenWeatherMap API interactions. It holds no persisted
// state and is cheap to construct per request.
type Client struct {
	APIKey     string
	BaseURL    string
	IconURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the given API key with default endpoints
// and a 10 second transport timeout. No retries are performed.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		IconURL: defaultIconURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{URL: rawURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{URL: rawURL, Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *Client) endpoint(path string, cityID int64) string {
	params := url.Values{}
	params.Set("id", fmt.Sprintf("%d", cityID))
	params.Set("units", "metric")
	params.Set("lang", "ru")
	params.Set("appid", c.APIKey)
	return c.BaseURL + path + "?" + params.Encode()
}

// fetchIcon resolves an icon identifier to displayable image bytes.
func (c *Client) fetchIcon(ctx context.Context, icon string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("%s/%s@2x.png", c.IconURL, icon))
}

// currentResponse mirrors the provider's "current weather" payload. Required
// fields are pointers so that absence is distinguishable from zero.
type currentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike float64  `json:"feels_like"`
		TempMin   float64  `json:"temp_min"`
		TempMax   float64  `json:"temp_max"`
		Pressure  int      `json:"pressure"`
		Humidity  int      `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Visibility *int `json:"visibility"`
	Wind       struct {
		Speed float64  `json:"speed"`
		Deg   int      `json:"deg"`
		Gust  *float64 `json:"gust"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Timezone int `json:"timezone"`
}

// FetchCurrent fetches and normalizes current conditions for a city. The
// icon identifier is resolved to image bytes with a second request to the
// icon CDN; a CDN failure fails the whole call.
func (c *Client) FetchCurrent(ctx context.Context, cityID int64) (*Snapshot, error) {
	body, err := c.get(ctx, c.endpoint("/weather", cityID))
	if err != nil {
		return nil, err
	}

	var cur currentResponse
	if err := json.Unmarshal(body, &cur); err != nil {
		return nil, &DataShapeError{Err: err}
	}

	switch {
	case cur.Name == "":
		return nil, &DataShapeError{Field: "name"}
	case cur.Main == nil || cur.Main.Temp == nil:
		return nil, &DataShapeError{Field: "main.temp"}
	case len(cur.Weather) == 0 || cur.Weather[0].Description == "":
		return nil, &DataShapeError{Field: "weather.description"}
	case cur.Weather[0].Icon == "":
		return nil, &DataShapeError{Field: "weather.icon"}
	}

	iconImage, err := c.fetchIcon(ctx, cur.Weather[0].Icon)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		City:        cur.Name,
		Country:     cur.Sys.Country,
		Temperature: *cur.Main.Temp,
		FeelsLike:   cur.Main.FeelsLike,
		TempMin:     cur.Main.TempMin,
		TempMax:     cur.Main.TempMax,
		Pressure:    cur.Main.Pressure,
		Humidity:    cur.Main.Humidity,
		Visibility:  cur.Visibility,
		WindSpeed:   cur.Wind.Speed,
		WindDeg:     cur.Wind.Deg,
		WindGust:    cur.Wind.Gust,
		Clouds:      cur.Clouds.All,
		Description: cur.Weather[0].Description,
		Icon:        cur.Weather[0].Icon,
		IconImage:   iconImage,
		Sunrise:     utcClock(cur.Sys.Sunrise),
		Sunset:      utcClock(cur.Sys.Sunset),
		UTCOffset:   cur.Timezone,
	}, nil
}

// LocalizedName fetches only the provider's display-language name for a
// city. Used by the one-time localized-name backfill.
func (c *Client) LocalizedName(ctx context.Context, cityID int64) (string, error) {
	body, err := c.get(ctx, c.endpoint("/weather", cityID))
	if err != nil {
		return "", err
	}

	var cur struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &cur); err != nil {
		return "", &DataShapeError{Err: err}
	}
	if cur.Name == "" {
		return "", &DataShapeError{Field: "name"}
	}
	return cur.Name, nil
}

// utcClock formats epoch seconds as an HH:MM:SS wall-clock string in UTC.
func utcClock(sec int64) string {
	return time.Unix(sec, 0).UTC().Format("15:04:05")
}
