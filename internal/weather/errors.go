package weather

import "fmt"

// UpstreamError reports an HTTP failure or a non-2xx status from the weather
// provider or the icon CDN.
type UpstreamError struct {
	URL    string
	Status int // 0 when the request never completed
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("weather upstream %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("weather upstream %s: status %d: %s", e.URL, e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// DataShapeError reports a 2xx provider response that is malformed or is
// missing a required field. Callers surface it like an upstream failure but
// log it distinctly for diagnostics.
type DataShapeError struct {
	Field string
	Err   error
}

func (e *DataShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed provider response: %v", e.Err)
	}
	return fmt.Sprintf("provider response missing required field %q", e.Field)
}

func (e *DataShapeError) Unwrap() error { return e.Err }

// ConfigError reports a configuration problem, such as a missing API key,
// detected before any network call is attempted.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "weather config: " + e.Reason
}
