package weather

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/EliSsaSad/simple-weather-app/internal/db"
)

// State is the orchestrator's fetch state.
type State int

const (
	// Loading means a fetch is in flight (or nothing has been published yet).
	Loading State = iota
	// Ready means the latest request's result has been published.
	Ready
)

// Listener receives fetch results. The Service invokes its methods one at a
// time from a single dispatch goroutine, so a single-threaded presentation
// layer can consume them directly.
type Listener interface {
	LoadingStarted()
	WeatherReady(snapshot *Snapshot, forecast []ForecastEntry)
	FetchFailed(err error)
}

// SettingSource is the slice of the settings store the service reads. All
// reads happen on the caller's goroutine, never on fetch workers.
type SettingSource interface {
	Setting(name string) (value string, ok bool, err error)
}

// Fetcher abstracts the weather client for testing.
type Fetcher interface {
	FetchCurrent(ctx context.Context, cityID int64) (*Snapshot, error)
	FetchForecast(ctx context.Context, cityID int64) ([]ForecastEntry, error)
}

// Service drives weather fetches off the caller's goroutine and publishes
// results through a Listener. Each request runs on its own worker goroutine;
// requests carry a monotonically increasing id and a result that is no longer
// the latest is dropped, so a late response never overwrites a newer one.
// In-flight work is never cancelled.
type Service struct {
	settings  SettingSource
	listener  Listener
	newClient func(apiKey string) Fetcher

	mu    sync.Mutex
	seq   uint64
	state State

	events chan event
	done   chan struct{}
	closed sync.Once
}

type event struct {
	seq      uint64
	loading  bool
	snapshot *Snapshot
	forecast []ForecastEntry
	err      error
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithTimeout overrides the HTTP timeout of clients the service constructs.
func WithTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.newClient = func(apiKey string) Fetcher {
			c := NewClient(apiKey)
			c.HTTPClient.Timeout = d
			return c
		}
	}
}

// NewService creates a Service publishing to listener and starts its dispatch
// goroutine. Callers must Close the service when done with it.
func NewService(settings SettingSource, listener Listener, opts ...ServiceOption) *Service {
	s := &Service{
		settings:  settings,
		listener:  listener,
		newClient: func(apiKey string) Fetcher { return NewClient(apiKey) },
		state:     Loading,
		events:    make(chan event, 16),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.dispatch()
	return s
}

// Close stops callback delivery. Workers still in flight run to completion
// and their results are discarded.
func (s *Service) Close() {
	s.closed.Do(func() { close(s.done) })
}

// State reports whether the latest request has been published.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Request starts a fetch for the city. It enters Loading synchronously, reads
// the API key on the caller's goroutine, then runs the current-weather and
// forecast calls (in that order) on a worker goroutine. Both must succeed
// before anything is published.
func (s *Service) Request(cityID int64) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.state = Loading
	s.mu.Unlock()

	s.send(event{seq: seq, loading: true})

	key, ok, err := s.settings.Setting(db.SettingAPIKey)
	if err != nil {
		s.send(event{seq: seq, err: err})
		return
	}
	if !ok || key == "" {
		s.send(event{seq: seq, err: &ConfigError{Reason: "API key is not set"}})
		return
	}

	go s.fetch(seq, cityID, key)
}

func (s *Service) fetch(seq uint64, cityID int64, apiKey string) {
	ctx := context.Background()
	client := s.newClient(apiKey)

	snapshot, err := client.FetchCurrent(ctx, cityID)
	if err != nil {
		s.send(event{seq: seq, err: err})
		return
	}

	forecast, err := client.FetchForecast(ctx, cityID)
	if err != nil {
		s.send(event{seq: seq, err: err})
		return
	}

	s.send(event{seq: seq, snapshot: snapshot, forecast: forecast})
}

func (s *Service) send(ev event) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func (s *Service) dispatch() {
	for {
		select {
		case <-s.done:
			return
		case ev := <-s.events:
			s.deliver(ev)
		}
	}
}

func (s *Service) deliver(ev event) {
	if ev.loading {
		s.listener.LoadingStarted()
		return
	}

	s.mu.Lock()
	stale := ev.seq != s.seq
	if !stale && ev.err == nil {
		s.state = Ready
	}
	s.mu.Unlock()

	if stale {
		log.Printf("weather: dropping stale result for request %d", ev.seq)
		return
	}

	if ev.err != nil {
		// Distinguish shape problems in the log; the listener sees the
		// error either way.
		var shapeErr *DataShapeError
		if errors.As(ev.err, &shapeErr) {
			log.Printf("weather: provider returned unexpected data: %v", ev.err)
		}
		s.listener.FetchFailed(ev.err)
		return
	}

	s.listener.WeatherReady(ev.snapshot, ev.forecast)
}
