// Command weather is a console front end for the weather core: it searches
// the city catalog, manages favorites and the API key, and fetches current
// conditions plus a 3-day forecast for the selected city.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/EliSsaSad/simple-weather-app/internal/config"
	"github.com/EliSsaSad/simple-weather-app/internal/db"
	"github.com/EliSsaSad/simple-weather-app/internal/weather"
)

// maxListedCities caps how many search results are displayed; the catalog
// itself returns all matches.
const maxListedCities = 100

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		search     = flag.String("search", "", "list cities whose name contains the query")
		country    = flag.String("country", "", "restrict -search to a country code")
		setKey     = flag.String("set-key", "", "store the OpenWeatherMap API key and exit")
		favorite   = flag.Int64("favorite", 0, "mark a city id as favorite and exit")
		unfavorite = flag.Int64("unfavorite", 0, "unmark a favorite city id and exit")
		cityID     = flag.Int64("city", 0, "fetch weather for this city id (default: last selected)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath, db.WithHomeCountry(cfg.HomeCountry))
	if err != nil {
		return err
	}
	defer database.Close()

	switch {
	case *setKey != "":
		if err := database.SetSetting(db.SettingAPIKey, *setKey); err != nil {
			return err
		}
		fmt.Println("API key сохранён.")
		return nil

	case *favorite != 0:
		return database.SetFavorite(*favorite, true)

	case *unfavorite != 0:
		return database.SetFavorite(*unfavorite, false)

	case *search != "" || *country != "":
		return listCities(database, *search, *country)
	}

	id := *cityID
	if id == 0 {
		last, ok, err := database.Setting(db.SettingLastCityID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no city selected: pass -city or run -search first")
		}
		id, err = strconv.ParseInt(last, 10, 64)
		if err != nil {
			return fmt.Errorf("stored city id %q is not a number: %w", last, err)
		}
	}

	if err := database.SetSetting(db.SettingLastCityID, strconv.FormatInt(id, 10)); err != nil {
		return err
	}

	return fetchAndPrint(database, cfg, id)
}

func listCities(database *db.DB, query, country string) error {
	cities, err := database.FindCities(db.FindOptions{NameQuery: query, Country: country})
	if err != nil {
		return err
	}

	for i, c := range cities {
		if i >= maxListedCities {
			fmt.Printf("… и ещё %d\n", len(cities)-maxListedCities)
			break
		}
		marker := " "
		if c.Favorite {
			marker = "*"
		}
		fmt.Printf("%s %8d  %s (%s)  %.4f, %.4f\n", marker, c.ID, c.LocalizedName, c.Country, c.Lat, c.Lon)
	}
	return nil
}

// consoleListener renders fetch results to stdout. The weather service
// delivers callbacks one at a time, so no locking is needed here.
type consoleListener struct {
	done chan error
}

func (l *consoleListener) LoadingStarted() {
	fmt.Println("Загрузка…")
}

func (l *consoleListener) WeatherReady(s *weather.Snapshot, forecast []weather.ForecastEntry) {
	fmt.Printf("Текущая погода в: %s (%s)\n", s.City, s.Country)
	fmt.Printf("  %.1f ℃, %s\n", s.Temperature, s.Description)
	fmt.Printf("  Ощущается как %.1f ℃\n", s.FeelsLike)
	fmt.Printf("  Давление: %d мм рт. ст.\n", int(math.Round(float64(s.Pressure)*0.750063755)))
	fmt.Printf("  Влажность: %d%%\n", s.Humidity)
	fmt.Printf("  Ветер: %.1f м/с, %s\n", s.WindSpeed, degreesToCompass(float64(s.WindDeg)))
	if s.WindGust != nil {
		fmt.Printf("  Порывы до %.1f м/с\n", *s.WindGust)
	}
	if s.Visibility != nil {
		fmt.Printf("  Видимость: %d м\n", *s.Visibility)
	}
	fmt.Printf("  Восход: %s UTC, закат: %s UTC\n", s.Sunrise, s.Sunset)

	fmt.Println("Прогноз:")
	for _, e := range forecast {
		if e.NoData {
			fmt.Printf("  %s: нет данных\n", e.Date.Format("02.01"))
			continue
		}
		fmt.Printf("  %s: от %.1f до %.1f ℃  %s\n", e.Date.Format("02.01"), e.TempMin, e.TempMax, e.Description)
	}

	l.done <- nil
}

func (l *consoleListener) FetchFailed(err error) {
	l.done <- err
}

func fetchAndPrint(database *db.DB, cfg *config.Config, cityID int64) error {
	listener := &consoleListener{done: make(chan error, 1)}
	svc := weather.NewService(database, listener, weather.WithTimeout(cfg.HTTPTimeout))
	defer svc.Close()

	svc.Request(cityID)
	if err := <-listener.done; err != nil {
		fmt.Fprintln(os.Stderr, "Не удалось загрузить погоду.")
		return err
	}
	return nil
}

// degreesToCompass converts meteorological degrees to one of the eight
// compass points.
func degreesToCompass(deg float64) string {
	directions := []string{"С", "СВ", "В", "ЮВ", "Ю", "ЮЗ", "З", "СЗ"}
	index := int(math.Round(deg/45)) % 8
	return directions[index]
}
