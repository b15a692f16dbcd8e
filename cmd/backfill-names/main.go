// Command backfill-names fills in the localized_name column for seeded
// cities by asking the weather provider for each city's display-language
// name. Requests are paced so the provider's free-tier limits are respected.
// Names are stored folded (see internal/translit) so searches match them
// regardless of case or accents.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/EliSsaSad/simple-weather-app/internal/config"
	"github.com/EliSsaSad/simple-weather-app/internal/db"
	"github.com/EliSsaSad/simple-weather-app/internal/translit"
	"github.com/EliSsaSad/simple-weather-app/internal/weather"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		country  = flag.String("country", "", "only backfill this country (default: home country)")
		interval = flag.Duration("interval", 5*time.Second, "minimum delay between provider requests")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *country == "" {
		*country = cfg.HomeCountry
	}

	database, err := db.Open(cfg.DBPath, db.WithHomeCountry(cfg.HomeCountry))
	if err != nil {
		return err
	}
	defer database.Close()

	apiKey, ok, err := database.Setting(db.SettingAPIKey)
	if err != nil {
		return err
	}
	if !ok || apiKey == "" {
		return &weather.ConfigError{Reason: "API key is not set"}
	}

	ids, err := database.CitiesMissingLocalizedName(*country)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		log.Println("nothing to backfill")
		return nil
	}
	log.Printf("backfilling %d cities", len(ids))

	client := weather.NewClient(apiKey)
	client.HTTPClient.Timeout = cfg.HTTPTimeout
	limiter := rate.NewLimiter(rate.Every(*interval), 1)
	ctx := context.Background()

	updated, failed := 0, 0
	for _, id := range ids {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		name, err := client.LocalizedName(ctx, id)
		if err != nil {
			log.Printf("city %d: %v", id, err)
			failed++
			continue
		}

		if err := database.SetLocalizedName(id, translit.Fold(name)); err != nil {
			log.Printf("city %d: %v", id, err)
			failed++
			continue
		}
		updated++
		log.Printf("city %d -> %s", id, name)
	}

	log.Printf("done: %d updated, %d failed", updated, failed)
	return nil
}
