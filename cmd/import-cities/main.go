// Command import-cities seeds the city catalog from OpenWeatherMap's bulk
// city list (city.list.json.gz). Existing rows are left untouched, so the
// import can be re-run safely.
package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/EliSsaSad/simple-weather-app/internal/config"
	"github.com/EliSsaSad/simple-weather-app/internal/db"
)

const bulkURL = "https://bulk.openweathermap.org/sample/city.list.json.gz"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		file = flag.String("file", "data/city.list.json.gz", "path to the city list dump")
		url  = flag.String("url", bulkURL, "download URL used when the dump is missing")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath, db.WithHomeCountry(cfg.HomeCountry))
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer database.Close()

	if _, err := os.Stat(*file); os.IsNotExist(err) {
		fmt.Printf("Downloading %s...\n", *url)
		if err := downloadFile(*url, *file); err != nil {
			return err
		}
	} else {
		fmt.Printf("Using existing %s\n", *file)
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gz.Close()

	n, err := importCities(database, gz)
	if err != nil {
		return fmt.Errorf("failed to import cities: %w", err)
	}
	fmt.Printf("Imported %d cities\n", n)
	return nil
}

func downloadFile(url, path string) error {
	if err := os.MkdirAll("data", 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	_, err = io.Copy(out, resp.Body)
	return err
}

type cityEntry struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Coord   struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
}

// importCities streams the JSON array from r into the cities table inside a
// single transaction.
func importCities(database *db.DB, r io.Reader) (int, error) {
	tx, err := database.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO cities (id, country, name, lat, lon)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	dec := json.NewDecoder(r)
	if _, err := dec.Token(); err != nil { // opening bracket
		return 0, fmt.Errorf("unexpected dump format: %w", err)
	}

	count := 0
	for dec.More() {
		var c cityEntry
		if err := dec.Decode(&c); err != nil {
			return 0, fmt.Errorf("bad city record: %w", err)
		}
		if c.ID == 0 || c.Name == "" {
			continue
		}
		if _, err := stmt.Exec(c.ID, c.Country, c.Name, c.Coord.Lat, c.Coord.Lon); err != nil {
			return 0, err
		}
		count++
		if count%50000 == 0 {
			fmt.Printf("  %d...\n", count)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}
