package db

import (
	"database/sql"
	"testing"
)

type testCity struct {
	id            int64
	country       string
	name          string
	localizedName any // string or nil
	lat, lon      float64
	favorite      bool
}

func setupTestDB(t *testing.T, cities []testCity) *DB {
	t.Helper()

	// Use in-memory database for testing
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := initSchema(conn); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	for _, c := range cities {
		_, err := conn.Exec(
			"INSERT INTO cities (id, country, name, localized_name, lat, lon, favorite) VALUES (?, ?, ?, ?, ?, ?, ?)",
			c.id, c.country, c.name, c.localizedName, c.lat, c.lon, c.favorite,
		)
		if err != nil {
			t.Fatalf("Failed to insert test data: %v", err)
		}
	}

	return &DB{DB: conn, homeCountry: "RU"}
}
