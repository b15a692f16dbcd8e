package db

import (
	"database/sql"
	"fmt"

	"github.com/EliSsaSad/simple-weather-app/internal/translit"
)

// City is one row of the city catalog. IDs are the weather provider's own
// city identifiers and never change after seeding.
type City struct {
	ID            int64
	Country       string
	Name          string
	LocalizedName string
	Lat           float64
	Lon           float64
	Favorite      bool
}

// FindOptions filters a catalog listing. Zero values mean "no filter".
type FindOptions struct {
	// Country restricts results to an exact country code.
	Country string

	// NameQuery restricts results to cities whose localized name contains
	// the query, case-insensitively. The folded form of the query (see
	// translit.Fold) is tried as well, so mixed-script and accented input
	// still matches.
	NameQuery string
}

// FindCities lists catalog rows matching opts. Rows without a localized name
// are never returned. Results are ordered favorites first, then home-country
// cities, then by country code; callers cap display length themselves.
func (d *DB) FindCities(opts FindOptions) ([]City, error) {
	query := `
		SELECT id, country, name, localized_name, lat, lon, favorite
		FROM cities
		WHERE localized_name IS NOT NULL`
	var args []any

	if opts.Country != "" {
		query += ` AND country = ?`
		args = append(args, opts.Country)
	}

	if opts.NameQuery != "" {
		query += ` AND (localized_name COLLATE NOCASE LIKE ?
			OR localized_name COLLATE NOCASE LIKE ?)`
		args = append(args,
			"%"+translit.Fold(opts.NameQuery)+"%",
			"%"+opts.NameQuery+"%",
		)
	}

	query += `
		ORDER BY favorite DESC,
			CASE WHEN country = ? THEN 0 ELSE 1 END,
			country`
	args = append(args, d.homeCountry)

	rows, err := d.Query(query, args...)
	if err != nil {
		return nil, storageErr("find cities", err)
	}
	defer rows.Close()

	var cities []City
	for rows.Next() {
		var c City
		var localized sql.NullString
		if err := rows.Scan(&c.ID, &c.Country, &c.Name, &localized, &c.Lat, &c.Lon, &c.Favorite); err != nil {
			return nil, storageErr("scan city", err)
		}
		c.LocalizedName = localized.String
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("find cities", err)
	}
	return cities, nil
}

// IsFavorite reports whether the city is marked as a favorite. Unknown ids
// report false without an error.
func (d *DB) IsFavorite(cityID int64) (bool, error) {
	var favorite bool
	row := d.QueryRow(`SELECT favorite FROM cities WHERE id = ?`, cityID)
	switch err := row.Scan(&favorite); err {
	case nil:
		return favorite, nil
	case sql.ErrNoRows:
		return false, nil
	default:
		return false, storageErr("is favorite", err)
	}
}

// SetFavorite updates the favorite flag for the city and commits. Updating a
// nonexistent id is a no-op, not an error.
func (d *DB) SetFavorite(cityID int64, favorite bool) error {
	_, err := d.Exec(`UPDATE cities SET favorite = ? WHERE id = ?`, favorite, cityID)
	return storageErr("set favorite", err)
}

// CitiesMissingLocalizedName returns ids of rows whose localized name has not
// been backfilled yet, optionally restricted to one country.
func (d *DB) CitiesMissingLocalizedName(country string) ([]int64, error) {
	query := `SELECT id FROM cities WHERE localized_name IS NULL`
	var args []any
	if country != "" {
		query += ` AND country = ?`
		args = append(args, country)
	}

	rows, err := d.Query(query, args...)
	if err != nil {
		return nil, storageErr("list unlocalized cities", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, storageErr("scan city id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list unlocalized cities", err)
	}
	return ids, nil
}

// SetLocalizedName stores the display-language name for the city.
func (d *DB) SetLocalizedName(cityID int64, name string) error {
	res, err := d.Exec(`UPDATE cities SET localized_name = ? WHERE id = ?`, name, cityID)
	if err != nil {
		return storageErr("set localized name", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storageErr("set localized name", fmt.Errorf("no city with id %d", cityID))
	}
	return nil
}
