package db

import "database/sql"

// Setting names used by the application.
const (
	SettingAPIKey     = "OPEN_WEATHER_MAP_API_KEY"
	SettingLastCityID = "LAST_SELECTED_CITY_ID"
)

// Setting returns the value stored under name. A missing setting is reported
// as ok=false, not as an error.
func (d *DB) Setting(name string) (value string, ok bool, err error) {
	row := d.QueryRow(`SELECT value FROM settings WHERE name = ?`, name)
	switch err := row.Scan(&value); err {
	case nil:
		return value, true, nil
	case sql.ErrNoRows:
		return "", false, nil
	default:
		return "", false, storageErr("get setting", err)
	}
}

// SetSetting stores value under name, replacing any previous value. The write
// is committed before SetSetting returns.
func (d *DB) SetSetting(name, value string) error {
	_, err := d.Exec(`
		INSERT INTO settings (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value
	`, name, value)
	return storageErr("set setting", err)
}
