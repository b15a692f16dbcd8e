package db

import "testing"

func catalogFixture() []testCity {
	return []testCity{
		{id: 1, country: "FR", name: "Paris", localizedName: "ПАРИЖ", lat: 48.85, lon: 2.35, favorite: true},
		{id: 2, country: "RU", name: "Moscow", localizedName: "МОСКВА", lat: 55.75, lon: 37.62},
		{id: 3, country: "DE", name: "Berlin", localizedName: "БЕРЛИН", lat: 52.52, lon: 13.40},
		{id: 4, country: "RU", name: "Lipetsk", localizedName: nil, lat: 52.6, lon: 39.57},
	}
}

// TestFindCitiesOrdering verifies the listing order: favorites first, then
// home-country rows, then the rest by country code.
func TestFindCitiesOrdering(t *testing.T) {
	testDB := setupTestDB(t, catalogFixture())

	cities, err := testDB.FindCities(FindOptions{})
	if err != nil {
		t.Fatalf("FindCities failed: %v", err)
	}

	want := []int64{1, 2, 3} // FR favorite, RU home, DE
	if len(cities) != len(want) {
		t.Fatalf("expected %d cities, got %d", len(want), len(cities))
	}
	for i, id := range want {
		if cities[i].ID != id {
			t.Errorf("position %d: expected city %d, got %d", i, id, cities[i].ID)
		}
	}
}

// TestFindCitiesExcludesUnlocalized verifies rows with a NULL localized name
// never appear, with or without a name query.
func TestFindCitiesExcludesUnlocalized(t *testing.T) {
	testDB := setupTestDB(t, catalogFixture())

	for _, query := range []string{"", "Липецк", "ЛИПЕЦК", "а"} {
		cities, err := testDB.FindCities(FindOptions{NameQuery: query})
		if err != nil {
			t.Fatalf("FindCities(%q) failed: %v", query, err)
		}
		for _, c := range cities {
			if c.ID == 4 {
				t.Errorf("query %q returned city without localized name", query)
			}
		}
	}
}

// TestFindCitiesNameQuery verifies case-insensitive, fold-tolerant substring
// matching against the localized name.
func TestFindCitiesNameQuery(t *testing.T) {
	testDB := setupTestDB(t, catalogFixture())

	tests := []struct {
		name    string
		query   string
		wantIDs []int64
	}{
		{name: "exact stored form", query: "МОСКВА", wantIDs: []int64{2}},
		{name: "lowercase input folds to match", query: "москва", wantIDs: []int64{2}},
		{name: "substring", query: "ОСКВ", wantIDs: []int64{2}},
		{name: "no match", query: "КАЗАНЬ", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cities, err := testDB.FindCities(FindOptions{NameQuery: tt.query})
			if err != nil {
				t.Fatalf("FindCities failed: %v", err)
			}
			if len(cities) != len(tt.wantIDs) {
				t.Fatalf("expected %d results, got %d", len(tt.wantIDs), len(cities))
			}
			for i, id := range tt.wantIDs {
				if cities[i].ID != id {
					t.Errorf("position %d: expected city %d, got %d", i, id, cities[i].ID)
				}
			}
		})
	}
}

// TestFindCitiesCountryFilter verifies the country filter is exact and ANDed
// with the name query.
func TestFindCitiesCountryFilter(t *testing.T) {
	testDB := setupTestDB(t, catalogFixture())

	cities, err := testDB.FindCities(FindOptions{Country: "RU"})
	if err != nil {
		t.Fatalf("FindCities failed: %v", err)
	}
	if len(cities) != 1 || cities[0].ID != 2 {
		t.Fatalf("expected only Moscow, got %v", cities)
	}

	cities, err = testDB.FindCities(FindOptions{Country: "RU", NameQuery: "ПАРИЖ"})
	if err != nil {
		t.Fatalf("FindCities failed: %v", err)
	}
	if len(cities) != 0 {
		t.Errorf("expected no results for mismatched filters, got %v", cities)
	}
}

func TestFavorites(t *testing.T) {
	testDB := setupTestDB(t, catalogFixture())

	if err := testDB.SetFavorite(2, true); err != nil {
		t.Fatalf("SetFavorite failed: %v", err)
	}
	fav, err := testDB.IsFavorite(2)
	if err != nil {
		t.Fatalf("IsFavorite failed: %v", err)
	}
	if !fav {
		t.Error("expected city 2 to be favorite")
	}

	if err := testDB.SetFavorite(2, false); err != nil {
		t.Fatalf("SetFavorite failed: %v", err)
	}
	fav, err = testDB.IsFavorite(2)
	if err != nil {
		t.Fatalf("IsFavorite failed: %v", err)
	}
	if fav {
		t.Error("expected city 2 to no longer be favorite")
	}
}

// TestFavoritesUnknownID verifies unknown ids report false and updating them
// is a silent no-op.
func TestFavoritesUnknownID(t *testing.T) {
	testDB := setupTestDB(t, catalogFixture())

	fav, err := testDB.IsFavorite(999999)
	if err != nil {
		t.Fatalf("IsFavorite failed: %v", err)
	}
	if fav {
		t.Error("expected unknown id to report false")
	}

	if err := testDB.SetFavorite(999999, true); err != nil {
		t.Errorf("SetFavorite on unknown id should be a no-op, got %v", err)
	}
}

func TestLocalizedNameBackfill(t *testing.T) {
	testDB := setupTestDB(t, catalogFixture())

	ids, err := testDB.CitiesMissingLocalizedName("RU")
	if err != nil {
		t.Fatalf("CitiesMissingLocalizedName failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != 4 {
		t.Fatalf("expected [4], got %v", ids)
	}

	if err := testDB.SetLocalizedName(4, "ЛИПЕЦК"); err != nil {
		t.Fatalf("SetLocalizedName failed: %v", err)
	}

	ids, err = testDB.CitiesMissingLocalizedName("RU")
	if err != nil {
		t.Fatalf("CitiesMissingLocalizedName failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no remaining cities, got %v", ids)
	}

	cities, err := testDB.FindCities(FindOptions{NameQuery: "ЛИПЕЦК"})
	if err != nil {
		t.Fatalf("FindCities failed: %v", err)
	}
	if len(cities) != 1 || cities[0].ID != 4 {
		t.Errorf("expected backfilled city to be searchable, got %v", cities)
	}
}
