package utils

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zavian3/truck-listings-scrapper/models"
)

func sampleRecords() []models.ListingRecord {
	return []models.ListingRecord{
		{URL: "u1", Title: "2021 Ford F-150", Price: "$45,000", Year: "2021", Make: "Ford", Location: "Bend", Source: models.SourceCraigslist},
		{URL: "u2", Title: "2018 Ram 2500", Price: "$32,000", Year: "2018", Make: "Ram", VIN: "3C6UR5DL1JG123456", Source: models.SourceFacebook},
		{URL: "u3", Title: "Old truck", Source: models.SourceFacebook},
	}
}

func TestWriteJSONRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	n, err := WriteJSON(path, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []models.ListingRecord
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sampleRecords(), got)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	n, err := WriteCSV(path, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, models.Columns(), rows[0])
	assert.Equal(t, sampleRecords()[0].Row(), rows[1])
}

func TestCSVName(t *testing.T) {
	assert.Equal(t, "truck_listings.csv", CSVName("truck_listings.json"))
	assert.Equal(t, "plain.csv", CSVName("plain"))
}

func TestBuildSummaryStats(t *testing.T) {
	stats := BuildSummaryStats(sampleRecords())

	assert.Equal(t, 3, stats.TotalListings)
	assert.Equal(t, 2, stats.WithPrice)
	assert.Equal(t, 1, stats.WithVIN)
	assert.Equal(t, 1, stats.WithLocation)
	assert.Equal(t, "2021", stats.NewestYear)

	require.Len(t, stats.ListingsPerSource, 2)
	assert.Equal(t, SourceCount{Source: "Facebook Marketplace", Count: 2}, stats.ListingsPerSource[0])
	assert.Equal(t, SourceCount{Source: "Craigslist", Count: 1}, stats.ListingsPerSource[1])

	require.Len(t, stats.ListingsPerMake, 3)
	// Equal counts fall back to name order.
	assert.Equal(t, MakeCount{Make: "Ford", Count: 1}, stats.ListingsPerMake[0])
	assert.Equal(t, MakeCount{Make: "Ram", Count: 1}, stats.ListingsPerMake[1])
	assert.Equal(t, MakeCount{Make: "Unknown", Count: 1}, stats.ListingsPerMake[2])
}

func TestBuildSummaryStatsEmpty(t *testing.T) {
	stats := BuildSummaryStats(nil)
	assert.Zero(t, stats.TotalListings)
	assert.Empty(t, stats.ListingsPerSource)
}
