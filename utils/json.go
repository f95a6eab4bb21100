package utils

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"

	"github.com/Zavian3/truck-listings-scrapper/models"
)

// WriteJSON writes the records into a single flat JSON array.
// Returns the total number of listings written.
func WriteJSON(filename string, records []models.ListingRecord) (int, error) {
	f, err := os.Create(filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return 0, err
	}

	return len(records), nil
}

// WriteCSV writes the records with a header row in the fixed column
// order. Returns the number of data rows written.
func WriteCSV(filename string, records []models.ListingRecord) (int, error) {
	f, err := os.Create(filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(models.Columns()); err != nil {
		return 0, err
	}
	for _, rec := range records {
		if err := w.Write(rec.Row()); err != nil {
			return 0, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, err
	}

	return len(records), nil
}

// CSVName derives the CSV output path from the JSON one.
func CSVName(jsonName string) string {
	if strings.HasSuffix(jsonName, ".json") {
		return strings.TrimSuffix(jsonName, ".json") + ".csv"
	}
	return jsonName + ".csv"
}
