package utils

import (
	"sort"
	"strings"

	"github.com/Zavian3/truck-listings-scrapper/models"
)

type MakeCount struct {
	Make  string
	Count int
}

type SourceCount struct {
	Source string
	Count  int
}

type SummaryStats struct {
	TotalListings     int
	WithPrice         int
	WithVIN           int
	WithLocation      int
	NewestYear        string
	ListingsPerSource []SourceCount
	ListingsPerMake   []MakeCount
}

func BuildSummaryStats(records []models.ListingRecord) SummaryStats {
	stats := SummaryStats{TotalListings: len(records)}
	if len(records) == 0 {
		return stats
	}

	sourceCounts := make(map[string]int)
	makeCounts := make(map[string]int)

	for _, rec := range records {
		if rec.Price != "" {
			stats.WithPrice++
		}
		if rec.VIN != "" {
			stats.WithVIN++
		}
		if rec.Location != "" {
			stats.WithLocation++
		}
		if rec.Year > stats.NewestYear {
			stats.NewestYear = rec.Year
		}

		source := string(rec.Source)
		if source == "" {
			source = "Unknown"
		}
		sourceCounts[source]++

		mk := strings.TrimSpace(rec.Make)
		if mk == "" {
			mk = "Unknown"
		}
		makeCounts[mk]++
	}

	perSource := make([]SourceCount, 0, len(sourceCounts))
	for source, count := range sourceCounts {
		perSource = append(perSource, SourceCount{Source: source, Count: count})
	}
	sort.Slice(perSource, func(i, j int) bool {
		if perSource[i].Count == perSource[j].Count {
			return perSource[i].Source < perSource[j].Source
		}
		return perSource[i].Count > perSource[j].Count
	})
	stats.ListingsPerSource = perSource

	perMake := make([]MakeCount, 0, len(makeCounts))
	for m, count := range makeCounts {
		perMake = append(perMake, MakeCount{Make: m, Count: count})
	}
	sort.Slice(perMake, func(i, j int) bool {
		if perMake[i].Count == perMake[j].Count {
			return perMake[i].Make < perMake[j].Make
		}
		return perMake[i].Count > perMake[j].Count
	})
	stats.ListingsPerMake = perMake

	return stats
}
