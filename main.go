package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/Zavian3/truck-listings-scrapper/browser"
	"github.com/Zavian3/truck-listings-scrapper/config"
	"github.com/Zavian3/truck-listings-scrapper/models"
	"github.com/Zavian3/truck-listings-scrapper/progress"
	"github.com/Zavian3/truck-listings-scrapper/services"
	"github.com/Zavian3/truck-listings-scrapper/sheets"
	"github.com/Zavian3/truck-listings-scrapper/storage"
	"github.com/Zavian3/truck-listings-scrapper/utils"
)

// stdinPrompter resolves the interactive login checkpoint from the
// terminal: the run pauses until the operator finishes logging in and
// presses Enter.
type stdinPrompter struct{}

func (stdinPrompter) AwaitLogin(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		log.Printf("▶ Log in to Facebook in the browser window, then press Enter here...")
		_, err := bufio.NewReader(os.Stdin).ReadString('\n')
		done <- err
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func main() {
	cfg := config.Default()

	flag.StringVar(&cfg.CraigslistURL, "craigslist", cfg.CraigslistURL, "Craigslist search URL (empty skips the pipeline)")
	flag.StringVar(&cfg.FacebookURL, "facebook", cfg.FacebookURL, "Facebook Marketplace search URL (empty skips the pipeline)")
	flag.IntVar(&cfg.MaxListings, "max", cfg.MaxListings, "cap on Craigslist detail visits (0 = all)")
	flag.StringVar(&cfg.OutFile, "out", cfg.OutFile, "JSON output file")
	flag.StringVar(&cfg.SheetName, "sheet", cfg.SheetName, "Google Sheet title")
	flag.BoolVar(&cfg.Headless, "headless", cfg.Headless, "run the browser headless")
	publish := flag.Bool("publish", true, "publish results to Google Sheets")
	flag.Parse()

	log.Printf("╔═══════════════════════════════════════════════════╗")
	log.Printf("║           Truck Listings Scraper                  ║")
	log.Printf("╚═══════════════════════════════════════════════════╝")
	log.Printf("Craigslist : %s", orNone(cfg.CraigslistURL))
	log.Printf("Facebook   : %s", orNone(cfg.FacebookURL))
	log.Printf("Output     : %s", cfg.OutFile)
	if cfg.DBHost != "" {
		log.Printf("Postgres   : %s:%d/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	}

	if cfg.CraigslistURL == "" && cfg.FacebookURL == "" {
		log.Fatalf("✗ Nothing to do: pass -craigslist and/or -facebook")
	}

	rootCtx := context.Background()
	rep := progress.LogReporter{}
	orch := services.NewOrchestrator(cfg, rep)

	// Publishing auth is a setup concern: missing credentials must
	// abort here, not after minutes of browser work.
	var publisher *sheets.Publisher
	if *publish {
		p, err := sheets.NewPublisher(rootCtx, cfg.CredentialsFile, rep)
		if err != nil {
			log.Fatalf("✗ Failed to set up Google Sheets: %v", err)
		}
		publisher = p
	}

	records := make([]models.ListingRecord, 0)

	if cfg.CraigslistURL != "" {
		page, cancel, err := browser.Open(rootCtx, cfg, cfg.Headless)
		if err != nil {
			log.Fatalf("✗ Failed to start browser: %v", err)
		}
		for rec := range orch.Craigslist(rootCtx, page, cfg.CraigslistURL) {
			records = append(records, rec)
		}
		cancel()
	}

	if cfg.FacebookURL != "" {
		open := func(ctx context.Context, headless bool) (services.SessionPage, func(), error) {
			page, cancel, err := browser.Open(ctx, cfg, headless)
			if err != nil {
				return nil, nil, err
			}
			return page, func() { cancel() }, nil
		}
		for rec := range orch.Facebook(rootCtx, open, cfg.FacebookURL, stdinPrompter{}) {
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		log.Fatalf("✗ No listings extracted")
	}

	total, err := utils.WriteJSON(cfg.OutFile, records)
	if err != nil {
		log.Fatalf("✗ Failed to write JSON: %v", err)
	}
	csvFile := utils.CSVName(cfg.OutFile)
	if _, err := utils.WriteCSV(csvFile, records); err != nil {
		log.Fatalf("✗ Failed to write CSV: %v", err)
	}

	savedCount := 0
	if cfg.DBHost != "" {
		store, err := storage.NewPostgresStore(cfg)
		if err != nil {
			log.Fatalf("✗ Failed to connect to PostgreSQL: %v", err)
		}
		defer store.Close()

		dbCtx, cancelDB := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelDB()
		savedCount, err = store.SaveRecords(dbCtx, records)
		if err != nil {
			log.Fatalf("✗ Failed to store listings in PostgreSQL: %v", err)
		}
	}

	sheetURL := ""
	if publisher != nil {
		title := cfg.SheetName + " - " + time.Now().Format("2006-01-02 15:04")
		url, _, err := publisher.Publish(rootCtx, title, records)
		if err != nil {
			log.Printf("⚠ Sheets publish failed: %v", err)
		} else {
			sheetURL = url
		}
	}

	log.Printf("═══════════════════════════════════════════════════")
	log.Printf("  DONE — %d total listings → %s, %s", total, cfg.OutFile, csvFile)
	if cfg.DBHost != "" {
		log.Printf("  DB   — %d listings upserted → listings table", savedCount)
	}
	if sheetURL != "" {
		log.Printf("  SHEET— %s", sheetURL)
	}

	stats := utils.BuildSummaryStats(records)
	log.Printf("  STATS")
	log.Printf("    Total Listings Scraped : %d", stats.TotalListings)
	log.Printf("    With Price             : %d", stats.WithPrice)
	log.Printf("    With VIN               : %d", stats.WithVIN)
	log.Printf("    With Location          : %d", stats.WithLocation)
	if stats.NewestYear != "" {
		log.Printf("    Newest Model Year      : %s", stats.NewestYear)
	}

	log.Printf("    Listings per Source")
	for _, sourceStat := range stats.ListingsPerSource {
		log.Printf("      - %s: %d", sourceStat.Source, sourceStat.Count)
	}

	log.Printf("    Listings per Make")
	for _, makeStat := range stats.ListingsPerMake {
		log.Printf("      - %s: %d", makeStat.Make, makeStat.Count)
	}
	log.Printf("═══════════════════════════════════════════════════")
}

func orNone(s string) string {
	if s == "" {
		return "(skipped)"
	}
	return s
}
