package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"lockhospitals/database"
	"lockhospitals/server"
)

func main() {
	var (
		dbPath   = flag.String("db", "medical_lock_hospitals.db", "path to the registry database")
		rps      = flag.Float64("rps", 1, "requests per second against the archive hosts")
		timeout  = flag.Duration("timeout", 30*time.Second, "per-request timeout")
		logLevel = flag.String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	)
	flag.Parse()

	logger := server.SetupLogger(*logLevel)

	db, err := database.NewRegistryDB(*dbPath)
	if err != nil {
		logger.Error("Failed to open registry database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	documents, err := db.GetDocuments()
	if err != nil {
		logger.Error("Failed to load documents", "error", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: *timeout}
	limiter := rate.NewLimiter(rate.Limit(*rps), 1)
	ctx := context.Background()

	var checked, broken int
	for _, doc := range documents {
		if doc.Link == nil || strings.TrimSpace(*doc.Link) == "" {
			continue
		}
		link := strings.TrimSpace(*doc.Link)

		if err := limiter.Wait(ctx); err != nil {
			logger.Error("Rate limiter interrupted", "error", err)
			os.Exit(1)
		}

		checked++
		title, err := fetchTitle(client, link)
		if err != nil {
			broken++
			fmt.Printf("BROKEN  %-12s %s (%v)\n", doc.DocID, link, err)
			continue
		}
		fmt.Printf("OK      %-12s %s  %q\n", doc.DocID, link, title)
	}

	fmt.Printf("\n%d links checked, %d broken\n", checked, broken)
	if broken > 0 {
		os.Exit(1)
	}
}

// fetchTitle fetches a document link and extracts the page title as a cheap
// signal that the archive item still resolves to the right record.
func fetchTitle(client *http.Client, link string) (string, error) {
	resp, err := client.Get(link)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	page, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(page.Find("title").First().Text())
	if title == "" {
		title = "(no title)"
	}
	return title, nil
}
