package scrapers

import (
	"context"

	"github.com/raushankrgupta/price-watcher/models"
)

// Scraper defines the interface for all page samplers
type Scraper interface {
	// CanScrape checks if the scraper can handle the given URL
	CanScrape(url string) bool
	// SamplePage extracts a best-effort price/image/title observation
	// from the given URL. A page with no recognizable price returns a
	// sample with a nil price, not an error.
	SamplePage(ctx context.Context, url string) (models.Sample, error)
}
