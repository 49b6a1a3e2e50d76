package scrapers

import (
	"context"
	"fmt"

	"github.com/raushankrgupta/price-watcher/models"
	"github.com/raushankrgupta/price-watcher/scrapers/generic"
	"github.com/raushankrgupta/price-watcher/scrapers/ozon"
	"github.com/raushankrgupta/price-watcher/scrapers/wildberries"
	"github.com/raushankrgupta/price-watcher/utils"
)

// GetScraper returns the appropriate scraper and the resolved URL
func GetScraper(url string) (Scraper, string, error) {
	// Resolve shortened URLs (e.g., clck.ru, bit.ly)
	resolvedURL, err := utils.ResolveShortenedURL(url)
	if err != nil {
		return nil, url, fmt.Errorf("error resolving url: %v", err)
	}

	// Register scrapers here; the generic one goes last and accepts
	// anything.
	scrapers := []Scraper{
		wildberries.NewWildberriesScraper(),
		ozon.NewOzonScraper(),
		generic.NewGenericScraper(),
	}

	for _, s := range scrapers {
		if s.CanScrape(resolvedURL) {
			return s, resolvedURL, nil
		}
	}

	return nil, resolvedURL, fmt.Errorf("no scraper found for url: %s", resolvedURL)
}

// Service adapts the scraper factory to the recheck driver's Sampler
// boundary. Failures never panic past here.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Sample(ctx context.Context, url string) (models.Sample, error) {
	scraper, resolved, err := GetScraper(url)
	if err != nil {
		return models.Sample{}, err
	}
	return scraper.SamplePage(ctx, resolved)
}
