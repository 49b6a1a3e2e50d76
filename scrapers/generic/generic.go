// Package generic samples arbitrary product pages with layered selector
// heuristics, a currency-anchored text scan, and an optional LLM fallback.
package generic

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/raushankrgupta/price-watcher/config"
	"github.com/raushankrgupta/price-watcher/models"
	"github.com/raushankrgupta/price-watcher/scrapers/base"
	"github.com/raushankrgupta/price-watcher/utils"
)

var priceSelectors = []string{
	`[itemprop="price"]`,
	`[data-price]`,
	`[data-testid="price"]`,
	`[data-test-id="price-current"]`,
	".price-current",
	".price",
	"#price",
	`[class*="price"]`,
	`[id*="price"]`,
}

var imageSelectors = []string{
	`[data-testid="product-image"] img`,
	`img[itemprop="image"]`,
	".product-image img",
	".product-photo img",
	".product-card__img img",
	"main img",
	"article img",
}

var titleSelectors = []string{
	`h1[itemprop="name"]`,
	`[data-testid="product-title"]`,
	"h1.product-title",
	".product-title",
}

type GenericScraper struct {
	*base.BaseScraper
}

func NewGenericScraper() *GenericScraper {
	return &GenericScraper{
		BaseScraper: base.NewBaseScraper(),
	}
}

// CanScrape accepts everything; the generic scraper is the catch-all.
func (s *GenericScraper) CanScrape(url string) bool {
	return true
}

func (s *GenericScraper) SamplePage(ctx context.Context, url string) (models.Sample, error) {
	doc, err := s.FetchDocument(ctx, url, base.IsValidDocument)
	if err != nil {
		return models.Sample{}, err
	}

	sample := models.Sample{
		Image: base.FindImage(doc, imageSelectors),
		Title: base.FindTitle(doc, titleSelectors),
	}

	if price, ok := s.extractPrice(ctx, doc); ok {
		sample.Price = &price
	}
	return sample, nil
}

func (s *GenericScraper) extractPrice(ctx context.Context, doc *goquery.Document) (float64, bool) {
	if price, ok := base.FindPrice(doc, priceSelectors); ok {
		return price, true
	}
	if price, ok := base.FindPriceInBody(doc); ok {
		return price, true
	}

	// Last resort: let the model read the page text.
	if config.GeminiAPIKey != "" {
		price, err := utils.ExtractPriceFromText(ctx, doc.Find("body").Text())
		if err == nil {
			return price, true
		}
		fmt.Printf("[GenericScraper] Gemini extraction failed: %v\n", err)
	}
	return 0, false
}
