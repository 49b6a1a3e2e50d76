package ozon

import (
	"context"
	"strings"

	"github.com/raushankrgupta/price-watcher/models"
	"github.com/raushankrgupta/price-watcher/scrapers/base"
)

type OzonScraper struct {
	*base.BaseScraper
}

func NewOzonScraper() *OzonScraper {
	return &OzonScraper{
		BaseScraper: base.NewBaseScraper(),
	}
}

func (s *OzonScraper) CanScrape(url string) bool {
	return strings.Contains(url, "ozon.")
}

func (s *OzonScraper) SamplePage(ctx context.Context, url string) (models.Sample, error) {
	// Ozon renders prices client-side; the HTTP strategy usually fails
	// the validator and the headless fallbacks carry the load.
	doc, err := s.FetchDocument(ctx, url, base.IsValidDocument)
	if err != nil {
		return models.Sample{}, err
	}

	sample := models.Sample{
		Image: base.FindImage(doc, []string{
			`[data-zone-name="product-image"] img`,
			`[data-widget="webGallery"] img`,
		}),
		Title: base.FindTitle(doc, []string{
			`[data-widget="webProductHeading"] h1`,
		}),
	}

	if price, ok := base.FindPrice(doc, []string{
		`[data-zone-name="price"]`,
		`[data-widget="webPrice"]`,
		".tsHeadline500",
	}); ok {
		sample.Price = &price
	} else if price, ok := base.FindPriceInBody(doc); ok {
		sample.Price = &price
	}

	return sample, nil
}
