package wildberries

import (
	"context"
	"strings"

	"github.com/raushankrgupta/price-watcher/models"
	"github.com/raushankrgupta/price-watcher/scrapers/base"
)

type WildberriesScraper struct {
	*base.BaseScraper
}

func NewWildberriesScraper() *WildberriesScraper {
	return &WildberriesScraper{
		BaseScraper: base.NewBaseScraper(),
	}
}

func (s *WildberriesScraper) CanScrape(url string) bool {
	return strings.Contains(url, "wildberries.")
}

func (s *WildberriesScraper) SamplePage(ctx context.Context, url string) (models.Sample, error) {
	doc, err := s.FetchDocument(ctx, url, base.IsValidDocument)
	if err != nil {
		return models.Sample{}, err
	}

	sample := models.Sample{
		Image: base.FindImage(doc, []string{
			".product-page__img img",
			".slide__content img",
			".photo-zoom__preview",
		}),
		Title: base.FindTitle(doc, []string{
			".product-page__title",
			"h1.same-part-kt__header",
		}),
	}

	if price, ok := base.FindPrice(doc, []string{
		".price-block__final-price",
		".price-block__content",
		"ins.price-block__final-price",
	}); ok {
		sample.Price = &price
	} else if price, ok := base.FindPriceInBody(doc); ok {
		sample.Price = &price
	}

	return sample, nil
}
