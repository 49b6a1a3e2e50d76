package tracker

import (
	"errors"
	"math"
	"time"

	"github.com/raushankrgupta/price-watcher/models"
)

// MaxHistoryEntries bounds the per-product price history; the oldest
// entries are dropped first on overflow.
const MaxHistoryEntries = 100

// ErrMalformedRecord means the stored record cannot be safely updated
// (missing or invalid original price). The update is skipped entirely.
var ErrMalformedRecord = errors.New("malformed product record")

// Update applies one price sample to a product record and decides whether
// a price-drop alert should fire.
//
// It is a pure function: the input record is taken by value, the history
// slice is copied before mutation, and nothing is persisted or dispatched
// here. Callers apply the returned record and alert themselves.
//
// When the sample carries no usable price the record is returned unchanged
// except for a one-time image backfill, and no alert fires.
func Update(p models.Product, s models.Sample, now time.Time) (models.Product, *models.PriceAlert, error) {
	// Image is write-once: set it if we never had one, regardless of
	// whether the price parsed.
	if s.Image != "" && p.Image == "" {
		p.Image = s.Image
	}

	if !s.HasPrice() || !isFinite(*s.Price) {
		return p, nil, nil
	}

	if p.OriginalPrice <= 0 || !isFinite(p.OriginalPrice) {
		return p, nil, ErrMalformedRecord
	}

	current := *s.Price

	// Previous price for incremental drop detection. A zero CurrentPrice
	// means the product was never sampled, so the original price stands in.
	previous := p.CurrentPrice
	if previous == 0 {
		previous = p.OriginalPrice
	}

	history := make([]models.PricePoint, len(p.PriceHistory))
	copy(history, p.PriceHistory)

	if len(history) == 0 {
		seedDate := p.AddedDate
		if seedDate.IsZero() {
			seedDate = now
		}
		history = append(history, models.PricePoint{Price: p.OriginalPrice, Date: seedDate})
	}

	// No consecutive duplicates in history.
	if current != history[len(history)-1].Price {
		history = append(history, models.PricePoint{Price: current, Date: now})
		if len(history) > MaxHistoryEntries {
			history = history[len(history)-MaxHistoryEntries:]
		}
	}

	p.PriceHistory = history
	p.CurrentPrice = current
	p.LastChecked = now

	// Minimum is recomputed from the full history each time; ties go to
	// the earliest occurrence.
	minPrice := history[0].Price
	minDate := history[0].Date
	for _, h := range history[1:] {
		if h.Price < minPrice {
			minPrice = h.Price
			minDate = h.Date
		}
	}
	p.MinPrice = minPrice
	p.MinPriceDate = minDate

	p.PriceDropped = current < p.OriginalPrice
	if p.PriceDropped {
		p.PriceDropAmount = p.OriginalPrice - current
	} else {
		p.PriceDropAmount = 0
	}

	// Alert only when the price fell further since the last check, not
	// merely because it sits below the original.
	if !p.PriceDropped || current >= previous {
		return p, nil, nil
	}

	drop := previous - current
	totalDrop := p.OriginalPrice - current
	alert := &models.PriceAlert{
		ProductID:        p.ID,
		Name:             p.Name,
		PreviousPrice:    previous,
		CurrentPrice:     current,
		Drop:             drop,
		DropPercent:      round1(drop / previous * 100),
		TotalDrop:        totalDrop,
		TotalDropPercent: round1(totalDrop / p.OriginalPrice * 100),
	}
	return p, alert, nil
}

// NewProduct builds a freshly tracked record with its history seeded at
// the original price.
func NewProduct(id, url, name, image string, price float64, now time.Time) models.Product {
	return models.Product{
		ID:            id,
		URL:           url,
		Name:          name,
		Image:         image,
		OriginalPrice: price,
		CurrentPrice:  price,
		PriceHistory:  []models.PricePoint{{Price: price, Date: now}},
		MinPrice:      price,
		MinPriceDate:  now,
		AddedDate:     now,
		LastChecked:   now,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
