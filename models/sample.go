package models

// Sample is one best-effort observation of a product page.
// Price is nil when no parseable price was found; the other fields may
// still carry data (an image can be backfilled without a price).
type Sample struct {
	Price *float64 `json:"price"`
	Image string   `json:"image,omitempty"`
	Title string   `json:"title,omitempty"`
}

// HasPrice reports whether the sample carries a usable price.
func (s Sample) HasPrice() bool {
	return s.Price != nil
}

// PriceAlert is the structured payload of a price-drop notification.
// Formatting into user-facing text happens in i18n, not here.
type PriceAlert struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	PreviousPrice float64 `json:"previous_price"`
	CurrentPrice  float64 `json:"current_price"`

	// Drop since the previous check.
	Drop        float64 `json:"drop"`
	DropPercent float64 `json:"drop_percent"`

	// Drop since the original tracked price.
	TotalDrop        float64 `json:"total_drop"`
	TotalDropPercent float64 `json:"total_drop_percent"`
}
