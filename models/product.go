package models

import "time"

// PricePoint is one entry in a product's price history.
type PricePoint struct {
	Price float64   `bson:"price" json:"price"`
	Date  time.Time `bson:"date" json:"date"`
}

// Product represents one tracked product and its accumulated price state
type Product struct {
	ID              string       `bson:"_id" json:"id"`
	URL             string       `bson:"url" json:"url"`
	Name            string       `bson:"name" json:"name"`
	Image           string       `bson:"image,omitempty" json:"image,omitempty"`
	ImageKey        string       `bson:"image_key,omitempty" json:"image_key,omitempty"` // S3 object key once archived
	OriginalPrice   float64      `bson:"original_price" json:"original_price"`
	CurrentPrice    float64      `bson:"current_price" json:"current_price"`
	PriceHistory    []PricePoint `bson:"price_history" json:"price_history"`
	MinPrice        float64      `bson:"min_price" json:"min_price"`
	MinPriceDate    time.Time    `bson:"min_price_date" json:"min_price_date"`
	PriceDropped    bool         `bson:"price_dropped" json:"price_dropped"`
	PriceDropAmount float64      `bson:"price_drop_amount,omitempty" json:"price_drop_amount,omitempty"`
	LastChecked     time.Time    `bson:"last_checked" json:"last_checked"`
	AddedDate       time.Time    `bson:"added_date" json:"added_date"`
}
