package i18n

import (
	"fmt"

	"github.com/raushankrgupta/price-watcher/models"
)

// DefaultLanguage is used when the stored preference is missing or unknown.
const DefaultLanguage = "en"

type messages struct {
	PriceDropped string
	Was          string
	Became       string
	Savings      string
	FromOriginal string
}

var translations = map[string]messages{
	"en": {
		PriceDropped: "Price Dropped! 🎉",
		Was:          "Was:",
		Became:       "Became:",
		Savings:      "Savings:",
		FromOriginal: "From original:",
	},
	"ru": {
		PriceDropped: "Цена снизилась! 🎉",
		Was:          "Было:",
		Became:       "Стало:",
		Savings:      "Экономия:",
		FromOriginal: "От изначальной:",
	},
}

// Supported reports whether lang has a translation table.
func Supported(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// Notification renders a price-drop alert into a localized title and a
// multi-line body.
func Notification(lang string, a models.PriceAlert) (title, body string) {
	t, ok := translations[lang]
	if !ok {
		t = translations[DefaultLanguage]
	}

	body = fmt.Sprintf("%s\n%s %.2f ₽\n%s %.2f ₽\n%s %.2f ₽ (%.1f%%)\n%s -%.2f ₽ (%.1f%%)",
		a.Name,
		t.Was, a.PreviousPrice,
		t.Became, a.CurrentPrice,
		t.Savings, a.Drop, a.DropPercent,
		t.FromOriginal, a.TotalDrop, a.TotalDropPercent,
	)
	return t.PriceDropped, body
}
