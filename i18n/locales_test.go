package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raushankrgupta/price-watcher/models"
)

var alert = models.PriceAlert{
	Name:             "Widget",
	PreviousPrice:    1000,
	CurrentPrice:     900,
	Drop:             100,
	DropPercent:      10.0,
	TotalDrop:        100,
	TotalDropPercent: 10.0,
}

func TestNotificationEnglish(t *testing.T) {
	title, body := Notification("en", alert)
	assert.Equal(t, "Price Dropped! 🎉", title)
	assert.Equal(t,
		"Widget\nWas: 1000.00 ₽\nBecame: 900.00 ₽\nSavings: 100.00 ₽ (10.0%)\nFrom original: -100.00 ₽ (10.0%)",
		body)
}

func TestNotificationRussian(t *testing.T) {
	title, body := Notification("ru", alert)
	assert.Equal(t, "Цена снизилась! 🎉", title)
	assert.Contains(t, body, "Было: 1000.00 ₽")
	assert.Contains(t, body, "Стало: 900.00 ₽")
	assert.Contains(t, body, "Экономия: 100.00 ₽ (10.0%)")
	assert.Contains(t, body, "От изначальной: -100.00 ₽ (10.0%)")
}

func TestNotificationUnknownLanguageFallsBackToEnglish(t *testing.T) {
	title, _ := Notification("de", alert)
	assert.Equal(t, "Price Dropped! 🎉", title)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("en"))
	assert.True(t, Supported("ru"))
	assert.False(t, Supported("de"))
	assert.False(t, Supported(""))
}
