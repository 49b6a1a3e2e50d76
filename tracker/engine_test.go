package tracker

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raushankrgupta/price-watcher/models"
)

func price(v float64) models.Sample {
	return models.Sample{Price: &v}
}

func testProduct(original float64) models.Product {
	added := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	return NewProduct("p1", "https://example.com/item", "Widget", "", original, added)
}

func TestUpdatePriceDropNotifies(t *testing.T) {
	p := testProduct(1000)
	now := p.AddedDate.Add(12 * time.Hour)

	updated, alert, err := Update(p, price(900), now)
	require.NoError(t, err)

	require.Len(t, updated.PriceHistory, 2)
	assert.Equal(t, 1000.0, updated.PriceHistory[0].Price)
	assert.Equal(t, 900.0, updated.PriceHistory[1].Price)
	assert.Equal(t, now, updated.PriceHistory[1].Date)

	assert.Equal(t, 900.0, updated.CurrentPrice)
	assert.Equal(t, 900.0, updated.MinPrice)
	assert.Equal(t, now, updated.MinPriceDate)
	assert.True(t, updated.PriceDropped)
	assert.Equal(t, 100.0, updated.PriceDropAmount)
	assert.Equal(t, now, updated.LastChecked)

	require.NotNil(t, alert)
	assert.Equal(t, 1000.0, alert.PreviousPrice)
	assert.Equal(t, 900.0, alert.CurrentPrice)
	assert.Equal(t, 100.0, alert.Drop)
	assert.Equal(t, 10.0, alert.DropPercent)
	assert.Equal(t, 100.0, alert.TotalDrop)
	assert.Equal(t, 10.0, alert.TotalDropPercent)
}

func TestUpdateUnchangedPriceIsIdempotent(t *testing.T) {
	p := testProduct(1000)
	now := p.AddedDate.Add(12 * time.Hour)

	first, alert, err := Update(p, price(900), now)
	require.NoError(t, err)
	require.NotNil(t, alert)

	// Same price again next cycle: no duplicate entry, no re-notify.
	second, alert, err := Update(first, price(900), now.Add(12*time.Hour))
	require.NoError(t, err)
	assert.Nil(t, alert)
	assert.Len(t, second.PriceHistory, 2)
	assert.Equal(t, 900.0, second.CurrentPrice)
}

func TestUpdateNoPriceLeavesRecordAlone(t *testing.T) {
	p := testProduct(1000)
	now := p.AddedDate.Add(time.Hour)

	updated, alert, err := Update(p, models.Sample{}, now)
	require.NoError(t, err)
	assert.Nil(t, alert)
	assert.Equal(t, p, updated)
}

func TestUpdateNoPriceStillBackfillsImage(t *testing.T) {
	p := testProduct(1000)
	now := p.AddedDate.Add(time.Hour)

	updated, alert, err := Update(p, models.Sample{Image: "https://img.example.com/a.jpg"}, now)
	require.NoError(t, err)
	assert.Nil(t, alert)
	assert.Equal(t, "https://img.example.com/a.jpg", updated.Image)
	assert.Len(t, updated.PriceHistory, 1)
	assert.Equal(t, p.LastChecked, updated.LastChecked)

	// Image is write-once.
	again, _, err := Update(updated, models.Sample{Image: "https://img.example.com/b.jpg"}, now)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/a.jpg", again.Image)
}

func TestUpdateRiseBelowOriginalDoesNotNotify(t *testing.T) {
	p := testProduct(1000)
	now := p.AddedDate.Add(12 * time.Hour)

	p, _, err := Update(p, price(950), now)
	require.NoError(t, err)

	// Price rose to 980 but is still below original: no alert.
	updated, alert, err := Update(p, price(980), now.Add(12*time.Hour))
	require.NoError(t, err)
	assert.Nil(t, alert)
	assert.True(t, updated.PriceDropped)
	assert.Equal(t, 20.0, updated.PriceDropAmount)
	assert.Equal(t, 980.0, updated.CurrentPrice)
}

func TestUpdateDropAboveOriginalDoesNotNotify(t *testing.T) {
	p := testProduct(1000)
	now := p.AddedDate.Add(12 * time.Hour)

	p, _, err := Update(p, price(1200), now)
	require.NoError(t, err)

	// 1200 -> 1100 falls since last check but stays above original.
	updated, alert, err := Update(p, price(1100), now.Add(12*time.Hour))
	require.NoError(t, err)
	assert.Nil(t, alert)
	assert.False(t, updated.PriceDropped)
	assert.Zero(t, updated.PriceDropAmount)
}

func TestUpdateSeedsMissingHistory(t *testing.T) {
	p := testProduct(1000)
	p.PriceHistory = nil
	now := p.AddedDate.Add(12 * time.Hour)

	updated, _, err := Update(p, price(800), now)
	require.NoError(t, err)

	require.Len(t, updated.PriceHistory, 2)
	assert.Equal(t, 1000.0, updated.PriceHistory[0].Price)
	assert.Equal(t, p.AddedDate, updated.PriceHistory[0].Date)
	assert.Equal(t, 800.0, updated.PriceHistory[1].Price)
}

func TestUpdateHistoryTruncation(t *testing.T) {
	p := testProduct(1000)
	now := p.AddedDate

	for i := 0; i < MaxHistoryEntries+10; i++ {
		now = now.Add(12 * time.Hour)
		var err error
		p, _, err = Update(p, price(1000+float64(i+1)), now)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(p.PriceHistory), MaxHistoryEntries)
	}

	assert.Len(t, p.PriceHistory, MaxHistoryEntries)
	// Newest entry retained, oldest dropped.
	last := p.PriceHistory[len(p.PriceHistory)-1]
	assert.Equal(t, 1000.0+float64(MaxHistoryEntries+10), last.Price)
	assert.Equal(t, p.CurrentPrice, last.Price)
}

func TestUpdateMinPriceEarliestOccurrenceWins(t *testing.T) {
	p := testProduct(1000)
	now := p.AddedDate

	prices := []float64{700, 900, 700, 950}
	var firstMinDate time.Time
	for i, v := range prices {
		now = now.Add(12 * time.Hour)
		if i == 0 {
			firstMinDate = now
		}
		var err error
		p, _, err = Update(p, price(v), now)
		require.NoError(t, err)
	}

	assert.Equal(t, 700.0, p.MinPrice)
	assert.Equal(t, firstMinDate, p.MinPriceDate)
}

func TestUpdateHistoryInvariants(t *testing.T) {
	p := testProduct(500)
	now := p.AddedDate

	for _, v := range []float64{480, 480, 510, 510, 450, 450, 450, 505} {
		now = now.Add(6 * time.Hour)
		var err error
		p, _, err = Update(p, price(v), now)
		require.NoError(t, err)
	}

	require.NotEmpty(t, p.PriceHistory)
	for i := 1; i < len(p.PriceHistory); i++ {
		assert.NotEqual(t, p.PriceHistory[i-1].Price, p.PriceHistory[i].Price,
			"no consecutive duplicates")
		assert.False(t, p.PriceHistory[i].Date.Before(p.PriceHistory[i-1].Date),
			"history sorted by date")
	}

	minPrice := p.PriceHistory[0].Price
	for _, h := range p.PriceHistory {
		if h.Price < minPrice {
			minPrice = h.Price
		}
	}
	assert.Equal(t, minPrice, p.MinPrice)
	assert.LessOrEqual(t, p.MinPrice, p.OriginalPrice)
	assert.Equal(t, p.CurrentPrice, p.PriceHistory[len(p.PriceHistory)-1].Price)
}

func TestUpdateMalformedRecordFailsClosed(t *testing.T) {
	p := testProduct(1000)
	p.OriginalPrice = 0

	updated, alert, err := Update(p, price(900), p.AddedDate.Add(time.Hour))
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.Nil(t, alert)
	assert.Equal(t, p, updated)
}

func TestUpdateUnparseablePriceTreatedAsMissing(t *testing.T) {
	p := testProduct(1000)
	now := p.AddedDate.Add(time.Hour)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		updated, alert, err := Update(p, price(bad), now)
		require.NoError(t, err)
		assert.Nil(t, alert)
		assert.Equal(t, p, updated)
	}
}

func TestUpdatePercentRounding(t *testing.T) {
	p := testProduct(300)
	now := p.AddedDate.Add(12 * time.Hour)

	// 100/300 = 33.333...% rounds to 33.3.
	_, alert, err := Update(p, price(200), now)
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, 33.3, alert.DropPercent)
	assert.Equal(t, 33.3, alert.TotalDropPercent)
}
