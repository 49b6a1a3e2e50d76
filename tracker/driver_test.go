package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raushankrgupta/price-watcher/models"
	"github.com/raushankrgupta/price-watcher/store"
)

type fakeSampler struct {
	mu      sync.Mutex
	samples map[string]models.Sample
	errs    map[string]error
	calls   []string
}

func (f *fakeSampler) Sample(_ context.Context, url string) (models.Sample, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()
	if err, ok := f.errs[url]; ok {
		return models.Sample{}, err
	}
	return f.samples[url], nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []models.PriceAlert
}

func (r *recordingNotifier) Notify(_ context.Context, alert models.PriceAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, alert)
	return nil
}

func newTestDriver(sampler *fakeSampler) (*Driver, *store.MemoryStore, *recordingNotifier) {
	st := store.NewMemoryStore()
	notifier := &recordingNotifier{}
	d := NewDriver(st, sampler, notifier)
	d.Delay = 0
	return d, st, notifier
}

func samplePrice(v float64) models.Sample {
	return models.Sample{Price: &v}
}

func TestAddProductSeedsRecord(t *testing.T) {
	d, st, _ := newTestDriver(&fakeSampler{})
	ctx := context.Background()

	p, err := d.AddProduct(ctx, "https://shop.example/item", "Widget", 1500, "")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 1500.0, p.OriginalPrice)
	assert.Equal(t, 1500.0, p.CurrentPrice)
	assert.Equal(t, 1500.0, p.MinPrice)
	require.Len(t, p.PriceHistory, 1)
	assert.Equal(t, 1500.0, p.PriceHistory[0].Price)
	assert.False(t, p.PriceDropped)

	stored, err := st.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, stored)
}

func TestAddProductRejectsInvalidInput(t *testing.T) {
	d, _, _ := newTestDriver(&fakeSampler{})
	ctx := context.Background()

	_, err := d.AddProduct(ctx, "", "Widget", 100, "")
	assert.Error(t, err)
	_, err = d.AddProduct(ctx, "https://shop.example/item", "Widget", 0, "")
	assert.Error(t, err)
	_, err = d.AddProduct(ctx, "https://shop.example/item", "Widget", -5, "")
	assert.Error(t, err)
}

func TestCheckProductUpdatesAndNotifies(t *testing.T) {
	sampler := &fakeSampler{samples: map[string]models.Sample{
		"https://shop.example/item": samplePrice(900),
	}}
	d, st, notifier := newTestDriver(sampler)
	ctx := context.Background()

	p, err := d.AddProduct(ctx, "https://shop.example/item", "Widget", 1000, "")
	require.NoError(t, err)

	require.NoError(t, d.CheckProduct(ctx, p.ID))

	updated, err := st.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 900.0, updated.CurrentPrice)
	assert.Len(t, updated.PriceHistory, 2)

	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, p.ID, notifier.alerts[0].ProductID)
	assert.Equal(t, 100.0, notifier.alerts[0].Drop)
}

func TestCheckProductSamplerFailureIsNoOp(t *testing.T) {
	sampler := &fakeSampler{errs: map[string]error{
		"https://shop.example/item": errors.New("connection refused"),
	}}
	d, st, notifier := newTestDriver(sampler)
	ctx := context.Background()

	p, err := d.AddProduct(ctx, "https://shop.example/item", "Widget", 1000, "")
	require.NoError(t, err)

	require.NoError(t, d.CheckProduct(ctx, p.ID))

	stored, err := st.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, stored)
	assert.Empty(t, notifier.alerts)
}

func TestCheckProductImageOnlySample(t *testing.T) {
	sampler := &fakeSampler{samples: map[string]models.Sample{
		"https://shop.example/item": {Image: "https://img.example/a.jpg"},
	}}
	d, st, notifier := newTestDriver(sampler)
	ctx := context.Background()

	p, err := d.AddProduct(ctx, "https://shop.example/item", "Widget", 1000, "")
	require.NoError(t, err)

	require.NoError(t, d.CheckProduct(ctx, p.ID))

	stored, err := st.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/a.jpg", stored.Image)
	assert.Equal(t, p.PriceHistory, stored.PriceHistory)
	assert.Empty(t, notifier.alerts)
}

func TestCheckProductUnknownIDIsNoOp(t *testing.T) {
	d, _, _ := newTestDriver(&fakeSampler{})
	assert.NoError(t, d.CheckProduct(context.Background(), "missing"))
}

func TestCheckProductMalformedRecordFailsClosed(t *testing.T) {
	sampler := &fakeSampler{samples: map[string]models.Sample{
		"https://shop.example/item": samplePrice(900),
	}}
	d, st, _ := newTestDriver(sampler)
	ctx := context.Background()

	broken := models.Product{ID: "broken", URL: "https://shop.example/item", Name: "Widget"}
	require.NoError(t, st.Put(ctx, broken))

	err := d.CheckProduct(ctx, "broken")
	assert.ErrorIs(t, err, ErrMalformedRecord)

	stored, err := st.Get(ctx, "broken")
	require.NoError(t, err)
	assert.Equal(t, broken, stored)
}

func TestCheckAllContinuesPastFailures(t *testing.T) {
	sampler := &fakeSampler{
		samples: map[string]models.Sample{
			"https://shop.example/ok": samplePrice(450),
		},
		errs: map[string]error{
			"https://shop.example/bad": errors.New("timeout"),
		},
	}
	d, st, notifier := newTestDriver(sampler)
	ctx := context.Background()

	bad, err := d.AddProduct(ctx, "https://shop.example/bad", "Bad", 100, "")
	require.NoError(t, err)
	ok, err := d.AddProduct(ctx, "https://shop.example/ok", "Good", 500, "")
	require.NoError(t, err)

	d.CheckAll(ctx)

	assert.Len(t, sampler.calls, 2)

	stored, err := st.Get(ctx, ok.ID)
	require.NoError(t, err)
	assert.Equal(t, 450.0, stored.CurrentPrice)

	untouched, err := st.Get(ctx, bad.ID)
	require.NoError(t, err)
	assert.Equal(t, bad, untouched)

	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, ok.ID, notifier.alerts[0].ProductID)
}

func TestCheckAllHonorsCancellation(t *testing.T) {
	sampler := &fakeSampler{}
	d, _, _ := newTestDriver(sampler)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := d.AddProduct(ctx, "https://shop.example/a", "A", 10, "")
	require.NoError(t, err)
	_, err = d.AddProduct(ctx, "https://shop.example/b", "B", 20, "")
	require.NoError(t, err)

	cancel()
	d.CheckAll(ctx)

	assert.Empty(t, sampler.calls)
}

func TestRemoveProductIsIrrevocable(t *testing.T) {
	d, st, _ := newTestDriver(&fakeSampler{})
	ctx := context.Background()

	p, err := d.AddProduct(ctx, "https://shop.example/item", "Widget", 1000, "")
	require.NoError(t, err)

	require.NoError(t, d.RemoveProduct(ctx, p.ID))
	_, err = st.Get(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Re-checking a removed product is a quiet no-op.
	assert.NoError(t, d.CheckProduct(ctx, p.ID))
}
