package tracker

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/raushankrgupta/price-watcher/config"
	"github.com/raushankrgupta/price-watcher/models"
	"github.com/raushankrgupta/price-watcher/notify"
	"github.com/raushankrgupta/price-watcher/store"
	"github.com/raushankrgupta/price-watcher/utils"
)

// Sampler fetches one best-effort price/image observation for a URL.
// Implementations must not panic across this boundary; a page where no
// price was found returns a sample with a nil price, not an error.
type Sampler interface {
	Sample(ctx context.Context, url string) (models.Sample, error)
}

// Driver runs recheck cycles: sample the page, apply the engine, persist,
// dispatch the alert. Products are processed strictly one at a time with a
// fixed delay between them to bound load on the sampled sites.
type Driver struct {
	Store    store.ProductStore
	Sampler  Sampler
	Notifier notify.Notifier

	// Delay between products in a batch.
	Delay time.Duration
	// SampleTimeout bounds one page sample.
	SampleTimeout time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDriver(st store.ProductStore, sampler Sampler, notifier notify.Notifier) *Driver {
	return &Driver{
		Store:         st,
		Sampler:       sampler,
		Notifier:      notifier,
		Delay:         2 * time.Second,
		SampleTimeout: 90 * time.Second,
		locks:         make(map[string]*sync.Mutex),
	}
}

// productLock serializes updates per product id, so a scheduled recheck
// and a manual one for the same product cannot race on the stored record.
func (d *Driver) productLock(id string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.locks[id]
	if !ok {
		l = &sync.Mutex{}
		d.locks[id] = l
	}
	return l
}

// AddProduct starts tracking a product, seeding its history with one entry
// at the original price.
func (d *Driver) AddProduct(ctx context.Context, url, name string, price float64, image string) (models.Product, error) {
	if url == "" || name == "" {
		return models.Product{}, fmt.Errorf("url and name are required")
	}
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return models.Product{}, fmt.Errorf("invalid price %v", price)
	}

	id := strconv.FormatInt(time.Now().UnixNano(), 10)
	p := NewProduct(id, url, name, image, price, time.Now())
	d.archiveImage(ctx, &p)

	if err := d.Store.Put(ctx, p); err != nil {
		return models.Product{}, err
	}
	log.Printf("Tracking product %s (%s) at %.2f", p.ID, p.Name, p.OriginalPrice)
	return p, nil
}

// RemoveProduct deletes the record unconditionally. There is no tombstone;
// re-adding the same URL starts a fresh history.
func (d *Driver) RemoveProduct(ctx context.Context, id string) error {
	if err := d.Store.Delete(ctx, id); err != nil {
		return err
	}
	d.mu.Lock()
	delete(d.locks, id)
	d.mu.Unlock()
	return nil
}

// CheckProduct runs one full recheck cycle for a single product.
// A sampler failure is treated as "no price found" and never propagates;
// only malformed records and persistence failures surface as errors.
func (d *Driver) CheckProduct(ctx context.Context, id string) error {
	l := d.productLock(id)
	l.Lock()
	defer l.Unlock()

	p, err := d.Store.Get(ctx, id)
	if err == store.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	sample := d.sample(ctx, p.URL)
	hadImage := p.Image != ""

	updated, alert, err := Update(p, sample, time.Now())
	if err != nil {
		// Fail closed: a malformed record is skipped, never rewritten.
		log.Printf("Skipping product %s: %v", id, err)
		return err
	}

	// Nothing observed and nothing backfilled: leave the record untouched.
	if !sample.HasPrice() && (hadImage || updated.Image == "") {
		return nil
	}

	if !hadImage && updated.Image != "" {
		d.archiveImage(ctx, &updated)
	}

	if err := d.Store.Put(ctx, updated); err != nil {
		return err
	}

	if alert != nil && d.Notifier != nil {
		if err := d.Notifier.Notify(ctx, *alert); err != nil {
			log.Printf("Failed to dispatch alert for product %s: %v", id, err)
		}
	}
	return nil
}

// CheckAll rechecks every tracked product sequentially. A single product's
// failure never aborts the batch.
func (d *Driver) CheckAll(ctx context.Context) {
	products, err := d.Store.List(ctx)
	if err != nil {
		log.Printf("Recheck batch: failed to list products: %v", err)
		return
	}

	log.Printf("Recheck batch: %d product(s)", len(products))
	for i, p := range products {
		select {
		case <-ctx.Done():
			log.Println("Recheck batch: cancelled")
			return
		default:
		}

		if err := d.CheckProduct(ctx, p.ID); err != nil {
			log.Printf("Recheck batch: product %s failed: %v", p.ID, err)
		}

		if i < len(products)-1 && d.Delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(d.Delay):
			}
		}
	}
}

func (d *Driver) sample(ctx context.Context, url string) models.Sample {
	sctx := ctx
	if d.SampleTimeout > 0 {
		var cancel context.CancelFunc
		sctx, cancel = context.WithTimeout(ctx, d.SampleTimeout)
		defer cancel()
	}

	sample, err := d.Sampler.Sample(sctx, url)
	if err != nil {
		// Sampler errors and timeouts both collapse to "no price found".
		log.Printf("Sample failed for %s: %v", url, err)
		return models.Sample{}
	}
	return sample
}

func (d *Driver) archiveImage(ctx context.Context, p *models.Product) {
	if p.Image == "" || p.ImageKey != "" || config.AWSBucketName == "" {
		return
	}
	key, err := utils.ArchiveProductImage(ctx, p.Image)
	if err != nil {
		log.Printf("Failed to archive image for product %s: %v", p.ID, err)
		return
	}
	p.ImageKey = key
}
