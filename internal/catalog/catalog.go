package catalog

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/10-mohamedmagdy/sameh-pos/internal/domain"
	"github.com/10-mohamedmagdy/sameh-pos/internal/metrics"
	"github.com/10-mohamedmagdy/sameh-pos/internal/repository"
	"golang.org/x/sync/singleflight"
)

var ErrProductNotFound = errors.New("product not found")

// ean13Length is the standard EAN-13 barcode length used for the zero-pad
// fallback. Some scanners strip leading zeros, some add them.
const ean13Length = 13

// Repository is the read side of the product catalog.
type Repository interface {
	GetProduct(ctx context.Context, code string) (*domain.Product, error)
}

// Catalog resolves scanned or typed codes to products, with a read-through
// cache in front of the repository. Lookup is read-only.
type Catalog struct {
	repo  Repository
	cache Cache
	sfg   singleflight.Group // Prevents cache stampede on hot codes
}

func New(repo Repository, cache Cache) *Catalog {
	return &Catalog{
		repo:  repo,
		cache: cache,
	}
}

// Resolve maps a raw scanned code to a product. Lookup order: exact match;
// if the code is all digits and unmatched, zero-padded to EAN-13 length;
// then with leading zeros stripped. First match wins.
func (c *Catalog) Resolve(ctx context.Context, rawCode string) (*domain.Product, error) {
	v, err, _ := c.sfg.Do(rawCode, func() (interface{}, error) {

		// Entries sit under the stored code, which may be any form the
		// repository could have matched for this scan.
		for _, key := range codeVariants(rawCode) {
			product, err := c.cache.Get(ctx, key)
			if err == nil {
				return product, nil // product is in cache
			}
			if !errors.Is(err, ErrCacheMiss) {
				log.Printf("catalog cache get error: %v", err) // log cache error but continue
				break
			}
		}

		product, errGet := c.lookup(ctx, rawCode)
		if errGet != nil {
			return nil, errGet
		}

		// Cache under the stored code so a single edit invalidates the
		// entry no matter which scan form resolved it.
		go func() {
			errSet := c.cache.Set(context.Background(), product.Code, product)
			if errSet != nil {
				log.Printf("catalog cache set error: %v", errSet)
			}
		}()

		return product, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Product), nil
}

func (c *Catalog) lookup(ctx context.Context, rawCode string) (*domain.Product, error) {
	for i, code := range codeVariants(rawCode) {
		product, err := c.repo.GetProduct(ctx, code)
		if err == nil {
			if i > 0 {
				metrics.ResolveFallbackHits.Inc()
			}
			return product, nil
		}
		if !errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
	}
	return nil, ErrProductNotFound
}

// Invalidate drops a product from the cache after a catalog edit. code is
// the stored code, the same key Resolve caches under, but the scan variants
// are dropped too in case an older entry predates that keying.
func (c *Catalog) Invalidate(ctx context.Context, code string) {
	for _, key := range codeVariants(code) {
		if err := c.cache.Delete(ctx, key); err != nil {
			log.Printf("catalog cache invalidate error: %v", err)
		}
	}
}

// codeVariants lists the codes a scan may match, in lookup order: the code
// itself, its zero-padded EAN-13 form, then with leading zeros stripped.
func codeVariants(code string) []string {
	variants := []string{code}
	if !isAllDigits(code) {
		return variants
	}
	if len(code) < ean13Length {
		variants = append(variants, strings.Repeat("0", ean13Length-len(code))+code)
	}
	if stripped := strings.TrimLeft(code, "0"); stripped != code && stripped != "" {
		variants = append(variants, stripped)
	}
	return variants
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
