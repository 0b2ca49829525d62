// Package lock provides the keyed locks taken around balance and stock changes.
package lock

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	domainRepo "github.com/sangkips/inventra-api/internal/domain/repository"
)

// CustomerKey is the lock key guarding a customer's account
func CustomerKey(id uuid.UUID) string {
	return "customer:" + id.String()
}

// SupplierKey is the lock key guarding a supplier's account
func SupplierKey(id uuid.UUID) string {
	return "supplier:" + id.String()
}

// StockKey is the lock key guarding one product's stock in one warehouse
func StockKey(productID, warehouseID uuid.UUID) string {
	return fmt.Sprintf("stock:%s:%s", productID, warehouseID)
}

// AcquireAll takes every key in sorted order so two callers locking
// overlapping sets cannot deadlock. Duplicates are taken once. On failure
// the keys already held are released before returning.
func AcquireAll(ctx context.Context, locker domainRepo.Locker, keys ...string) (func(), error) {
	sorted := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	releases := make([]func(), 0, len(sorted))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}

	for _, k := range sorted {
		release, err := locker.Acquire(ctx, k)
		if err != nil {
			releaseAll()
			return nil, err
		}
		releases = append(releases, release)
	}
	return releaseAll, nil
}
