//go:build property
// +build property

package stockrepo_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gotire/internal/domain"
	"gotire/internal/pkg/logger"
	"gotire/internal/repository/collection"
	"gotire/internal/repository/stockrepo"
)

func freshStore() *stockrepo.Store {
	store, err := stockrepo.New(context.Background(), collection.NewMemoryBackend(), logger.NewNop())
	if err != nil {
		panic(err)
	}
	return store
}

// Property: um código gravado existe e continua existindo depois do descarte.
func TestBarcodeNeverReleased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("barcode exists after save and after discard", prop.ForAll(
		func(n uint32) bool {
			ctx := context.Background()
			store := freshStore()
			barcode := fmt.Sprintf("%08d", n%100000000)

			if _, err := store.SaveStockEntry(ctx, entry(barcode)); err != nil {
				return false
			}
			exists, err := store.CheckBarcodeExists(ctx, barcode)
			if err != nil || !exists {
				return false
			}
			discard := domain.StatusDescarte
			if _, err := store.UpdateStockEntry(ctx, barcode, domain.StockEntryUpdate{Status: &discard}); err != nil {
				return false
			}
			exists, err = store.CheckBarcodeExists(ctx, barcode)
			return err == nil && exists
		},
		gen.UInt32(),
	))

	properties.TestingRun(t)
}

// Property: Current é igual à contagem de entradas do container, em leituras repetidas.
func TestContainerOccupancyConsistent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("current equals count of assigned entries", prop.ForAll(
		func(assignments []bool) bool {
			ctx := context.Background()
			store := freshStore()
			c, err := store.SaveContainer(ctx, domain.Container{Name: "Container A"})
			if err != nil {
				return false
			}

			expected := 0
			batch := make([]domain.StockEntry, 0, len(assignments))
			for i, assigned := range assignments {
				e := entry(fmt.Sprintf("%08d", i))
				if assigned {
					e.ContainerID = c.ID
					expected++
				}
				batch = append(batch, e)
			}
			if _, err := store.SaveStockEntries(ctx, batch); err != nil {
				return false
			}

			first, err1 := store.GetContainers(ctx)
			second, err2 := store.GetContainers(ctx)
			if err1 != nil || err2 != nil {
				return false
			}
			return first[0].Current == expected && second[0].Current == expected
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}
