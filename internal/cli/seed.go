package cli

import (
	"fmt"
	"io"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/catalog"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/db"
	"gorm.io/gorm"
)

// RunSeedCommand loads the embedded catalog. Existing rows are kept.
func RunSeedCommand(database *gorm.DB, out io.Writer) error {
	seed, err := catalog.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load catalog seed: %w", err)
	}

	result, err := catalog.Apply(seed, db.NewCatalogRepository(database), db.NewFoodRepository(database))
	if err != nil {
		return fmt.Errorf("apply catalog seed: %w", err)
	}

	fmt.Fprintf(out, "Catalog seeded: %d catalog rows, %d foods\n", result.CatalogRows, result.Foods)
	return nil
}
