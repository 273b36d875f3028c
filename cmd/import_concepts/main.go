// Command import_concepts loads products from a CSV file into the concept
// catalog. Columns: concept,category,name,unit,basePer100. Missing concepts
// are created; products already present in their category are skipped.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"stadslab/internal/backoffice"
	"stadslab/internal/config"
	"stadslab/internal/db"
	"stadslab/internal/importer"
	applog "stadslab/internal/log"
	"stadslab/internal/planner"
	"stadslab/internal/store"
	"stadslab/internal/views/theme"
)

func main() {
	csvPath := "concepten.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	if err := run(context.Background(), csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, csvPath string) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	rows, err := importer.ReadCatalogCSV(file)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.UseMock {
		return fmt.Errorf("DATABASE_URL must point at a real database")
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	kv, err := store.NewGormStore(database, cfg.Storage.Namespace)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	imported, skipped, err := importRows(ctx, backoffice.NewService(kv, nil), rows)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d products (%d skipped) from %s\n", imported, skipped, csvPath)
	return nil
}

// importRows adds every row to the catalog held by svc.
func importRows(ctx context.Context, svc *backoffice.Service, rows []importer.Row) (int, int, error) {
	catalog, err := svc.Catalog(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("load catalog: %w", err)
	}

	conceptIDs := make(map[string]string, len(catalog.Concepts))
	for _, c := range catalog.Concepts {
		conceptIDs[strings.ToLower(c.Name)] = c.ID
	}

	imported, skipped := 0, 0
	for idx, row := range rows {
		name := strings.TrimSpace(row.Concept)
		if name == "" || strings.TrimSpace(row.Name) == "" {
			skipped++
			continue
		}

		id, ok := conceptIDs[strings.ToLower(name)]
		if !ok {
			created, err := svc.AddConcept(ctx, name, theme.ColorAt(len(conceptIDs)))
			if err != nil {
				return imported, skipped, fmt.Errorf("row %d: create concept: %w", idx+1, err)
			}
			id = created.ID
			conceptIDs[strings.ToLower(name)] = id
			catalog.Concepts = append(catalog.Concepts, created)
			applog.Info(ctx, "concept created", "concept", name)
		}

		key := planner.CategoryKey(row.Category)
		if hasProduct(catalog.Find(id), key, row.Name) {
			skipped++
			continue
		}

		product, err := svc.AddProduct(ctx, id, key, planner.NewProduct{
			Name:       row.Name,
			Unit:       row.Unit,
			BasePer100: row.BasePer100,
		})
		if err != nil {
			return imported, skipped, fmt.Errorf("row %d: add product %q: %w", idx+1, row.Name, err)
		}
		addLocal(catalog.Find(id), key, product)
		imported++
	}
	return imported, skipped, nil
}

func hasProduct(c *planner.Concept, key, name string) bool {
	if c == nil {
		return false
	}
	products := c.Basis
	if key != planner.BasisKey {
		opt := c.Option(key)
		if opt == nil {
			return false
		}
		products = opt.Products
	}
	for _, p := range products {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// addLocal mirrors an added product in the local catalog copy so later rows
// see it.
func addLocal(c *planner.Concept, key string, p planner.Product) {
	if c == nil {
		return
	}
	if key == planner.BasisKey {
		c.Basis = append(c.Basis, p)
		return
	}
	if opt := c.Option(key); opt != nil {
		opt.Products = append(opt.Products, p)
		return
	}
	c.Options = append(c.Options, planner.OptionCategory{Key: key, Label: planner.LabelForKey(key), Products: []planner.Product{p}})
}
