package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/domain"
	"storefront/internal/importer"
	"storefront/internal/repository/category"
	"storefront/internal/repository/product"
	"storefront/internal/repository/store"
)

func main() {
	var (
		filePath string
		storeKey string
	)
	flag.StringVar(&filePath, "file", "", "Path to product CSV export")
	flag.StringVar(&storeKey, "store", "", "Store key to import into")
	flag.Parse()

	if filePath == "" || storeKey == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	storeRepo := store.NewPostgres(pool)
	st, err := storeRepo.GetByKey(ctx, storeKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			st, err = storeRepo.Create(ctx, domain.Store{Key: storeKey, Name: storeKey})
		}
		if err != nil {
			log.Fatalf("ensure store %q: %v", storeKey, err)
		}
	}

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, product.NewPostgres(pool, nil), category.NewPostgres(pool), st.ID)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d products into store %s in %s\n", count, storeKey, time.Since(start).Truncate(time.Millisecond))
}
