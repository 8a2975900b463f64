package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

type ProductWriter interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type CategoryStore interface {
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	List(ctx context.Context, storeID int64) ([]domain.Category, error)
}

// CSVImporter reads product exports and inserts them into a store's
// catalog. Categories are resolved by name and created on first use.
type CSVImporter struct {
	reader     *csv.Reader
	products   ProductWriter
	categories CategoryStore
	storeID    int64
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryStore, storeID int64) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:     csvr,
		products:   products,
		categories: categories,
		storeID:    storeID,
	}
}

type csvRow struct {
	Name          string
	Description   string
	Price         int64
	DiscountPrice *int64
	Category      string
	ImageURL      string
}

// Run parses CSV rows and inserts one product per row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	categoryIDs, err := i.loadCategories(ctx)
	if err != nil {
		return 0, err
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if row == nil {
			continue
		}

		var categoryID *int64
		if row.Category != "" {
			id, err := i.resolveCategory(ctx, categoryIDs, row.Category)
			if err != nil {
				return imported, err
			}
			categoryID = &id
		}

		if _, err := i.products.Create(ctx, domain.Product{
			StoreID:       i.storeID,
			Name:          row.Name,
			Description:   row.Description,
			Price:         row.Price,
			DiscountPrice: row.DiscountPrice,
			ImageURL:      row.ImageURL,
			CategoryID:    categoryID,
			IsActive:      true,
		}); err != nil {
			return imported, fmt.Errorf("insert product %q: %w", row.Name, err)
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) loadCategories(ctx context.Context) (map[string]int64, error) {
	existing, err := i.categories.List(ctx, i.storeID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	ids := make(map[string]int64, len(existing))
	for _, c := range existing {
		ids[strings.ToLower(c.Name)] = c.ID
	}
	return ids, nil
}

func (i *CSVImporter) resolveCategory(ctx context.Context, ids map[string]int64, name string) (int64, error) {
	key := strings.ToLower(name)
	if id, ok := ids[key]; ok {
		return id, nil
	}
	created, err := i.categories.Create(ctx, domain.Category{StoreID: i.storeID, Name: name})
	if err != nil {
		return 0, fmt.Errorf("create category %q: %w", name, err)
	}
	ids[key] = created.ID
	return created.ID, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (*csvRow, error) {
	name := pick(record, index, "name")
	if name == "" {
		return nil, nil
	}

	priceStr := pick(record, index, "price")
	price, err := strconv.ParseInt(priceStr, 10, 64)
	if err != nil || price < 0 {
		return nil, fmt.Errorf("invalid price %q for product %q", priceStr, name)
	}

	row := &csvRow{
		Name:        name,
		Description: pick(record, index, "description"),
		Price:       price,
		Category:    pick(record, index, "category"),
		ImageURL:    pick(record, index, "image_url"),
	}

	if s := pick(record, index, "discount_price"); s != "" {
		dp, err := strconv.ParseInt(s, 10, 64)
		if err != nil || dp < 0 {
			return nil, fmt.Errorf("invalid discount price %q for product %q", s, name)
		}
		row.DiscountPrice = &dp
	}
	return row, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
