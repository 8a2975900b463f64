package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name          string
	Description   string
	Price         int64
	DiscountPrice *int64
	Category      string
}

type discountSeed struct {
	Name             string
	Type             string
	Code             string
	ValueType        string
	Value            int64
	AppliesTo        string
	TargetProductIDs []int64
	BuyProductIDs    []int64
	GetProductIDs    []int64
	MinRequirement   string
	MinValue         int64
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	storeID, err := ensureStore(ctx, pool, "demo", "Demo Store", "+6281234567890")
	if err != nil {
		return fmt.Errorf("ensure store: %w", err)
	}

	categories := []string{"Drinks", "Snacks"}
	categoryIDs := make(map[string]int64, len(categories))
	for _, name := range categories {
		id, err := ensureCategory(ctx, pool, storeID, name)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", name, err)
		}
		categoryIDs[name] = id
	}

	sale := int64(15000)
	products := []productSeed{
		{Name: "Iced Coffee", Description: "Cold brew over ice", Price: 20000, DiscountPrice: &sale, Category: "Drinks"},
		{Name: "Matcha Latte", Description: "Stone ground matcha with milk", Price: 25000, Category: "Drinks"},
		{Name: "Banana Bread", Description: "Baked fresh daily", Price: 18000, Category: "Snacks"},
		{Name: "Cheese Croissant", Description: "Flaky pastry with cheese", Price: 22000, Category: "Snacks"},
	}
	productIDs := make(map[string]int64, len(products))
	for _, p := range products {
		id, err := ensureProduct(ctx, pool, storeID, categoryIDs[p.Category], p)
		if err != nil {
			return fmt.Errorf("ensure product %s: %w", p.Name, err)
		}
		productIDs[p.Name] = id
	}

	discounts := []discountSeed{
		{Name: "Welcome code", Type: "code", Code: "WELCOME10", ValueType: "percentage", Value: 10, AppliesTo: "orders", MinRequirement: "none"},
		{Name: "Drinks week", Type: "automatic", ValueType: "percentage", Value: 5, AppliesTo: "categories", MinRequirement: "none"},
		{Name: "Big basket", Type: "order_amount", ValueType: "fixed", Value: 5000, AppliesTo: "orders", MinRequirement: "amount", MinValue: 50000},
		{
			Name: "Coffee treats bread", Type: "buy_x_get_y", ValueType: "free", AppliesTo: "products", MinRequirement: "none",
			BuyProductIDs: []int64{productIDs["Iced Coffee"]},
			GetProductIDs: []int64{productIDs["Banana Bread"]},
		},
		{
			Name: "Breakfast bundle", Type: "bundle", ValueType: "percentage", Value: 15, AppliesTo: "products", MinRequirement: "none",
			TargetProductIDs: []int64{productIDs["Matcha Latte"], productIDs["Cheese Croissant"]},
		},
		{Name: "Free delivery over 75k", Type: "free_delivery", ValueType: "free", AppliesTo: "orders", MinRequirement: "amount", MinValue: 75000},
	}
	for _, d := range discounts {
		if err := ensureDiscount(ctx, pool, storeID, categoryIDs, d); err != nil {
			return fmt.Errorf("ensure discount %s: %w", d.Name, err)
		}
	}

	return nil
}

func ensureStore(ctx context.Context, pool *pgxpool.Pool, key, name, whatsApp string) (int64, error) {
	const q = `
INSERT INTO stores (key, name, whatsapp_number)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET name = EXCLUDED.name, whatsapp_number = EXCLUDED.whatsapp_number
RETURNING id
`
	var id int64
	if err := pool.QueryRow(ctx, q, key, name, whatsApp).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, storeID int64, name string) (int64, error) {
	const q = `
INSERT INTO categories (store_id, name)
VALUES ($1, $2)
ON CONFLICT (store_id, name) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`
	var id int64
	if err := pool.QueryRow(ctx, q, storeID, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, storeID, categoryID int64, p productSeed) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `SELECT id FROM products WHERE store_id = $1 AND name = $2`, storeID, p.Name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	const q = `
INSERT INTO products (store_id, name, description, price, discount_price, image_url, category_id, is_active)
VALUES ($1, $2, $3, $4, $5, '', $6, TRUE)
RETURNING id
`
	if err := pool.QueryRow(ctx, q, storeID, p.Name, p.Description, p.Price, p.DiscountPrice, categoryID).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func ensureDiscount(ctx context.Context, pool *pgxpool.Pool, storeID int64, categoryIDs map[string]int64, d discountSeed) error {
	var exists bool
	err := pool.QueryRow(ctx, `SELECT TRUE FROM discounts WHERE store_id = $1 AND name = $2`, storeID, d.Name).Scan(&exists)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	targetCategories := []int64{}
	if d.AppliesTo == "categories" {
		targetCategories = []int64{categoryIDs["Drinks"]}
	}
	targets := d.TargetProductIDs
	if targets == nil {
		targets = []int64{}
	}
	buys := d.BuyProductIDs
	if buys == nil {
		buys = []int64{}
	}
	gets := d.GetProductIDs
	if gets == nil {
		gets = []int64{}
	}

	const q = `
INSERT INTO discounts (store_id, name, type, code, is_active, start_date,
                       value_type, value, applies_to,
                       target_product_ids, target_category_ids, buy_product_ids, get_product_ids,
                       min_requirement, min_value)
VALUES ($1, $2, $3, $4, TRUE, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`
	_, err = pool.Exec(ctx, q,
		storeID, d.Name, d.Type, d.Code, time.Now().UTC().Add(-time.Hour),
		d.ValueType, d.Value, d.AppliesTo,
		targets, targetCategories, buys, gets,
		d.MinRequirement, d.MinValue,
	)
	return err
}
