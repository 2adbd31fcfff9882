package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sinaricell/storefront/internal/models"
	"github.com/sinaricell/storefront/pkg/api"
)

// SaveProducts upserts a fetched page of the catalog into the cache.
// Запись с тем же id перезаписывается — побеждает последняя выборка.
func (s *Storage) SaveProducts(ctx context.Context, products []models.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query := `
		INSERT INTO products (
			id, name, brand, manufacturer, category,
			price, cost_price, stock, created_at, updated_at, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			brand = excluded.brand,
			manufacturer = excluded.manufacturer,
			category = excluded.category,
			price = excluded.price,
			cost_price = excluded.cost_price,
			stock = excluded.stock,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			fetched_at = excluded.fetched_at
	`

	now := time.Now().Unix()
	for i := range products {
		p := &products[i]
		_, err := tx.ExecContext(ctx, query,
			p.ID,
			p.Name,
			string(p.Brand),
			p.Manufacturer,
			string(p.Category),
			p.Price,
			p.CostPrice,
			p.Stock,
			p.CreatedAt.Unix(),
			p.UpdatedAt.Unix(),
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert product %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit products: %w", err)
	}

	return nil
}

// SearchProducts queries the cache with the same filters the server accepts
func (s *Storage) SearchProducts(ctx context.Context, req api.SearchProductsRequest) ([]models.Product, error) {
	var (
		conds []string
		args  []any
	)

	if req.Name != "" {
		conds = append(conds, "name LIKE ?")
		args = append(args, "%"+req.Name+"%")
	}
	if req.Manufacturer != "" {
		conds = append(conds, "manufacturer LIKE ?")
		args = append(args, "%"+req.Manufacturer+"%")
	}
	if req.Brand != "" {
		conds = append(conds, "brand = ?")
		args = append(args, req.Brand)
	}
	if req.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, req.Category)
	}
	if req.MinPrice > 0 {
		conds = append(conds, "price >= ?")
		args = append(args, req.MinPrice)
	}
	if req.MaxPrice > 0 {
		conds = append(conds, "price <= ?")
		args = append(args, req.MaxPrice)
	}
	if req.InStockOnly {
		conds = append(conds, "stock > 0")
	}

	query := `
		SELECT id, name, brand, manufacturer, category,
		       price, cost_price, stock, created_at, updated_at
		FROM products
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + orderClause(req.SortBy, req.SortOrder)

	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.Size
	if size < 1 {
		size = 10
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, size, (page-1)*size)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var products []models.Product
	for rows.Next() {
		var (
			p                    models.Product
			brand, category      string
			createdAt, updatedAt int64
		)
		err := rows.Scan(
			&p.ID, &p.Name, &brand, &p.Manufacturer, &category,
			&p.Price, &p.CostPrice, &p.Stock, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Brand = models.Brand(brand)
		p.Category = models.Category(category)
		p.CreatedAt = time.Unix(createdAt, 0)
		p.UpdatedAt = time.Unix(updatedAt, 0)
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// orderClause отображает параметры сортировки на безопасный ORDER BY
// (поля и направление — из фиксированных списков, не из пользовательского ввода)
func orderClause(sortBy, sortOrder string) string {
	column := "created_at"
	switch sortBy {
	case "price":
		column = "price"
	case "stock":
		column = "stock"
	}

	direction := "ASC"
	if sortOrder == "desc" {
		direction = "DESC"
	}

	return column + " " + direction
}
