package validation

import (
	"fmt"

	"github.com/sinaricell/storefront/internal/models"
	"github.com/sinaricell/storefront/pkg/api"
)

// ValidateNewProduct проверяет поля запроса на создание товара
// до отправки на сервер, чтобы не тратить запрос на заведомо невалидные данные
func ValidateNewProduct(req api.CreateProductRequest) error {
	if req.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if req.Manufacturer == "" {
		return fmt.Errorf("manufacturer is required")
	}
	if !models.Brand(req.Brand).Valid() {
		return fmt.Errorf("unknown brand: %q", req.Brand)
	}
	if !models.Category(req.Category).Valid() {
		return fmt.Errorf("unknown category: %q", req.Category)
	}
	if req.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if req.CostPrice < 0 {
		return fmt.Errorf("cost price cannot be negative")
	}
	if req.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	return nil
}

// ValidateSearch проверяет и нормализует параметры поиска по каталогу
func ValidateSearch(req *api.SearchProductsRequest) error {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Size < 1 {
		req.Size = 10
	}
	if req.Size > 100 {
		return fmt.Errorf("page size must not exceed 100")
	}
	if req.Brand != "" && !models.Brand(req.Brand).Valid() {
		return fmt.Errorf("unknown brand: %q", req.Brand)
	}
	if req.Category != "" && !models.Category(req.Category).Valid() {
		return fmt.Errorf("unknown category: %q", req.Category)
	}
	if req.MinPrice < 0 || req.MaxPrice < 0 {
		return fmt.Errorf("price bounds cannot be negative")
	}
	switch req.SortBy {
	case "", "price", "stock", "created_at":
	default:
		return fmt.Errorf("unknown sort field: %q", req.SortBy)
	}
	switch req.SortOrder {
	case "", "asc", "desc":
	default:
		return fmt.Errorf("sort order must be asc or desc")
	}
	return nil
}
