package api

import "time"

// CreateProductRequest представляет запрос на создание товара (только для админа)
type CreateProductRequest struct {
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	Manufacturer string  `json:"manufacturer"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	CostPrice    float64 `json:"cost_price"`
	Stock        int     `json:"stock"`
}

// ProductResponse представляет товар в ответах сервера
type ProductResponse struct {
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Manufacturer string    `json:"manufacturer"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	CostPrice    float64   `json:"cost_price"`
	ID           int64     `json:"id"`
	Stock        int       `json:"stock"`
}

// SearchProductsRequest представляет параметры поиска по каталогу.
// Передается как query string запроса GET /products.
type SearchProductsRequest struct {
	Name         string
	Brand        string
	Manufacturer string
	Category     string
	SortBy       string // price | stock | created_at
	SortOrder    string // asc | desc
	MinPrice     float64
	MaxPrice     float64
	Page         int
	Size         int
	InStockOnly  bool
}
