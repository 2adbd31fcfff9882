package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sinaricell/storefront/internal/models"
	"github.com/sinaricell/storefront/internal/validation"
	pkgapi "github.com/sinaricell/storefront/pkg/api"
)

// apiClient — срез API клиента для операций каталога
type apiClient interface {
	SearchProducts(ctx context.Context, req pkgapi.SearchProductsRequest) ([]pkgapi.ProductResponse, *pkgapi.Paging, error)
	CreateProduct(ctx context.Context, req pkgapi.CreateProductRequest) (*pkgapi.ProductResponse, error)
}

// productCache — локальный кеш каталога для офлайн-поиска
type productCache interface {
	SaveProducts(ctx context.Context, products []models.Product) error
	SearchProducts(ctx context.Context, req pkgapi.SearchProductsRequest) ([]models.Product, error)
}

// Service предоставляет операции каталога: поиск, создание, офлайн-поиск.
// Серверные ответы прозрачно складываются в локальный кеш, так что
// последний увиденный срез каталога доступен без сети.
type Service struct {
	apiClient apiClient
	cache     productCache
}

// NewService создает сервис каталога. cache может быть nil —
// тогда write-through и офлайн-поиск отключены.
func NewService(client apiClient, cache productCache) *Service {
	return &Service{
		apiClient: client,
		cache:     cache,
	}
}

// SearchResult содержит страницу результатов поиска
type SearchResult struct {
	Paging   *pkgapi.Paging
	Products []models.Product
}

// Search выполняет поиск по каталогу на сервере.
// Найденные товары best effort записываются в локальный кеш.
func (s *Service) Search(ctx context.Context, req pkgapi.SearchProductsRequest) (*SearchResult, error) {
	if err := validation.ValidateSearch(&req); err != nil {
		return nil, fmt.Errorf("invalid search request: %w", err)
	}

	responses, paging, err := s.apiClient.SearchProducts(ctx, req)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(responses))
	for _, resp := range responses {
		products = append(products, productFromResponse(resp))
	}

	if s.cache != nil && len(products) > 0 {
		if err := s.cache.SaveProducts(ctx, products); err != nil {
			// Кеш — не источник истины, поиск не роняем
			slog.Debug("failed to cache products", "count", len(products), "error", err)
		}
	}

	return &SearchResult{Products: products, Paging: paging}, nil
}

// SearchCached ищет по локальному кешу без обращения к серверу.
// Кеш содержит только товары, увиденные предыдущими поисками.
func (s *Service) SearchCached(ctx context.Context, req pkgapi.SearchProductsRequest) (*SearchResult, error) {
	if s.cache == nil {
		return nil, fmt.Errorf("local catalog cache is not available")
	}

	if err := validation.ValidateSearch(&req); err != nil {
		return nil, fmt.Errorf("invalid search request: %w", err)
	}

	products, err := s.cache.SearchProducts(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("cache search failed: %w", err)
	}

	return &SearchResult{Products: products}, nil
}

// Create создает товар на сервере (требует роль admin) и кеширует его
func (s *Service) Create(ctx context.Context, req pkgapi.CreateProductRequest) (*models.Product, error) {
	if err := validation.ValidateNewProduct(req); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}

	resp, err := s.apiClient.CreateProduct(ctx, req)
	if err != nil {
		return nil, err
	}

	product := productFromResponse(*resp)

	if s.cache != nil {
		if err := s.cache.SaveProducts(ctx, []models.Product{product}); err != nil {
			slog.Debug("failed to cache created product", "id", product.ID, "error", err)
		}
	}

	return &product, nil
}

func productFromResponse(resp pkgapi.ProductResponse) models.Product {
	return models.Product{
		ID:           resp.ID,
		Name:         resp.Name,
		Brand:        models.Brand(resp.Brand),
		Manufacturer: resp.Manufacturer,
		Category:     models.Category(resp.Category),
		Price:        resp.Price,
		CostPrice:    resp.CostPrice,
		Stock:        resp.Stock,
		CreatedAt:    resp.CreatedAt,
		UpdatedAt:    resp.UpdatedAt,
	}
}
