package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/sinaricell/storefront/internal/client/catalog"
	"github.com/sinaricell/storefront/internal/models"
	pkgapi "github.com/sinaricell/storefront/pkg/api"
)

func (c *Cli) runProducts(ctx context.Context, args []string) error {
	if err := c.requireMember(ctx); err != nil {
		return err
	}

	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: sinaricell products <search|add>")
	}

	switch args[0] {
	case "search":
		return c.runProductsSearch(ctx, args[1:])
	case "add":
		return c.runProductsAdd(ctx)
	default:
		return fmt.Errorf("unknown subcommand: %s. Use: search or add", args[0])
	}
}

func (c *Cli) runProductsSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products search", flag.ContinueOnError)
	name := fs.String("name", "", "Filter by product name (substring)")
	brand := fs.String("brand", "", "Filter by brand")
	manufacturer := fs.String("manufacturer", "", "Filter by manufacturer (substring)")
	category := fs.String("category", "", "Filter by category")
	minPrice := fs.Float64("min-price", 0, "Minimum price")
	maxPrice := fs.Float64("max-price", 0, "Maximum price")
	inStock := fs.Bool("in-stock", false, "Only products in stock")
	sortBy := fs.String("sort", "", "Sort field: price, stock, created_at")
	sortOrder := fs.String("order", "", "Sort order: asc, desc")
	page := fs.Int("page", 1, "Page number")
	size := fs.Int("size", 10, "Page size")
	cached := fs.Bool("cached", false, "Search the local cache instead of the server")

	if err := fs.Parse(args); err != nil {
		return err
	}

	req := pkgapi.SearchProductsRequest{
		Name:         *name,
		Brand:        strings.ToUpper(*brand),
		Manufacturer: *manufacturer,
		Category:     strings.ToUpper(*category),
		MinPrice:     *minPrice,
		MaxPrice:     *maxPrice,
		InStockOnly:  *inStock,
		SortBy:       *sortBy,
		SortOrder:    *sortOrder,
		Page:         *page,
		Size:         *size,
	}

	var result *catalog.SearchResult
	var err error
	if *cached {
		c.io.Println("=== Product Search (local cache) ===")
		result, err = c.catalogService.SearchCached(ctx, req)
	} else {
		c.io.Println("=== Product Search ===")
		result, err = c.catalogService.Search(ctx, req)
	}
	if err != nil {
		return err
	}

	c.io.Println()
	c.printProducts(result.Products)

	if result.Paging != nil {
		c.io.Printf("Page %d of %d (%d per page)\n",
			result.Paging.CurrentPage, result.Paging.TotalPage, result.Paging.Size)
	}

	return nil
}

func (c *Cli) runProductsAdd(ctx context.Context) error {
	c.io.Println("=== Add Product ===")
	c.io.Println()

	name, err := c.io.ReadInput("Name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}

	c.io.Printf("Brands: %s\n", joinBrands())
	brand, err := c.io.ReadInput("Brand: ")
	if err != nil {
		return fmt.Errorf("failed to read brand: %w", err)
	}

	manufacturer, err := c.io.ReadInput("Manufacturer: ")
	if err != nil {
		return fmt.Errorf("failed to read manufacturer: %w", err)
	}

	c.io.Printf("Categories: %s\n", joinCategories())
	category, err := c.io.ReadInput("Category: ")
	if err != nil {
		return fmt.Errorf("failed to read category: %w", err)
	}

	price, err := c.readFloat("Price (Rp): ")
	if err != nil {
		return err
	}

	costPrice, err := c.readFloat("Cost price (Rp): ")
	if err != nil {
		return err
	}

	stock, err := c.readInt("Stock: ")
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Creating product...")

	product, err := c.catalogService.Create(ctx, pkgapi.CreateProductRequest{
		Name:         name,
		Brand:        strings.ToUpper(brand),
		Manufacturer: manufacturer,
		Category:     strings.ToUpper(category),
		Price:        price,
		CostPrice:    costPrice,
		Stock:        stock,
	})
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Printf("✓ Product created (ID: %d)\n", product.ID)

	return nil
}

func (c *Cli) printProducts(products []models.Product) {
	if len(products) == 0 {
		c.io.Println("No products found.")
		c.io.Println()
		return
	}

	c.io.Printf("Found %d product(s):\n", len(products))
	c.io.Println()

	for i, p := range products {
		c.io.Printf("%d. %s\n", i+1, p.Name)
		c.io.Printf("   ID:       %d\n", p.ID)
		c.io.Printf("   Brand:    %s\n", p.Brand)
		c.io.Printf("   Category: %s\n", p.Category)
		if p.Manufacturer != "" {
			c.io.Printf("   Maker:    %s\n", p.Manufacturer)
		}
		c.io.Printf("   Price:    Rp%.0f\n", p.Price)
		c.io.Printf("   Stock:    %d\n", p.Stock)
		c.io.Println()
	}
}

func (c *Cli) readFloat(prompt string) (float64, error) {
	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}
	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %q", input)
	}
	return value, nil
}

func (c *Cli) readInt(prompt string) (int, error) {
	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}
	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %q", input)
	}
	return value, nil
}

func joinBrands() string {
	names := make([]string, 0, len(models.Brands))
	for _, b := range models.Brands {
		names = append(names, string(b))
	}
	return strings.Join(names, ", ")
}

func joinCategories() string {
	names := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
