package memrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

// Catalog is an in-memory product catalog.
type Catalog struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string
}

// NewCatalog creates a catalog holding the given products.
func NewCatalog(products ...domain.Product) *Catalog {
	c := &Catalog{products: make(map[string]domain.Product)}
	for _, p := range products {
		p := p
		_, _ = c.Insert(context.Background(), &p)
	}
	return c
}

// GetByID returns a copy of the product.
func (c *Catalog) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

// GetByIDs returns copies of the known products among ids.
func (c *Catalog) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	found := make(map[string]domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			found[id] = p
		}
	}
	return found, nil
}

// List filters, sorts and paginates the catalog.
func (c *Catalog) List(ctx context.Context, filter contracts.ProductFilter) (*contracts.ProductPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filter = filter.Normalize()

	c.mu.RLock()
	matched := make([]domain.Product, 0, len(c.order))
	for _, id := range c.order {
		p := c.products[id]
		if matchesProduct(filter, &p) {
			matched = append(matched, p)
		}
	}
	c.mu.RUnlock()

	sortProducts(matched, filter.SortBy)

	total := int64(len(matched))
	start := filter.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return &contracts.ProductPage{Products: matched[start:end], Total: total}, nil
}

// Insert stores a copy of product, assigning an id when missing.
func (c *Catalog) Insert(ctx context.Context, product *domain.Product) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := product.Validate(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := *product
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if _, exists := c.products[p.ID]; !exists {
		c.order = append(c.order, p.ID)
	}
	c.products[p.ID] = p
	return p.ID, nil
}

func matchesProduct(f contracts.ProductFilter, p *domain.Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) &&
			!strings.Contains(strings.ToLower(p.Brand), needle) {
			return false
		}
	}
	if f.MinPrice != nil && p.BasePrice.Decimal().LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.BasePrice.Decimal().GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

func sortProducts(products []domain.Product, sortBy string) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch sortBy {
		case contracts.SortByPriceAsc:
			return a.BasePrice.LessThan(b.BasePrice)
		case contracts.SortByPriceDesc:
			return a.BasePrice.GreaterThan(b.BasePrice)
		case contracts.SortByRating:
			return a.Rating.GreaterThan(b.Rating)
		default:
			return a.Name < b.Name
		}
	})
}
