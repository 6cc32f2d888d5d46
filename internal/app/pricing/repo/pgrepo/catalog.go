package pgrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

// CatalogRepo implements contracts.ProductCatalog on the products table.
type CatalogRepo struct {
	db *gorm.DB
}

// NewCatalogRepo creates a CatalogRepo.
func NewCatalogRepo(db *gorm.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

var _ contracts.ProductCatalog = (*CatalogRepo)(nil)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GetByID loads a product by id.
func (r *CatalogRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidProductID
	}

	var row productRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, translateError("get product", err)
	}
	return row.toDomain(), nil
}

// GetByIDs loads the requested products with one IN query.
func (r *CatalogRepo) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	found := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return nil, domain.ErrInvalidProductID
		}
	}

	var rows []productRow
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, translateError("get products", err)
	}
	for i := range rows {
		p := rows[i].toDomain()
		found[p.ID] = *p
	}
	return found, nil
}

func (r *CatalogRepo) filtered(ctx context.Context, f contracts.ProductFilter) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&productRow{})
	if f.Category != "" {
		tx = tx.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(f.Search) + "%"
		tx = tx.Where("name ILIKE ? OR description ILIKE ? OR brand ILIKE ?", pattern, pattern, pattern)
	}
	if f.MinPrice != nil {
		tx = tx.Where("base_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		tx = tx.Where("base_price <= ?", *f.MaxPrice)
	}
	return tx
}

// List returns one page of matching products and the total match count.
func (r *CatalogRepo) List(ctx context.Context, filter contracts.ProductFilter) (*contracts.ProductPage, error) {
	filter = filter.Normalize()

	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, translateError("count products", err)
	}

	order := "name ASC"
	switch filter.SortBy {
	case contracts.SortByPriceAsc:
		order = "base_price ASC"
	case contracts.SortByPriceDesc:
		order = "base_price DESC"
	case contracts.SortByRating:
		order = "rating DESC"
	}

	var rows []productRow
	err := r.filtered(ctx, filter).
		Order(order).
		Order("id ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, translateError("list products", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, *rows[i].toDomain())
	}
	return &contracts.ProductPage{Products: products, Total: total}, nil
}

// Insert validates and inserts a product.
func (r *CatalogRepo) Insert(ctx context.Context, product *domain.Product) (string, error) {
	if err := product.Validate(); err != nil {
		return "", err
	}

	id := product.ID
	if id == "" {
		id = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(newProductRow(id, product)).Error; err != nil {
		return "", translateError("insert product", err)
	}
	return id, nil
}
