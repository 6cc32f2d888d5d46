// Package pgrepo implements the pricing persistence contracts on PostgreSQL
// through gorm.
package pgrepo

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

type productRow struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"index;not null"`
	Description string          `gorm:"not null;default:''"`
	Category    string          `gorm:"index;not null"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock       int64           `gorm:"not null;default:0"`
	Image       string          `gorm:"not null;default:''"`
	SKU         string          `gorm:"column:sku;uniqueIndex;not null"`
	Brand       string          `gorm:"not null;default:''"`
	Rating      decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (productRow) TableName() string { return "products" }

type specialPriceRow struct {
	ID              string          `gorm:"type:uuid;primaryKey"`
	UserID          string          `gorm:"uniqueIndex:idx_special_prices_triple,priority:1;index:idx_special_prices_user;not null"`
	ClientID        string          `gorm:"uniqueIndex:idx_special_prices_triple,priority:2;not null"`
	ProductID       string          `gorm:"uniqueIndex:idx_special_prices_triple,priority:3;not null"`
	ProductName     string          `gorm:"not null"`
	ProductImage    string          `gorm:"not null;default:''"`
	BasePrice       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SpecialPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,1);not null"`
	ValidFrom       time.Time       `gorm:"not null"`
	ValidUntil      time.Time       `gorm:"not null"`
	Active          bool            `gorm:"not null;default:true"`
	CreatedBy       string          `gorm:"not null"`
	CreatedAt       time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime:false"`
}

func (specialPriceRow) TableName() string { return "special_prices" }

func newSpecialPriceRow(id string, sp *domain.SpecialPrice) *specialPriceRow {
	snapshot := sp.Snapshot()
	return &specialPriceRow{
		ID:              id,
		UserID:          sp.UserID(),
		ClientID:        sp.ClientID(),
		ProductID:       sp.ProductID(),
		ProductName:     snapshot.Name,
		ProductImage:    snapshot.Image,
		BasePrice:       snapshot.BasePrice.Decimal(),
		SpecialPrice:    sp.SpecialPrice().Decimal(),
		DiscountPercent: sp.DiscountPercent(),
		ValidFrom:       sp.ValidFrom(),
		ValidUntil:      sp.ValidUntil(),
		Active:          sp.Active(),
		CreatedBy:       sp.CreatedBy(),
		CreatedAt:       sp.CreatedAt(),
		UpdatedAt:       sp.UpdatedAt(),
	}
}

func (r *specialPriceRow) toDomain() *domain.SpecialPrice {
	return domain.ReconstructSpecialPrice(
		r.ID,
		domain.Triple{UserID: r.UserID, ClientID: r.ClientID, ProductID: r.ProductID},
		domain.NewMoney(r.SpecialPrice),
		r.DiscountPercent,
		r.ValidFrom.UTC(),
		r.ValidUntil.UTC(),
		r.Active,
		domain.ProductSnapshot{Name: r.ProductName, Image: r.ProductImage, BasePrice: domain.NewMoney(r.BasePrice)},
		r.CreatedBy,
		r.CreatedAt.UTC(),
		r.UpdatedAt.UTC(),
	)
}

func newProductRow(id string, p *domain.Product) *productRow {
	return &productRow{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		BasePrice:   p.BasePrice.Decimal(),
		Stock:       p.Stock,
		Image:       p.Image,
		SKU:         p.SKU,
		Brand:       p.Brand,
		Rating:      p.Rating,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *productRow) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		BasePrice:   domain.NewMoney(r.BasePrice),
		Category:    r.Category,
		Stock:       r.Stock,
		Image:       r.Image,
		SKU:         r.SKU,
		Brand:       r.Brand,
		Rating:      r.Rating,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}
