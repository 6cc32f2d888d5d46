package repo

import (
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/models/m_product"
	"github.com/light-bringer/specialprice-service/internal/models/m_special_price"
)

// numericScale is the fractional precision of a Spanner NUMERIC column.
const numericScale = 9

func ratFromDecimal(d decimal.Decimal) *big.Rat {
	return d.Rat()
}

func decimalFromRat(r *big.Rat) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(r.FloatString(numericScale))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid numeric value %s: %w", r.String(), err)
	}
	return d, nil
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

func specialPriceToData(id string, sp *domain.SpecialPrice) *m_special_price.Data {
	snapshot := sp.Snapshot()
	return &m_special_price.Data{
		SpecialPriceID:  id,
		UserID:          sp.UserID(),
		ClientID:        sp.ClientID(),
		ProductID:       sp.ProductID(),
		SpecialPrice:    *ratFromDecimal(sp.SpecialPrice().Decimal()),
		DiscountPercent: *ratFromDecimal(sp.DiscountPercent()),
		ValidFrom:       sp.ValidFrom(),
		ValidUntil:      sp.ValidUntil(),
		Active:          sp.Active(),
		ProductName:     snapshot.Name,
		ProductImage:    nullString(snapshot.Image),
		BasePrice:       *ratFromDecimal(snapshot.BasePrice.Decimal()),
		CreatedBy:       sp.CreatedBy(),
		CreatedAt:       sp.CreatedAt(),
		UpdatedAt:       sp.UpdatedAt(),
	}
}

func specialPriceFromData(data *m_special_price.Data) (*domain.SpecialPrice, error) {
	price, err := decimalFromRat(&data.SpecialPrice)
	if err != nil {
		return nil, err
	}
	discount, err := decimalFromRat(&data.DiscountPercent)
	if err != nil {
		return nil, err
	}
	base, err := decimalFromRat(&data.BasePrice)
	if err != nil {
		return nil, err
	}

	return domain.ReconstructSpecialPrice(
		data.SpecialPriceID,
		domain.Triple{UserID: data.UserID, ClientID: data.ClientID, ProductID: data.ProductID},
		domain.NewMoney(price),
		discount,
		data.ValidFrom.UTC(),
		data.ValidUntil.UTC(),
		data.Active,
		domain.ProductSnapshot{Name: data.ProductName, Image: data.ProductImage.StringVal, BasePrice: domain.NewMoney(base)},
		data.CreatedBy,
		data.CreatedAt.UTC(),
		data.UpdatedAt.UTC(),
	), nil
}

func productToData(p *domain.Product) *m_product.Data {
	return &m_product.Data{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		BasePrice:   *ratFromDecimal(p.BasePrice.Decimal()),
		Stock:       p.Stock,
		Image:       nullString(p.Image),
		SKU:         p.SKU,
		Brand:       p.Brand,
		Rating:      *ratFromDecimal(p.Rating),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func productFromData(data *m_product.Data) (*domain.Product, error) {
	price, err := decimalFromRat(&data.BasePrice)
	if err != nil {
		return nil, err
	}
	rating, err := decimalFromRat(&data.Rating)
	if err != nil {
		return nil, err
	}

	return &domain.Product{
		ID:          data.ProductID,
		Name:        data.Name,
		Description: data.Description,
		BasePrice:   domain.NewMoney(price),
		Category:    data.Category,
		Stock:       data.Stock,
		Image:       data.Image.StringVal,
		SKU:         data.SKU,
		Brand:       data.Brand,
		Rating:      rating,
		CreatedAt:   data.CreatedAt.UTC(),
		UpdatedAt:   data.UpdatedAt.UTC(),
	}, nil
}
