// Package mongorepo implements the pricing persistence contracts on MongoDB.
package mongorepo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

// Collection names.
const (
	ProductsCollection      = "productos"
	SpecialPricesCollection = "preciosEspeciales"

	TripleIndexName = "idx_usuario_cliente_producto_unique"
)

type productDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"nombre"`
	Description string               `bson:"descripcion"`
	BasePrice   primitive.Decimal128 `bson:"precioBase"`
	Category    string               `bson:"categoria"`
	Stock       int64                `bson:"stock"`
	Image       string               `bson:"imagen,omitempty"`
	SKU         string               `bson:"sku"`
	Brand       string               `bson:"marca"`
	Rating      float64              `bson:"rating"`
	CreatedAt   time.Time            `bson:"fechaCreacion"`
	UpdatedAt   time.Time            `bson:"fechaActualizacion"`
}

type specialPriceDoc struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	UserID          string               `bson:"usuarioId"`
	ClientID        string               `bson:"clienteId"`
	ProductID       primitive.ObjectID   `bson:"productoId"`
	ProductName     string               `bson:"productoNombre"`
	ProductImage    string               `bson:"productoImagen,omitempty"`
	BasePrice       primitive.Decimal128 `bson:"precioBase"`
	SpecialPrice    primitive.Decimal128 `bson:"precioEspecial"`
	DiscountPercent primitive.Decimal128 `bson:"porcentajeDescuento"`
	ValidFrom       time.Time            `bson:"fechaInicio"`
	ValidUntil      time.Time            `bson:"fechaFin"`
	Active          bool                 `bson:"activo"`
	CreatedBy       string               `bson:"creadoPor"`
	CreatedAt       time.Time            `bson:"fechaCreacion"`
	UpdatedAt       time.Time            `bson:"fechaActualizacion"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to encode decimal %s: %w", d.String(), err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode decimal %s: %w", v.String(), err)
	}
	return d, nil
}

func objectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", domain.ErrInvalidProductID, hex)
	}
	return id, nil
}

func newSpecialPriceDoc(sp *domain.SpecialPrice) (*specialPriceDoc, error) {
	productID, err := objectID(sp.ProductID())
	if err != nil {
		return nil, err
	}

	snapshot := sp.Snapshot()
	doc := &specialPriceDoc{
		UserID:       sp.UserID(),
		ClientID:     sp.ClientID(),
		ProductID:    productID,
		ProductName:  snapshot.Name,
		ProductImage: snapshot.Image,
		ValidFrom:    sp.ValidFrom(),
		ValidUntil:   sp.ValidUntil(),
		Active:       sp.Active(),
		CreatedBy:    sp.CreatedBy(),
		CreatedAt:    sp.CreatedAt(),
		UpdatedAt:    sp.UpdatedAt(),
	}
	if sp.ID() != "" {
		if doc.ID, err = primitive.ObjectIDFromHex(sp.ID()); err != nil {
			return nil, fmt.Errorf("invalid special price id %q: %w", sp.ID(), err)
		}
	}
	if doc.BasePrice, err = toDecimal128(snapshot.BasePrice.Decimal()); err != nil {
		return nil, err
	}
	if doc.SpecialPrice, err = toDecimal128(sp.SpecialPrice().Decimal()); err != nil {
		return nil, err
	}
	if doc.DiscountPercent, err = toDecimal128(sp.DiscountPercent()); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *specialPriceDoc) toDomain() (*domain.SpecialPrice, error) {
	price, err := fromDecimal128(d.SpecialPrice)
	if err != nil {
		return nil, err
	}
	discount, err := fromDecimal128(d.DiscountPercent)
	if err != nil {
		return nil, err
	}
	base, err := fromDecimal128(d.BasePrice)
	if err != nil {
		return nil, err
	}

	return domain.ReconstructSpecialPrice(
		d.ID.Hex(),
		domain.Triple{UserID: d.UserID, ClientID: d.ClientID, ProductID: d.ProductID.Hex()},
		domain.NewMoney(price),
		discount,
		d.ValidFrom.UTC(),
		d.ValidUntil.UTC(),
		d.Active,
		domain.ProductSnapshot{Name: d.ProductName, Image: d.ProductImage, BasePrice: domain.NewMoney(base)},
		d.CreatedBy,
		d.CreatedAt.UTC(),
		d.UpdatedAt.UTC(),
	), nil
}

func newProductDoc(p *domain.Product) (*productDoc, error) {
	doc := &productDoc{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Stock:       p.Stock,
		Image:       p.Image,
		SKU:         p.SKU,
		Brand:       p.Brand,
		Rating:      p.Rating.InexactFloat64(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.ID != "" {
		id, err := objectID(p.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = id
	}
	price, err := toDecimal128(p.BasePrice.Decimal())
	if err != nil {
		return nil, err
	}
	doc.BasePrice = price
	return doc, nil
}

func (d *productDoc) toDomain() (*domain.Product, error) {
	price, err := fromDecimal128(d.BasePrice)
	if err != nil {
		return nil, err
	}
	return &domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		BasePrice:   domain.NewMoney(price),
		Category:    d.Category,
		Stock:       d.Stock,
		Image:       d.Image,
		SKU:         d.SKU,
		Brand:       d.Brand,
		Rating:      decimal.NewFromFloat(d.Rating),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}, nil
}
