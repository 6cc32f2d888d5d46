package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

// UpsertSpecialPriceRequest is the body of POST /api/precios-especiales.
type UpsertSpecialPriceRequest struct {
	UserID       string          `json:"usuarioId" validate:"required,max=255"`
	ClientID     string          `json:"clienteId" validate:"required,max=255"`
	ProductID    string          `json:"productoId" validate:"required,max=255"`
	SpecialPrice decimal.Decimal `json:"precioEspecial" validate:"required,gt=0"`
}

// UpsertSpecialPriceResponse reports a created or updated special price.
type UpsertSpecialPriceResponse struct {
	Message         string  `json:"mensaje"`
	ID              string  `json:"id"`
	DiscountPercent float64 `json:"porcentajeDescuento"`
	Modified        *bool   `json:"modificado,omitempty"`
	Timestamp       string  `json:"timestamp"`
}

// ListProductsQuery holds the query parameters of GET /api/productos.
type ListProductsQuery struct {
	UserID   string  `form:"usuarioId"`
	Category string  `form:"categoria"`
	Search   string  `form:"busqueda"`
	MinPrice *string `form:"precioMin" validate:"omitempty,price"`
	MaxPrice *string `form:"precioMax" validate:"omitempty,price"`
	SortBy   string  `form:"ordenarPor" validate:"omitempty,oneof=nombre precio_asc precio_desc rating"`
	Limit    int     `form:"limite" validate:"omitempty,gte=1"`
	Page     int     `form:"pagina" validate:"omitempty,gte=1,lte=10000"` // contracts.MaxPage
}

var sortOrders = map[string]string{
	"nombre":      contracts.SortByName,
	"precio_asc":  contracts.SortByPriceAsc,
	"precio_desc": contracts.SortByPriceDesc,
	"rating":      contracts.SortByRating,
}

// decimalPtr converts a bound that already passed the price validation.
func decimalPtr(s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	d := decimal.RequireFromString(*s)
	return &d
}

// UserQuery carries the optional usuarioId parameter.
type UserQuery struct {
	UserID string `form:"usuarioId"`
}

// ProductDTO is a product as returned to clients, enriched with the special
// price that applies to the requesting user.
type ProductDTO struct {
	ID              string     `json:"_id"`
	Name            string     `json:"nombre"`
	Description     string     `json:"descripcion"`
	BasePrice       float64    `json:"precioBase"`
	Category        string     `json:"categoria"`
	Stock           int64      `json:"stock"`
	Image           string     `json:"imagen,omitempty"`
	SKU             string     `json:"sku"`
	Brand           string     `json:"marca"`
	Rating          float64    `json:"rating"`
	SpecialPrice    *float64   `json:"precioEspecial,omitempty"`
	DiscountPercent *float64   `json:"porcentajeDescuento,omitempty"`
	HasSpecialPrice bool       `json:"tienePrecioEspecial"`
	DiscountFrom    *time.Time `json:"fechaInicioDescuento,omitempty"`
	DiscountUntil   *time.Time `json:"fechaFinDescuento,omitempty"`
}

func toProductDTO(view domain.ResolvedProduct, withWindow bool) ProductDTO {
	p := view.Product
	dto := ProductDTO{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		BasePrice:       p.BasePrice.Float64(),
		Category:        p.Category,
		Stock:           p.Stock,
		Image:           p.Image,
		SKU:             p.SKU,
		Brand:           p.Brand,
		Rating:          p.Rating.InexactFloat64(),
		HasSpecialPrice: view.HasSpecialPrice,
	}
	if view.SpecialPrice != nil {
		price := view.SpecialPrice.Float64()
		dto.SpecialPrice = &price
	}
	if view.DiscountPercent != nil {
		discount := view.DiscountPercent.InexactFloat64()
		dto.DiscountPercent = &discount
	}
	if withWindow {
		dto.DiscountFrom = view.ValidFrom
		dto.DiscountUntil = view.ValidUntil
	}
	return dto
}

// ListProductsResponse is one page of the catalog.
type ListProductsResponse struct {
	Products   []ProductDTO `json:"productos"`
	Total      int64        `json:"total"`
	Page       int          `json:"pagina"`
	Limit      int          `json:"limite"`
	TotalPages int          `json:"totalPaginas"`
	UserID     string       `json:"usuarioId,omitempty"`
	Timestamp  string       `json:"timestamp"`
}

// GetProductResponse wraps a single product.
type GetProductResponse struct {
	Product   ProductDTO `json:"producto"`
	UserID    string     `json:"usuarioId,omitempty"`
	Timestamp string     `json:"timestamp"`
}

// SpecialPriceDTO is a stored special price record.
type SpecialPriceDTO struct {
	ID              string    `json:"_id"`
	UserID          string    `json:"usuarioId"`
	ClientID        string    `json:"clienteId"`
	ProductID       string    `json:"productoId"`
	ProductName     string    `json:"productoNombre"`
	ProductImage    string    `json:"productoImagen,omitempty"`
	BasePrice       float64   `json:"precioBase"`
	SpecialPrice    float64   `json:"precioEspecial"`
	DiscountPercent float64   `json:"porcentajeDescuento"`
	ValidFrom       time.Time `json:"fechaInicio"`
	ValidUntil      time.Time `json:"fechaFin"`
	Active          bool      `json:"activo"`
	CreatedBy       string    `json:"creadoPor"`
	CreatedAt       time.Time `json:"fechaCreacion"`
	UpdatedAt       time.Time `json:"fechaActualizacion"`
}

func toSpecialPriceDTO(sp *domain.SpecialPrice) SpecialPriceDTO {
	snapshot := sp.Snapshot()
	return SpecialPriceDTO{
		ID:              sp.ID(),
		UserID:          sp.UserID(),
		ClientID:        sp.ClientID(),
		ProductID:       sp.ProductID(),
		ProductName:     snapshot.Name,
		ProductImage:    snapshot.Image,
		BasePrice:       snapshot.BasePrice.Float64(),
		SpecialPrice:    sp.SpecialPrice().Float64(),
		DiscountPercent: sp.DiscountPercent().InexactFloat64(),
		ValidFrom:       sp.ValidFrom(),
		ValidUntil:      sp.ValidUntil(),
		Active:          sp.Active(),
		CreatedBy:       sp.CreatedBy(),
		CreatedAt:       sp.CreatedAt(),
		UpdatedAt:       sp.UpdatedAt(),
	}
}

// ListSpecialPricesResponse lists special price records.
type ListSpecialPricesResponse struct {
	SpecialPrices []SpecialPriceDTO `json:"preciosEspeciales"`
	Total         int               `json:"total"`
	Timestamp     string            `json:"timestamp"`
}
