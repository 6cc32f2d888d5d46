package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/queries/get_product"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/queries/list_products"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/queries/list_special_prices"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/usecases/upsert_special_price"
	"github.com/light-bringer/specialprice-service/internal/pkg/clock"
)

// Handler serves the REST API. It's a thin coordinator that delegates to use
// cases and queries.
type Handler struct {
	// Commands
	upsertSpecialPrice *upsert_special_price.Interactor

	// Queries
	listProducts      *list_products.Query
	getProduct        *get_product.Query
	listSpecialPrices *list_special_prices.Query

	clock  clock.Clock
	ping   func(ctx context.Context) error
	driver string
}

// NewHandler creates a new HTTP handler. ping backs the health check.
func NewHandler(
	upsertSpecialPrice *upsert_special_price.Interactor,
	listProducts *list_products.Query,
	getProduct *get_product.Query,
	listSpecialPrices *list_special_prices.Query,
	clk clock.Clock,
	ping func(ctx context.Context) error,
	driver string,
) *Handler {
	return &Handler{
		upsertSpecialPrice: upsertSpecialPrice,
		listProducts:       listProducts,
		getProduct:         getProduct,
		listSpecialPrices:  listSpecialPrices,
		clock:              clk,
		ping:               ping,
		driver:             driver,
	}
}

func (h *Handler) timestamp() string {
	return h.clock.Now().UTC().Format(time.RFC3339Nano)
}

// Health reports store connectivity.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	storeStatus := "connected"
	status := http.StatusOK
	if h.ping != nil {
		if err := h.ping(ctx); err != nil {
			storeStatus = "error"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, gin.H{
		"ok":        status == http.StatusOK,
		"store":     storeStatus,
		"driver":    h.driver,
		"timestamp": h.timestamp(),
	})
}

// ListProducts handles GET /api/productos.
func (h *Handler) ListProducts(c *gin.Context) {
	var q ListProductsQuery
	if !bindQuery(c, &q) {
		return
	}

	resp, err := h.listProducts.Execute(c.Request.Context(), &list_products.Request{
		UserID:   q.UserID,
		Category: q.Category,
		Search:   q.Search,
		MinPrice: decimalPtr(q.MinPrice),
		MaxPrice: decimalPtr(q.MaxPrice),
		SortBy:   sortOrders[q.SortBy],
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	products := make([]ProductDTO, 0, len(resp.Products))
	for _, view := range resp.Products {
		products = append(products, toProductDTO(view, false))
	}

	c.JSON(http.StatusOK, ListProductsResponse{
		Products:   products,
		Total:      resp.Total,
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalPages: resp.TotalPages,
		UserID:     resp.UserID,
		Timestamp:  h.timestamp(),
	})
}

// GetProduct handles GET /api/productos/:id.
func (h *Handler) GetProduct(c *gin.Context) {
	var q UserQuery
	if !bindQuery(c, &q) {
		return
	}

	view, err := h.getProduct.Execute(c.Request.Context(), &get_product.Request{
		ProductID: c.Param("id"),
		UserID:    q.UserID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := GetProductResponse{
		Product:   toProductDTO(*view, true),
		Timestamp: h.timestamp(),
	}
	if view.HasSpecialPrice {
		resp.UserID = q.UserID
	}
	c.JSON(http.StatusOK, resp)
}

// ListSpecialPrices handles GET /api/precios-especiales.
func (h *Handler) ListSpecialPrices(c *gin.Context) {
	var q UserQuery
	if !bindQuery(c, &q) {
		return
	}

	resp, err := h.listSpecialPrices.Execute(c.Request.Context(), &list_special_prices.Request{UserID: q.UserID})
	if err != nil {
		writeError(c, err)
		return
	}

	records := make([]SpecialPriceDTO, 0, len(resp.SpecialPrices))
	for _, sp := range resp.SpecialPrices {
		records = append(records, toSpecialPriceDTO(sp))
	}

	c.JSON(http.StatusOK, ListSpecialPricesResponse{
		SpecialPrices: records,
		Total:         resp.Total,
		Timestamp:     h.timestamp(),
	})
}

// UpsertSpecialPrice handles POST /api/precios-especiales: 201 when the
// record is created, 200 when an existing one is updated.
func (h *Handler) UpsertSpecialPrice(c *gin.Context) {
	var req UpsertSpecialPriceRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.upsertSpecialPrice.Execute(c.Request.Context(), &upsert_special_price.Request{
		UserID:       req.UserID,
		ClientID:     req.ClientID,
		ProductID:    req.ProductID,
		SpecialPrice: domain.NewMoney(req.SpecialPrice),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	out := UpsertSpecialPriceResponse{
		ID:              resp.ID,
		DiscountPercent: resp.DiscountPercent.InexactFloat64(),
		Timestamp:       h.timestamp(),
	}
	if resp.WasCreated {
		out.Message = "Precio especial creado exitosamente"
		c.JSON(http.StatusCreated, out)
		return
	}

	modified := resp.Modified
	out.Message = "Precio especial actualizado exitosamente"
	out.Modified = &modified
	c.JSON(http.StatusOK, out)
}
