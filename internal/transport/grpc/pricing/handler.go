package pricing

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/queries/list_special_prices"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/queries/resolve_products"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/usecases/upsert_special_price"
)

// Handler implements SpecialPriceServiceServer.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	// Commands
	upsertSpecialPrice *upsert_special_price.Interactor

	// Queries
	listSpecialPrices *list_special_prices.Query
	resolveProducts   *resolve_products.Query
}

// NewHandler creates a new gRPC special price handler.
func NewHandler(
	upsertSpecialPrice *upsert_special_price.Interactor,
	listSpecialPrices *list_special_prices.Query,
	resolveProducts *resolve_products.Query,
) *Handler {
	return &Handler{
		upsertSpecialPrice: upsertSpecialPrice,
		listSpecialPrices:  listSpecialPrices,
		resolveProducts:    resolveProducts,
	}
}

var _ SpecialPriceServiceServer = (*Handler)(nil)

// UpsertSpecialPrice creates or updates the special price of a
// (user_id, client_id, product_id) triple.
func (h *Handler) UpsertSpecialPrice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// 1. Decode request
	userID, err := stringField(req, "user_id")
	if err != nil {
		return nil, err
	}
	clientID, err := stringField(req, "client_id")
	if err != nil {
		return nil, err
	}
	productID, err := stringField(req, "product_id")
	if err != nil {
		return nil, err
	}
	price, err := moneyField(req, "special_price")
	if err != nil {
		return nil, err
	}

	// 2. Execute use case
	resp, err := h.upsertSpecialPrice.Execute(ctx, &upsert_special_price.Request{
		UserID:       userID,
		ClientID:     clientID,
		ProductID:    productID,
		SpecialPrice: price,
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	// 3. Build reply
	return newStruct(map[string]interface{}{
		"id":               resp.ID,
		"was_created":      resp.WasCreated,
		"modified":         resp.Modified,
		"discount_percent": formatDiscount(resp.DiscountPercent),
		"special_price":    resp.Record.SpecialPrice().String(),
	})
}

// ListSpecialPrices lists stored records, narrowed to user_id when given.
func (h *Handler) ListSpecialPrices(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := stringField(req, "user_id")
	if err != nil {
		return nil, err
	}

	resp, err := h.listSpecialPrices.Execute(ctx, &list_special_prices.Request{UserID: userID})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	records := make([]interface{}, 0, len(resp.SpecialPrices))
	for _, sp := range resp.SpecialPrices {
		records = append(records, specialPriceToMap(sp))
	}
	return newStruct(map[string]interface{}{
		"special_prices": records,
		"total":          float64(resp.Total),
	})
}

// ResolveProducts returns product_ids priced for user_id, in request order.
func (h *Handler) ResolveProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := stringField(req, "user_id")
	if err != nil {
		return nil, err
	}
	productIDs, err := stringListField(req, "product_ids")
	if err != nil {
		return nil, err
	}

	views, err := h.resolveProducts.Execute(ctx, &resolve_products.Request{UserID: userID, ProductIDs: productIDs})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	products := make([]interface{}, 0, len(views))
	for _, view := range views {
		products = append(products, resolvedProductToMap(view))
	}
	return newStruct(map[string]interface{}{
		"products": products,
	})
}
