package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
)

// stringField returns the string value of key, or "" when absent.
func stringField(req *structpb.Struct, key string) (string, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return "", nil
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", key)
	}
	return s.StringValue, nil
}

// moneyField accepts a decimal string ("950.00") or a number.
func moneyField(req *structpb.Struct, key string) (domain.Money, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return domain.Money{}, status.Errorf(codes.InvalidArgument, "%s is required", key)
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		m, err := domain.NewMoneyFromString(kind.StringValue)
		if err != nil {
			return domain.Money{}, status.Errorf(codes.InvalidArgument, "%s is not a decimal: %q", key, kind.StringValue)
		}
		return m, nil
	case *structpb.Value_NumberValue:
		if math.IsNaN(kind.NumberValue) || math.IsInf(kind.NumberValue, 0) {
			return domain.Money{}, status.Errorf(codes.InvalidArgument, "%s must be a finite number", key)
		}
		return domain.NewMoneyFromFloat(kind.NumberValue), nil
	default:
		return domain.Money{}, status.Errorf(codes.InvalidArgument, "%s must be a string or number", key)
	}
}

func stringListField(req *structpb.Struct, key string) ([]string, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return nil, nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s must be a list", key)
	}
	out := make([]string, 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		s, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "%s[%d] must be a string", key, i)
		}
		out = append(out, s.StringValue)
	}
	return out, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatDiscount(d decimal.Decimal) string {
	return d.StringFixed(1)
}

func specialPriceToMap(sp *domain.SpecialPrice) map[string]interface{} {
	snapshot := sp.Snapshot()
	return map[string]interface{}{
		"id":               sp.ID(),
		"user_id":          sp.UserID(),
		"client_id":        sp.ClientID(),
		"product_id":       sp.ProductID(),
		"product_name":     snapshot.Name,
		"product_image":    snapshot.Image,
		"base_price":       snapshot.BasePrice.String(),
		"special_price":    sp.SpecialPrice().String(),
		"discount_percent": formatDiscount(sp.DiscountPercent()),
		"valid_from":       formatTime(sp.ValidFrom()),
		"valid_until":      formatTime(sp.ValidUntil()),
		"active":           sp.Active(),
		"created_by":       sp.CreatedBy(),
		"created_at":       formatTime(sp.CreatedAt()),
		"updated_at":       formatTime(sp.UpdatedAt()),
	}
}

func resolvedProductToMap(view domain.ResolvedProduct) map[string]interface{} {
	p := view.Product
	m := map[string]interface{}{
		"product_id":        p.ID,
		"name":              p.Name,
		"sku":               p.SKU,
		"base_price":        p.BasePrice.String(),
		"effective_price":   view.EffectivePrice().String(),
		"has_special_price": view.HasSpecialPrice,
	}
	if view.SpecialPrice != nil {
		m["special_price"] = view.SpecialPrice.String()
	}
	if view.DiscountPercent != nil {
		m["discount_percent"] = formatDiscount(*view.DiscountPercent)
	}
	if view.ValidFrom != nil {
		m["valid_from"] = formatTime(*view.ValidFrom)
	}
	if view.ValidUntil != nil {
		m["valid_until"] = formatTime(*view.ValidUntil)
	}
	return m
}

func newStruct(fields map[string]interface{}) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("failed to encode response: %v", err))
	}
	return s, nil
}
