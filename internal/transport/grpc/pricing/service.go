// Package pricing exposes the special price use cases over gRPC. Messages are
// carried as google.protobuf.Struct so the service needs no generated code.
package pricing

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "pricing.v1.SpecialPriceService"

// Full method names.
const (
	UpsertSpecialPriceMethod = "/" + ServiceName + "/UpsertSpecialPrice"
	ListSpecialPricesMethod  = "/" + ServiceName + "/ListSpecialPrices"
	ResolveProductsMethod    = "/" + ServiceName + "/ResolveProducts"
)

// SpecialPriceServiceServer is the server API of the special price service.
type SpecialPriceServiceServer interface {
	UpsertSpecialPrice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListSpecialPrices(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ResolveProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv SpecialPriceServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SpecialPriceServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(SpecialPriceServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes SpecialPriceService for grpc.Server registration.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SpecialPriceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "UpsertSpecialPrice",
			Handler: unaryHandler(UpsertSpecialPriceMethod, func(srv SpecialPriceServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.UpsertSpecialPrice(ctx, req)
			}),
		},
		{
			MethodName: "ListSpecialPrices",
			Handler: unaryHandler(ListSpecialPricesMethod, func(srv SpecialPriceServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.ListSpecialPrices(ctx, req)
			}),
		},
		{
			MethodName: "ResolveProducts",
			Handler: unaryHandler(ResolveProductsMethod, func(srv SpecialPriceServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.ResolveProducts(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pricing/v1/special_price.proto",
}

// RegisterSpecialPriceServiceServer registers srv on s.
func RegisterSpecialPriceServiceServer(s grpc.ServiceRegistrar, srv SpecialPriceServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client is a SpecialPriceService client.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client on cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertSpecialPrice creates or updates a special price.
func (c *Client) UpsertSpecialPrice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, UpsertSpecialPriceMethod, in, opts...)
}

// ListSpecialPrices lists special prices, optionally for one user.
func (c *Client) ListSpecialPrices(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListSpecialPricesMethod, in, opts...)
}

// ResolveProducts prices products for a user.
func (c *Client) ResolveProducts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ResolveProductsMethod, in, opts...)
}
