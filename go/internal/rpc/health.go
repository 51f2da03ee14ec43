package rpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const HealthServiceName = "meshiroyale.v1.HealthService"

const HealthServiceCheckProcedure = "/meshiroyale.v1.HealthService/Check"

// HealthCheck reports an error when a dependency is unavailable.
type HealthCheck func(ctx context.Context) error

// NewHealthServiceHandler serves Check, answering "SERVING" while every
// check passes.
func NewHealthServiceHandler(checks []HealthCheck, opts ...connect.HandlerOption) (string, http.Handler) {
	check := connect.NewUnaryHandler(HealthServiceCheckProcedure,
		func(ctx context.Context, _ *connect.Request[emptypb.Empty]) (*connect.Response[wrapperspb.StringValue], error) {
			for _, c := range checks {
				if err := c(ctx); err != nil {
					return nil, connect.NewError(connect.CodeUnavailable, err)
				}
			}
			return connect.NewResponse(wrapperspb.String("SERVING")), nil
		},
		handlerOptions(opts)...,
	)
	return "/" + HealthServiceName + "/", check
}

// CheckHealth calls the health service at baseURL.
func CheckHealth(ctx context.Context, httpClient connect.HTTPClient, baseURL string) (string, error) {
	client := connect.NewClient[emptypb.Empty, wrapperspb.StringValue](
		httpClient, baseURL+HealthServiceCheckProcedure, clientOptions(nil)...,
	)
	res, err := client.CallUnary(ctx, connect.NewRequest(&emptypb.Empty{}))
	if err != nil {
		return "", err
	}
	return res.Msg.GetValue(), nil
}
