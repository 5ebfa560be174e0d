package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitapp/pkg/api"
)

// BalanceServiceName is the fully-qualified name of the BalanceService service.
const BalanceServiceName = "splitapp.v1.BalanceService"

// Procedure paths for BalanceService.
const (
	BalanceServiceGetGroupBalancesProcedure = "/splitapp.v1.BalanceService/GetGroupBalances"
)

// BalanceServiceHandler is implemented by the server side of BalanceService.
type BalanceServiceHandler interface {
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
}

// NewBalanceServiceHandler builds an HTTP handler for the service and returns the
// path prefix to mount it on.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	return "/" + BalanceServiceName + "/", route(map[string]http.Handler{
		BalanceServiceGetGroupBalancesProcedure: connect.NewUnaryHandler(BalanceServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opt),
	})
}

// BalanceServiceClient is a client for BalanceService.
type BalanceServiceClient interface {
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
}

// NewBalanceServiceClient returns a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	opt := clientOptions(opts)
	return &balanceServiceClient{
		getGroupBalances: connect.NewClient[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse](httpClient, baseURL+BalanceServiceGetGroupBalancesProcedure, opt),
	}
}

type balanceServiceClient struct {
	getGroupBalances *connect.Client[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse]
}

func (c *balanceServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

// UnimplementedBalanceServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBalanceServiceHandler struct{}

func (UnimplementedBalanceServiceHandler) GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitapp.v1.BalanceService.GetGroupBalances is not implemented"))
}
