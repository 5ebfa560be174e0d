package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitapp/pkg/api"
)

// ReceiptServiceName is the fully-qualified name of the ReceiptService service.
const ReceiptServiceName = "splitapp.v1.ReceiptService"

// Procedure paths for ReceiptService.
const (
	ReceiptServiceScanReceiptProcedure         = "/splitapp.v1.ReceiptService/ScanReceipt"
	ReceiptServicePreviewReceiptSplitProcedure = "/splitapp.v1.ReceiptService/PreviewReceiptSplit"
	ReceiptServiceConfirmReceiptProcedure      = "/splitapp.v1.ReceiptService/ConfirmReceipt"
)

// ReceiptServiceHandler is implemented by the server side of ReceiptService.
type ReceiptServiceHandler interface {
	ScanReceipt(context.Context, *connect.Request[api.ScanReceiptRequest]) (*connect.Response[api.ScanReceiptResponse], error)
	PreviewReceiptSplit(context.Context, *connect.Request[api.PreviewReceiptSplitRequest]) (*connect.Response[api.PreviewReceiptSplitResponse], error)
	ConfirmReceipt(context.Context, *connect.Request[api.ConfirmReceiptRequest]) (*connect.Response[api.ConfirmReceiptResponse], error)
}

// NewReceiptServiceHandler builds an HTTP handler for the service and returns the
// path prefix to mount it on.
func NewReceiptServiceHandler(svc ReceiptServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	return "/" + ReceiptServiceName + "/", route(map[string]http.Handler{
		ReceiptServiceScanReceiptProcedure:         connect.NewUnaryHandler(ReceiptServiceScanReceiptProcedure, svc.ScanReceipt, opt),
		ReceiptServicePreviewReceiptSplitProcedure: connect.NewUnaryHandler(ReceiptServicePreviewReceiptSplitProcedure, svc.PreviewReceiptSplit, opt),
		ReceiptServiceConfirmReceiptProcedure:      connect.NewUnaryHandler(ReceiptServiceConfirmReceiptProcedure, svc.ConfirmReceipt, opt),
	})
}

// ReceiptServiceClient is a client for ReceiptService.
type ReceiptServiceClient interface {
	ScanReceipt(context.Context, *connect.Request[api.ScanReceiptRequest]) (*connect.Response[api.ScanReceiptResponse], error)
	PreviewReceiptSplit(context.Context, *connect.Request[api.PreviewReceiptSplitRequest]) (*connect.Response[api.PreviewReceiptSplitResponse], error)
	ConfirmReceipt(context.Context, *connect.Request[api.ConfirmReceiptRequest]) (*connect.Response[api.ConfirmReceiptResponse], error)
}

// NewReceiptServiceClient returns a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewReceiptServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReceiptServiceClient {
	opt := clientOptions(opts)
	return &receiptServiceClient{
		scanReceipt:         connect.NewClient[api.ScanReceiptRequest, api.ScanReceiptResponse](httpClient, baseURL+ReceiptServiceScanReceiptProcedure, opt),
		previewReceiptSplit: connect.NewClient[api.PreviewReceiptSplitRequest, api.PreviewReceiptSplitResponse](httpClient, baseURL+ReceiptServicePreviewReceiptSplitProcedure, opt),
		confirmReceipt:      connect.NewClient[api.ConfirmReceiptRequest, api.ConfirmReceiptResponse](httpClient, baseURL+ReceiptServiceConfirmReceiptProcedure, opt),
	}
}

type receiptServiceClient struct {
	scanReceipt         *connect.Client[api.ScanReceiptRequest, api.ScanReceiptResponse]
	previewReceiptSplit *connect.Client[api.PreviewReceiptSplitRequest, api.PreviewReceiptSplitResponse]
	confirmReceipt      *connect.Client[api.ConfirmReceiptRequest, api.ConfirmReceiptResponse]
}

func (c *receiptServiceClient) ScanReceipt(ctx context.Context, req *connect.Request[api.ScanReceiptRequest]) (*connect.Response[api.ScanReceiptResponse], error) {
	return c.scanReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) PreviewReceiptSplit(ctx context.Context, req *connect.Request[api.PreviewReceiptSplitRequest]) (*connect.Response[api.PreviewReceiptSplitResponse], error) {
	return c.previewReceiptSplit.CallUnary(ctx, req)
}

func (c *receiptServiceClient) ConfirmReceipt(ctx context.Context, req *connect.Request[api.ConfirmReceiptRequest]) (*connect.Response[api.ConfirmReceiptResponse], error) {
	return c.confirmReceipt.CallUnary(ctx, req)
}

// UnimplementedReceiptServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedReceiptServiceHandler struct{}

func (UnimplementedReceiptServiceHandler) ScanReceipt(context.Context, *connect.Request[api.ScanReceiptRequest]) (*connect.Response[api.ScanReceiptResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitapp.v1.ReceiptService.ScanReceipt is not implemented"))
}

func (UnimplementedReceiptServiceHandler) PreviewReceiptSplit(context.Context, *connect.Request[api.PreviewReceiptSplitRequest]) (*connect.Response[api.PreviewReceiptSplitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitapp.v1.ReceiptService.PreviewReceiptSplit is not implemented"))
}

func (UnimplementedReceiptServiceHandler) ConfirmReceipt(context.Context, *connect.Request[api.ConfirmReceiptRequest]) (*connect.Response[api.ConfirmReceiptResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitapp.v1.ReceiptService.ConfirmReceipt is not implemented"))
}
