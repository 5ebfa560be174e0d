package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitapp/pkg/api"
)

// ReminderServiceName is the fully-qualified name of the ReminderService service.
const ReminderServiceName = "splitapp.v1.ReminderService"

// Procedure paths for ReminderService.
const (
	ReminderServicePreviewReminderProcedure = "/splitapp.v1.ReminderService/PreviewReminder"
	ReminderServiceSendReminderProcedure    = "/splitapp.v1.ReminderService/SendReminder"
)

// ReminderServiceHandler is implemented by the server side of ReminderService.
type ReminderServiceHandler interface {
	PreviewReminder(context.Context, *connect.Request[api.PreviewReminderRequest]) (*connect.Response[api.PreviewReminderResponse], error)
	SendReminder(context.Context, *connect.Request[api.SendReminderRequest]) (*connect.Response[api.SendReminderResponse], error)
}

// NewReminderServiceHandler builds an HTTP handler for the service and returns the
// path prefix to mount it on.
func NewReminderServiceHandler(svc ReminderServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	return "/" + ReminderServiceName + "/", route(map[string]http.Handler{
		ReminderServicePreviewReminderProcedure: connect.NewUnaryHandler(ReminderServicePreviewReminderProcedure, svc.PreviewReminder, opt),
		ReminderServiceSendReminderProcedure:    connect.NewUnaryHandler(ReminderServiceSendReminderProcedure, svc.SendReminder, opt),
	})
}

// ReminderServiceClient is a client for ReminderService.
type ReminderServiceClient interface {
	PreviewReminder(context.Context, *connect.Request[api.PreviewReminderRequest]) (*connect.Response[api.PreviewReminderResponse], error)
	SendReminder(context.Context, *connect.Request[api.SendReminderRequest]) (*connect.Response[api.SendReminderResponse], error)
}

// NewReminderServiceClient returns a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewReminderServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReminderServiceClient {
	opt := clientOptions(opts)
	return &reminderServiceClient{
		previewReminder: connect.NewClient[api.PreviewReminderRequest, api.PreviewReminderResponse](httpClient, baseURL+ReminderServicePreviewReminderProcedure, opt),
		sendReminder:    connect.NewClient[api.SendReminderRequest, api.SendReminderResponse](httpClient, baseURL+ReminderServiceSendReminderProcedure, opt),
	}
}

type reminderServiceClient struct {
	previewReminder *connect.Client[api.PreviewReminderRequest, api.PreviewReminderResponse]
	sendReminder    *connect.Client[api.SendReminderRequest, api.SendReminderResponse]
}

func (c *reminderServiceClient) PreviewReminder(ctx context.Context, req *connect.Request[api.PreviewReminderRequest]) (*connect.Response[api.PreviewReminderResponse], error) {
	return c.previewReminder.CallUnary(ctx, req)
}

func (c *reminderServiceClient) SendReminder(ctx context.Context, req *connect.Request[api.SendReminderRequest]) (*connect.Response[api.SendReminderResponse], error) {
	return c.sendReminder.CallUnary(ctx, req)
}

// UnimplementedReminderServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedReminderServiceHandler struct{}

func (UnimplementedReminderServiceHandler) PreviewReminder(context.Context, *connect.Request[api.PreviewReminderRequest]) (*connect.Response[api.PreviewReminderResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitapp.v1.ReminderService.PreviewReminder is not implemented"))
}

func (UnimplementedReminderServiceHandler) SendReminder(context.Context, *connect.Request[api.SendReminderRequest]) (*connect.Response[api.SendReminderResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitapp.v1.ReminderService.SendReminder is not implemented"))
}
