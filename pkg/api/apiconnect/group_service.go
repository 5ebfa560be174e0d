package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitapp/pkg/api"
)

// GroupServiceName is the fully-qualified name of the GroupService service.
const GroupServiceName = "splitapp.v1.GroupService"

// Procedure paths for GroupService.
const (
	GroupServiceCreateGroupProcedure           = "/splitapp.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure              = "/splitapp.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure            = "/splitapp.v1.GroupService/ListGroups"
	GroupServiceUpdateGroupProcedure           = "/splitapp.v1.GroupService/UpdateGroup"
	GroupServiceDeleteGroupProcedure           = "/splitapp.v1.GroupService/DeleteGroup"
	GroupServiceListMembersInExpensesProcedure = "/splitapp.v1.GroupService/ListMembersInExpenses"
)

// GroupServiceHandler is implemented by the server side of GroupService.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	UpdateGroup(context.Context, *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	ListMembersInExpenses(context.Context, *connect.Request[api.ListMembersInExpensesRequest]) (*connect.Response[api.ListMembersInExpensesResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler for the service and returns the
// path prefix to mount it on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	return "/" + GroupServiceName + "/", route(map[string]http.Handler{
		GroupServiceCreateGroupProcedure:           connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opt),
		GroupServiceGetGroupProcedure:              connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opt),
		GroupServiceListGroupsProcedure:            connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opt),
		GroupServiceUpdateGroupProcedure:           connect.NewUnaryHandler(GroupServiceUpdateGroupProcedure, svc.UpdateGroup, opt),
		GroupServiceDeleteGroupProcedure:           connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opt),
		GroupServiceListMembersInExpensesProcedure: connect.NewUnaryHandler(GroupServiceListMembersInExpensesProcedure, svc.ListMembersInExpenses, opt),
	})
}

// GroupServiceClient is a client for GroupService.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	UpdateGroup(context.Context, *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	ListMembersInExpenses(context.Context, *connect.Request[api.ListMembersInExpensesRequest]) (*connect.Response[api.ListMembersInExpensesResponse], error)
}

// NewGroupServiceClient returns a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	opt := clientOptions(opts)
	return &groupServiceClient{
		createGroup:           connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opt),
		getGroup:              connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opt),
		listGroups:            connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opt),
		updateGroup:           connect.NewClient[api.UpdateGroupRequest, api.UpdateGroupResponse](httpClient, baseURL+GroupServiceUpdateGroupProcedure, opt),
		deleteGroup:           connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opt),
		listMembersInExpenses: connect.NewClient[api.ListMembersInExpensesRequest, api.ListMembersInExpensesResponse](httpClient, baseURL+GroupServiceListMembersInExpensesProcedure, opt),
	}
}

type groupServiceClient struct {
	createGroup           *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup              *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups            *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	updateGroup           *connect.Client[api.UpdateGroupRequest, api.UpdateGroupResponse]
	deleteGroup           *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	listMembersInExpenses *connect.Client[api.ListMembersInExpensesRequest, api.ListMembersInExpensesResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	return c.updateGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListMembersInExpenses(ctx context.Context, req *connect.Request[api.ListMembersInExpensesRequest]) (*connect.Response[api.ListMembersInExpensesResponse], error) {
	return c.listMembersInExpenses.CallUnary(ctx, req)
}

// UnimplementedGroupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGroupServiceHandler struct{}

func (UnimplementedGroupServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitapp.v1.GroupService.CreateGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitapp.v1.GroupService.GetGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitapp.v1.GroupService.ListGroups is not implemented"))
}

func (UnimplementedGroupServiceHandler) UpdateGroup(context.Context, *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitapp.v1.GroupService.UpdateGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitapp.v1.GroupService.DeleteGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) ListMembersInExpenses(context.Context, *connect.Request[api.ListMembersInExpensesRequest]) (*connect.Response[api.ListMembersInExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitapp.v1.GroupService.ListMembersInExpenses is not implemented"))
}
