package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitapp/internal/middleware"
	"github.com/mmynk/splitapp/internal/models"
	"github.com/mmynk/splitapp/internal/storage"
	"github.com/mmynk/splitapp/pkg/api"
	"github.com/mmynk/splitapp/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group owned by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	email, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:       strings.TrimSpace(req.Msg.Name),
		OwnerEmail: email,
		Members:    membersFromAPI(req.Msg.Members),
	}
	if err := group.Validate(); err != nil {
		return nil, toConnectError("CreateGroup", err)
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, toConnectError("CreateGroup", err)
	}

	slog.Info("Group created", "group_id", group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{Group: groupToAPI(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupId)

	group, err := loadGroup(ctx, s.store, "GetGroup", req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)

	return connect.NewResponse(&api.GetGroupResponse{Group: groupToAPI(group)}), nil
}

// ListGroups returns the groups the caller owns or belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	email, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListGroups request received", "caller", email)

	groups, err := s.store.ListGroupsForMember(ctx, email)
	if err != nil {
		return nil, toConnectError("ListGroups", err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		out[i] = groupToAPI(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// UpdateGroup renames a group and replaces its member list. Existing
// expenses are kept even if they mention removed members.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	slog.Info("UpdateGroup request received",
		"group_id", req.Msg.GroupId,
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	group, err := loadGroup(ctx, s.store, "UpdateGroup", req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	group.Name = strings.TrimSpace(req.Msg.Name)
	group.Members = membersFromAPI(req.Msg.Members)
	if err := group.Validate(); err != nil {
		return nil, toConnectError("UpdateGroup", err)
	}

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, toConnectError("UpdateGroup", err)
	}

	slog.Info("Group updated", "group_id", group.ID)

	return connect.NewResponse(&api.UpdateGroupResponse{Group: groupToAPI(group)}), nil
}

// DeleteGroup removes a group and all of its expenses. Only the owner may
// delete.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupId)

	group, err := loadGroup(ctx, s.store, "DeleteGroup", req.Msg.GroupId)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(group.OwnerEmail, middleware.GetEmail(ctx)) {
		return nil, connect.NewError(connect.CodePermissionDenied, errOwnerOnly)
	}

	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		return nil, toConnectError("DeleteGroup", err)
	}

	slog.Info("Group deleted", "group_id", group.ID)

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// ListMembersInExpenses lists every name that appears on an expense in the
// group, so the UI can warn before a member with history is removed.
func (s *GroupService) ListMembersInExpenses(ctx context.Context, req *connect.Request[api.ListMembersInExpensesRequest]) (*connect.Response[api.ListMembersInExpensesResponse], error) {
	slog.Info("ListMembersInExpenses request received", "group_id", req.Msg.GroupId)

	group, err := loadGroup(ctx, s.store, "ListMembersInExpenses", req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	names, err := s.store.ListMembersInExpenses(ctx, group.ID)
	if err != nil {
		return nil, toConnectError("ListMembersInExpenses", err)
	}
	if names == nil {
		names = []string{}
	}

	return connect.NewResponse(&api.ListMembersInExpensesResponse{Names: names}), nil
}
