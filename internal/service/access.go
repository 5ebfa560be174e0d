package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitapp/internal/middleware"
	"github.com/mmynk/splitapp/internal/models"
	"github.com/mmynk/splitapp/internal/storage"
)

// callerEmail returns the authenticated email or an Unauthenticated error.
func callerEmail(ctx context.Context) (string, error) {
	email := middleware.GetEmail(ctx)
	if email == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errUnauthenticated)
	}
	return email, nil
}

// loadGroup fetches a group the caller is allowed to see.
func loadGroup(ctx context.Context, store storage.Store, op, groupID string) (*models.Group, error) {
	email, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(groupID) == "" {
		return nil, toConnectError(op, &models.ValidationError{Field: "groupId", Reason: "group id is required"})
	}

	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, toConnectError(op, err)
	}
	if !group.CanAccess(email) {
		return nil, connect.NewError(connect.CodePermissionDenied, errAccessDenied)
	}
	return group, nil
}
