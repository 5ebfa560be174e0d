package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitapp/internal/models"
	"github.com/mmynk/splitapp/internal/receipt"
	"github.com/mmynk/splitapp/internal/reminder"
	"github.com/mmynk/splitapp/internal/storage"
)

// errExternal is the only detail callers see when a store or collaborator
// fails. The cause is logged.
var errExternal = errors.New("external operation failed")

var (
	errUnauthenticated = errors.New("authentication required")
	errAccessDenied    = errors.New("you do not have access to this group")
	errOwnerOnly       = errors.New("only the group owner can do this")
)

// toConnectError maps domain errors onto connect codes at the RPC boundary.
func toConnectError(op string, err error) error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return err
	case models.IsValidation(err):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, reminder.ErrNoSettlement):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, reminder.ErrNoEmail):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, reminder.ErrThrottled):
		return connect.NewError(connect.CodeResourceExhausted, err)
	case errors.Is(err, receipt.ErrUnreadable):
		return connect.NewError(connect.CodeInvalidArgument, receipt.ErrUnreadable)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, reminder.ErrDelivery), errors.Is(err, receipt.ErrUnavailable):
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeUnavailable, errExternal)
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, errExternal)
	}
}
