package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// groupScoped is implemented by requests that target a single group.
type groupScoped interface {
	GetGroupId() string
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with the caller's identity, the target group when there is one, the
// duration and the result code. Install it inside RequireAuth so the caller
// is known.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			attrs := requestAttrs(ctx, req)

			resp, err := next(ctx, req)

			attrs = append(attrs, slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			var connectErr *connect.Error
			switch {
			case err == nil:
				slog.LogAttrs(ctx, slog.LevelInfo, "RPC ok", attrs...)
			case errors.As(err, &connectErr):
				attrs = append(attrs,
					slog.String("code", connectErr.Code().String()),
					slog.String("error", connectErr.Message()),
				)
				slog.LogAttrs(ctx, slog.LevelWarn, "RPC error", attrs...)
			default:
				attrs = append(attrs, slog.Any("error", err))
				slog.LogAttrs(ctx, slog.LevelError, "RPC error", attrs...)
			}

			return resp, err
		}
	}
}

func requestAttrs(ctx context.Context, req connect.AnyRequest) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("procedure", req.Spec().Procedure),
		slog.String("caller", GetEmail(ctx)),
	}
	if name := GetName(ctx); name != "" {
		attrs = append(attrs, slog.String("caller_name", name))
	}
	if g, ok := req.Any().(groupScoped); ok && g.GetGroupId() != "" {
		attrs = append(attrs, slog.String("group_id", g.GetGroupId()))
	}
	return attrs
}
