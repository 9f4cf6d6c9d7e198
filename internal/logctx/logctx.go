// Package logctx enriches slog records with request-scoped context:
// which tool is running and how the caller authenticated. The handler is
// a cheap pass-through when the context carries nothing.
package logctx

import (
	"context"
	"log/slog"
)

type Handler struct {
	slog.Handler
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if td, ok := ctx.Value(toolCallDataKey{}).(*ToolCallData); ok {
		r.AddAttrs(slog.Group("tool",
			slog.String("name", td.ToolName),
		))
	}

	if ad, ok := ctx.Value(authDataKey{}).(*AuthData); ok {
		r.AddAttrs(slog.Group("auth",
			slog.String("type", ad.AuthType),
			slog.String("user_id", ad.UserID),
		))
	}

	return h.Handler.Handle(ctx, r)
}

type toolCallDataKey struct{}

type ToolCallData struct {
	ToolName string
}

func WithToolCallData(ctx context.Context, data *ToolCallData) context.Context {
	return context.WithValue(ctx, toolCallDataKey{}, data)
}

type authDataKey struct{}

// AuthData carries the resolved authentication outcome. It never holds
// credentials or token material.
type AuthData struct {
	AuthType string
	UserID   string
}

func WithAuthData(ctx context.Context, data *AuthData) context.Context {
	return context.WithValue(ctx, authDataKey{}, data)
}
