package logger

import (
	"context"

	"github.com/google/uuid"
)

// NewConnContext tags ctx with a fresh connection id and the client address
func NewConnContext(ctx context.Context, remoteAddr string) context.Context {
	ctx = context.WithValue(ctx, ConnIDKey, uuid.New().String())
	if remoteAddr != "" {
		ctx = context.WithValue(ctx, RemoteAddrKey, remoteAddr)
	}
	return ctx
}
