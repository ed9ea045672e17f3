package auth

import (
	"context"
)

type contextKey string

const (
	contextKeyIdentity contextKey = "identity"
	contextKeyToken    contextKey = "token"
)

func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, contextKeyIdentity, ident)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(contextKeyIdentity).(*Identity)
	return ident, ok
}

func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextKeyToken, token)
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(contextKeyToken).(string)
	return token
}
