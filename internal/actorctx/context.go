package actorctx

import (
	"context"

	"github.com/agriconnect/agrimarket-backend/internal/model"
)

type ctxKey string

const keyActor ctxKey = "actor"

// WithActor stores the resolved acting user for the request.
func WithActor(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, keyActor, user)
}

// Actor returns the acting user if present.
func Actor(ctx context.Context) *model.User {
	v, _ := ctx.Value(keyActor).(*model.User)
	return v
}
