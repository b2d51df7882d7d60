package http

import (
	"context"

	"homestay-backend/internal/apperr"
)

type actorKey struct{}

// WithActorID stores the authenticated user's id on the request context.
// Handlers read it back with GetActorID and pass it explicitly into the
// service layer; no service call ever reads identity from ambient state.
func WithActorID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func GetActorID(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(actorKey{}).(int64)
	if !ok {
		return 0, apperr.NotAuthorized("request is not authenticated")
	}
	return id, nil
}
