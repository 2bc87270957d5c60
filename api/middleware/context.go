package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/carlosmendieta/resumeforge-backend/internal/features"
	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
)

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxRole   contextKey = "actor_role"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// ActorFromContext recovers the authenticated actor seeded by Auth.
func ActorFromContext(ctx context.Context) (features.Actor, error) {
	userID, err := uuid.Parse(UserIDFromContext(ctx))
	if err != nil {
		return features.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	role, err := enums.ParseUserRole(RoleFromContext(ctx))
	if err != nil {
		return features.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return features.Actor{UserID: userID, Role: role}, nil
}

// WithActor injects the actor into the context. Used by tests and workers.
func WithActor(ctx context.Context, actor features.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, actor.UserID.String())
	return context.WithValue(ctx, ctxRole, string(actor.Role))
}
