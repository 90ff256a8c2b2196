package usecase

import (
	"context"

	"vr-therapy-platform/internal/domain/entity"
)

type actorKey struct{}

// Actor is the authenticated principal a use case acts on behalf of
type Actor struct {
	ID   string
	Role entity.Role
}

// WithActor attaches the acting principal to ctx for the audit trail
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the principal set by WithActor
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

func recordAudit(ctx context.Context, audit auditRecorder, action string, metadata map[string]any) error {
	if audit == nil {
		return nil
	}
	actor, _ := ActorFromContext(ctx)
	return audit.Record(ctx, actor.ID, actor.Role, action, metadata)
}

type auditRecorder interface {
	Record(ctx context.Context, actorID string, role entity.Role, action string, metadata map[string]any) error
}
