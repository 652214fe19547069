package ports

import (
	"context"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
)

// SignalPublisher announces a collection mutation on the broadcast channel.
// Publishing is fire-and-forget from the caller's point of view: a failed
// publish loses one broadcast cycle, never the mutation itself.
type SignalPublisher interface {
	Publish(ctx context.Context, kind domain.MutationKind) error
}
