package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
)

// signalChannel is the pub/sub channel carrying mutation kinds between the
// HTTP API layer and the realtime hub.
const signalChannel = "mutations"

// SignalPublisher announces collection mutations on the Redis channel.
type SignalPublisher struct {
	client *redis.Client
}

func NewSignalPublisher(client *redis.Client) *SignalPublisher {
	return &SignalPublisher{client: client}
}

func (p *SignalPublisher) Publish(ctx context.Context, kind domain.MutationKind) error {
	if err := p.client.Publish(ctx, signalChannel, string(kind)).Err(); err != nil {
		return fmt.Errorf("publish mutation signal: %w", err)
	}
	return nil
}

// SignalSubscriber feeds mutation signals from the Redis channel into a sink,
// typically the realtime hub.
type SignalSubscriber struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewSignalSubscriber(client *redis.Client, log zerolog.Logger) *SignalSubscriber {
	return &SignalSubscriber{client: client, log: log}
}

// Run blocks delivering signals until ctx is cancelled. Payloads that do not
// name a known collection are dropped with a warning.
func (s *SignalSubscriber) Run(ctx context.Context, sink func(domain.MutationKind)) {
	sub := s.client.Subscribe(ctx, signalChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			kind := domain.MutationKind(msg.Payload)
			if kind.Collection() == "" {
				s.log.Warn().Str("payload", msg.Payload).Msg("unknown mutation signal")
				continue
			}
			sink(kind)
		}
	}
}
