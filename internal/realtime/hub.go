// Package realtime keeps every connected client's view of the product and
// message collections synchronized with the document store using a push
// model. Broadcasts always carry the full collection, never a diff: the hub
// re-queries the store on every mutation signal, so reordering across clients
// is harmless and no per-client cursor state exists.
package realtime

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/aleramosAR/Autenticacion-1/internal/api/metrics"
	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
	"github.com/aleramosAR/Autenticacion-1/internal/core/ports"
)

// Wire event names. Client→server events are mutation signals; server→client
// events carry the full collection array.
const (
	EventPostProduct   = "postProduct"
	EventUpdateProduct = "updateProduct"
	EventDeleteProduct = "deleteProduct"
	EventPostMessage   = "postMensaje"
	EventListProducts  = "listProducts"
	EventListMessages  = "listMensajes"
)

// Envelope is the JSON frame exchanged on the realtime channel.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ProductSource yields the authoritative catalog state.
type ProductSource interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// MessageSource yields the authoritative board state and accepts posts made
// over the realtime channel.
type MessageSource interface {
	List(ctx context.Context) ([]domain.Message, error)
	Create(ctx context.Context, email, text string) (*domain.Message, error)
}

const signalBuffer = 64

// Hub owns the set of connected clients. All membership changes and
// broadcasts go through Run's select loop, so no locking is needed.
type Hub struct {
	products ProductSource
	messages MessageSource
	signals  ports.SignalPublisher

	register   chan *Client
	unregister chan *Client
	mutations  chan domain.MutationKind
	clients    map[*Client]struct{}

	log zerolog.Logger
}

func NewHub(products ProductSource, messages MessageSource, signals ports.SignalPublisher, log zerolog.Logger) *Hub {
	return &Hub{
		products:   products,
		messages:   messages,
		signals:    signals,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		mutations:  make(chan domain.MutationKind, signalBuffer),
		clients:    make(map[*Client]struct{}),
		log:        log,
	}
}

// Register attaches a client; the hub answers with the catch-up burst.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister detaches a client and releases its send queue.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Signal queues a mutation signal. Signals are never debounced: each one
// triggers its own re-fetch and broadcast cycle.
func (h *Hub) Signal(kind domain.MutationKind) {
	h.mutations <- kind
}

// Run processes registrations and mutation signals until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			metrics.ConnectedClients.Inc()
			h.log.Info().Msg("realtime client connected")
			h.catchUp(ctx, c)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.log.Info().Msg("realtime client disconnected")
			}
		case kind := <-h.mutations:
			h.rebroadcast(ctx, kind.Collection())
		}
	}
}

// catchUp pushes the full state of both collections to a newly connected
// client, products first. This runs before the client can emit any signal,
// so the burst always precedes later broadcasts on that connection.
func (h *Hub) catchUp(ctx context.Context, c *Client) {
	if frame, ok := h.snapshot(ctx, domain.CollectionProducts); ok {
		h.send(c, frame)
	}
	if frame, ok := h.snapshot(ctx, domain.CollectionMessages); ok {
		h.send(c, frame)
	}
}

// rebroadcast re-fetches one collection and pushes it to every client. A
// failed re-fetch skips the cycle; the next signal tries again.
func (h *Hub) rebroadcast(ctx context.Context, collection domain.Collection) {
	frame, ok := h.snapshot(ctx, collection)
	if !ok {
		return
	}
	metrics.BroadcastsTotal.WithLabelValues(string(collection)).Inc()
	for c := range h.clients {
		h.send(c, frame)
	}
}

// snapshot builds the listProducts/listMensajes frame for one collection.
func (h *Hub) snapshot(ctx context.Context, collection domain.Collection) ([]byte, bool) {
	var (
		event   string
		payload any
		err     error
	)
	switch collection {
	case domain.CollectionProducts:
		event = EventListProducts
		payload, err = h.products.List(ctx)
	case domain.CollectionMessages:
		event = EventListMessages
		payload, err = h.messages.List(ctx)
	default:
		return nil, false
	}
	if err != nil {
		metrics.BroadcastErrorsTotal.WithLabelValues(string(collection)).Inc()
		h.log.Error().Err(err).Str("collection", string(collection)).Msg("collection re-fetch failed, broadcast skipped")
		return nil, false
	}

	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error().Err(err).Str("collection", string(collection)).Msg("broadcast encode failed")
		return nil, false
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.log.Error().Err(err).Str("collection", string(collection)).Msg("broadcast encode failed")
		return nil, false
	}
	return frame, true
}

// send enqueues a frame without blocking the hub loop. A client whose queue
// is full is dropped; it can reconnect and catch up from scratch.
func (h *Hub) send(c *Client, frame []byte) {
	select {
	case c.out <- frame:
	default:
		h.drop(c)
		h.log.Warn().Msg("realtime client dropped: send queue full")
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.out)
	metrics.ConnectedClients.Dec()
}

// HandleEvent maps a client frame to a mutation signal. The signal goes out
// through the publisher so every hub instance subscribed to the channel runs
// a broadcast cycle, this one included.
func (h *Hub) HandleEvent(ctx context.Context, env Envelope) {
	var kind domain.MutationKind
	switch env.Event {
	case EventPostProduct:
		kind = domain.ProductCreated
	case EventUpdateProduct:
		kind = domain.ProductUpdated
	case EventDeleteProduct:
		kind = domain.ProductDeleted
	case EventPostMessage:
		// A payload, when present, is persisted first; the create publishes
		// the signal itself.
		if len(env.Data) > 0 {
			var post struct {
				Email string `json:"email"`
				Text  string `json:"texto"`
			}
			if err := json.Unmarshal(env.Data, &post); err != nil {
				h.log.Warn().Err(err).Msg("malformed postMensaje payload")
				return
			}
			if _, err := h.messages.Create(ctx, post.Email, post.Text); err != nil {
				h.log.Error().Err(err).Msg("message post over realtime channel failed")
			}
			return
		}
		kind = domain.MessageCreated
	default:
		h.log.Debug().Str("event", env.Event).Msg("unknown realtime event")
		return
	}

	if err := h.signals.Publish(ctx, kind); err != nil {
		h.log.Warn().Err(err).Str("kind", string(kind)).Msg("mutation signal not published")
	}
}
