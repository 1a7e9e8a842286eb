package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/synergysphere/sphere/internal/domain"
)

// Subscriber streams the encoded events published for a board. *redis.PubSub
// satisfies this interface.
type Subscriber interface {
	SubscribeBoard(ctx context.Context, boardID uuid.UUID) (<-chan []byte, func(), error)
}

// BoardLookup reports whether a board exists. *board.Service satisfies this
// interface.
type BoardLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Board, error)
}

// Hub relays board events from Redis pub/sub to WebSocket clients.
type Hub struct {
	subscriber Subscriber
	boards     BoardLookup
	opts       *websocket.AcceptOptions
}

// NewHub creates a new WebSocket hub. originPatterns are passed to the
// handshake so browser clients from the configured frontends may connect.
func NewHub(subscriber Subscriber, boards BoardLookup, originPatterns []string) *Hub {
	return &Hub{
		subscriber: subscriber,
		boards:     boards,
		opts:       &websocket.AcceptOptions{OriginPatterns: originPatterns},
	}
}

// ServeBoard handles WebSocket connections for one board. Every event
// published on the board's channel is forwarded as a text frame until the
// client disconnects or the request context ends.
func (h *Hub) ServeBoard(w http.ResponseWriter, r *http.Request) {
	boardID, err := uuid.Parse(chi.URLParam(r, "boardID"))
	if err != nil {
		http.Error(w, "invalid board id", http.StatusBadRequest)
		return
	}

	if _, err := h.boards.Get(r.Context(), boardID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "board not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("board_id", boardID.String()).Msg("ws: board lookup")
		http.Error(w, "board lookup failed", http.StatusInternalServerError)
		return
	}

	// The server's read/write timeouts would otherwise cut long-lived
	// subscriptions short.
	rc := http.NewResponseController(w)
	_ = rc.SetReadDeadline(time.Time{})
	_ = rc.SetWriteDeadline(time.Time{})

	conn, err := websocket.Accept(w, r, h.opts)
	if err != nil {
		log.Error().Err(err).Msg("ws: accept")
		return
	}
	defer conn.CloseNow()

	// Clients only listen; CloseRead handles control frames and cancels ctx
	// once the peer goes away.
	ctx := conn.CloseRead(r.Context())

	messages, cleanup, err := h.subscriber.SubscribeBoard(ctx, boardID)
	if err != nil {
		log.Error().Err(err).Str("board_id", boardID.String()).Msg("ws: subscribe")
		_ = conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	defer cleanup()

	log.Debug().Str("board_id", boardID.String()).Msg("ws: client subscribed")

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "connection closed")
			return
		case msg, ok := <-messages:
			if !ok {
				_ = conn.Close(websocket.StatusNormalClosure, "channel closed")
				return
			}
			if writeErr := conn.Write(ctx, websocket.MessageText, msg); writeErr != nil {
				log.Debug().Err(writeErr).Msg("ws: write")
				return
			}
		}
	}
}
