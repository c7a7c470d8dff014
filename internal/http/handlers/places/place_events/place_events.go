package placeevents

import (
	"net/http"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/domain/logging"
	placeevents "wonderchain/internal/implementations/place_events"

	"github.com/r3labs/sse/v2"
)

// Handler subscribes map clients to the places stream.
type Handler struct {
	log       logging.Logger
	sseServer *sse.Server
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &Handler{log: log, sseServer: sseServer}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	query.Set("stream", placeevents.STREAM_ID)
	r.URL.RawQuery = query.Encode()

	h.log.Debug(r.Context(), "Subscribed to place events.")
	h.sseServer.ServeHTTP(rw, r)
	h.log.Debug(r.Context(), "Unsubscribed from place events.")
}
