package placeevents

import (
	"context"
	"encoding/json"
	"time"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/domain/place"

	"github.com/r3labs/sse/v2"
)

const (
	STREAM_ID  = "places"
	EVENT_NAME = "places-changed"
)

type changeEvent struct {
	PlaceID int64     `json:"placeId"`
	Slug    string    `json:"slug"`
	Kind    string    `json:"kind"`
	At      time.Time `json:"at"`
}

// SSEPublisher broadcasts place changes to every map client subscribed to
// the places stream.
type SSEPublisher struct {
	sseServer *sse.Server
}

func NewSSEPublisher(sseServer *sse.Server) *SSEPublisher {
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if !sseServer.StreamExists(STREAM_ID) {
		sseServer.CreateStream(STREAM_ID)
	}
	return &SSEPublisher{
		sseServer: sseServer,
	}
}

func (p *SSEPublisher) PublishChange(ctx context.Context, change place.Change) error {
	data, err := json.Marshal(changeEvent{
		PlaceID: int64(change.PlaceID),
		Slug:    string(change.Slug),
		Kind:    string(change.Kind),
		At:      change.At.UTC(),
	})
	if err != nil {
		return err
	}
	p.sseServer.Publish(STREAM_ID, &sse.Event{
		Event: []byte(EVENT_NAME),
		Data:  data,
	})
	return nil
}
