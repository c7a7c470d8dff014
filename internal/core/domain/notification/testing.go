package notification

import (
	"context"
	"fmt"
	"sync"
)

type FakeNotifier struct {
	Sent        []Message
	ReturnError bool
	// Block makes Send wait until the context is done.
	Block bool
	lock  sync.Mutex
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (n *FakeNotifier) Send(ctx context.Context, message Message) error {
	if n.Block {
		<-ctx.Done()
		return ctx.Err()
	}
	if n.ReturnError {
		return fmt.Errorf("could not send message to %s", message.To)
	}
	n.lock.Lock()
	defer n.lock.Unlock()
	n.Sent = append(n.Sent, message)
	return nil
}

func (n *FakeNotifier) SentCount() int {
	n.lock.Lock()
	defer n.lock.Unlock()
	return len(n.Sent)
}

func (n *FakeNotifier) LastSent() Message {
	n.lock.Lock()
	defer n.lock.Unlock()
	l := len(n.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return n.Sent[l-1]
}
