package service

import (
	"context"
	"errors"
	"sync"

	"github.com/shopcore/checkout-backend/internal/gateway"
)

// fakeGateway scripts the two remote calls without touching the network.
type fakeGateway struct {
	mu          sync.Mutex
	failCreate  bool
	validSig    string
	nextOrderID string
	created     []gateway.OrderRequest
}

func (f *fakeGateway) CreateOrder(_ context.Context, req gateway.OrderRequest) (*gateway.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreate {
		return nil, errors.New("gateway unavailable")
	}
	f.created = append(f.created, req)

	id := f.nextOrderID
	if id == "" {
		id = "order_rzp_test"
	}
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	return &gateway.Order{
		ID:       id,
		Amount:   req.Amount,
		Currency: currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

func (f *fakeGateway) VerifySignature(_, _, signature string) bool {
	return signature == f.validSig
}

type publishedEvent struct {
	topic string
	key   string
	event interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *fakePublisher) Publish(_ context.Context, topic, key string, event interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{topic: topic, key: key, event: event})
	return nil
}

func (f *fakePublisher) byTopic(topic string) []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []publishedEvent
	for _, e := range f.events {
		if e.topic == topic {
			out = append(out, e)
		}
	}
	return out
}
