package usecases

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Jataveda/Agriconnect/entities"
	"github.com/Jataveda/Agriconnect/mq"
)

func TestSendMessage(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	customer := mustRegister(t, f.users, "customer", entities.UserTypeCustomer)
	order := placeTestOrder(t, f)

	var heard []entities.Message
	f.messages.OnMessage(func(m entities.Message) { heard = append(heard, m) })

	msg, err := f.messages.SendMessage(ctx, MessageInput{OrderID: order.ID, SenderID: customer.ID, Content: "  When can I pick up?  "})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.SenderName != customer.Name || msg.SenderType != entities.UserTypeCustomer || msg.Content != "When can I pick up?" {
		t.Fatalf("sender details not filled in: %+v", msg)
	}
	if len(heard) != 1 || heard[0].ID != msg.ID {
		t.Fatalf("listener not notified: %+v", heard)
	}
	keys := f.events.keys()
	if keys[len(keys)-1] != mq.KeyMessageCreated {
		t.Fatalf("expected message.created, got %v", keys)
	}

	thread, err := f.messages.GetThread(ctx, order.ID)
	if err != nil || len(thread) != 1 {
		t.Fatalf("thread: %v %+v", err, thread)
	}
}

func TestSendMessageValidation(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	order := placeTestOrder(t, f)

	cases := []MessageInput{
		{SenderID: "s", SenderType: entities.UserTypeFarmer, Content: "hi"},
		{OrderID: order.ID, SenderType: entities.UserTypeFarmer, Content: "hi"},
		{OrderID: order.ID, SenderID: "s", SenderType: entities.UserTypeFarmer, Content: "   "},
		{OrderID: "missing", SenderID: "s", SenderType: entities.UserTypeFarmer, Content: "hi"},
		{OrderID: order.ID, SenderID: "unknown-user", Content: "hi"},
	}
	for i, in := range cases {
		if _, err := f.messages.SendMessage(ctx, in); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestWithThreadHoldsBackNewMessages(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	customer := mustRegister(t, f.users, "customer", entities.UserTypeCustomer)
	order := placeTestOrder(t, f)

	var mu sync.Mutex
	var heard []string
	f.messages.OnMessage(func(m entities.Message) {
		mu.Lock()
		heard = append(heard, m.Content)
		mu.Unlock()
	})
	if _, err := f.messages.SendMessage(ctx, MessageInput{OrderID: order.ID, SenderID: customer.ID, Content: "before"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	sent := make(chan error, 1)
	var snapshot []entities.Message
	err := f.messages.WithThread(ctx, order.ID, func(thread []entities.Message) {
		snapshot = thread
		go func() {
			_, err := f.messages.SendMessage(ctx, MessageInput{OrderID: order.ID, SenderID: customer.ID, Content: "during"})
			sent <- err
		}()
		time.Sleep(50 * time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		if len(heard) != 1 {
			t.Errorf("message delivered while the thread was being read: %v", heard)
		}
	})
	if err != nil {
		t.Fatalf("with thread: %v", err)
	}
	if err := <-sent; err != nil {
		t.Fatalf("concurrent send: %v", err)
	}

	if len(snapshot) != 1 || snapshot[0].Content != "before" {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(heard) != 2 || heard[1] != "during" {
		t.Fatalf("expected the held message to be delivered afterwards, got %v", heard)
	}
}
