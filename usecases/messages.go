package usecases

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Jataveda/Agriconnect/entities"
	"github.com/Jataveda/Agriconnect/mq"
	"github.com/Jataveda/Agriconnect/repositories"
)

type MessageInput struct {
	OrderID    string            `json:"orderId"`
	SenderID   string            `json:"senderId"`
	SenderName string            `json:"senderName"`
	SenderType entities.UserType `json:"senderType"`
	Content    string            `json:"content"`
}

// MessageListener is told about every stored message, whichever transport
// delivered it. Listeners run on the sender's request path and must not block.
type MessageListener func(msg entities.Message)

type MessageUseCase struct {
	MessageRepo repositories.MessageRepository
	OrderRepo   repositories.OrderRepository
	UserRepo    repositories.UserRepository
	Events      mq.EventPublisher

	listeners []MessageListener
	// held shared by SendMessage across store+notify, exclusively by WithThread
	notifyMu sync.RWMutex
}

func NewMessageUseCase(store *repositories.Store, events mq.EventPublisher) *MessageUseCase {
	if events == nil {
		events = mq.NoopPublisher{}
	}
	return &MessageUseCase{
		MessageRepo: store.Messages,
		OrderRepo:   store.Orders,
		UserRepo:    store.Users,
		Events:      events,
	}
}

// OnMessage registers fn to run after each successful SendMessage. It must be
// called before the use case starts serving requests.
func (uc *MessageUseCase) OnMessage(fn MessageListener) {
	uc.listeners = append(uc.listeners, fn)
}

// SendMessage appends a message to an order's thread. The order must exist.
func (uc *MessageUseCase) SendMessage(ctx context.Context, in MessageInput) (*entities.Message, error) {
	content := strings.TrimSpace(in.Content)
	switch {
	case in.OrderID == "":
		return nil, invalid("orderId is required")
	case in.SenderID == "":
		return nil, invalid("senderId is required")
	case content == "":
		return nil, invalid("content is required")
	}

	if _, err := uc.OrderRepo.GetByID(ctx, in.OrderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, invalid("Order not found")
		}
		return nil, fmt.Errorf("order lookup: %w", err)
	}

	if in.SenderName == "" || in.SenderType == "" {
		if sender, err := uc.UserRepo.GetByID(ctx, in.SenderID); err == nil {
			if in.SenderName == "" {
				in.SenderName = sender.Name
			}
			if in.SenderType == "" {
				in.SenderType = sender.UserType
			}
		}
	}
	if !in.SenderType.Valid() {
		return nil, invalid("senderType must be farmer or customer")
	}

	msg := &entities.Message{
		OrderID:    in.OrderID,
		SenderID:   in.SenderID,
		SenderName: in.SenderName,
		SenderType: in.SenderType,
		Content:    content,
	}
	uc.notifyMu.RLock()
	if err := uc.MessageRepo.Create(ctx, msg); err != nil {
		uc.notifyMu.RUnlock()
		return nil, fmt.Errorf("create message: %w", err)
	}
	for _, fn := range uc.listeners {
		fn(*msg)
	}
	uc.notifyMu.RUnlock()
	ev := mq.MessageEvent{
		MessageID:  msg.ID,
		OrderID:    msg.OrderID,
		SenderID:   msg.SenderID,
		SenderType: string(msg.SenderType),
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.Events.PublishJSON(ctx, mq.KeyMessageCreated, ev); err != nil {
		log.Printf("publish %s for order %s: %v", mq.KeyMessageCreated, msg.OrderID, err)
	}
	return msg, nil
}

// GetThread returns an order's messages oldest first.
func (uc *MessageUseCase) GetThread(ctx context.Context, orderID string) ([]entities.Message, error) {
	return uc.MessageRepo.GetByOrderID(ctx, orderID)
}

// WithThread loads an order's thread and passes it to fn while no message can
// be stored. Every message is therefore either in the thread or reported to
// listeners after fn returns, never both.
func (uc *MessageUseCase) WithThread(ctx context.Context, orderID string, fn func([]entities.Message)) error {
	uc.notifyMu.Lock()
	defer uc.notifyMu.Unlock()
	thread, err := uc.MessageRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	fn(thread)
	return nil
}
