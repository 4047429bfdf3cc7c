package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Jataveda/Agriconnect/cache"
	"github.com/Jataveda/Agriconnect/entities"
	"github.com/Jataveda/Agriconnect/usecases"
	"github.com/Jataveda/Agriconnect/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Frame is every server -> client websocket message.
type Frame struct {
	Type     string                `json:"type"` // snapshot | message | location | pong | error
	OrderID  string                `json:"orderId"`
	Message  *entities.Message     `json:"message,omitempty"`
	Location *entities.Coordinate  `json:"location,omitempty"`
	Messages []entities.Message    `json:"messages,omitempty"`
	Track    []entities.Coordinate `json:"track,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// incomingFrame is a client -> server message. Only "message" and "ping" are understood.
type incomingFrame struct {
	Type       string            `json:"type"`
	SenderID   string            `json:"senderId"`
	SenderName string            `json:"senderName"`
	SenderType entities.UserType `json:"senderType"`
	Content    string            `json:"content"`
}

// WSHandler groups dependencies for the order chat and tracking socket
type WSHandler struct {
	hub      *ws.Hub
	orders   *usecases.OrderUseCase
	messages *usecases.MessageUseCase
	tracking *cache.TrackingCache
}

func NewWSHandler(hub *ws.Hub, orders *usecases.OrderUseCase, messages *usecases.MessageUseCase, tracking *cache.TrackingCache) *WSHandler {
	return &WSHandler{hub: hub, orders: orders, messages: messages, tracking: tracking}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleOrderWS upgrades to websocket and joins the order's room
// GET /ws/orders/:id
func (h *WSHandler) HandleOrderWS(c *gin.Context) {
	orderID := c.Param("id")
	ctx := c.Request.Context()
	if _, err := h.orders.GetOrder(ctx, orderID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	// The snapshot is queued ahead of any later broadcast, and messages stored
	// after it are only delivered as message frames.
	err = h.messages.WithThread(ctx, orderID, func(thread []entities.Message) {
		snapshot, err := json.Marshal(Frame{Type: "snapshot", OrderID: orderID, Messages: thread, Track: h.tracking.History(orderID)})
		if err != nil {
			log.Printf("encode snapshot for %s: %v", orderID, err)
			snapshot = nil
		}
		h.hub.SubscribeWith(orderID, conn, snapshot)
	})
	if err != nil {
		log.Printf("load thread for %s: %v", orderID, err)
		h.hub.Subscribe(orderID, conn)
	}
	log.Printf("client joined order %s (%d connected)", orderID, h.hub.Count(orderID))
	defer func() {
		h.hub.Unsubscribe(orderID, conn)
		log.Printf("client left order %s", orderID)
	}()

	for {
		mt, raw, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read error on order %s: %v", orderID, err)
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		var in incomingFrame
		if err := json.Unmarshal(raw, &in); err != nil {
			h.send(orderID, conn, Frame{Type: "error", OrderID: orderID, Error: "invalid json"})
			continue
		}

		switch in.Type {
		case "message":
			// Stored messages reach every subscriber, sender included, through BroadcastMessage.
			_, err := h.messages.SendMessage(ctx, usecases.MessageInput{
				OrderID:    orderID,
				SenderID:   in.SenderID,
				SenderName: in.SenderName,
				SenderType: in.SenderType,
				Content:    in.Content,
			})
			if err != nil {
				h.send(orderID, conn, Frame{Type: "error", OrderID: orderID, Error: err.Error()})
			}
		case "ping":
			h.send(orderID, conn, Frame{Type: "pong", OrderID: orderID})
		default:
			h.send(orderID, conn, Frame{Type: "error", OrderID: orderID, Error: "unknown frame type " + in.Type})
		}
	}
}

func (h *WSHandler) send(orderID string, conn *websocket.Conn, frame Frame) {
	b, err := json.Marshal(frame)
	if err != nil {
		log.Printf("encode %s frame: %v", frame.Type, err)
		return
	}
	if err := h.hub.Send(orderID, conn, b); err != nil {
		log.Printf("write to order %s: %v", orderID, err)
	}
}

// BroadcastMessage pushes a stored chat message to the order's room.
func (h *WSHandler) BroadcastMessage(msg entities.Message) {
	if _, err := h.hub.BroadcastJSON(msg.OrderID, Frame{Type: "message", OrderID: msg.OrderID, Message: &msg}); err != nil {
		log.Printf("broadcast message %s: %v", msg.ID, err)
	}
}

// BroadcastLocation pushes a tracking point to the order's room.
func (h *WSHandler) BroadcastLocation(orderID string, point entities.Coordinate) {
	if _, err := h.hub.BroadcastJSON(orderID, Frame{Type: "location", OrderID: orderID, Location: &point}); err != nil {
		log.Printf("broadcast location for %s: %v", orderID, err)
	}
}

// GetConnectedOrders GET /api/ws/orders
func (h *WSHandler) GetConnectedOrders(c *gin.Context) {
	topics := h.hub.Topics()
	c.JSON(http.StatusOK, gin.H{"orders": topics, "count": len(topics)})
}
