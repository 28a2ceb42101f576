// Package ws pushes live order updates to connected clients over
// WebSocket (gorilla/websocket). Clients subscribe to topics and the
// order service publishes status changes to them:
//
//	// route:
//	router.Get("/ws/orders", "ws.orders", ctx.Wrap(func(c *ctx.Context) {
//	    ws.Upgrade(c.W, c.R, ws.OrderFeed, ws.TopicOrdersUser(c.Principal().ID))
//	}))
//
//	// from the order service:
//	ws.OrderFeed.Publish(ws.TopicOrdersLaundry(order.LaundryID), payload)
package ws

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shashiranjanraj/washly/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// OrderFeed is the application-wide hub for order status updates.
// internal/server starts its event loop at boot.
var OrderFeed = NewHub()

// TopicOrdersUser names the per-customer order feed topic.
func TopicOrdersUser(userID uint) string { return fmt.Sprintf("orders.user.%d", userID) }

// TopicOrdersLaundry names the per-laundry order feed topic.
func TopicOrdersLaundry(laundryID uint) string { return fmt.Sprintf("orders.laundry.%d", laundryID) }

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default, restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// Client is one connected WebSocket subscriber.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	topics map[string]bool
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws: unexpected close", "error", err)
			}
			return
		}
		// The order feed is push-only; inbound frames keep the
		// connection alive but carry no commands.
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

type publication struct {
	topic string
	data  []byte
}

// Hub tracks subscribers and routes published messages to the clients
// subscribed to the matching topic.
type Hub struct {
	clients    map[*Client]bool
	publish    chan publication
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a hub. Call hub.Run() in a goroutine at startup.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		publish:    make(chan publication, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Publish sends data to every client subscribed to topic.
func (h *Hub) Publish(topic string, data []byte) {
	select {
	case h.publish <- publication{topic: topic, data: data}:
	default:
		logger.Warn("ws: publish queue full, dropping message", "topic", topic)
	}
}

// Run starts the hub event loop. Must be run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			logger.Info("ws: client connected", "total", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				logger.Info("ws: client disconnected", "total", len(h.clients))
			}

		case pub := <-h.publish:
			for client := range h.clients {
				if !client.topics[pub.topic] {
					continue
				}
				select {
				case client.send <- pub.data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int { return len(h.clients) }

// Upgrade upgrades the HTTP connection to a WebSocket and subscribes
// the new client to the given topics.
func Upgrade(w http.ResponseWriter, r *http.Request, hub *Hub, topics ...string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ws: upgrade failed", "error", err)
		return
	}
	client := &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		topics: make(map[string]bool, len(topics)),
	}
	for _, t := range topics {
		client.topics[t] = true
	}
	hub.register <- client
	go client.writePump()
	go client.readPump()
}
