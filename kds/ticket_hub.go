package kds

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/restopos/ticket-engine/models"
)

// Event types pushed to kitchen and cashier screens.
const (
	EventTicketCreated  = "ticket_created"
	EventStatusUpdate   = "status_update"
	EventTicketSettled  = "ticket_settled"
	EventReceiptReprint = "receipt_reprint"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// TicketHub holds every connected screen (kitchen, cashier, expo) and
// fans ticket events out to all of them.
type TicketHub struct {
	clients map[*websocket.Conn]string // conn -> screen role
	mutex   sync.Mutex
}

var hub = TicketHub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the hub with its screen role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastTicketCreated announces a freshly minted ticket.
func BroadcastTicketCreated(order *models.Order) {
	broadcast(Message{
		Event: EventTicketCreated,
		Data:  order,
	})
}

// BroadcastStatusUpdate announces a lifecycle transition.
func BroadcastStatusUpdate(order *models.Order) {
	broadcast(Message{
		Event: EventStatusUpdate,
		Data:  order,
	})
}

// BroadcastTicketSettled announces a completed settlement.
func BroadcastTicketSettled(settled *models.SettledTicket) {
	broadcast(Message{
		Event: EventTicketSettled,
		Data:  settled,
	})
}

// BroadcastReceiptReprint announces a reprint with the new print count.
func BroadcastReceiptReprint(settled *models.SettledTicket) {
	broadcast(Message{
		Event: EventReceiptReprint,
		Data:  settled,
	})
}

func broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("kds: failed to marshal %s event: %v", msg.Event, err)
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
