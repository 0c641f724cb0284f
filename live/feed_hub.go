package live

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/accelconnect/restauration-gateway/models"
	"github.com/accelconnect/restauration-gateway/utils"
)

// Event types pushed to the admin back-office feed.
const (
	EventOrderCreated        = "order_created"
	EventOrderCancelled      = "order_cancelled"
	EventWalletDeposit       = "wallet_deposit"
	EventSettlementValidated = "settlement_validated"
	EventDashboardUpdate     = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// FeedHub holds every connected back-office client and fans events out
// to them.
type FeedHub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var feedHub = FeedHub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the feed with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	feedHub.mutex.Lock()
	defer feedHub.mutex.Unlock()
	feedHub.clients[conn] = role
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	feedHub.mutex.Lock()
	defer feedHub.mutex.Unlock()
	delete(feedHub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreated announces a freshly confirmed order.
func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{
		Event: EventOrderCreated,
		Data:  order,
	})
}

// BroadcastOrderCancelled announces a cancellation.
func BroadcastOrderCancelled(order models.Order) {
	broadcast(Message{
		Event: EventOrderCancelled,
		Data:  order,
	})
}

// BroadcastWalletDeposit announces an admin deposit onto a user's wallet.
func BroadcastWalletDeposit(tx models.Transaction) {
	broadcast(Message{
		Event: EventWalletDeposit,
		Data:  tx,
	})
}

// BroadcastSettlementValidated announces a completed Friday settlement run.
func BroadcastSettlementValidated(result models.PaymentValidationResponse) {
	broadcast(Message{
		Event: EventSettlementValidated,
		Data:  result,
	})
}

// BroadcastDashboardUpdate pushes a recomputed dashboard snapshot.
func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{
		Event: EventDashboardUpdate,
		Data:  data,
	})
}

func broadcast(msg Message) {
	feedHub.mutex.Lock()
	defer feedHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling feed message: %v", err)
		return
	}

	for conn, role := range feedHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending feed message to %s client: %v", role, err)
			continue
		}
	}
}
