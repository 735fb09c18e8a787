package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FeedClient is one connected leaderboard spectator.
type FeedClient struct {
	ID   string
	Conn *websocket.Conn
}

// FeedMessage announces a verified score landing on the board.
type FeedMessage struct {
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	Position  int       `json:"position,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

var (
	feedClients   = make(map[*FeedClient]bool)
	feedBroadcast = make(chan FeedMessage)
	feedMutex     sync.Mutex
)

func init() {
	go handleFeedMessages()
}

func handleFeedMessages() {
	for {
		msg := <-feedBroadcast

		feedMutex.Lock()
		for client := range feedClients {
			err := client.Conn.WriteJSON(msg)
			if err != nil {
				log.Printf("❌ Error sending feed message to client %s: %v", client.ID, err)
				client.Conn.Close()
				delete(feedClients, client)
			}
		}
		feedMutex.Unlock()
	}
}

// BroadcastNewEntry pushes a new board entry to every connected spectator.
// Position 0 means the entry landed outside the visible top set.
func BroadcastNewEntry(name string, score int, position int) {
	feedBroadcast <- FeedMessage{
		Type:      "new_entry",
		Name:      name,
		Score:     score,
		Position:  position,
		Timestamp: time.Now().UTC(),
	}
}

// HandleFeedWS handles GET /ws/leaderboard - a read-only live feed of new
// board entries.
func HandleFeedWS(w http.ResponseWriter, r *http.Request) {
	log.Println("📥 Feed WebSocket connection attempt from:", r.RemoteAddr)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("❌ Feed WebSocket upgrade failed:", err)
		return
	}

	client := &FeedClient{
		ID:   time.Now().Format("20060102-150405.000"),
		Conn: conn,
	}

	feedMutex.Lock()
	feedClients[client] = true
	total := len(feedClients)
	feedMutex.Unlock()

	log.Printf("✅ Feed client connected! ID: %s, Total feed clients: %d", client.ID, total)

	defer func() {
		feedMutex.Lock()
		delete(feedClients, client)
		total := len(feedClients)
		feedMutex.Unlock()

		conn.Close()
		log.Printf("👋 Feed client disconnected. ID: %s, Total feed clients: %d", client.ID, total)
	}()

	// The feed is one-way; drain reads only to notice disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("❌ Feed WebSocket error: %v", err)
			}
			break
		}
	}
}
