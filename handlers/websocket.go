package handlers

import (
	"blog/auth"
	"blog/events"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedSocket streams new posts of followed authors until the client goes away
func FeedSocket(c *gin.Context, identity auth.Identity) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	// Setup client
	var writeMutex sync.Mutex
	isConnected := true
	write := func(messageType int, data []byte) bool {
		writeMutex.Lock()
		defer writeMutex.Unlock()
		if !isConnected {
			return false
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(messageType, data); err != nil {
			log.Println("write err:", err)
			isConnected = false
			return false
		}
		return true
	}
	client := &events.ConnectedClient{
		Send: func(data []byte) bool {
			return write(websocket.TextMessage, data)
		},
	}
	events.Clients.AddClient(identity.UserID, client)
	defer events.Clients.RemoveClient(identity.UserID, client)
	// Main read cycle
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("read err:", err)
			}
			writeMutex.Lock()
			isConnected = false
			writeMutex.Unlock()
			break
		}
		if string(message) == "ping" {
			write(mt, []byte("pong"))
		}
	}
}
