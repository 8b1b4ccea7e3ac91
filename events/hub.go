package events

import (
	"strconv"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// SendSocketFunc returns true if data was successfully sent
type SendSocketFunc func([]byte) bool

type ConnectedClient struct {
	Send SendSocketFunc
}

// ConnectedClients is needed as a user may be connected more than once
type ConnectedClients []*ConnectedClient

// Hub tracks live sockets per user id
type Hub struct {
	users cmap.ConcurrentMap[string, ConnectedClients]
}

func NewHub() *Hub {
	return &Hub{users: cmap.New[ConnectedClients]()}
}

func socketID(userID uint64) string {
	return strconv.FormatUint(userID, 10)
}

func (h *Hub) AddClient(userID uint64, c *ConnectedClient) {
	h.users.Upsert(socketID(userID), ConnectedClients{c}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if exist {
			return append(valueInMap[:len(valueInMap):len(valueInMap)], c)
		}
		return newValue
	})
}

func (h *Hub) RemoveClient(userID uint64, c *ConnectedClient) {
	id := socketID(userID)
	h.users.Upsert(id, ConnectedClients{}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if !exist {
			return newValue
		}
		for _, oc := range valueInMap {
			if oc == c {
				continue
			}
			newValue = append(newValue, oc)
		}
		return newValue
	})
	h.users.RemoveCb(id, func(key string, v ConnectedClients, exists bool) bool {
		return exists && len(v) == 0
	})
}

// SendToUser writes data to every socket of the user and returns how many accepted it
func (h *Hub) SendToUser(userID uint64, data []byte) (sent int) {
	clients, ok := h.users.Get(socketID(userID))
	if !ok {
		return 0
	}
	for _, c := range clients {
		if c.Send(data) {
			sent++
		}
	}
	return
}

func (h *Hub) Connected(userID uint64) int {
	clients, _ := h.users.Get(socketID(userID))
	return len(clients)
}
