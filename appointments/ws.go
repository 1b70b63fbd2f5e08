package appointments

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

type wsMessage struct {
	Type     string `json:"type"`
	DoctorID string `json:"doctorId"`
}

// SlotUpdatesWS streams an update notification whenever the given doctor's
// slot map changes, so booking pages can refresh availability live.
func SlotUpdatesWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	doctorID := ps.ByName("doctorId")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[doctorID] = append(subscribers[doctorID], conn)
	mu.Unlock()

	for {
		// keeps the connection alive until the client disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	mu.Lock()
	conns := subscribers[doctorID]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[doctorID] = newList
	mu.Unlock()

	conn.Close()
}

// BroadcastSlotUpdate notifies every subscriber of the doctor.
func BroadcastSlotUpdate(doctorID string) {
	data, _ := json.Marshal(wsMessage{Type: "update", DoctorID: doctorID})

	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[doctorID]
	newList := conns[:0]
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}
	subscribers[doctorID] = newList
}
