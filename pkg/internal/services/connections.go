package services

import (
	"sync"

	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/gofiber/contrib/websocket"
)

var (
	wsConn     = make(map[uint][]*websocket.Conn)
	wsConnLock sync.Mutex
)

func ClientRegister(user models.Account, conn *websocket.Conn) {
	wsConnLock.Lock()
	defer wsConnLock.Unlock()
	wsConn[user.ID] = append(wsConn[user.ID], conn)
}

func ClientUnregister(user models.Account, conn *websocket.Conn) {
	wsConnLock.Lock()
	defer wsConnLock.Unlock()
	for idx, item := range wsConn[user.ID] {
		if item == conn {
			wsConn[user.ID] = append(wsConn[user.ID][:idx], wsConn[user.ID][idx+1:]...)
			break
		}
	}
	if len(wsConn[user.ID]) == 0 {
		delete(wsConn, user.ID)
	}
}

func CheckOnline(user models.Account) bool {
	wsConnLock.Lock()
	defer wsConnLock.Unlock()
	return len(wsConn[user.ID]) > 0
}

func PushCommand(userId uint, command models.UnifiedCommand) {
	wsConnLock.Lock()
	defer wsConnLock.Unlock()
	for _, conn := range wsConn[userId] {
		_ = conn.WriteMessage(websocket.TextMessage, command.Marshal())
	}
}

func PushCommandBatch(userId []uint, command models.UnifiedCommand) {
	payload := command.Marshal()
	wsConnLock.Lock()
	defer wsConnLock.Unlock()
	for _, id := range userId {
		for _, conn := range wsConn[id] {
			_ = conn.WriteMessage(websocket.TextMessage, payload)
		}
	}
}
