package room

import (
	"log"
	"time"

	"github.com/palemoky/ai-dungeon-master/internal/apperrors"
	"github.com/palemoky/ai-dungeon-master/internal/protocol"
	"github.com/palemoky/ai-dungeon-master/internal/types"
)

// CreateRoom 显式创建房间，房间号重复时拒绝（不覆盖已有房间）。
// 创建不等于加入：创建者仍需走 JoinRoom。
func (m *Manager) CreateRoom(code string, maxPlayers int) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.rooms[code]; exists {
		return nil, apperrors.ErrRoomExists
	}

	room := m.newRoom(code, maxPlayers)
	m.rooms[code] = room

	m.saveSnapshot(room)

	log.Printf("✨ 房间 %s 已创建，容量 %d", code, room.MaxPlayers)

	return room, nil
}

// JoinRoom 加入房间。房间号未知时静默创建默认容量房间
// （find-or-create：加入路径永远不会报“房间不存在”）。
func (m *Manager) JoinRoom(client types.ClientInterface, code string) (*Room, error) {
	m.mu.Lock()
	room, exists := m.rooms[code]
	if !exists {
		room = m.newRoom(code, 0)
		m.rooms[code] = room
		log.Printf("🔑 房间 %s 不存在，按默认容量自动创建", code)
	}
	m.mu.Unlock()

	room.mu.Lock()
	defer room.mu.Unlock()

	// 重复加入不计人数
	if _, joined := room.Members[client.GetID()]; !joined {
		if len(room.Members) >= room.MaxPlayers {
			return nil, apperrors.ErrRoomFull
		}
		room.Members[client.GetID()] = &Member{Client: client}
	}
	client.SetRoom(code)
	room.lastActive = time.Now()

	m.saveSnapshot(room)

	log.Printf("🔌 玩家 %s 加入房间 %s (%d/%d)", client.GetID(), code, len(room.Members), room.MaxPlayers)

	return room, nil
}

// SetReady 标记玩家就绪（幂等）。返回大厅快照；
// 就绪人数达到容量时置开局闸，started 仅在首次跨过阈值时为 true。
// 闸在持锁时同步置位，先于任何后端调用，避免双开局。
func (m *Manager) SetReady(client types.ClientInterface, code string) (lobby protocol.LobbyUpdatePayload, started bool, err error) {
	m.mu.RLock()
	room, exists := m.rooms[code]
	m.mu.RUnlock()
	if !exists {
		return protocol.LobbyUpdatePayload{}, false, apperrors.ErrNotInRoom
	}

	room.mu.Lock()
	member, ok := room.Members[client.GetID()]
	if !ok {
		room.mu.Unlock()
		return protocol.LobbyUpdatePayload{}, false, apperrors.ErrNotInRoom
	}

	member.Ready = true
	lobby = room.lobbyLocked()

	if !room.started && lobby.Ready >= room.MaxPlayers {
		room.started = true
		started = true
	}
	room.mu.Unlock()

	m.saveSnapshot(room)

	return lobby, started, nil
}

// GetRoom 获取房间
func (m *Manager) GetRoom(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[code]
}

// Disconnect 将玩家从其出现的每个房间移除（连接与就绪集合一并清除），
// 并向受影响的房间广播最新大厅快照。按房间数线性扫描，目标规模下可接受。
func (m *Manager) Disconnect(client types.ClientInterface) {
	m.mu.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		rooms = append(rooms, room)
	}
	m.mu.RUnlock()

	for _, room := range rooms {
		room.mu.Lock()
		if _, ok := room.Members[client.GetID()]; !ok {
			room.mu.Unlock()
			continue
		}
		delete(room.Members, client.GetID())
		room.lastActive = time.Now()
		lobby := room.lobbyLocked()
		room.mu.Unlock()

		room.Broadcast(protocol.MustNewMessage(protocol.MsgLobbyUpdate, lobby))
		m.saveSnapshot(room)

		log.Printf("👋 玩家 %s 离开房间 %s (%d/%d)", client.GetID(), room.Code, lobby.Current, room.MaxPlayers)
	}

	client.SetRoom("")
}
