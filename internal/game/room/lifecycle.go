package room

import (
	"context"
	"log"
	"time"
)

// saveSnapshot 异步保存房间快照到 Redis（尽力而为，失败只丢镜像不丢状态）
func (m *Manager) saveSnapshot(r *Room) {
	if m.store == nil {
		return
	}
	data := r.Snapshot()
	go func() { _ = m.store.SaveRoom(context.Background(), r.Code, data) }()
}

// dropSnapshot 异步删除房间快照
func (m *Manager) dropSnapshot(code string) {
	if m.store == nil {
		return
	}
	go func() { _ = m.store.DeleteRoom(context.Background(), code) }()
}

// cleanupLoop 定期回收空房间
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.cleanup()
	}
}

// cleanup 回收超时的空房间。房间本身没有显式销毁操作，
// 只有空置超过 idle timeout 的房间才会被移除，防止内存无限增长。
func (m *Manager) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()

	for code, room := range m.rooms {
		room.mu.RLock()
		idle := len(room.Members) == 0 && now.Sub(room.lastActive) > m.cfg.RoomIdleTimeoutDuration()
		room.mu.RUnlock()

		if idle {
			delete(m.rooms, code)
			m.dropSnapshot(code)
			log.Printf("🧹 空房间 %s 已回收", code)
		}
	}
}
