// Package character 维护进程级的角色卡注册表，按连接 ID 索引。
package character

import "sync"

// Sheet 角色卡：字段不做校验，原样进入叙事上下文
type Sheet struct {
	RoomCode string // 关联的房间号
	Name     string
	Class    string
	Race     string
}

// Registry 角色卡注册表
type Registry struct {
	sheets map[string]Sheet
	mu     sync.RWMutex
}

// NewRegistry 创建注册表
func NewRegistry() *Registry {
	return &Registry{
		sheets: make(map[string]Sheet),
	}
}

// Set 记录某个连接的角色卡，重复提交覆盖旧卡
func (r *Registry) Set(clientID string, sheet Sheet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sheets[clientID] = sheet
}

// Get 查询角色卡
func (r *Registry) Get(clientID string) (Sheet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sheet, ok := r.sheets[clientID]
	return sheet, ok
}

// Remove 删除角色卡（玩家断开时调用）
func (r *Registry) Remove(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sheets, clientID)
}

// Len 返回当前登记的角色数
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sheets)
}
