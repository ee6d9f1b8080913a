package server

import (
	"sync"
	"time"
)

// ChatRateLimiter 玩家行动速率限制器。
// 每次行动都会触发一次 DM 后端调用，限流同时保护服务器和 LLM 配额。
type ChatRateLimiter struct {
	maxPerMinute int
	cooldown     time.Duration

	mu      sync.Mutex
	history map[string][]time.Time // 客户端 ID → 最近一分钟内的行动时间
	banned  map[string]time.Time   // 客户端 ID → 冷却截止时间
}

// NewChatRateLimiter 创建行动限流器
func NewChatRateLimiter(maxPerMinute int, cooldown time.Duration) *ChatRateLimiter {
	return &ChatRateLimiter{
		maxPerMinute: maxPerMinute,
		cooldown:     cooldown,
		history:      make(map[string][]time.Time),
		banned:       make(map[string]time.Time),
	}
}

// AllowChat 判断客户端是否允许发送行动，超限进入冷却
func (l *ChatRateLimiter) AllowChat(clientID string) (bool, string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	if until, ok := l.banned[clientID]; ok {
		if now.Before(until) {
			return false, "Pesan terlalu sering, tunggu sebentar"
		}
		delete(l.banned, clientID)
	}

	// 只保留最近一分钟的记录
	cutoff := now.Add(-time.Minute)
	recent := l.history[clientID][:0]
	for _, t := range l.history[clientID] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.maxPerMinute {
		l.history[clientID] = recent
		l.banned[clientID] = now.Add(l.cooldown)
		return false, "Pesan terlalu sering, tunggu sebentar"
	}

	l.history[clientID] = append(recent, now)
	return true, ""
}

// RemoveClient 清理断开客户端的限流状态
func (l *ChatRateLimiter) RemoveClient(clientID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.history, clientID)
	delete(l.banned, clientID)
}
