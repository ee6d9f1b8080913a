package room

import (
	"sync"
	"time"

	"github.com/palemoky/ai-dungeon-master/internal/config"
	"github.com/palemoky/ai-dungeon-master/internal/game/story"
	"github.com/palemoky/ai-dungeon-master/internal/protocol"
	"github.com/palemoky/ai-dungeon-master/internal/server/storage"
	"github.com/palemoky/ai-dungeon-master/internal/types"
)

// Member 房间中的玩家
type Member struct {
	Client types.ClientInterface
	Ready  bool // 是否准备
}

// Room 冒险房间：成员、就绪状态和叙事上下文的唯一持有者
type Room struct {
	Code       string    // 房间号
	MaxPlayers int       // 房间容量
	CreatedAt  time.Time // 创建时间

	System     story.Entry   // 系统提示词，创建后不可变
	Characters []story.Entry // 角色介绍，只增不减、不参与窗口淘汰
	Chat       *story.Window // 有界聊天窗口

	Members map[string]*Member // 已连接玩家
	started bool               // 开局闸（同步置位，每房间只触发一次）

	lastActive time.Time // 最后一次成员变动时间，用于空房回收

	mu sync.RWMutex
	// 串行化本房间的后端调用，保证回复按提交顺序广播
	narrateMu sync.Mutex
}

// Manager 房间管理器
type Manager struct {
	store *storage.RedisStore // 可为 nil（快照镜像降级为关闭）
	cfg   config.GameConfig
	rooms map[string]*Room
	mu    sync.RWMutex
}

// NewManager 创建房间管理器
func NewManager(store *storage.RedisStore, cfg config.GameConfig) *Manager {
	m := &Manager{
		store: store,
		cfg:   cfg,
		rooms: make(map[string]*Room),
	}

	// 启动空房间清理协程
	go m.cleanupLoop()

	return m
}

// newRoom 分配一个空房间
func (m *Manager) newRoom(code string, maxPlayers int) *Room {
	if maxPlayers <= 0 {
		maxPlayers = m.cfg.DefaultMaxPlayers
	}
	now := time.Now()
	return &Room{
		Code:       code,
		MaxPlayers: maxPlayers,
		CreatedAt:  now,
		System:     story.Entry{Role: story.RoleSystem, Content: story.SystemPrompt},
		Chat:       story.NewWindow(m.cfg.HistoryLimit),
		Members:    make(map[string]*Member),
		lastActive: now,
	}
}

// Lobby 返回大厅状态快照
func (r *Room) Lobby() protocol.LobbyUpdatePayload {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lobbyLocked()
}

func (r *Room) lobbyLocked() protocol.LobbyUpdatePayload {
	ready := 0
	for _, m := range r.Members {
		if m.Ready {
			ready++
		}
	}
	return protocol.LobbyUpdatePayload{
		Current: len(r.Members),
		Max:     r.MaxPlayers,
		Ready:   ready,
	}
}

// Started 返回开局闸状态
func (r *Room) Started() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.started
}

// Broadcast 广播消息给房间内所有玩家
func (r *Room) Broadcast(msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, member := range r.Members {
		member.Client.SendMessage(msg)
	}
}

// AddCharacter 追加一条角色介绍
func (r *Room) AddCharacter(entry story.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Characters = append(r.Characters, entry)
	r.lastActive = time.Now()
}

// AppendChat 追加一条聊天记录，窗口超限时淘汰最旧的
func (r *Room) AppendChat(role, content string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Chat.Append(story.Entry{Role: role, Content: content})
	r.lastActive = time.Now()
}

// BuildContext 组装发送给 DM 后端的完整消息序列
func (r *Room) BuildContext() []story.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return story.BuildContext(r.System, r.Characters, r.Chat)
}

// Snapshot 导出房间快照（用于 Redis 镜像）
func (r *Room) Snapshot() *storage.RoomData {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lobby := r.lobbyLocked()
	return &storage.RoomData{
		Code:       r.Code,
		MaxPlayers: r.MaxPlayers,
		Connected:  lobby.Current,
		Ready:      lobby.Ready,
		Started:    r.started,
		Characters: len(r.Characters),
		ChatLen:    r.Chat.Len(),
		UpdatedAt:  time.Now().Unix(),
	}
}
