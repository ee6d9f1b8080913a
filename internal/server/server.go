package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/ai-dungeon-master/internal/config"
	"github.com/palemoky/ai-dungeon-master/internal/game/character"
	"github.com/palemoky/ai-dungeon-master/internal/game/room"
	"github.com/palemoky/ai-dungeon-master/internal/narrator"
	"github.com/palemoky/ai-dungeon-master/internal/server/handler"
	"github.com/palemoky/ai-dungeon-master/internal/server/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源，生产环境需要限制
	},
}

// Server WebSocket 服务器
type Server struct {
	config     *config.Config
	store      *storage.RedisStore // 可为 nil（Redis 不可用时降级）
	rooms      *room.Manager
	characters *character.Registry
	clients    map[string]*Client
	clientsMu  sync.RWMutex
	handler    *handler.Handler

	chatLimiter *ChatRateLimiter

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config, gen narrator.Generator) *Server {
	// 初始化 Redis 客户端。快照镜像是尽力而为的，
	// Redis 不可用时服务器照常运行，只是没有运维快照。
	var store *storage.RedisStore
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis 不可用，房间快照镜像已停用: %v", err)
	} else {
		store = storage.NewRedisStore(rdb)
	}

	s := &Server{
		config:         cfg,
		store:          store,
		characters:     character.NewRegistry(),
		clients:        make(map[string]*Client),
		chatLimiter:    NewChatRateLimiter(cfg.Game.ChatPerMinute, 30*time.Second),
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
	}

	// 初始化房间管理器
	s.rooms = room.NewManager(store, cfg.Game)

	// 初始化消息处理器
	s.handler = handler.NewHandler(handler.Deps{
		Rooms:       s.rooms,
		Characters:  s.characters,
		Narrator:    gen,
		ChatLimiter: s.chatLimiter,
		Narration:   cfg.Narrator,
	})

	return s
}

// Start 启动服务器
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	log.Printf("⚔️  服务器启动在 ws://%s/ws", addr)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		IdleTimeout:       60 * time.Second,
	}
	return server.ListenAndServe()
}

// Shutdown 关闭所有客户端连接
func (s *Server) Shutdown() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for _, client := range s.clients {
		client.Close()
	}
}
