package handler

import (
	"log"

	"github.com/palemoky/ai-dungeon-master/internal/config"
	"github.com/palemoky/ai-dungeon-master/internal/game/character"
	"github.com/palemoky/ai-dungeon-master/internal/game/room"
	"github.com/palemoky/ai-dungeon-master/internal/narrator"
	"github.com/palemoky/ai-dungeon-master/internal/protocol"
	"github.com/palemoky/ai-dungeon-master/internal/types"
)

// Deps 处理器依赖
type Deps struct {
	Rooms       *room.Manager
	Characters  *character.Registry
	Narrator    narrator.Generator
	ChatLimiter types.ChatLimiter
	Narration   config.NarratorConfig
}

// Handler 消息处理器
type Handler struct {
	rooms       *room.Manager
	characters  *character.Registry
	narrator    narrator.Generator
	chatLimiter types.ChatLimiter
	narration   config.NarratorConfig
	handlers    map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps Deps) *Handler {
	h := &Handler{
		rooms:       deps.Rooms,
		characters:  deps.Characters,
		narrator:    deps.Narrator,
		chatLimiter: deps.ChatLimiter,
		narration:   deps.Narration,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing: h.handlePing,

		// 房间操作
		protocol.MsgCreateRoom: h.handleCreateRoom,
		protocol.MsgJoinRoom:   h.handleJoinRoom,
		protocol.MsgReady:      h.handleReady,

		// 游戏操作
		protocol.MsgSubmitCharacter: h.handleSubmitCharacter,
		protocol.MsgChat:            h.handleChat,
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Printf("⚠️  未知消息类型: '%s' (玩家: %s)", msg.Type, client.GetID())
	client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}
