package handler

import (
	"context"
	"fmt"
	"log"

	"github.com/palemoky/ai-dungeon-master/internal/game/character"
	"github.com/palemoky/ai-dungeon-master/internal/game/room"
	"github.com/palemoky/ai-dungeon-master/internal/game/story"
	"github.com/palemoky/ai-dungeon-master/internal/narrator"
	"github.com/palemoky/ai-dungeon-master/internal/protocol"
	"github.com/palemoky/ai-dungeon-master/internal/types"
)

// handleSubmitCharacter 记录角色卡并向房间上下文追加介绍消息。
// 字段不做校验，原样写入叙事模板。
func (h *Handler) handleSubmitCharacter(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.SubmitCharacterPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	h.characters.Set(client.GetID(), character.Sheet{
		RoomCode: payload.RoomCode,
		Name:     payload.Name,
		Class:    payload.Class,
		Race:     payload.Race,
	})

	if room := h.rooms.GetRoom(payload.RoomCode); room != nil {
		room.AddCharacter(story.CharacterIntro(payload.Name, payload.Class, payload.Race))
	}
}

// handleReady 标记玩家就绪。就绪人数达到容量时触发开局：
// 开局闸在房间锁内同步置位，即使最后两个 ready 事件交错到达，
// game_started 广播和开场叙事也只会发生一次。
func (h *Handler) handleReady(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ReadyPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r := h.rooms.GetRoom(payload.RoomCode)
	if r == nil {
		return
	}

	lobby, started, err := h.rooms.SetReady(client, payload.RoomCode)
	if err != nil {
		h.sendGameError(client, err)
		return
	}

	r.Broadcast(protocol.MustNewMessage(protocol.MsgLobbyUpdate, lobby))

	if !started {
		return
	}

	log.Printf("🚀 房间 %s 全员就绪，游戏开始", r.Code)
	r.Broadcast(protocol.MustNewMessage(protocol.MsgGameStarted, nil))

	// 注入开场触发并生成第一段叙事
	r.AppendChat(story.RoleSystem, story.IntroTrigger)
	go h.narrate(r, h.narration.IntroTemperature, story.FallbackIntro)
}

// handleChat 处理玩家行动：入窗口 → 触发 DM 叙事。
// 未提交角色卡或房间不存在时静默忽略，和未加入就发言一样不值得回应。
func (h *Handler) handleChat(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ChatPayload](msg)
	if err != nil {
		return
	}

	// 行动限流检查
	if h.chatLimiter != nil {
		allowed, reason := h.chatLimiter.AllowChat(client.GetID())
		if !allowed {
			client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeRateLimit, reason))
			return
		}
	}

	sheet, ok := h.characters.Get(client.GetID())
	if !ok {
		return
	}

	r := h.rooms.GetRoom(sheet.RoomCode)
	if r == nil {
		return
	}

	// 带角色名的身份前缀，DM 据此区分发言者
	r.AppendChat(story.RoleUser, fmt.Sprintf("[%s]: %s", sheet.Name, payload.Text))

	go h.narrate(r, h.narration.ChatTemperature, story.FallbackReply)
}

// narrate 触发一轮叙事生成。失败无需上抛：Narrate 已记日志，
// 玩家侧的表现就是这一轮没有回复。
func (h *Handler) narrate(r *room.Room, temperature float64, fallback string) {
	ctx, cancel := context.WithTimeout(context.Background(), h.narration.TimeoutDuration())
	defer cancel()

	_ = h.rooms.Narrate(ctx, r, h.narrator, narrator.GenerateOptions{Temperature: temperature}, fallback)
}
