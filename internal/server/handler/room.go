package handler

import (
	"errors"

	"github.com/palemoky/ai-dungeon-master/internal/apperrors"
	"github.com/palemoky/ai-dungeon-master/internal/protocol"
	"github.com/palemoky/ai-dungeon-master/internal/types"
)

// handleCreateRoom 处理创建房间。创建不等于加入，客户端随后自行 join_room。
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.CreateRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 缺房间号静默忽略，不回任何事件
	if payload.RoomCode == "" {
		return
	}

	room, err := h.rooms.CreateRoom(payload.RoomCode, payload.MaxPlayers)
	if err != nil {
		h.sendGameError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: room.Code,
	}))
}

// handleJoinRoom 处理加入房间。未知房间号自动按默认容量创建。
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if payload.RoomCode == "" {
		return
	}

	room, err := h.rooms.JoinRoom(client, payload.RoomCode)
	if err != nil {
		h.sendGameError(client, err)
		return
	}

	lobby := room.Lobby()

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		RoomCode: room.Code,
		Lobby:    lobby,
	}))

	// 广播最新大厅状态给房间内所有人
	room.Broadcast(protocol.MustNewMessage(protocol.MsgLobbyUpdate, lobby))
}

// sendGameError 将领域错误映射为协议错误消息
func (h *Handler) sendGameError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(protocol.NewErrorMessage(gameErr.Code))
		return
	}
	client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}
