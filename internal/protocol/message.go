package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 房间操作
	MsgCreateRoom MessageType = "create_room" // 创建房间
	MsgJoinRoom   MessageType = "join_room"   // 加入房间
	MsgReady      MessageType = "ready"       // 准备就绪

	// 游戏操作
	MsgSubmitCharacter MessageType = "submit_character" // 提交角色卡
	MsgChat            MessageType = "chat"             // 玩家行动/聊天
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected MessageType = "connected" // 连接成功
	MsgPong      MessageType = "pong"      // 心跳 pong

	// 房间相关
	MsgRoomCreated MessageType = "room_created" // 房间创建成功
	MsgRoomJoined  MessageType = "room_joined"  // 加入房间成功
	MsgLobbyUpdate MessageType = "lobby_update" // 大厅状态更新

	// 游戏流程
	MsgGameStarted MessageType = "game_started" // 全员就绪，游戏开始
	MsgChatReply   MessageType = "chat_reply"   // DM 叙事回复

	// 错误
	MsgError MessageType = "error" // 错误消息
)
