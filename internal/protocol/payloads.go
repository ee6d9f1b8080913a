package protocol

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// CreateRoomPayload 创建房间请求
type CreateRoomPayload struct {
	RoomCode   string `json:"room_code"`
	MaxPlayers int    `json:"max_players"` // 非正数时使用默认值
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
}

// SubmitCharacterPayload 提交角色卡请求
type SubmitCharacterPayload struct {
	RoomCode string `json:"room_code"`
	Name     string `json:"name"`
	Class    string `json:"class"`
	Race     string `json:"race"`
}

// ReadyPayload 准备就绪请求
type ReadyPayload struct {
	RoomCode string `json:"room_code"`
}

// ChatPayload 玩家行动请求（发送者由连接标识）
type ChatPayload struct {
	Text string `json:"text"`
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID string `json:"player_id"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// RoomCreatedPayload 房间创建成功响应
type RoomCreatedPayload struct {
	RoomCode string `json:"room_code"`
}

// RoomJoinedPayload 加入房间成功响应
type RoomJoinedPayload struct {
	RoomCode string             `json:"room_code"`
	Lobby    LobbyUpdatePayload `json:"lobby"`
}

// LobbyUpdatePayload 大厅状态快照
type LobbyUpdatePayload struct {
	Current int `json:"current"` // 当前连接人数
	Max     int `json:"max"`     // 房间容量
	Ready   int `json:"ready"`   // 已准备人数
}

// ChatReplyPayload DM 叙事回复
type ChatReplyPayload struct {
	Text string `json:"text"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
