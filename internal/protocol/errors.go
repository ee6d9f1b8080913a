package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001
	ErrCodeRateLimit  = 1002 // 速率限制
	ErrCodeRoomExists = 2001
	ErrCodeRoomFull   = 2002
	ErrCodeNotInRoom  = 2003
	ErrCodeNarrator   = 4001 // DM 后端调用失败
)

// ErrorMessages 错误码对应的消息（产品面向印尼语用户）
var ErrorMessages = map[int]string{
	ErrCodeUnknown:    "Terjadi kesalahan tak dikenal",
	ErrCodeInvalidMsg: "Format pesan tidak valid",
	ErrCodeRateLimit:  "Pesan terlalu sering, pelan-pelan ya",
	ErrCodeRoomExists: "Room sudah ada! Gunakan kode lain.",
	ErrCodeRoomFull:   "Room Penuh!",
	ErrCodeNotInRoom:  "Kamu belum bergabung ke room",
	ErrCodeNarrator:   "Dungeon Master sedang tidak merespons",
}
