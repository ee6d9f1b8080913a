package apperrors

import (
	"github.com/palemoky/ai-dungeon-master/internal/protocol"
)

// GameError 游戏错误（房间和会话共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrRoomExists = &GameError{Code: protocol.ErrCodeRoomExists, Message: protocol.ErrorMessages[protocol.ErrCodeRoomExists]}
	ErrRoomFull   = &GameError{Code: protocol.ErrCodeRoomFull, Message: protocol.ErrorMessages[protocol.ErrCodeRoomFull]}
	ErrNotInRoom  = &GameError{Code: protocol.ErrCodeNotInRoom, Message: protocol.ErrorMessages[protocol.ErrCodeNotInRoom]}
)
