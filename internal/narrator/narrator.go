// Package narrator 封装对 DM 生成后端的调用：一个窄接口、
// 一个 Groq（OpenAI chat-completions 兼容）HTTP 实现，
// 以及对生成文本的结构契约净化器。
package narrator

import (
	"context"

	"github.com/palemoky/ai-dungeon-master/internal/game/story"
)

// GenerateOptions 单次生成参数
type GenerateOptions struct {
	Temperature float64
}

// Generator DM 后端能力接口：给定有序消息序列，返回生成文本或错误。
// 无重试、无流式；调用方自行决定超时（通过 ctx）。
type Generator interface {
	Generate(ctx context.Context, messages []story.Entry, opts GenerateOptions) (string, error)
}
