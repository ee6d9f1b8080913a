package room

import (
	"context"
	"log"

	"github.com/palemoky/ai-dungeon-master/internal/game/story"
	"github.com/palemoky/ai-dungeon-master/internal/narrator"
	"github.com/palemoky/ai-dungeon-master/internal/protocol"
)

// Narrate 执行一轮 DM 叙事：组装上下文 → 调用后端 → 净化 → 入窗口 → 广播。
// 同一房间的调用由 narrateMu 串行化，回复按提交顺序广播。
// 后端失败只记日志不广播（触发该轮的状态已写入，玩家侧表现为没有回复）。
func (m *Manager) Narrate(ctx context.Context, r *Room, gen narrator.Generator, opts narrator.GenerateOptions, fallback string) error {
	r.narrateMu.Lock()
	defer r.narrateMu.Unlock()

	messages := r.BuildContext()

	raw, err := gen.Generate(ctx, messages, opts)
	if err != nil {
		log.Printf("❌ 房间 %s DM 调用失败: %v", r.Code, err)
		return err
	}
	if raw == "" {
		raw = fallback
	}

	clean := narrator.Sanitize(raw)

	r.AppendChat(story.RoleAssistant, clean)
	r.Broadcast(protocol.MustNewMessage(protocol.MsgChatReply, protocol.ChatReplyPayload{Text: clean}))

	m.saveSnapshot(r)

	return nil
}
