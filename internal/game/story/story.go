// Package story 管理一局冒险的叙事上下文：系统提示词、角色介绍前缀和
// 有界的聊天窗口。发送给 DM 后端的消息序列永远是
// [system] + characters + chat，system 恒为第一条且不参与窗口淘汰；
// 角色介绍不设上限（叙事连续性优先于上下文体积，超长局的已知取舍）。
package story

import "fmt"

// 消息角色
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Entry 一条上下文消息，JSON 形状与 chat-completions 接口一致
type Entry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Window 有界的聊天历史窗口，超出上限时先进先出淘汰
type Window struct {
	limit   int
	entries []Entry
}

// NewWindow 创建聊天窗口，limit 非正数时不限制
func NewWindow(limit int) *Window {
	return &Window{limit: limit}
}

// Append 追加一条聊天记录，超限时只保留最近 limit 条
func (w *Window) Append(e Entry) {
	w.entries = append(w.entries, e)
	if w.limit > 0 && len(w.entries) > w.limit {
		w.entries = w.entries[len(w.entries)-w.limit:]
	}
}

// Len 返回当前窗口内的记录条数
func (w *Window) Len() int {
	return len(w.entries)
}

// Entries 返回窗口内记录的副本
func (w *Window) Entries() []Entry {
	out := make([]Entry, len(w.entries))
	copy(out, w.entries)
	return out
}

// BuildContext 组装发送给 DM 后端的完整消息序列
func BuildContext(system Entry, characters []Entry, chat *Window) []Entry {
	out := make([]Entry, 0, 1+len(characters)+chat.Len())
	out = append(out, system)
	out = append(out, characters...)
	out = append(out, chat.entries...)
	return out
}

// CharacterIntro 由角色卡合成一条介绍消息，字段原样写入不做校验
func CharacterIntro(name, class, race string) Entry {
	return Entry{
		Role:    RoleUser,
		Content: fmt.Sprintf("[PLAYER INFO] Name: %s, Class: %s, Race: %s.", name, class, race),
	}
}
