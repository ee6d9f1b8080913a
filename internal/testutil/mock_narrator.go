//go:build !production

package testutil

import (
	"context"
	"sync/atomic"

	"github.com/palemoky/ai-dungeon-master/internal/game/story"
	"github.com/palemoky/ai-dungeon-master/internal/narrator"
)

// FakeNarrator 可编程的 DM 后端替身
type FakeNarrator struct {
	Reply string
	Err   error

	calls    atomic.Int64
	lastMsgs atomic.Pointer[[]story.Entry]
}

func (f *FakeNarrator) Generate(_ context.Context, messages []story.Entry, _ narrator.GenerateOptions) (string, error) {
	f.calls.Add(1)
	msgs := make([]story.Entry, len(messages))
	copy(msgs, messages)
	f.lastMsgs.Store(&msgs)

	if f.Err != nil {
		return "", f.Err
	}
	return f.Reply, nil
}

// Calls 返回累计调用次数
func (f *FakeNarrator) Calls() int {
	return int(f.calls.Load())
}

// LastMessages 返回最近一次调用收到的消息序列
func (f *FakeNarrator) LastMessages() []story.Entry {
	p := f.lastMsgs.Load()
	if p == nil {
		return nil
	}
	return *p
}
