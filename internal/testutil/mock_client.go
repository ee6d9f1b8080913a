//go:build !production

package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/ai-dungeon-master/internal/protocol"
)

// MockClient 实现 types.ClientInterface 的 mock
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetRoom() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetRoom(roomCode string) {
	m.Called(roomCode)
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Called(msg)
}

func (m *MockClient) Close() {
	m.Called()
}

// SimpleClient 简单的 mock 客户端，不使用 testify（用于不需要断言的测试）。
// 消息记录加锁，便于并发场景下收集广播。
type SimpleClient struct {
	ID       string
	RoomCode string

	mu       sync.Mutex
	messages []*protocol.Message
}

func (m *SimpleClient) GetID() string       { return m.ID }
func (m *SimpleClient) GetRoom() string     { return m.RoomCode }
func (m *SimpleClient) SetRoom(code string) { m.RoomCode = code }
func (m *SimpleClient) Close()              {}

func (m *SimpleClient) SendMessage(msg *protocol.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

// Messages 返回已收到消息的副本
func (m *SimpleClient) Messages() []*protocol.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*protocol.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// CountType 统计某类型消息的数量
func (m *SimpleClient) CountType(msgType protocol.MessageType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, msg := range m.messages {
		if msg.Type == msgType {
			count++
		}
	}
	return count
}
