// Package netclient 是 TUI 客户端的 WebSocket 传输层：
// 负责拨号、读写协程和心跳，收到的消息通过 channel 交给 UI。
package netclient

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/ai-dungeon-master/internal/logger"
	"github.com/palemoky/ai-dungeon-master/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client 客户端连接
type Client struct {
	conn *websocket.Conn
	send chan *protocol.Message

	// Incoming 服务端推送的消息，连接断开时关闭
	Incoming chan *protocol.Message

	closeOnce sync.Once
	done      chan struct{}
}

// Dial 连接服务器并启动读写协程
func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		conn:     conn,
		send:     make(chan *protocol.Message, 64),
		Incoming: make(chan *protocol.Message, 64),
		done:     make(chan struct{}),
	}

	go c.readPump()
	go c.writePump()

	return c, nil
}

// Send 发送消息（缓冲满时丢弃并记日志，不阻塞 UI）
func (c *Client) Send(msg *protocol.Message) {
	select {
	case c.send <- msg:
	case <-c.done:
	default:
		logger.LogError("send buffer full, dropping %s", msg.Type)
	}
}

// Close 关闭连接
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// readPump 从服务器读取消息
func (c *Client) readPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		c.Close()
		close(c.Incoming)
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.LogError("read: %v", err)
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			logger.LogError("decode: %v", err)
			continue
		}

		select {
		case c.Incoming <- msg:
		case <-c.done:
			return
		}
	}
}

// writePump 向服务器写入消息并维持心跳
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			data, err := msg.Encode()
			if err != nil {
				logger.LogError("encode: %v", err)
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}
