// Package ui 实现 TUI 客户端：菜单 → 角色卡 → 等待室 → 冒险。
package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/ai-dungeon-master/internal/netclient"
	"github.com/palemoky/ai-dungeon-master/internal/protocol"
)

// screen UI 所处的界面
type screen int

const (
	screenMenu      screen = iota // 创建/加入房间
	screenCharacter               // 填写角色卡
	screenLobby                   // 等待室
	screenGame                    // 冒险进行中
)

// serverMsg 服务端推送的消息
type serverMsg *protocol.Message

// connectedMsg 连接建立完成
type connectedMsg struct {
	client *netclient.Client
}

// connClosedMsg 连接已断开
type connClosedMsg struct{}

// Model TUI 根模型
type Model struct {
	serverURL string
	client    *netclient.Client

	screen screen
	width  int
	height int
	errMsg string

	// 菜单
	roomInput textinput.Model
	maxInput  textinput.Model
	menuFocus int
	roomCode  string

	// 角色卡
	charInputs []textinput.Model
	charFocus  int

	// 等待室
	lobby protocol.LobbyUpdatePayload
	ready bool

	// 冒险
	history   []string
	chatView  viewport.Model
	chatInput textinput.Model
}

// NewModel 创建根模型
func NewModel(serverURL string) *Model {
	roomInput := textinput.New()
	roomInput.Placeholder = "Kode room"
	roomInput.CharLimit = 12
	roomInput.Focus()

	maxInput := textinput.New()
	maxInput.Placeholder = "Jumlah pemain (default 4)"
	maxInput.CharLimit = 2

	labels := []string{"Nama", "Class", "Race"}
	charInputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 30
		charInputs[i] = in
	}
	charInputs[0].Focus()

	chatInput := textinput.New()
	chatInput.Placeholder = "Apa yang kamu lakukan?"
	chatInput.CharLimit = 200

	return &Model{
		serverURL:  serverURL,
		roomInput:  roomInput,
		maxInput:   maxInput,
		charInputs: charInputs,
		chatView:   viewport.New(80, 20),
		chatInput:  chatInput,
	}
}

// Init 拨号并开始监听服务器消息
func (m *Model) Init() tea.Cmd {
	return m.connect
}

func (m *Model) connect() tea.Msg {
	client, err := netclient.Dial(m.serverURL)
	if err != nil {
		return connClosedMsg{}
	}
	return connectedMsg{client: client}
}

// waitForServer 等待下一条服务端消息
func (m *Model) waitForServer() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.client.Incoming
		if !ok {
			return connClosedMsg{}
		}
		return serverMsg(msg)
	}
}

// Update 处理按键与服务端消息
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.chatView.Width = msg.Width - 4
		m.chatView.Height = msg.Height - 6
		return m, nil

	case connectedMsg:
		m.client = msg.client
		return m, m.waitForServer()

	case connClosedMsg:
		m.errMsg = "Koneksi ke server terputus"
		return m, tea.Quit

	case serverMsg:
		return m.handleServer((*protocol.Message)(msg))

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.client != nil {
				m.client.Close()
			}
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleServer 根据服务端消息推进界面状态
func (m *Model) handleServer(msg *protocol.Message) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case protocol.MsgRoomCreated:
		// 创建后立即加入
		m.client.Send(protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: m.roomCode}))

	case protocol.MsgRoomJoined:
		if payload, err := protocol.ParsePayload[protocol.RoomJoinedPayload](msg); err == nil {
			m.roomCode = payload.RoomCode
			m.lobby = payload.Lobby
			m.screen = screenCharacter
			m.errMsg = ""
		}

	case protocol.MsgLobbyUpdate:
		if payload, err := protocol.ParsePayload[protocol.LobbyUpdatePayload](msg); err == nil {
			m.lobby = *payload
		}

	case protocol.MsgGameStarted:
		m.screen = screenGame
		m.chatInput.Focus()
		m.appendHistory(SubtleStyle.Render("— Petualangan dimulai —"))

	case protocol.MsgChatReply:
		if payload, err := protocol.ParsePayload[protocol.ChatReplyPayload](msg); err == nil {
			m.appendHistory(DMStyle.Render("DM: ") + payload.Text)
		}

	case protocol.MsgError:
		if payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg); err == nil {
			m.errMsg = payload.Message
		}
	}

	return m, m.waitForServer()
}

// handleKey 按界面分发按键
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenMenu:
		return m.updateMenu(msg)
	case screenCharacter:
		return m.updateCharacter(msg)
	case screenLobby:
		return m.updateLobby(msg)
	case screenGame:
		return m.updateGame(msg)
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown, tea.KeyUp:
		m.menuFocus = (m.menuFocus + 1) % 2
		if m.menuFocus == 0 {
			m.roomInput.Focus()
			m.maxInput.Blur()
		} else {
			m.roomInput.Blur()
			m.maxInput.Focus()
		}
		return m, nil

	case tea.KeyEnter:
		if m.client == nil {
			m.errMsg = "Masih menghubungkan ke server..."
			return m, nil
		}
		code := m.roomInput.Value()
		if code == "" {
			m.errMsg = "Kode room wajib diisi"
			return m, nil
		}
		m.roomCode = code
		if maxPlayers, err := strconv.Atoi(m.maxInput.Value()); err == nil && maxPlayers > 0 {
			// 指定了人数则显式创建，已存在时服务器会报错
			m.client.Send(protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{
				RoomCode:   code,
				MaxPlayers: maxPlayers,
			}))
		} else {
			m.client.Send(protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: code}))
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.menuFocus == 0 {
		m.roomInput, cmd = m.roomInput.Update(msg)
	} else {
		m.maxInput, cmd = m.maxInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateCharacter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		m.setCharFocus((m.charFocus + 1) % len(m.charInputs))
		return m, nil
	case tea.KeyUp:
		m.setCharFocus((m.charFocus + len(m.charInputs) - 1) % len(m.charInputs))
		return m, nil

	case tea.KeyEnter:
		if m.charFocus < len(m.charInputs)-1 {
			m.setCharFocus(m.charFocus + 1)
			return m, nil
		}
		m.client.Send(protocol.MustNewMessage(protocol.MsgSubmitCharacter, protocol.SubmitCharacterPayload{
			RoomCode: m.roomCode,
			Name:     m.charInputs[0].Value(),
			Class:    m.charInputs[1].Value(),
			Race:     m.charInputs[2].Value(),
		}))
		m.screen = screenLobby
		return m, nil
	}

	var cmd tea.Cmd
	m.charInputs[m.charFocus], cmd = m.charInputs[m.charFocus].Update(msg)
	return m, cmd
}

func (m *Model) setCharFocus(idx int) {
	m.charInputs[m.charFocus].Blur()
	m.charFocus = idx
	m.charInputs[m.charFocus].Focus()
}

func (m *Model) updateLobby(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter && !m.ready {
		m.ready = true
		m.client.Send(protocol.MustNewMessage(protocol.MsgReady, protocol.ReadyPayload{RoomCode: m.roomCode}))
	}
	return m, nil
}

func (m *Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		text := m.chatInput.Value()
		if text != "" {
			m.client.Send(protocol.MustNewMessage(protocol.MsgChat, protocol.ChatPayload{Text: text}))
			m.appendHistory(PlayerStyle.Render(fmt.Sprintf("Kamu: %s", text)))
			m.chatInput.SetValue("")
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	cmds = append(cmds, cmd)
	m.chatView, cmd = m.chatView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) appendHistory(line string) {
	m.history = append(m.history, line)
	if len(m.history) > 200 {
		m.history = m.history[len(m.history)-200:]
	}
	content := ""
	for _, l := range m.history {
		content += l + "\n"
	}
	m.chatView.SetContent(content)
	m.chatView.GotoBottom()
}
