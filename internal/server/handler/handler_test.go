package handler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/ai-dungeon-master/internal/config"
	"github.com/palemoky/ai-dungeon-master/internal/game/character"
	"github.com/palemoky/ai-dungeon-master/internal/game/room"
	"github.com/palemoky/ai-dungeon-master/internal/game/story"
	"github.com/palemoky/ai-dungeon-master/internal/protocol"
	"github.com/palemoky/ai-dungeon-master/internal/testutil"
)

func newTestHandler(gen *testutil.FakeNarrator) (*Handler, *room.Manager) {
	rooms := room.NewManager(nil, config.GameConfig{
		DefaultMaxPlayers: 4,
		HistoryLimit:      15,
		RoomIdleTimeout:   30,
	})
	h := NewHandler(Deps{
		Rooms:      rooms,
		Characters: character.NewRegistry(),
		Narrator:   gen,
		Narration: config.NarratorConfig{
			IntroTemperature: 0.7,
			ChatTemperature:  0.6,
			Timeout:          5,
		},
	})
	return h, rooms
}

func TestHandler_UnknownMessageType(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(&testutil.FakeNarrator{})
	client := &testutil.SimpleClient{ID: "p1"}

	h.Handle(client, &protocol.Message{Type: "teleport"})

	msgs := client.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, protocol.MsgError, msgs[0].Type)

	errPayload, err := protocol.ParsePayload[protocol.ErrorPayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, errPayload.Code)
}

func TestHandler_CreateRoomFlow(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(&testutil.FakeNarrator{})
	client := &testutil.SimpleClient{ID: "p1"}

	h.Handle(client, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{
		RoomCode:   "GOBLIN",
		MaxPlayers: 2,
	}))

	msgs := client.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, protocol.MsgRoomCreated, msgs[0].Type)

	// Same code again: domain error mapped to protocol error
	h.Handle(client, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{
		RoomCode: "GOBLIN",
	}))

	msgs = client.Messages()
	require.Len(t, msgs, 2)
	errPayload, err := protocol.ParsePayload[protocol.ErrorPayload](msgs[1])
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeRoomExists, errPayload.Code)
}

func TestHandler_CreateRoomEmptyCodeIgnored(t *testing.T) {
	t.Parallel()

	h, rooms := newTestHandler(&testutil.FakeNarrator{})
	client := &testutil.SimpleClient{ID: "p1"}

	h.Handle(client, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{}))

	assert.Empty(t, client.Messages())
	assert.Nil(t, rooms.GetRoom(""))
}

func TestHandler_JoinRoomFlow(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(&testutil.FakeNarrator{})
	p1 := &testutil.SimpleClient{ID: "p1"}
	p2 := &testutil.SimpleClient{ID: "p2"}

	h.Handle(p1, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: "CAVE"}))

	msgs := p1.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, protocol.MsgRoomJoined, msgs[0].Type)
	assert.Equal(t, protocol.MsgLobbyUpdate, msgs[1].Type)

	joined, err := protocol.ParsePayload[protocol.RoomJoinedPayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, "CAVE", joined.RoomCode)
	assert.Equal(t, 1, joined.Lobby.Current)

	// Second player joining updates everyone's lobby view
	h.Handle(p2, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: "CAVE"}))

	assert.Equal(t, 2, p1.CountType(protocol.MsgLobbyUpdate))
	lobby := lastOfType(t, p1, protocol.MsgLobbyUpdate)
	update, err := protocol.ParsePayload[protocol.LobbyUpdatePayload](lobby)
	require.NoError(t, err)
	assert.Equal(t, 2, update.Current)
}

func TestHandler_GameStartSingleIntro(t *testing.T) {
	t.Parallel()

	gen := &testutil.FakeNarrator{Reply: "Selamat datang di Aethelgard."}
	h, rooms := newTestHandler(gen)

	p1 := &testutil.SimpleClient{ID: "p1"}
	p2 := &testutil.SimpleClient{ID: "p2"}

	h.Handle(p1, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{RoomCode: "EPIC", MaxPlayers: 2}))
	h.Handle(p1, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: "EPIC"}))
	h.Handle(p2, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: "EPIC"}))

	h.Handle(p1, protocol.MustNewMessage(protocol.MsgSubmitCharacter, protocol.SubmitCharacterPayload{
		RoomCode: "EPIC", Name: "Arin", Class: "Rogue", Race: "Elf",
	}))
	h.Handle(p2, protocol.MustNewMessage(protocol.MsgSubmitCharacter, protocol.SubmitCharacterPayload{
		RoomCode: "EPIC", Name: "Borin", Class: "Fighter", Race: "Dwarf",
	}))

	// Both ready events land concurrently; the game must start once
	var wg sync.WaitGroup
	for _, p := range []*testutil.SimpleClient{p1, p2} {
		wg.Add(1)
		go func(c *testutil.SimpleClient) {
			defer wg.Done()
			h.Handle(c, protocol.MustNewMessage(protocol.MsgReady, protocol.ReadyPayload{RoomCode: "EPIC"}))
		}(p)
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return p1.CountType(protocol.MsgChatReply) == 1 && p2.CountType(protocol.MsgChatReply) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Exactly one game_started broadcast and one intro generation
	assert.Equal(t, 1, p1.CountType(protocol.MsgGameStarted))
	assert.Equal(t, 1, p2.CountType(protocol.MsgGameStarted))
	assert.Equal(t, 1, gen.Calls())

	// Intro context: system prompt, both character sheets, intro trigger
	ctx := gen.LastMessages()
	require.Len(t, ctx, 4)
	assert.Equal(t, story.RoleSystem, ctx[0].Role)
	assert.Equal(t, story.IntroTrigger, ctx[3].Content)

	assert.True(t, rooms.GetRoom("EPIC").Started())
}

func TestHandler_ChatFlow(t *testing.T) {
	t.Parallel()

	gen := &testutil.FakeNarrator{Reply: "Pintu berderit terbuka. Apa yang kamu lakukan?"}
	h, _ := newTestHandler(gen)

	p1 := &testutil.SimpleClient{ID: "p1"}
	h.Handle(p1, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: "DOOR"}))
	h.Handle(p1, protocol.MustNewMessage(protocol.MsgSubmitCharacter, protocol.SubmitCharacterPayload{
		RoomCode: "DOOR", Name: "Arin", Class: "Rogue", Race: "Elf",
	}))

	h.Handle(p1, protocol.MustNewMessage(protocol.MsgChat, protocol.ChatPayload{Text: "aku membuka pintu"}))

	require.Eventually(t, func() bool {
		return p1.CountType(protocol.MsgChatReply) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// The backend saw the identity-prefixed action after the character sheet
	ctx := gen.LastMessages()
	require.Len(t, ctx, 3)
	assert.Equal(t, "[Arin]: aku membuka pintu", ctx[2].Content)

	reply := lastOfType(t, p1, protocol.MsgChatReply)
	payload, err := protocol.ParsePayload[protocol.ChatReplyPayload](reply)
	require.NoError(t, err)
	assert.Equal(t, gen.Reply, payload.Text)
}

func TestHandler_ChatWithoutCharacterIgnored(t *testing.T) {
	t.Parallel()

	gen := &testutil.FakeNarrator{Reply: "..."}
	h, _ := newTestHandler(gen)

	p1 := &testutil.SimpleClient{ID: "p1"}
	h.Handle(p1, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: "MUTE"}))

	h.Handle(p1, protocol.MustNewMessage(protocol.MsgChat, protocol.ChatPayload{Text: "halo?"}))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, gen.Calls())
	assert.Equal(t, 0, p1.CountType(protocol.MsgChatReply))
}

func TestHandler_ChatRateLimited(t *testing.T) {
	t.Parallel()

	gen := &testutil.FakeNarrator{Reply: "..."}
	h, _ := newTestHandler(gen)
	h.chatLimiter = &denyAllLimiter{}

	p1 := &testutil.SimpleClient{ID: "p1"}
	h.Handle(p1, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomCode: "SPAM"}))
	h.Handle(p1, protocol.MustNewMessage(protocol.MsgSubmitCharacter, protocol.SubmitCharacterPayload{
		RoomCode: "SPAM", Name: "Arin", Class: "Rogue", Race: "Elf",
	}))

	h.Handle(p1, protocol.MustNewMessage(protocol.MsgChat, protocol.ChatPayload{Text: "cepat!"}))

	errMsg := lastOfType(t, p1, protocol.MsgError)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](errMsg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeRateLimit, payload.Code)
	assert.Equal(t, 0, gen.Calls())
}

func TestHandler_Ping(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(&testutil.FakeNarrator{})
	p1 := &testutil.SimpleClient{ID: "p1"}

	sent := time.Now().UnixMilli()
	h.Handle(p1, protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: sent}))

	msgs := p1.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, protocol.MsgPong, msgs[0].Type)

	pong, err := protocol.ParsePayload[protocol.PongPayload](msgs[0])
	require.NoError(t, err)
	assert.Equal(t, sent, pong.ClientTimestamp)
	assert.GreaterOrEqual(t, pong.ServerTimestamp, sent)
}

func TestHandler_ReadyUnknownRoomIgnored(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(&testutil.FakeNarrator{})
	p1 := &testutil.SimpleClient{ID: "p1"}

	h.Handle(p1, protocol.MustNewMessage(protocol.MsgReady, protocol.ReadyPayload{RoomCode: "VOID"}))

	assert.Empty(t, p1.Messages())
}

// denyAllLimiter rejects every action, for exercising the rate-limit path.
type denyAllLimiter struct{}

func (d *denyAllLimiter) AllowChat(string) (bool, string) { return false, "Pelan-pelan, petualang!" }
func (d *denyAllLimiter) RemoveClient(string)             {}

// lastOfType returns the most recent message of the given type, failing the
// test if none arrived.
func lastOfType(t *testing.T, c *testutil.SimpleClient, msgType protocol.MessageType) *protocol.Message {
	t.Helper()
	msgs := c.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Type == msgType {
			return msgs[i]
		}
	}
	t.Fatalf("no %s message received", msgType)
	return nil
}
