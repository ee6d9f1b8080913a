package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRoundTrip(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(MsgJoinRoom, JoinRoomPayload{RoomCode: "CAVE"})
	require.NoError(t, err)

	data, err := msg.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgJoinRoom, decoded.Type)

	payload, err := ParsePayload[JoinRoomPayload](decoded)
	require.NoError(t, err)
	assert.Equal(t, "CAVE", payload.RoomCode)
}

func TestNewMessageNilPayload(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(MsgGameStarted, nil)
	require.NoError(t, err)
	assert.Nil(t, msg.Payload)

	data, err := msg.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgGameStarted, decoded.Type)
}

func TestDecodeInvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)
}

func TestParsePayloadMismatch(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(MsgChat, ChatPayload{Text: "halo"})

	// Wrong target type with compatible JSON shape decodes to zero values
	payload, err := ParsePayload[JoinRoomPayload](msg)
	require.NoError(t, err)
	assert.Empty(t, payload.RoomCode)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(ErrCodeRoomFull)
	assert.Equal(t, MsgError, msg.Type)

	payload, err := ParsePayload[ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, ErrCodeRoomFull, payload.Code)
	assert.Equal(t, ErrorMessages[ErrCodeRoomFull], payload.Message)
}

func TestNewErrorMessageWithText(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessageWithText(ErrCodeRateLimit, "Pelan-pelan!")

	payload, err := ParsePayload[ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, ErrCodeRateLimit, payload.Code)
	assert.Equal(t, "Pelan-pelan!", payload.Message)
}
