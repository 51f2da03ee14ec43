package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestCodecPlainMessages(t *testing.T) {
	name := "hana"
	data, err := Codec.Marshal(&UpdateParticipantRequest{ID: "abc", Name: &name})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc","name":"hana"}`, string(data))

	var req JoinRoomRequest
	require.NoError(t, Codec.Unmarshal([]byte(`{"code":"AB12CD","participantId":"p1","extra":1}`), &req))
	assert.Equal(t, JoinRoomRequest{Code: "AB12CD", ParticipantID: "p1"}, req)
}

func TestCodecEmptyBody(t *testing.T) {
	var req ListRoomsRequest
	assert.NoError(t, Codec.Unmarshal(nil, &req))
}

func TestCodecProtoMessages(t *testing.T) {
	data, err := Codec.Marshal(wrapperspb.String("SERVING"))
	require.NoError(t, err)
	assert.JSONEq(t, `"SERVING"`, string(data))

	var out wrapperspb.StringValue
	require.NoError(t, Codec.Unmarshal(data, &out))
	assert.Equal(t, "SERVING", out.GetValue())
}
