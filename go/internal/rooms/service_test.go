package rooms

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/mcdev12/meshiroyale/go/internal/participants"
	"github.com/mcdev12/meshiroyale/go/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, repo *MockRepository) (rpc.RoomServiceClient, *httptest.Server) {
	t.Helper()
	app := NewApp(repo, Config{})
	mux := http.NewServeMux()
	mux.Handle(rpc.NewRoomServiceHandler(NewService(app)))
	NewInviteHandler(app, "https://meshi.example").RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return rpc.NewRoomServiceClient(srv.Client(), srv.URL), srv
}

func TestServiceJoinReturnsMembersInOrder(t *testing.T) {
	repo := new(MockRepository)
	client, _ := newTestServer(t, repo)
	first, second := uuid.New(), uuid.New()
	joined := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.On("JoinRoom", mock.Anything, "AB12CD", second, 4).Return(&models.Room{
		ID:   uuid.New(),
		Code: "AB12CD",
		Name: "lunch",
		Members: []models.Member{
			{Participant: models.Participant{ID: first, Name: "a"}, JoinedAt: joined},
			{Participant: models.Participant{ID: second, Name: "b"}, JoinedAt: joined.Add(time.Second)},
		},
	}, nil)

	res, err := client.JoinRoom(context.Background(), connect.NewRequest(&rpc.JoinRoomRequest{
		Code: "AB12CD", ParticipantID: second.String(),
	}))

	require.NoError(t, err)
	require.Len(t, res.Msg.Room.Members, 2)
	assert.Equal(t, first.String(), res.Msg.Room.Members[0].Participant.ID)
	assert.Equal(t, second.String(), res.Msg.Room.Members[1].Participant.ID)
}

func TestServiceErrorCodes(t *testing.T) {
	tests := []struct {
		err  error
		code connect.Code
	}{
		{ErrRoomNotFound, connect.CodeNotFound},
		{participants.ErrParticipantNotFound, connect.CodeNotFound},
		{ErrAlreadyJoined, connect.CodeAlreadyExists},
		{ErrRoomFull, connect.CodeResourceExhausted},
	}
	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			repo := new(MockRepository)
			client, _ := newTestServer(t, repo)
			pid := uuid.New()
			repo.On("JoinRoom", mock.Anything, "AB12CD", pid, 4).Return(nil, tc.err)

			_, err := client.JoinRoom(context.Background(), connect.NewRequest(&rpc.JoinRoomRequest{
				Code: "AB12CD", ParticipantID: pid.String(),
			}))

			assert.Equal(t, tc.code, connect.CodeOf(err))
		})
	}
}

func TestServiceSelectGame(t *testing.T) {
	client, _ := newTestServer(t, new(MockRepository))

	res, err := client.SelectGame(context.Background(), connect.NewRequest(&rpc.SelectGameRequest{Code: "AAAAAA"}))

	require.NoError(t, err)
	assert.Equal(t, string(models.GameTypeButtonMashing), res.Msg.GameType)
	assert.Equal(t, "/games/button-mashing", res.Msg.Route)
}

func TestInviteQR(t *testing.T) {
	repo := new(MockRepository)
	_, srv := newTestServer(t, repo)
	repo.On("GetRoomByCode", mock.Anything, "AB12CD").Return(&models.Room{Code: "AB12CD"}, nil)
	repo.On("GetRoomByCode", mock.Anything, "ZZZZZZ").Return(nil, ErrRoomNotFound)

	res, err := http.Get(srv.URL + "/rooms/ab12cd/qr")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "image/png", res.Header.Get("Content-Type"))
	var buf bytes.Buffer
	_, err = buf.ReadFrom(res.Body)
	require.NoError(t, err)
	_, err = png.Decode(&buf)
	assert.NoError(t, err)

	missing, err := http.Get(srv.URL + "/rooms/ZZZZZZ/qr")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestInviteURL(t *testing.T) {
	assert.Equal(t, "https://meshi.example/room/AB12CD", InviteURL("https://meshi.example/", "AB12CD"))
}
