package participants

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/mcdev12/meshiroyale/go/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, repo *MockRepository) rpc.ParticipantServiceClient {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle(rpc.NewParticipantServiceHandler(NewService(NewApp(repo))))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return rpc.NewParticipantServiceClient(srv.Client(), srv.URL)
}

func TestServiceCreateAndGet(t *testing.T) {
	repo := new(MockRepository)
	client := newTestClient(t, repo)
	p := &models.Participant{ID: uuid.New(), Name: "hana", RestaurantCandidate: "焼肉"}
	repo.On("CreateParticipant", mock.Anything, CreateParticipantRequest{Name: "hana", RestaurantCandidate: "焼肉"}).Return(p, nil)
	repo.On("GetParticipant", mock.Anything, p.ID).Return(p, nil)

	created, err := client.CreateParticipant(context.Background(), connect.NewRequest(&rpc.CreateParticipantRequest{
		Name: "hana", RestaurantCandidate: "焼肉",
	}))
	require.NoError(t, err)
	assert.Equal(t, p.ID.String(), created.Msg.Participant.ID)

	got, err := client.GetParticipant(context.Background(), connect.NewRequest(&rpc.GetParticipantRequest{ID: p.ID.String()}))
	require.NoError(t, err)
	assert.Equal(t, "焼肉", got.Msg.Participant.RestaurantCandidate)
	repo.AssertExpectations(t)
}

func TestServiceErrorCodes(t *testing.T) {
	repo := new(MockRepository)
	client := newTestClient(t, repo)
	missing := uuid.New()
	repo.On("GetParticipant", mock.Anything, missing).Return(nil, ErrParticipantNotFound)

	_, err := client.GetParticipant(context.Background(), connect.NewRequest(&rpc.GetParticipantRequest{ID: "not-a-uuid"}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = client.GetParticipant(context.Background(), connect.NewRequest(&rpc.GetParticipantRequest{ID: missing.String()}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = client.UpdateParticipant(context.Background(), connect.NewRequest(&rpc.UpdateParticipantRequest{ID: missing.String(), Name: ptr(" ")}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}
